package serializer

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"usecase-assistant/internal/usecase/models"
	dErrors "usecase-assistant/pkg/domain-errors"
)

// SerializeYAML encodes uc as a YAML document with the same field names as
// the JSON record. YAML is an authoring format; the store only keeps JSON.
func (s *Serializer) SerializeYAML(uc *models.UseCase) ([]byte, error) {
	if uc == nil {
		return nil, dErrors.Wrap(ErrNilUseCase, dErrors.CodeInvalidInput, "cannot serialize use case")
	}
	doc := toDocument(uc)
	if err := doc.checkUTF8(); err != nil {
		return nil, newError(KindDecode, "Failed to serialize use case", err)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeYAML decodes a YAML draft by converting it to JSON and applying
// Deserialize, so schema checks and error kinds are identical.
func (s *Serializer) DeserializeYAML(data []byte) (*models.UseCase, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, dErrors.Wrap(newError(KindEmptyInput, "YAML document cannot be empty", nil),
			dErrors.CodeInvalidInput, "invalid use case document")
	}
	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, newError(KindMalformed, "Invalid YAML format", err)
	}
	converted, err := json.Marshal(value)
	if err != nil {
		return nil, newError(KindMalformed, "Invalid YAML format", err)
	}
	return s.Deserialize(converted)
}
