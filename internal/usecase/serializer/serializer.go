// Package serializer converts use cases to and from their JSON record form.
// Every decode is checked against the bundled JSON Schema first.
package serializer

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"usecase-assistant/internal/usecase/models"
	dErrors "usecase-assistant/pkg/domain-errors"
)

//go:embed schema/usecase.schema.json
var schemaDocument []byte

const schemaURL = "usecase.schema.json"

// Serializer is safe for concurrent use; the compiled schema is never changed
// after New returns.
type Serializer struct {
	schema *jsonschema.Schema
}

// New compiles the bundled schema.
func New() (*Serializer, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaDocument)); err != nil {
		return nil, fmt.Errorf("load use case schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile use case schema: %w", err)
	}
	return &Serializer{schema: schema}, nil
}

// MustNew is New for process start-up, where a broken bundled schema is a
// programming error.
func MustNew() *Serializer {
	s, err := New()
	if err != nil {
		panic(err)
	}
	return s
}

// Serialize encodes uc as indented JSON terminated by a newline. Text that is
// not valid UTF-8 is rejected with a KindDecode error instead of being altered.
func (s *Serializer) Serialize(uc *models.UseCase) ([]byte, error) {
	if uc == nil {
		return nil, dErrors.Wrap(ErrNilUseCase, dErrors.CodeInvalidInput, "use case cannot be nil")
	}
	doc := toDocument(uc)
	if err := doc.checkUTF8(); err != nil {
		return nil, newError(KindDecode, "Failed to serialize use case", err)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, newError(KindDecode, "Failed to serialize use case", err)
	}
	return append(out, '\n'), nil
}

// Deserialize validates data against the schema and decodes it.
//
// Errors (inspect with errors.Is or KindOf):
//   - ErrEmptyInput, also coded CodeInvalidInput, for blank input
//   - ErrMalformedJSON when data is not JSON
//   - ErrSchemaViolation when data does not match the schema
//   - ErrDecode when the values cannot form a use case
func (s *Serializer) Deserialize(data []byte) (*models.UseCase, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, dErrors.Wrap(newError(KindEmptyInput, "JSON string cannot be null or empty", nil),
			dErrors.CodeInvalidInput, "invalid use case document")
	}
	if err := s.ValidateSchema(data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, newError(KindDecode, "Failed to deserialize use case", err)
	}
	uc, err := doc.toModel()
	if err != nil {
		return nil, newError(KindDecode, "Failed to deserialize use case", err)
	}
	return uc, nil
}

// ValidateSchema reports whether data is JSON that conforms to the schema.
// It returns nil, a KindMalformed error or a KindSchema error.
func (s *Serializer) ValidateSchema(data []byte) error {
	value, err := decodeValue(data)
	if err != nil {
		return newError(KindMalformed, "Invalid JSON format", err)
	}
	if err := s.schema.Validate(value); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return newError(KindSchema, "Schema validation failed: "+strings.Join(leafMessages(ve), "; "), nil)
		}
		return newError(KindSchema, "Schema validation failed", err)
	}
	return nil
}

// decodeValue parses exactly one JSON value, keeping numbers exact so the
// schema can tell 3 from 3.5.
func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func leafMessages(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{loc + ": " + ve.Message}
	}
	var out []string
	for _, c := range ve.Causes {
		out = append(out, leafMessages(c)...)
	}
	return out
}
