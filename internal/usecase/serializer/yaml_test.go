package serializer_test

import (
	"strings"

	"usecase-assistant/internal/usecase/serializer"
	"usecase-assistant/internal/usecase/usecasetest"
	dErrors "usecase-assistant/pkg/domain-errors"
)

func (s *SerializerSuite) TestYAMLRoundTrip() {
	original := usecasetest.Valid("uc-1", "Purchase Items")

	data, err := s.ser.SerializeYAML(original)
	s.Require().NoError(err)
	s.Contains(string(data), "goalLevel: USER_GOAL")
	s.Contains(string(data), "mainScenario:\n  steps:\n")

	decoded, err := s.ser.DeserializeYAML(data)
	s.Require().NoError(err)
	s.True(original.Equal(decoded))
}

func (s *SerializerSuite) TestYAMLFailures() {
	s.Run("blank", func() {
		_, err := s.ser.DeserializeYAML([]byte(" \n"))
		s.ErrorIs(err, serializer.ErrEmptyInput)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("not yaml", func() {
		_, err := s.ser.DeserializeYAML([]byte("title: [unclosed"))
		s.ErrorIs(err, serializer.ErrMalformedJSON)
		s.Contains(err.Error(), "Invalid YAML format")
	})

	s.Run("schema still applies", func() {
		_, err := s.ser.DeserializeYAML([]byte("id: uc-1\ntitle: Purchase Items\n"))
		s.Equal(serializer.KindSchema, serializer.KindOf(err))
	})

	s.Run("nil use case", func() {
		_, err := s.ser.SerializeYAML(nil)
		s.ErrorIs(err, serializer.ErrNilUseCase)
	})
}

func (s *SerializerSuite) TestYAMLDraftWithComments() {
	draft := strings.Join([]string{
		"# draft written by hand",
		"id: ''",
		"title: Purchase Items",
		"primaryActor: Customer",
		"goalLevel: USER_GOAL",
		"designScope: Online Store",
		"trigger: Customer opens the cart",
		"preconditions: []",
		"postconditions: []",
		"successGuarantees: [Order is placed]",
		"mainScenario:",
		"  steps:",
		"    - {number: 1, actor: Customer, action: selects items}",
		"extensions: []",
		"stakeholders: []",
		"",
	}, "\n")

	uc, err := s.ser.DeserializeYAML([]byte(draft))
	s.Require().NoError(err)
	s.Equal("Purchase Items", uc.Title())
	s.Equal(1, uc.MainScenario().Len())
}
