package serializer_test

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/suite"

	"usecase-assistant/internal/usecase/models"
	"usecase-assistant/internal/usecase/serializer"
	"usecase-assistant/internal/usecase/usecasetest"
	dErrors "usecase-assistant/pkg/domain-errors"
)

type SerializerSuite struct {
	suite.Suite
	ser *serializer.Serializer
}

func TestSerializerSuite(t *testing.T) {
	suite.Run(t, new(SerializerSuite))
}

func (s *SerializerSuite) SetupTest() {
	var err error
	s.ser, err = serializer.New()
	s.Require().NoError(err)
}

// rawDocument serializes a valid fixture and returns it as a generic map the
// tests can break in targeted ways.
func (s *SerializerSuite) rawDocument() map[string]any {
	data, err := s.ser.Serialize(usecasetest.Valid("uc-1", "Purchase Items"))
	s.Require().NoError(err)
	var m map[string]any
	s.Require().NoError(json.Unmarshal(data, &m))
	return m
}

func (s *SerializerSuite) encode(m map[string]any) []byte {
	data, err := json.Marshal(m)
	s.Require().NoError(err)
	return data
}

func (s *SerializerSuite) TestRoundTrip() {
	s.Run("fixture survives a round trip", func() {
		uc := usecasetest.Valid("uc-1", "Purchase Items")
		data, err := s.ser.Serialize(uc)
		s.Require().NoError(err)

		back, err := s.ser.Deserialize(data)
		s.Require().NoError(err)
		s.True(uc.Equal(back), "round trip changed the value:\n%s", data)
		s.Equal(uc.Hash(), back.Hash())
	})

	s.Run("arbitrary values survive a round trip", func() {
		r := rand.New(rand.NewPCG(7, 11))
		for i := 0; i < 200; i++ {
			uc := usecasetest.Random(r)
			data, err := s.ser.Serialize(uc)
			s.Require().NoError(err)

			back, err := s.ser.Deserialize(data)
			s.Require().NoError(err, string(data))
			s.Require().True(uc.Equal(back), "round trip changed the value:\n%s", data)
		}
	})

	s.Run("serialization is deterministic", func() {
		uc := usecasetest.Valid("uc-1", "Purchase Items")
		a, err := s.ser.Serialize(uc)
		s.Require().NoError(err)
		b, err := s.ser.Serialize(uc)
		s.Require().NoError(err)
		s.Equal(a, b)
	})
}

func (s *SerializerSuite) TestInvalidUTF8IsRejected() {
	base := usecasetest.Valid("uc-1", "Purchase Items").Params()

	s.Run("title", func() {
		p := base
		p.Title = "Buy \xff Items"
		uc, err := models.NewUseCase(p)
		s.Require().NoError(err)

		data, err := s.ser.Serialize(uc)
		s.Require().Error(err)
		s.Nil(data)
		s.ErrorIs(err, serializer.ErrDecode)
		s.Contains(err.Error(), "title")

		_, err = s.ser.SerializeYAML(uc)
		s.ErrorIs(err, serializer.ErrDecode)
	})

	s.Run("nested step action", func() {
		p := base
		steps := p.MainScenario.Steps()
		steps[1] = models.NewStep(2, "System", "calculates \xc3 total")
		main := models.NewScenario(steps...)
		p.MainScenario = &main
		uc, err := models.NewUseCase(p)
		s.Require().NoError(err)

		_, err = s.ser.Serialize(uc)
		s.Require().Error(err)
		s.Contains(err.Error(), "mainScenario.steps[1].action")
	})

	s.Run("valid multi-byte text still round trips", func() {
		p := base
		p.Title = "Kaufen Sie Artikel üß 🚀"
		uc, err := models.NewUseCase(p)
		s.Require().NoError(err)

		data, err := s.ser.Serialize(uc)
		s.Require().NoError(err)
		decoded, err := s.ser.Deserialize(data)
		s.Require().NoError(err)
		s.True(uc.Equal(decoded))
	})
}

func (s *SerializerSuite) TestRecordFormat() {
	m := s.rawDocument()

	s.Run("goal level uses the canonical spelling", func() {
		s.Equal("USER_GOAL", m["goalLevel"])
	})

	s.Run("main scenario is an object holding steps", func() {
		main, ok := m["mainScenario"].(map[string]any)
		s.Require().True(ok)
		steps, ok := main["steps"].([]any)
		s.Require().True(ok)
		s.Len(steps, 3)
		first := steps[0].(map[string]any)
		s.Equal(float64(1), first["number"])
		s.Equal("Customer", first["actor"])
	})

	s.Run("empty collections are arrays, not null", func() {
		empty := models.NewScenario()
		uc, err := models.NewUseCase(models.Params{ID: "x", GoalLevel: models.GoalLevelSummary, MainScenario: &empty})
		s.Require().NoError(err)
		data, err := s.ser.Serialize(uc)
		s.Require().NoError(err)
		s.Contains(string(data), `"stakeholders": []`)
		s.Contains(string(data), `"steps": []`)
		s.NotContains(string(data), "null")
	})

	s.Run("nil use case is an argument error", func() {
		_, err := s.ser.Serialize(nil)
		s.Require().ErrorIs(err, serializer.ErrNilUseCase)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *SerializerSuite) TestDeserializeFailures() {
	s.Run("empty input is an argument error", func() {
		for _, in := range []string{"", "   ", "\n\t"} {
			_, err := s.ser.Deserialize([]byte(in))
			s.Require().Error(err)
			s.ErrorIs(err, serializer.ErrEmptyInput)
			s.Equal(serializer.KindEmptyInput, serializer.KindOf(err))
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
			s.Contains(err.Error(), "cannot be null or empty")
		}
	})

	s.Run("malformed text", func() {
		for _, in := range []string{"{invalid}", `{"id": "x"`, "not json", `{"id":"x"} trailing`} {
			_, err := s.ser.Deserialize([]byte(in))
			s.Require().Error(err, in)
			s.ErrorIs(err, serializer.ErrMalformedJSON)
			s.NotErrorIs(err, serializer.ErrSchemaViolation)
			s.Contains(err.Error(), "Invalid JSON format")
		}
	})

	s.Run("missing required key", func() {
		for _, key := range []string{"id", "title", "goalLevel", "mainScenario", "extensions", "stakeholders"} {
			m := s.rawDocument()
			delete(m, key)
			_, err := s.ser.Deserialize(s.encode(m))
			s.Require().Error(err, key)
			s.ErrorIs(err, serializer.ErrSchemaViolation)
			s.Contains(err.Error(), "Schema validation failed")
			s.Contains(err.Error(), key)
		}
	})

	s.Run("goal level outside the enumeration", func() {
		for _, level := range []string{"INVALID", "UserGoal", "user_goal", ""} {
			m := s.rawDocument()
			m["goalLevel"] = level
			_, err := s.ser.Deserialize(s.encode(m))
			s.Require().Error(err, level)
			s.Equal(serializer.KindSchema, serializer.KindOf(err))
		}
	})

	s.Run("step object missing action", func() {
		m := s.rawDocument()
		steps := m["mainScenario"].(map[string]any)["steps"].([]any)
		delete(steps[0].(map[string]any), "action")
		_, err := s.ser.Deserialize(s.encode(m))
		s.Require().ErrorIs(err, serializer.ErrSchemaViolation)
		s.Contains(err.Error(), "/mainScenario/steps/0")
	})

	s.Run("extension object missing branch point", func() {
		m := s.rawDocument()
		exts := m["extensions"].([]any)
		delete(exts[0].(map[string]any), "branchPoint")
		_, err := s.ser.Deserialize(s.encode(m))
		s.Require().ErrorIs(err, serializer.ErrSchemaViolation)
	})

	s.Run("fractional step number", func() {
		m := s.rawDocument()
		steps := m["mainScenario"].(map[string]any)["steps"].([]any)
		steps[0].(map[string]any)["number"] = 1.5
		_, err := s.ser.Deserialize(s.encode(m))
		s.Require().ErrorIs(err, serializer.ErrSchemaViolation)
	})

	s.Run("schema-valid number that overflows int", func() {
		data := []byte(`{"id":"x","title":"t","primaryActor":"a","goalLevel":"SUMMARY","designScope":"d","trigger":"t",
			"preconditions":[],"postconditions":[],"successGuarantees":[],
			"mainScenario":{"steps":[{"number":123456789012345678901234567890,"actor":"a","action":"b"}]},
			"extensions":[],"stakeholders":[]}`)
		_, err := s.ser.Deserialize(data)
		s.Require().ErrorIs(err, serializer.ErrDecode)
		s.Contains(err.Error(), "Failed to deserialize")
	})

	s.Run("top-level array", func() {
		_, err := s.ser.Deserialize([]byte(`[]`))
		s.Require().ErrorIs(err, serializer.ErrSchemaViolation)
	})
}

func (s *SerializerSuite) TestWellFormedDocument() {
	data := []byte(`{
		"id": "8d5f",
		"title": "Withdraw Cash",
		"primaryActor": "Account Holder",
		"goalLevel": "SUBFUNCTION",
		"designScope": "ATM",
		"trigger": "Card is inserted",
		"preconditions": ["ATM has cash"],
		"postconditions": [],
		"successGuarantees": ["Cash is dispensed"],
		"mainScenario": {"steps": [
			{"number": 1, "actor": "Holder", "action": "enters the PIN"},
			{"number": 2, "actor": "ATM", "action": "validates the PIN"}
		]},
		"extensions": [
			{"condition": "PIN is wrong", "branchPoint": 2, "steps": []}
		],
		"stakeholders": ["Bank"]
	}`)
	uc, err := s.ser.Deserialize(data)
	s.Require().NoError(err)
	s.Equal("8d5f", uc.ID())
	s.Equal(models.GoalLevelSubfunction, uc.GoalLevel())
	s.Equal(2, uc.MainScenario().Len())
	s.Equal(2, uc.Extensions()[0].BranchPoint())
	s.NoError(s.ser.ValidateSchema(data))
}
