package serializer

import (
	"fmt"
	"unicode/utf8"

	"usecase-assistant/internal/usecase/models"
)

// Wire structs. Field names are the record format for both JSON and YAML;
// keep them in step with schema/usecase.schema.json.
type document struct {
	ID                string         `json:"id" yaml:"id"`
	Title             string         `json:"title" yaml:"title"`
	PrimaryActor      string         `json:"primaryActor" yaml:"primaryActor"`
	GoalLevel         string         `json:"goalLevel" yaml:"goalLevel"`
	DesignScope       string         `json:"designScope" yaml:"designScope"`
	Trigger           string         `json:"trigger" yaml:"trigger"`
	Preconditions     []string       `json:"preconditions" yaml:"preconditions"`
	Postconditions    []string       `json:"postconditions" yaml:"postconditions"`
	SuccessGuarantees []string       `json:"successGuarantees" yaml:"successGuarantees"`
	MainScenario      scenarioDoc    `json:"mainScenario" yaml:"mainScenario"`
	Extensions        []extensionDoc `json:"extensions" yaml:"extensions"`
	Stakeholders      []string       `json:"stakeholders" yaml:"stakeholders"`
}

type scenarioDoc struct {
	Steps []stepDoc `json:"steps" yaml:"steps"`
}

type stepDoc struct {
	Number int    `json:"number" yaml:"number"`
	Actor  string `json:"actor" yaml:"actor"`
	Action string `json:"action" yaml:"action"`
}

type extensionDoc struct {
	Condition   string    `json:"condition" yaml:"condition"`
	BranchPoint int       `json:"branchPoint" yaml:"branchPoint"`
	Steps       []stepDoc `json:"steps" yaml:"steps"`
}

func toDocument(uc *models.UseCase) document {
	exts := uc.Extensions()
	extDocs := make([]extensionDoc, len(exts))
	for i, e := range exts {
		extDocs[i] = extensionDoc{
			Condition:   e.Condition(),
			BranchPoint: e.BranchPoint(),
			Steps:       toStepDocs(e.Steps()),
		}
	}
	return document{
		ID:                uc.ID(),
		Title:             uc.Title(),
		PrimaryActor:      uc.PrimaryActor(),
		GoalLevel:         uc.GoalLevel().String(),
		DesignScope:       uc.DesignScope(),
		Trigger:           uc.Trigger(),
		Preconditions:     uc.Preconditions(),
		Postconditions:    uc.Postconditions(),
		SuccessGuarantees: uc.SuccessGuarantees(),
		MainScenario:      scenarioDoc{Steps: toStepDocs(uc.MainScenario().Steps())},
		Extensions:        extDocs,
		Stakeholders:      uc.Stakeholders(),
	}
}

func toStepDocs(steps []models.Step) []stepDoc {
	out := make([]stepDoc, len(steps))
	for i, s := range steps {
		out[i] = stepDoc{Number: s.Number(), Actor: s.Actor(), Action: s.Action()}
	}
	return out
}

func (d document) toModel() (*models.UseCase, error) {
	level, err := models.ParseGoalLevel(d.GoalLevel)
	if err != nil {
		return nil, err
	}
	main := models.NewScenario(fromStepDocs(d.MainScenario.Steps)...)
	exts := make([]models.Extension, len(d.Extensions))
	for i, e := range d.Extensions {
		exts[i] = models.NewExtension(e.Condition, e.BranchPoint, fromStepDocs(e.Steps))
	}
	return models.NewUseCase(models.Params{
		ID:                d.ID,
		Title:             d.Title,
		PrimaryActor:      d.PrimaryActor,
		GoalLevel:         level,
		DesignScope:       d.DesignScope,
		Trigger:           d.Trigger,
		Preconditions:     d.Preconditions,
		Postconditions:    d.Postconditions,
		SuccessGuarantees: d.SuccessGuarantees,
		MainScenario:      &main,
		Extensions:        exts,
		Stakeholders:      d.Stakeholders,
	})
}

func fromStepDocs(docs []stepDoc) []models.Step {
	out := make([]models.Step, len(docs))
	for i, d := range docs {
		out[i] = models.NewStep(d.Number, d.Actor, d.Action)
	}
	return out
}

// checkUTF8 reports the first field holding bytes that are not valid UTF-8.
// encoding/json would replace them with U+FFFD and break the round trip.
func (d document) checkUTF8() error {
	check := func(field, v string) error {
		if !utf8.ValidString(v) {
			return fmt.Errorf("%s contains invalid UTF-8: %q", field, v)
		}
		return nil
	}
	checkList := func(field string, values []string) error {
		for i, v := range values {
			if err := check(fmt.Sprintf("%s[%d]", field, i), v); err != nil {
				return err
			}
		}
		return nil
	}
	checkSteps := func(field string, steps []stepDoc) error {
		for i, st := range steps {
			if err := check(fmt.Sprintf("%s[%d].actor", field, i), st.Actor); err != nil {
				return err
			}
			if err := check(fmt.Sprintf("%s[%d].action", field, i), st.Action); err != nil {
				return err
			}
		}
		return nil
	}

	for _, f := range []struct{ name, value string }{
		{"id", d.ID}, {"title", d.Title}, {"primaryActor", d.PrimaryActor},
		{"goalLevel", d.GoalLevel}, {"designScope", d.DesignScope}, {"trigger", d.Trigger},
	} {
		if err := check(f.name, f.value); err != nil {
			return err
		}
	}
	for _, l := range []struct {
		name   string
		values []string
	}{
		{"preconditions", d.Preconditions}, {"postconditions", d.Postconditions},
		{"successGuarantees", d.SuccessGuarantees}, {"stakeholders", d.Stakeholders},
	} {
		if err := checkList(l.name, l.values); err != nil {
			return err
		}
	}
	if err := checkSteps("mainScenario.steps", d.MainScenario.Steps); err != nil {
		return err
	}
	for i, e := range d.Extensions {
		if err := check(fmt.Sprintf("extensions[%d].condition", i), e.Condition); err != nil {
			return err
		}
		if err := checkSteps(fmt.Sprintf("extensions[%d].steps", i), e.Steps); err != nil {
			return err
		}
	}
	return nil
}
