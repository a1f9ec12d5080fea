// Package models holds the immutable use case document and its parts.
package models

import (
	"errors"
	"fmt"
	"slices"

	dErrors "usecase-assistant/pkg/domain-errors"
)

// ErrMissingField is wrapped by NewUseCase when a structurally required value
// is absent. It guards structure only; methodology rules live in validation.
var ErrMissingField = errors.New("required field missing")

// Params is the fully-populated configuration NewUseCase builds from.
type Params struct {
	ID                string
	Title             string
	PrimaryActor      string
	GoalLevel         GoalLevel
	DesignScope       string
	Trigger           string
	Preconditions     []string
	Postconditions    []string
	SuccessGuarantees []string
	MainScenario      *Scenario
	Extensions        []Extension
	Stakeholders      []string
}

// UseCase is the aggregate root of a use case document.
//
// Invariants:
//   - GoalLevel is a member of the enumeration
//   - MainScenario is present (it may be empty while a draft is invalid)
//   - ID is fixed once assigned; an edit is a new value carrying the same ID
//   - no accessor exposes internal slices; every collection is copied in and out
//
// Scalar fields may be empty strings. Whether an empty title is acceptable is
// a methodology question answered by the validation package.
type UseCase struct {
	id                string
	title             string
	primaryActor      string
	goalLevel         GoalLevel
	designScope       string
	trigger           string
	preconditions     []string
	postconditions    []string
	successGuarantees []string
	mainScenario      Scenario
	extensions        []Extension
	stakeholders      []string
}

// NewUseCase constructs a UseCase from p.
//
// Errors: CodeInvalidInput wrapping ErrMissingField when the goal level is
// unset or unknown, or the main scenario is nil.
func NewUseCase(p Params) (*UseCase, error) {
	if p.GoalLevel == "" {
		return nil, missing("goalLevel")
	}
	if !p.GoalLevel.IsValid() {
		return nil, dErrors.Wrap(ErrMissingField, dErrors.CodeInvalidInput,
			fmt.Sprintf("goalLevel %q is not a known goal level", p.GoalLevel))
	}
	if p.MainScenario == nil {
		return nil, missing("mainScenario")
	}
	return &UseCase{
		id:                p.ID,
		title:             p.Title,
		primaryActor:      p.PrimaryActor,
		goalLevel:         p.GoalLevel,
		designScope:       p.DesignScope,
		trigger:           p.Trigger,
		preconditions:     cloneStrings(p.Preconditions),
		postconditions:    cloneStrings(p.Postconditions),
		successGuarantees: cloneStrings(p.SuccessGuarantees),
		mainScenario:      NewScenario(p.MainScenario.steps...),
		extensions:        cloneExtensions(p.Extensions),
		stakeholders:      cloneStrings(p.Stakeholders),
	}, nil
}

func missing(field string) error {
	return dErrors.Wrap(ErrMissingField, dErrors.CodeInvalidInput, field+" cannot be nil")
}

func (u *UseCase) ID() string { return u.id }
func (u *UseCase) Title() string { return u.title }
func (u *UseCase) PrimaryActor() string { return u.primaryActor }
func (u *UseCase) GoalLevel() GoalLevel { return u.goalLevel }
func (u *UseCase) DesignScope() string { return u.designScope }
func (u *UseCase) Trigger() string { return u.trigger }
func (u *UseCase) Preconditions() []string { return cloneStrings(u.preconditions) }
func (u *UseCase) Postconditions() []string { return cloneStrings(u.postconditions) }
func (u *UseCase) SuccessGuarantees() []string { return cloneStrings(u.successGuarantees) }
func (u *UseCase) Stakeholders() []string { return cloneStrings(u.stakeholders) }

// MainScenario returns the success path. Scenario is a value whose accessors
// copy, so callers cannot reach the stored steps.
func (u *UseCase) MainScenario() Scenario { return u.mainScenario }

func (u *UseCase) Extensions() []Extension { return cloneExtensions(u.extensions) }

// Params returns a copy of u's fields, suitable for building an edited value.
func (u *UseCase) Params() Params {
	main := u.mainScenario
	return Params{
		ID:                u.id,
		Title:             u.title,
		PrimaryActor:      u.primaryActor,
		GoalLevel:         u.goalLevel,
		DesignScope:       u.designScope,
		Trigger:           u.trigger,
		Preconditions:     u.Preconditions(),
		Postconditions:    u.Postconditions(),
		SuccessGuarantees: u.SuccessGuarantees(),
		MainScenario:      &main,
		Extensions:        u.Extensions(),
		Stakeholders:      u.Stakeholders(),
	}
}

// WithID returns a copy of u carrying id. The receiver is unchanged.
func (u *UseCase) WithID(id string) *UseCase {
	c := *u
	c.id = id
	return &c
}

// Equal compares every field, including the order of nested collections.
func (u *UseCase) Equal(other *UseCase) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.id == other.id &&
		u.title == other.title &&
		u.primaryActor == other.primaryActor &&
		u.goalLevel == other.goalLevel &&
		u.designScope == other.designScope &&
		u.trigger == other.trigger &&
		slices.Equal(u.preconditions, other.preconditions) &&
		slices.Equal(u.postconditions, other.postconditions) &&
		slices.Equal(u.successGuarantees, other.successGuarantees) &&
		u.mainScenario.Equal(other.mainScenario) &&
		slices.EqualFunc(u.extensions, other.extensions, Extension.Equal) &&
		slices.Equal(u.stakeholders, other.stakeholders)
}

func (u *UseCase) String() string {
	return fmt.Sprintf("UseCase{id=%q, title=%q, primaryActor=%q, goalLevel=%s}",
		u.id, u.title, u.primaryActor, u.goalLevel)
}

// cloneStrings never returns nil so that empty and absent collections compare equal.
func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func cloneExtensions(exts []Extension) []Extension {
	out := make([]Extension, len(exts))
	for i, e := range exts {
		out[i] = NewExtension(e.condition, e.branchPoint, e.steps)
	}
	return out
}
