package models

import "slices"

// Step is one numbered actor/action line of a scenario. Numbers are assigned
// by the caller and are neither renumbered nor checked for uniqueness here.
type Step struct {
	number int
	actor  string
	action string
}

func NewStep(number int, actor, action string) Step {
	return Step{number: number, actor: actor, action: action}
}

func (s Step) Number() int { return s.number }
func (s Step) Actor() string { return s.actor }
func (s Step) Action() string { return s.action }

// Text renders the step the way the validation rules read it: "<actor> <action>".
func (s Step) Text() string {
	return s.actor + " " + s.action
}

func (s Step) Equal(other Step) bool {
	return s == other
}

// Scenario is an ordered sequence of steps. The zero value is an empty scenario.
type Scenario struct {
	steps []Step
}

// NewScenario copies steps so later changes to the caller's slice are not observed.
func NewScenario(steps ...Step) Scenario {
	return Scenario{steps: slices.Clone(steps)}
}

// Steps returns a copy of the steps in order.
func (s Scenario) Steps() []Step {
	return slices.Clone(s.steps)
}

func (s Scenario) Len() int { return len(s.steps) }

func (s Scenario) IsEmpty() bool { return len(s.steps) == 0 }

// MaxStepNumber returns the largest number stored on any step. ok is false
// for an empty scenario. Gaps in the numbering are not detected.
func (s Scenario) MaxStepNumber() (maxNumber int, ok bool) {
	for i, step := range s.steps {
		if i == 0 || step.number > maxNumber {
			maxNumber = step.number
		}
	}
	return maxNumber, len(s.steps) > 0
}

func (s Scenario) Equal(other Scenario) bool {
	return slices.Equal(s.steps, other.steps)
}

// Extension is an alternate path that diverges from the main scenario at
// BranchPoint. The branch point is bounded by the validation rules, not here.
type Extension struct {
	condition   string
	branchPoint int
	steps       []Step
}

func NewExtension(condition string, branchPoint int, steps []Step) Extension {
	return Extension{condition: condition, branchPoint: branchPoint, steps: slices.Clone(steps)}
}

func (e Extension) Condition() string { return e.condition }
func (e Extension) BranchPoint() int { return e.branchPoint }

// Steps returns a copy of the alternative steps in order.
func (e Extension) Steps() []Step {
	return slices.Clone(e.steps)
}

func (e Extension) Equal(other Extension) bool {
	return e.condition == other.condition &&
		e.branchPoint == other.branchPoint &&
		slices.Equal(e.steps, other.steps)
}
