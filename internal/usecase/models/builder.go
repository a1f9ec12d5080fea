package models

// Builder accumulates the parts of a use case and produces an immutable value
// in Build. A Builder is not safe for concurrent use and may be reused; each
// Build copies the accumulated state.
type Builder struct {
	p        Params
	steps    []Step
	scenario bool
}

func NewBuilder() *Builder {
	return &Builder{}
}

// BuilderFrom seeds a builder with an existing use case, keeping its ID. Used
// by edit flows.
func BuilderFrom(u *UseCase) *Builder {
	b := &Builder{p: u.Params(), scenario: true}
	b.steps = u.mainScenario.Steps()
	b.p.MainScenario = nil
	return b
}

func (b *Builder) ID(id string) *Builder {
	b.p.ID = id
	return b
}

func (b *Builder) Title(title string) *Builder {
	b.p.Title = title
	return b
}

func (b *Builder) PrimaryActor(actor string) *Builder {
	b.p.PrimaryActor = actor
	return b
}

func (b *Builder) GoalLevel(level GoalLevel) *Builder {
	b.p.GoalLevel = level
	return b
}

func (b *Builder) DesignScope(scope string) *Builder {
	b.p.DesignScope = scope
	return b
}

func (b *Builder) Trigger(trigger string) *Builder {
	b.p.Trigger = trigger
	return b
}

func (b *Builder) AddPrecondition(c string) *Builder {
	b.p.Preconditions = append(b.p.Preconditions, c)
	return b
}

func (b *Builder) AddPostcondition(c string) *Builder {
	b.p.Postconditions = append(b.p.Postconditions, c)
	return b
}

func (b *Builder) AddSuccessGuarantee(g string) *Builder {
	b.p.SuccessGuarantees = append(b.p.SuccessGuarantees, g)
	return b
}

func (b *Builder) AddStakeholder(s string) *Builder {
	b.p.Stakeholders = append(b.p.Stakeholders, s)
	return b
}

func (b *Builder) AddExtension(e Extension) *Builder {
	b.p.Extensions = append(b.p.Extensions, e)
	return b
}

// MainScenario replaces any steps added so far.
func (b *Builder) MainScenario(s Scenario) *Builder {
	b.steps = s.Steps()
	b.scenario = true
	return b
}

// AddStep appends a step to the main scenario.
func (b *Builder) AddStep(number int, actor, action string) *Builder {
	b.steps = append(b.steps, NewStep(number, actor, action))
	b.scenario = true
	return b
}

// Build runs the structural checks of NewUseCase. A builder that never
// received a scenario or a step fails with ErrMissingField.
func (b *Builder) Build() (*UseCase, error) {
	p := b.p
	if b.scenario {
		main := NewScenario(b.steps...)
		p.MainScenario = &main
	}
	return NewUseCase(p)
}
