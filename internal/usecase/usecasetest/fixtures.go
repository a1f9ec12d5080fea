// Package usecasetest provides use case fixtures for tests across the
// usecase packages.
package usecasetest

import (
	"fmt"
	"math/rand/v2"

	"usecase-assistant/internal/usecase/models"
)

// Valid returns a use case that passes every validation rule.
func Valid(id, title string) *models.UseCase {
	uc, err := models.NewBuilder().
		ID(id).
		Title(title).
		PrimaryActor("Customer").
		GoalLevel(models.GoalLevelUserGoal).
		DesignScope("Online Store").
		Trigger("Customer opens the cart").
		AddPrecondition("Customer is logged in").
		AddPostcondition("Order is recorded").
		AddSuccessGuarantee("Order is placed and paid").
		AddStep(1, "Customer", "selects items to purchase").
		AddStep(2, "System", "calculates the order total").
		AddStep(3, "Customer", "confirms the payment").
		AddExtension(models.NewExtension("Payment is declined", 3, []models.Step{
			models.NewStep(1, "System", "displays a payment error"),
			models.NewStep(2, "Customer", "enters another card"),
		})).
		AddStakeholder("Customer").
		AddStakeholder("Warehouse").
		Build()
	if err != nil {
		panic(err)
	}
	return uc
}

var (
	actors  = []string{"User", "System", "Clerk", "Administrator", "Customer", "Ünïcødé actor"}
	actions = []string{
		"enters login credentials", "validates the input", "saves the order",
		"displays the summary", `sends the "receipt" \ email`, "searches\tthe catalogue",
	}
	phrases = []string{"", "Account is active", "Stock has been reserved", "emoji 🚀 text", "line\nbreak"}
)

// Random returns an arbitrary structurally valid use case drawn from r. The
// result need not pass validation; it exercises encoding edge cases such as
// empty collections, negative and sparse step numbers, and escaped text.
func Random(r *rand.Rand) *models.UseCase {
	pick := func(xs []string) string { return xs[r.IntN(len(xs))] }
	list := func() []string {
		out := make([]string, r.IntN(4))
		for i := range out {
			out[i] = pick(phrases)
		}
		return out
	}
	steps := func() []models.Step {
		out := make([]models.Step, r.IntN(5))
		for i := range out {
			out[i] = models.NewStep(r.IntN(20)-5, pick(actors), pick(actions))
		}
		return out
	}

	b := models.NewBuilder().
		ID(fmt.Sprintf("uc-%d", r.Uint32())).
		Title(pick(phrases)).
		PrimaryActor(pick(actors)).
		GoalLevel(models.GoalLevels()[r.IntN(3)]).
		DesignScope(pick(phrases)).
		Trigger(pick(phrases)).
		MainScenario(models.NewScenario(steps()...))
	for _, p := range list() {
		b.AddPrecondition(p)
	}
	for _, p := range list() {
		b.AddPostcondition(p)
	}
	for _, p := range list() {
		b.AddSuccessGuarantee(p)
	}
	for _, p := range list() {
		b.AddStakeholder(p)
	}
	for i := r.IntN(3); i > 0; i-- {
		b.AddExtension(models.NewExtension(pick(phrases), r.IntN(10), steps()))
	}
	uc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return uc
}
