// Package validation checks use case values against the writing methodology:
// goal-oriented titles, actor-verb-object steps, condition-phrased guarantees
// and extensions that branch from a real step.
//
// Every function is pure. Rejections are reported as FieldErrors inside a
// Result; nothing here returns an error or panics for well-typed input.
package validation

import (
	"slices"
	"strings"
)

// Field tags carried by FieldError.Field.
const (
	FieldTitle            = "title"
	FieldGoalLevel        = "goalLevel"
	FieldStep             = "step"
	FieldExtension        = "extension"
	FieldSuccessGuarantee = "successGuarantee"
	FieldUseCase          = "useCase"
)

// FieldError is one methodology violation. Example is empty when no
// corrective example applies.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Example string `json:"example,omitempty"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Result is the outcome of one validation call. It is built once and never
// changed; Errors hands out a copy.
type Result struct {
	errors []FieldError
}

func newResult(errs []FieldError) Result {
	return Result{errors: slices.Clone(errs)}
}

func invalid(field, message, example string) Result {
	return Result{errors: []FieldError{{Field: field, Message: message, Example: example}}}
}

func (r Result) IsValid() bool {
	return len(r.errors) == 0
}

// Errors returns the violations in the order they were found.
func (r Result) Errors() []FieldError {
	return slices.Clone(r.errors)
}

// Error joins the messages; it is empty for a valid result.
func (r Result) Error() string {
	parts := make([]string, len(r.errors))
	for i, e := range r.errors {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// Merge concatenates the errors of results in argument order.
func Merge(results ...Result) Result {
	var errs []FieldError
	for _, r := range results {
		errs = append(errs, r.errors...)
	}
	return newResult(errs)
}
