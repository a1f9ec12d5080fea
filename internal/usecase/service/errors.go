package service

import (
	"usecase-assistant/internal/usecase/validation"
	dErrors "usecase-assistant/pkg/domain-errors"
)

// ValidationError rejects a create or update whose document breaks a
// methodology rule. It is coded CodeValidation and carries every field error.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string {
	return "use case failed validation: " + e.Result.Error()
}

// Unwrap exposes a coded domain error so dErrors.HasCode sees CodeValidation.
func (e *ValidationError) Unwrap() error {
	return dErrors.New(dErrors.CodeValidation, e.Result.Error())
}
