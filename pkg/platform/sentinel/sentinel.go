package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// For methodology failures (bad titles, steps, guarantees) use the validation
// package; for argument errors use pkg/domain-errors directly.
var (
	// ErrNotFound: no record exists for the identifier.
	ErrNotFound = errors.New("not found")
)
