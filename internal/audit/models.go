package audit

import "time"

// Action names a use case lifecycle event.
type Action string

const (
	EventUseCaseCreated Action = "usecase_created"
	EventUseCaseUpdated Action = "usecase_updated"
	EventUseCaseDeleted Action = "usecase_deleted"
)

// Event is emitted from the service after a successful mutation. Keep it
// sink-agnostic so stores can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	UseCaseID string    `json:"useCaseId"`
	Title     string    `json:"title,omitempty"`
	Digest    string    `json:"digest,omitempty"`
}
