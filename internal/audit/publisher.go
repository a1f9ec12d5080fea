package audit

import (
	"context"

	"usecase-assistant/pkg/requestcontext"
)

// Store persists audit events in append order.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUseCase(ctx context.Context, id string) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = requestcontext.Now(ctx)
	}
	return p.store.Append(ctx, base)
}

// List returns the events recorded for one use case, oldest first.
func (p *Publisher) List(ctx context.Context, id string) ([]Event, error) {
	return p.store.ListByUseCase(ctx, id)
}
