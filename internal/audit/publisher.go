package audit

import (
	"context"
	"errors"

	"en13813/pkg/requestcontext"
)

// Store persists audit events. Implementations must be safe for concurrent use.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and fans out
// to every configured store so tests can swap sinks easily.
type Publisher struct {
	stores []Store
}

func NewPublisher(stores ...Store) *Publisher {
	return &Publisher{stores: stores}
}

// Emit stamps the event with the request clock and request ID and appends it
// to every store. All stores are attempted; their errors are joined.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Actor == "" {
		event.Actor = requestcontext.Actor(ctx)
	}
	var errs []error
	for _, s := range p.stores {
		if err := s.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
