package memory

import (
	"context"
	"time"

	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/usecase"
)

// Outbox adapts a Store to usecase.OutboxRepository. Its Create method
// would collide with the user repository's on Store itself.
type Outbox struct {
	store *Store
}

// Outbox returns the store's outbox view.
func (s *Store) Outbox() *Outbox {
	return &Outbox{store: s}
}

// Create stages an event on t.
func (o *Outbox) Create(_ context.Context, t usecase.Transaction, event *domain.OutboxEvent) error {
	mt, err := o.store.own(t)
	if err != nil {
		return err
	}
	e := *event
	mt.stage(op{apply: func() {
		o.store.outbox = append(o.store.outbox, &e)
	}})
	return nil
}

// GetUnpublished returns up to limit unpublished events in creation order.
func (o *Outbox) GetUnpublished(_ context.Context, limit int) ([]*domain.OutboxEvent, error) {
	o.store.mu.RLock()
	defer o.store.mu.RUnlock()

	var out []*domain.OutboxEvent
	for _, e := range o.store.outbox {
		if e.Published {
			continue
		}
		cp := *e
		out = append(out, &cp)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// MarkPublished flags an event as delivered.
func (o *Outbox) MarkPublished(_ context.Context, id string, publishedAt time.Time) error {
	o.store.mu.Lock()
	defer o.store.mu.Unlock()

	for _, e := range o.store.outbox {
		if e.ID == id {
			at := publishedAt
			e.Published = true
			e.PublishedAt = &at
			return nil
		}
	}
	return nil
}
