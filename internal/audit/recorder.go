package audit

import (
	"context"

	"skybook/pkg/logger"
)

// LedgerRecorder stores every event and, when a publisher is set, emits it.
// Failures are logged; the request that produced the event carries on.
type LedgerRecorder struct {
	repo      Repository
	publisher Publisher
}

// NewLedgerRecorder builds a recorder. publisher may be nil.
func NewLedgerRecorder(repo Repository, publisher Publisher) *LedgerRecorder {
	return &LedgerRecorder{repo: repo, publisher: publisher}
}

func (r *LedgerRecorder) Record(ctx context.Context, e Event) {
	entry := entryFromEvent(e)
	e.OccurredAt = entry.OccurredAt

	log := logger.GetDefault()
	log.WarnContext(ctx, "Audit event",
		"kind", e.Kind,
		"session_id", e.SessionID,
		"booking_id", e.BookingID,
		"payment_intent_id", e.PaymentIntentID,
		"detail", e.Detail,
	)

	if err := r.repo.Create(ctx, entry); err != nil {
		log.ErrorWithContext(ctx, "Failed to store audit event", err, map[string]interface{}{"kind": e.Kind})
	}

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, e); err != nil {
			log.ErrorWithContext(ctx, "Failed to publish audit event", err, map[string]interface{}{"kind": e.Kind})
		}
	}
}
