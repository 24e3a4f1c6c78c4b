package repository

import (
	"context"
	"time"

	"jozi-market/internal/model"

	"github.com/google/uuid"
)

// RequestKind distinguishes journal entries by the kind of request submitted.
type RequestKind string

const (
	RequestKindCancellation RequestKind = "cancellation"
	RequestKindReturn       RequestKind = "return"
)

// JournalEntry is one submitted cancellation or return request, recorded
// after the order service accepted it. The journal is an append-only audit
// trail; it is never consulted to derive order state.
type JournalEntry struct {
	ID          uuid.UUID          `json:"id" db:"id"`
	OrderID     string             `json:"orderId" db:"order_id"`
	Kind        RequestKind        `json:"kind" db:"kind"`
	Reason      string             `json:"reason" db:"reason"`
	Items       []model.ReturnItem `json:"items,omitempty" db:"items"`
	SubmittedAt time.Time          `json:"submittedAt" db:"submitted_at"`
}

// JournalRepository defines the interface for request-journal data access.
type JournalRepository interface {
	// RecordCancellation appends a journal entry for an accepted
	// cancellation request.
	RecordCancellation(ctx context.Context, req *model.CancellationRequest) (*JournalEntry, error)

	// RecordReturn appends a journal entry for an accepted return request.
	RecordReturn(ctx context.Context, req *model.ReturnRequest) (*JournalEntry, error)

	// ListByOrder retrieves the journal entries for an order, newest first.
	ListByOrder(ctx context.Context, orderID string) ([]JournalEntry, error)
}
