package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jozi-market/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// journalRepository implements JournalRepository using PostgreSQL.
type journalRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewJournalRepository creates a new PostgreSQL-backed journal repository.
func NewJournalRepository(pool *pgxpool.Pool, logger zerolog.Logger) JournalRepository {
	return &journalRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "journal").Logger(),
	}
}

// RecordCancellation appends a journal entry for an accepted cancellation
// request.
func (r *journalRepository) RecordCancellation(ctx context.Context, req *model.CancellationRequest) (*JournalEntry, error) {
	entry := &JournalEntry{
		ID:          uuid.New(),
		OrderID:     req.OrderID,
		Kind:        RequestKindCancellation,
		Reason:      req.Reason,
		SubmittedAt: time.Now().UTC(),
	}
	return r.insert(ctx, entry)
}

// RecordReturn appends a journal entry for an accepted return request.
func (r *journalRepository) RecordReturn(ctx context.Context, req *model.ReturnRequest) (*JournalEntry, error) {
	entry := &JournalEntry{
		ID:          uuid.New(),
		OrderID:     req.OrderID,
		Kind:        RequestKindReturn,
		Reason:      req.Reason,
		Items:       req.Items,
		SubmittedAt: time.Now().UTC(),
	}
	return r.insert(ctx, entry)
}

// insert writes one journal entry. Item selections are stored as jsonb so
// the support console can show exactly what the customer submitted.
func (r *journalRepository) insert(ctx context.Context, entry *JournalEntry) (*JournalEntry, error) {
	query := `
		INSERT INTO request_journal (id, order_id, kind, reason, items, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var items []byte
	if len(entry.Items) > 0 {
		var err error
		items, err = json.Marshal(entry.Items)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal journal items: %w", err)
		}
	}

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.OrderID, string(entry.Kind), entry.Reason, items, entry.SubmittedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", entry.OrderID).
			Str("kind", string(entry.Kind)).
			Msg("failed to record journal entry")
		return nil, fmt.Errorf("failed to record journal entry: %w", err)
	}

	r.logger.Debug().
		Str("entry_id", entry.ID.String()).
		Str("order_id", entry.OrderID).
		Str("kind", string(entry.Kind)).
		Msg("journal entry recorded")

	return entry, nil
}

// ListByOrder retrieves the journal entries for an order, newest first.
func (r *journalRepository) ListByOrder(ctx context.Context, orderID string) ([]JournalEntry, error) {
	query := `
		SELECT id, order_id, kind, reason, items, submitted_at
		FROM request_journal
		WHERE order_id = $1
		ORDER BY submitted_at DESC
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID).
			Msg("failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]JournalEntry, 0)
	for rows.Next() {
		var entry JournalEntry
		var kind string
		var items []byte

		if err := rows.Scan(&entry.ID, &entry.OrderID, &kind, &entry.Reason, &items, &entry.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entry.Kind = RequestKind(kind)

		if len(items) > 0 {
			if err := json.Unmarshal(items, &entry.Items); err != nil {
				return nil, fmt.Errorf("failed to unmarshal journal items: %w", err)
			}
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w", err)
	}

	return entries, nil
}
