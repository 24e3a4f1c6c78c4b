package integration

import (
	"context"
	"testing"
	"time"

	"jozi-market/internal/model"
	"jozi-market/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewJournalRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("RecordCancellation round-trips", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		entry, err := repo.RecordCancellation(ctx, &model.CancellationRequest{
			OrderID: "o-1",
			Reason:  "Ordered the wrong size",
		})
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.Equal(t, repository.RequestKindCancellation, entry.Kind)

		entries, err := repo.ListByOrder(ctx, "o-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entry.ID, entries[0].ID)
		assert.Equal(t, "Ordered the wrong size", entries[0].Reason)
		assert.Empty(t, entries[0].Items)
	})

	t.Run("RecordReturn preserves item selections", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		itemReason := "Bead string snapped"
		entry, err := repo.RecordReturn(ctx, &model.ReturnRequest{
			OrderID: "o-2",
			Reason:  "Wrong color shipped",
			Items: []model.ReturnItem{
				{OrderItemID: "i1", Quantity: 2, Reason: &itemReason},
				{OrderItemID: "i2", Quantity: 1},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, entry)

		entries, err := repo.ListByOrder(ctx, "o-2")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, repository.RequestKindReturn, entries[0].Kind)
		require.Len(t, entries[0].Items, 2)
		assert.Equal(t, "i1", entries[0].Items[0].OrderItemID)
		assert.Equal(t, 2, entries[0].Items[0].Quantity)
		require.NotNil(t, entries[0].Items[0].Reason)
		assert.Equal(t, itemReason, *entries[0].Items[0].Reason)
		assert.Nil(t, entries[0].Items[1].Reason)
	})

	t.Run("ListByOrder returns newest first", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		first, err := repo.RecordCancellation(ctx, &model.CancellationRequest{
			OrderID: "o-3",
			Reason:  "Ordered the wrong size",
		})
		require.NoError(t, err)

		// Distinct submitted_at values so the ordering is deterministic.
		time.Sleep(10 * time.Millisecond)

		second, err := repo.RecordReturn(ctx, &model.ReturnRequest{
			OrderID: "o-3",
			Reason:  "Wrong color shipped",
			Items:   []model.ReturnItem{{OrderItemID: "i1", Quantity: 1}},
		})
		require.NoError(t, err)

		entries, err := repo.ListByOrder(ctx, "o-3")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, second.ID, entries[0].ID)
		assert.Equal(t, first.ID, entries[1].ID)
	})

	t.Run("ListByOrder only returns entries for the order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		_, err := repo.RecordCancellation(ctx, &model.CancellationRequest{
			OrderID: "o-4",
			Reason:  "Ordered the wrong size",
		})
		require.NoError(t, err)

		entries, err := repo.ListByOrder(ctx, "o-other")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
