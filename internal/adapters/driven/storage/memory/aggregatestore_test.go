package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/acronyms/internal/core/domain"
)

func TestAggregateStore_RecordCreatesEntry(t *testing.T) {
	store := NewAggregateStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "SVM", "Support Vector Machine", 1))
	require.NoError(t, store.Record(ctx, "SVM", "Support Vector Machine", 1))
	require.NoError(t, store.Record(ctx, "SVM", "Sparse Voting Method", 1))

	entry, err := store.Get(ctx, "SVM")
	require.NoError(t, err)
	assert.Equal(t, "SVM", entry.ShortForm)
	assert.Equal(t, 2, entry.LongFormCounts["Support Vector Machine"])
	assert.Equal(t, 1, entry.LongFormCounts["Sparse Voting Method"])
	assert.Empty(t, entry.Verified)
}

func TestAggregateStore_Record_Invalid(t *testing.T) {
	store := NewAggregateStore()

	assert.ErrorIs(t, store.Record(context.Background(), "", "x", 1), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Record(context.Background(), "SVM", "", 1), domain.ErrInvalidInput)
}

func TestAggregateStore_RecordBatch(t *testing.T) {
	store := NewAggregateStore()
	ctx := context.Background()
	require.NoError(t, store.Record(ctx, "SVM", "Old Long Form", 1))

	err := store.RecordBatch(ctx, []domain.VoteDelta{
		{ShortForm: "SVM", LongForm: "Old Long Form", Delta: -1},
		{ShortForm: "SVM", LongForm: "Support Vector Machine", Delta: 1},
	})
	require.NoError(t, err)

	entry, err := store.Get(ctx, "SVM")
	require.NoError(t, err)
	assert.Equal(t, 0, entry.LongFormCounts["Old Long Form"])
	assert.Equal(t, 1, entry.LongFormCounts["Support Vector Machine"])
}

func TestAggregateStore_RecordBatch_RejectsWholeBatch(t *testing.T) {
	store := NewAggregateStore()
	ctx := context.Background()

	err := store.RecordBatch(ctx, []domain.VoteDelta{
		{ShortForm: "SVM", LongForm: "Support Vector Machine", Delta: 1},
		{ShortForm: "", LongForm: "x", Delta: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.Get(ctx, "SVM")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAggregateStore_Entries(t *testing.T) {
	store := NewAggregateStore()
	ctx := context.Background()
	require.NoError(t, store.Record(ctx, "SVM", "Support Vector Machine", 1))
	require.NoError(t, store.SetVerified(ctx, "GRU", "Gated Recurrent Unit"))

	entries, err := store.Entries(ctx, []string{"SVM", "GRU", "BLA"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "Gated Recurrent Unit", entries["GRU"].Verified)
	assert.NotContains(t, entries, "BLA")
}

func TestAggregateStore_SetVerifiedKeepsCounts(t *testing.T) {
	store := NewAggregateStore()
	ctx := context.Background()
	require.NoError(t, store.Record(ctx, "SVM", "Support Vector Machine", 3))

	require.NoError(t, store.SetVerified(ctx, "SVM", "Support Vector Machines"))

	entry, err := store.Get(ctx, "SVM")
	require.NoError(t, err)
	assert.Equal(t, "Support Vector Machines", entry.Verified)
	assert.Equal(t, 3, entry.LongFormCounts["Support Vector Machine"])
}

func TestAggregateStore_ConcurrentIncrements(t *testing.T) {
	store := NewAggregateStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Record(ctx, "SVM", "Support Vector Machine", 1)
		}()
	}
	wg.Wait()

	entry, err := store.Get(ctx, "SVM")
	require.NoError(t, err)
	assert.Equal(t, 50, entry.LongFormCounts["Support Vector Machine"])
}
