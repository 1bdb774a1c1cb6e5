package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/qclab/internal/domain/models"
)

func TestStoreSeedAndAppendOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore(models.SampleRecords(time.Now()))
	require.Equal(t, 3, store.Len())

	require.NoError(t, store.Append(ctx, models.QCRecord{ID: "new", BatchNumber: "N-1"}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "1", list[1].ID)

	got, err := store.Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "ACID-908", got.BatchNumber)
}

func TestStoreKeepsNewestFirstAcrossAppends(t *testing.T) {
	ctx := context.Background()
	store := NewStore(models.SampleRecords(time.Now()))

	for i := 0; i < 100; i++ {
		require.NoError(t, store.Append(ctx, models.QCRecord{ID: fmt.Sprintf("r-%d", i), BatchNumber: fmt.Sprintf("B-%d", i)}))
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 103)
	for i := 0; i < 100; i++ {
		assert.Equal(t, fmt.Sprintf("r-%d", 99-i), list[i].ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, []string{list[100].ID, list[101].ID, list[102].ID})

	for _, id := range []string{"r-0", "r-57", "r-99", "1", "3"} {
		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	}
	got, err := store.Get(ctx, "r-42")
	require.NoError(t, err)
	assert.Equal(t, "B-42", got.BatchNumber)
}

func TestStoreSeedKeepsFirstOfRepeatedID(t *testing.T) {
	store := NewStore([]models.QCRecord{
		{ID: "a", BatchNumber: "newest"},
		{ID: "b"},
		{ID: "a", BatchNumber: "older"},
	})
	require.Equal(t, 2, store.Len())

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)

	got, err := store.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "newest", got.BatchNumber)
}

func TestStoreRejectsDuplicates(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, models.QCRecord{ID: "a"}))
	err := store.Append(ctx, models.QCRecord{ID: "a"})
	assert.True(t, errors.Is(err, ErrDuplicateID))
	assert.Equal(t, 1, store.Len())
}

func TestStoreGetMissing(t *testing.T) {
	_, err := NewStore(nil).Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrRecordNotFound))
}

func TestStoreHandsOutCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore(models.SampleRecords(time.Now()))

	list, err := store.List(ctx)
	require.NoError(t, err)
	list[0].Parameters[0].Name = "tampered"
	list[0].Status = models.StatusRejected

	rec, err := store.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "GC - Normal Hexane", rec.Parameters[0].Name)
	assert.Equal(t, models.StatusApproved, rec.Status)
}

func TestStoreAppendDetachesCaller(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil)
	rec := models.QCRecord{ID: "x", Parameters: []models.QCParameter{{Name: "Density"}}}

	require.NoError(t, store.Append(ctx, rec))
	rec.Parameters[0].Name = "changed"

	got, err := store.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "Density", got.Parameters[0].Name)
}

func TestStoreConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Append(ctx, models.QCRecord{ID: fmt.Sprintf("r-%d", i)}))
			_, _ = store.List(ctx)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 64, store.Len())
	for i := 0; i < 64; i++ {
		_, err := store.Get(ctx, fmt.Sprintf("r-%d", i))
		assert.NoError(t, err)
	}
}
