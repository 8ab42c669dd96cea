package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medsimplify/pkg"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	for i, strategy := range []pkg.Strategy{pkg.StrategyZeroShot, pkg.StrategyFewShot, pkg.StrategyZeroShot} {
		e := &pkg.HistoryEntry{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Strategy:  strategy,
			Metrics:   pkg.Metrics{ReadabilityScore: float64(60 + 10*i)},
		}
		require.NoError(t, store.Append(ctx, e))
		assert.NotEqual(t, uuid.Nil, e.ID)
	}

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	all, err := store.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt))

	page, err := store.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, all[1].ID, page[0].ID)

	past, err := store.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, past)

	got, err := store.Get(ctx, all[2].ID)
	require.NoError(t, err)
	assert.Equal(t, all[2], *got)

	_, err = store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	summary, err := store.SummaryByStrategy(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, pkg.StrategyZeroShot, summary[1].Strategy)
	assert.InDelta(t, 70.0, summary[1].AvgReadability, 1e-9)
}
