package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorgate/internal/audit/models"
	"vendorgate/pkg/platform/sentinel"
)

func TestMemoryStore_Latest(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	base := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	first := models.Report{Identity: "user-1", Timestamp: base, Status: models.StatusFailed}
	second := models.Report{Identity: "user-1", Timestamp: base.Add(time.Hour), Status: models.StatusPassed}
	other := models.Report{Identity: "user-2", Timestamp: base.Add(2 * time.Hour), Status: models.StatusPassed}

	require.NoError(t, store.Save(ctx, second))
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, other))

	latest, err := store.Latest(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, second, latest)
}

func TestMemoryStore_LatestMissing(t *testing.T) {
	store := NewMemory()

	_, err := store.Latest(context.Background(), "nobody")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
