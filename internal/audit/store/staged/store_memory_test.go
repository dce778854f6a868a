package staged

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorgate/internal/audit/models"
	id "vendorgate/pkg/domain"
	"vendorgate/pkg/platform/sentinel"
)

func TestMemoryStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	sessionID := id.NewSessionID()
	report := models.Report{Identity: sessionID.String(), Status: models.StatusPassed}

	require.NoError(t, store.Save(ctx, sessionID, report, time.Hour))

	found, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, report, found)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemory()

	_, err := store.Get(context.Background(), id.NewSessionID())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	store := NewMemory(WithClock(func() time.Time { return now }))
	sessionID := id.NewSessionID()

	require.NoError(t, store.Save(ctx, sessionID, models.Report{Identity: sessionID.String()}, time.Hour))

	now = now.Add(61 * time.Minute)
	_, err := store.Get(ctx, sessionID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	sessionID := id.NewSessionID()

	require.NoError(t, store.Save(ctx, sessionID, models.Report{Identity: sessionID.String()}, time.Hour))
	require.NoError(t, store.Delete(ctx, sessionID))

	_, err := store.Get(ctx, sessionID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
