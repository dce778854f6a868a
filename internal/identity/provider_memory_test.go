package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vendorgate/pkg/domain-errors"
)

func TestHashPassword(t *testing.T) {
	t.Run("valid credentials hash", func(t *testing.T) {
		hash, err := HashPassword("dana@acme.example", "correct-horse")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotContains(t, string(hash), "correct-horse")
	})

	t.Run("short password is rejected", func(t *testing.T) {
		_, err := HashPassword("dana@acme.example", "short")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		_, err := HashPassword("not-an-email", "correct-horse")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func TestMemoryProvider_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	provider := NewMemory()

	hash, err := HashPassword("dana@acme.example", "correct-horse")
	require.NoError(t, err)

	userID, err := provider.Register(ctx, "dana@acme.example", hash)
	require.NoError(t, err)
	require.False(t, userID.IsNil())

	t.Run("correct password authenticates", func(t *testing.T) {
		got, err := provider.Authenticate(ctx, "dana@acme.example", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := provider.Authenticate(ctx, "dana@acme.example", "wrong-horse")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		_, err := provider.Authenticate(ctx, "nobody@acme.example", "correct-horse")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := provider.Register(ctx, "dana@acme.example", hash)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("disabled account is forbidden", func(t *testing.T) {
		provider.Disable("dana@acme.example")

		_, err := provider.Authenticate(ctx, "dana@acme.example", "correct-horse")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}
