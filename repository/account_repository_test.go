package repository

import (
	"context"
	"testing"

	"croupier/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing account returns nil", func(t *testing.T) {
		account, err := repo.GetByDiscordID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("create and fetch", func(t *testing.T) {
		created, err := repo.Create(ctx, 123456, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(123456), created.DiscordID)
		assert.Equal(t, int64(1000), created.Balance)
		assert.False(t, created.Registered)
		assert.False(t, created.CreatedAt.IsZero())

		fetched, err := repo.GetByDiscordID(ctx, 123456)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, created.Balance, fetched.Balance)
	})

	t.Run("duplicate create fails", func(t *testing.T) {
		_, err := repo.Create(ctx, 123456, 0)
		assert.Error(t, err)
	})

	t.Run("update balance", func(t *testing.T) {
		require.NoError(t, repo.UpdateBalance(ctx, 123456, 750))

		account, err := repo.GetByDiscordID(ctx, 123456)
		require.NoError(t, err)
		assert.Equal(t, int64(750), account.Balance)
	})

	t.Run("update balance of missing account fails", func(t *testing.T) {
		assert.Error(t, repo.UpdateBalance(ctx, 999, 100))
	})

	t.Run("set registered", func(t *testing.T) {
		require.NoError(t, repo.SetRegistered(ctx, 123456))

		account, err := repo.GetByDiscordID(ctx, 123456)
		require.NoError(t, err)
		assert.True(t, account.Registered)
	})

	t.Run("for update returns same row", func(t *testing.T) {
		account, err := repo.GetByDiscordIDForUpdate(ctx, 123456)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, int64(750), account.Balance)
	})
}
