package repository

import (
	"context"
	"testing"
	"time"

	"croupier/domain/entities"
	"croupier/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscrowRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	repo := NewEscrowRepository(testDB.DB)
	ctx := context.Background()

	_, err := accountRepo.Create(ctx, 123456, 1000)
	require.NoError(t, err)

	t.Run("missing reference returns nil", func(t *testing.T) {
		request, err := repo.GetByReference(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, request)
	})

	t.Run("create and fetch", func(t *testing.T) {
		request := testutil.CreateTestEscrowRequest(123456, entities.EscrowKindWithdrawal, 500)
		request.Metadata = map[string]any{"ign": "HighRoller99"}
		require.NoError(t, repo.Create(ctx, request))
		assert.NotZero(t, request.ID)

		fetched, err := repo.GetByReference(ctx, request.Reference)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, entities.EscrowStatusPending, fetched.Status)
		assert.Equal(t, "HighRoller99", fetched.InGameName())
		assert.Nil(t, fetched.DecidedBy)
	})

	t.Run("update records the decision", func(t *testing.T) {
		request := testutil.CreateTestEscrowRequest(123456, entities.EscrowKindDeposit, 200)
		require.NoError(t, repo.Create(ctx, request))

		request.Decide(entities.EscrowStatusApproved, 999999)
		require.NoError(t, repo.Update(ctx, request))

		fetched, err := repo.GetByReference(ctx, request.Reference)
		require.NoError(t, err)
		assert.Equal(t, entities.EscrowStatusApproved, fetched.Status)
		require.NotNil(t, fetched.DecidedBy)
		assert.Equal(t, int64(999999), *fetched.DecidedBy)
		require.NotNil(t, fetched.DecidedAt)
		assert.WithinDuration(t, time.Now().UTC(), *fetched.DecidedAt, time.Minute)
	})

	t.Run("pending list excludes decided requests oldest first", func(t *testing.T) {
		first := testutil.CreateTestEscrowRequest(123456, entities.EscrowKindDeposit, 100)
		require.NoError(t, repo.Create(ctx, first))
		second := testutil.CreateTestEscrowRequest(123456, entities.EscrowKindWithdrawal, 300)
		require.NoError(t, repo.Create(ctx, second))

		pending, err := repo.GetPending(ctx, 10)
		require.NoError(t, err)
		// The withdrawal created in the first subtest is still pending
		require.Len(t, pending, 3)
		for _, request := range pending {
			assert.Equal(t, entities.EscrowStatusPending, request.Status)
		}
		assert.Equal(t, int64(500), pending[0].Amount)
		assert.Equal(t, first.Reference, pending[1].Reference)
		assert.Equal(t, second.Reference, pending[2].Reference)
	})

	t.Run("for update returns the row", func(t *testing.T) {
		request := testutil.CreateTestEscrowRequest(123456, entities.EscrowKindDeposit, 50)
		require.NoError(t, repo.Create(ctx, request))

		locked, err := repo.GetByReferenceForUpdate(ctx, request.Reference)
		require.NoError(t, err)
		require.NotNil(t, locked)
		assert.Equal(t, request.Reference, locked.Reference)
	})
}
