package repository

import (
	"context"
	"testing"
	"time"

	"croupier/domain/entities"
	"croupier/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotteryEntryRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	transactionRepo := NewTransactionRepository(testDB.DB)
	repo := NewLotteryEntryRepository(testDB.DB)
	ctx := context.Background()

	_, err := accountRepo.Create(ctx, 111, 1000)
	require.NoError(t, err)
	_, err = accountRepo.Create(ctx, 222, 1000)
	require.NoError(t, err)

	purchase := testutil.CreateTestTransaction(111, 1000, -300, entities.TransactionTypeLottoTicket)
	require.NoError(t, transactionRepo.Record(ctx, purchase))
	purchase2 := testutil.CreateTestTransaction(222, 1000, -100, entities.TransactionTypeLottoTicket)
	require.NoError(t, transactionRepo.Record(ctx, purchase2))

	t.Run("empty pool", func(t *testing.T) {
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)

		entries, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("create batch and read back", func(t *testing.T) {
		batch := []*entities.LotteryEntry{
			{DiscordID: 111, PurchasePrice: 100, TransactionID: purchase.ID},
			{DiscordID: 111, PurchasePrice: 100, TransactionID: purchase.ID},
			{DiscordID: 111, PurchasePrice: 100, TransactionID: purchase.ID},
			{DiscordID: 222, PurchasePrice: 100, TransactionID: purchase2.ID},
		}
		require.NoError(t, repo.CreateBatch(ctx, batch))
		for _, entry := range batch {
			assert.NotZero(t, entry.ID)
		}

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)

		entries, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, entries, 4)
	})

	t.Run("participant summary is weighted and ordered", func(t *testing.T) {
		participants, err := repo.GetParticipantSummary(ctx)
		require.NoError(t, err)
		require.Len(t, participants, 2)
		assert.Equal(t, int64(111), participants[0].DiscordID)
		assert.Equal(t, int64(3), participants[0].TicketCount)
		assert.Equal(t, int64(222), participants[1].DiscordID)
		assert.Equal(t, int64(1), participants[1].TicketCount)
	})

	t.Run("delete all clears the pool", func(t *testing.T) {
		require.NoError(t, repo.DeleteAll(ctx))

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestLotteryDrawRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	repo := NewLotteryDrawRepository(testDB.DB)
	ctx := context.Background()

	winnerID := int64(111)
	_, err := accountRepo.Create(ctx, winnerID, 1000)
	require.NoError(t, err)

	day := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("no draw on record", func(t *testing.T) {
		draw, err := repo.GetByDate(ctx, day)
		require.NoError(t, err)
		assert.Nil(t, draw)

		latest, err := repo.GetLatest(ctx)
		require.NoError(t, err)
		assert.Nil(t, latest)
	})

	t.Run("create and fetch by date", func(t *testing.T) {
		draw := &entities.LotteryDraw{
			DrawnOn:         day,
			WinnerDiscordID: &winnerID,
			TicketCount:     4,
			Prize:           360,
		}
		require.NoError(t, repo.Create(ctx, draw))
		assert.NotZero(t, draw.ID)

		fetched, err := repo.GetByDate(ctx, day)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.True(t, fetched.HasWinner())
		assert.Equal(t, winnerID, *fetched.WinnerDiscordID)
		assert.Equal(t, int64(360), fetched.Prize)
	})

	t.Run("duplicate day is rejected", func(t *testing.T) {
		duplicate := &entities.LotteryDraw{DrawnOn: day, TicketCount: 0, Prize: 0}
		assert.Error(t, repo.Create(ctx, duplicate))
	})

	t.Run("winnerless draw", func(t *testing.T) {
		empty := &entities.LotteryDraw{DrawnOn: day.AddDate(0, 0, 7)}
		require.NoError(t, repo.Create(ctx, empty))

		fetched, err := repo.GetByDate(ctx, day.AddDate(0, 0, 7))
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.False(t, fetched.HasWinner())
	})

	t.Run("latest is most recent draw day", func(t *testing.T) {
		latest, err := repo.GetLatest(ctx)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.False(t, latest.HasWinner())
	})
}
