package services

import (
	"context"
	"testing"
	"time"

	"croupier/config"
	"croupier/domain"
	"croupier/domain/entities"
	"croupier/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type lotteryTestMocks struct {
	accountRepo *testhelpers.MockAccountRepository
	entryRepo   *testhelpers.MockLotteryEntryRepository
	drawRepo    *testhelpers.MockLotteryDrawRepository
	ledger      *MockLedgerService
	publisher   *testhelpers.MockEventPublisher
}

func setupLotteryTest(t *testing.T) *lotteryTestMocks {
	config.SetTestConfig(config.NewTestConfig())
	t.Cleanup(config.ResetConfig)

	return &lotteryTestMocks{
		accountRepo: new(testhelpers.MockAccountRepository),
		entryRepo:   new(testhelpers.MockLotteryEntryRepository),
		drawRepo:    new(testhelpers.MockLotteryDrawRepository),
		ledger:      new(MockLedgerService),
		publisher:   new(testhelpers.MockEventPublisher),
	}
}

func (m *lotteryTestMocks) service() *lotteryService {
	return NewLotteryService(m.accountRepo, m.entryRepo, m.drawRepo, m.ledger, m.publisher).(*lotteryService)
}

func TestLotteryService_BuyTickets_DebitsAndCreatesEntries(t *testing.T) {
	ctx := context.Background()
	mocks := setupLotteryTest(t)

	mocks.accountRepo.On("GetByDiscordID", ctx, int64(123456)).
		Return(&entities.Account{DiscordID: 123456, Balance: 1000, Registered: true}, nil)
	mocks.ledger.On("ApplyDelta", ctx, int64(123456), int64(-300), entities.TransactionTypeLottoTicket, mock.Anything).
		Return(&entities.Transaction{ID: 42, BalanceAfter: 700, ChangeAmount: -300}, nil)
	mocks.entryRepo.On("CreateBatch", ctx, mock.MatchedBy(func(entries []*entities.LotteryEntry) bool {
		if len(entries) != 3 {
			return false
		}
		for _, entry := range entries {
			if entry.DiscordID != 123456 || entry.PurchasePrice != 100 || entry.TransactionID != 42 {
				return false
			}
		}
		return true
	})).Return(nil)

	result, err := mocks.service().BuyTickets(ctx, 123456, 3)

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Quantity)
	assert.Equal(t, int64(300), result.TotalCost)
	assert.Equal(t, int64(700), result.NewBalance)
	mocks.entryRepo.AssertExpectations(t)
}

func TestLotteryService_BuyTickets_InvalidQuantity(t *testing.T) {
	ctx := context.Background()
	mocks := setupLotteryTest(t)

	_, err := mocks.service().BuyTickets(ctx, 123456, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = mocks.service().BuyTickets(ctx, 123456, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	mocks.ledger.AssertNotCalled(t, "ApplyDelta")
}

func TestLotteryService_BuyTickets_RequiresRegistration(t *testing.T) {
	ctx := context.Background()
	mocks := setupLotteryTest(t)

	mocks.accountRepo.On("GetByDiscordID", ctx, int64(123456)).
		Return(&entities.Account{DiscordID: 123456, Registered: false}, nil)

	_, err := mocks.service().BuyTickets(ctx, 123456, 1)

	assert.ErrorIs(t, err, domain.ErrNotRegistered)
	mocks.ledger.AssertNotCalled(t, "ApplyDelta")
}

func TestLotteryService_Status(t *testing.T) {
	ctx := context.Background()
	mocks := setupLotteryTest(t)

	participants := []*entities.LotteryParticipantInfo{
		{DiscordID: 111, TicketCount: 3},
		{DiscordID: 222, TicketCount: 2},
	}
	mocks.entryRepo.On("Count", ctx).Return(int64(5), nil)
	mocks.entryRepo.On("GetParticipantSummary", ctx).Return(participants, nil)
	mocks.drawRepo.On("GetLatest", ctx).Return(nil, nil)

	status, err := mocks.service().Status(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), status.TicketCount)
	// floor(5 * 100 * 0.9)
	assert.Equal(t, int64(450), status.Prize)
	assert.Equal(t, participants, status.Participants)
	assert.Nil(t, status.LastDraw)
}

func TestLotteryService_Draw_SameDayIsNoop(t *testing.T) {
	ctx := context.Background()
	mocks := setupLotteryTest(t)

	now := time.Date(2024, 6, 2, 15, 30, 0, 0, time.UTC)
	day := now.Truncate(24 * time.Hour)
	existing := &entities.LotteryDraw{ID: 7, DrawnOn: day}

	mocks.drawRepo.On("GetByDate", ctx, day).Return(existing, nil)

	result, err := mocks.service().Draw(ctx, now)

	assert.NoError(t, err)
	assert.True(t, result.AlreadyDrawn)
	assert.Equal(t, existing, result.Draw)
	mocks.entryRepo.AssertNotCalled(t, "GetAll")
	mocks.ledger.AssertNotCalled(t, "ApplyDelta")
}

func TestLotteryService_Draw_EmptyPoolRecordsWinnerlessDraw(t *testing.T) {
	ctx := context.Background()
	mocks := setupLotteryTest(t)

	now := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	mocks.drawRepo.On("GetByDate", ctx, mock.Anything).Return(nil, nil)
	mocks.entryRepo.On("GetAll", ctx).Return([]*entities.LotteryEntry{}, nil)
	mocks.drawRepo.On("Create", ctx, mock.MatchedBy(func(draw *entities.LotteryDraw) bool {
		return draw.WinnerDiscordID == nil && draw.TicketCount == 0 && draw.Prize == 0
	})).Return(nil)
	mocks.entryRepo.On("DeleteAll", ctx).Return(nil)
	mocks.publisher.On("Publish", mock.AnythingOfType("events.LotteryDrawCompletedEvent")).Return(nil)

	result, err := mocks.service().Draw(ctx, now)

	assert.NoError(t, err)
	assert.False(t, result.AlreadyDrawn)
	assert.False(t, result.Draw.HasWinner())
	mocks.ledger.AssertNotCalled(t, "ApplyDelta")
	mocks.drawRepo.AssertExpectations(t)
	mocks.entryRepo.AssertExpectations(t)
}

func TestLotteryService_Draw_CreditsWinnerAndClearsPool(t *testing.T) {
	ctx := context.Background()
	mocks := setupLotteryTest(t)

	now := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	entries := []*entities.LotteryEntry{
		{ID: 1, DiscordID: 123456, PurchasePrice: 100},
		{ID: 2, DiscordID: 123456, PurchasePrice: 100},
		{ID: 3, DiscordID: 123456, PurchasePrice: 100},
	}
	// floor(3 * 100 * 0.9)
	expectedPrize := int64(270)

	mocks.drawRepo.On("GetByDate", ctx, mock.Anything).Return(nil, nil)
	mocks.entryRepo.On("GetAll", ctx).Return(entries, nil)
	mocks.ledger.On("ApplyDelta", ctx, int64(123456), expectedPrize, entities.TransactionTypeLottoWin, mock.Anything).
		Return(&entities.Transaction{BalanceAfter: expectedPrize, ChangeAmount: expectedPrize}, nil)
	mocks.drawRepo.On("Create", ctx, mock.MatchedBy(func(draw *entities.LotteryDraw) bool {
		return draw.WinnerDiscordID != nil &&
			*draw.WinnerDiscordID == 123456 &&
			draw.TicketCount == 3 &&
			draw.Prize == expectedPrize
	})).Return(nil)
	mocks.entryRepo.On("DeleteAll", ctx).Return(nil)
	mocks.publisher.On("Publish", mock.AnythingOfType("events.LotteryDrawCompletedEvent")).Return(nil)

	result, err := mocks.service().Draw(ctx, now)

	assert.NoError(t, err)
	assert.True(t, result.Draw.HasWinner())
	assert.Equal(t, expectedPrize, result.Draw.Prize)
	mocks.ledger.AssertExpectations(t)
	mocks.entryRepo.AssertExpectations(t)
	mocks.publisher.AssertExpectations(t)
}

func TestCalculateLotteryPrize_FloorsFraction(t *testing.T) {
	assert.Equal(t, int64(90), entities.CalculateLotteryPrize(1, 100, 0.9))
	assert.Equal(t, int64(0), entities.CalculateLotteryPrize(0, 100, 0.9))
	// 7 * 15 * 0.9 = 94.5, floored
	assert.Equal(t, int64(94), entities.CalculateLotteryPrize(7, 15, 0.9))
}

func TestPickWinningEntry_WeightedByTicketsHeld(t *testing.T) {
	// User 111 holds 9 of 10 tickets, user 222 holds 1. Over many picks the
	// majority holder should win roughly nine times out of ten.
	var entries []*entities.LotteryEntry
	for i := 0; i < 9; i++ {
		entries = append(entries, &entities.LotteryEntry{DiscordID: 111})
	}
	entries = append(entries, &entities.LotteryEntry{DiscordID: 222})

	const trials = 2000
	majorityWins := 0
	for i := 0; i < trials; i++ {
		winner, err := pickWinningEntry(entries)
		assert.NoError(t, err)
		if winner.DiscordID == 111 {
			majorityWins++
		}
	}

	// Expected 1800; bounds are generous enough to never flake
	assert.Greater(t, majorityWins, 1600)
	assert.Less(t, majorityWins, 1960)
}
