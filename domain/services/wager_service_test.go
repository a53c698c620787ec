package services

import (
	"context"
	"testing"

	"croupier/config"
	"croupier/domain"
	"croupier/domain/entities"
	"croupier/domain/games"
	"croupier/domain/interfaces"
	"croupier/domain/testhelpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLedgerService mocks the ledger for wager protocol tests
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetOrCreateAccount(ctx context.Context, discordID int64) (*entities.Account, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockLedgerService) Register(ctx context.Context, discordID int64) error {
	args := m.Called(ctx, discordID)
	return args.Error(0)
}

func (m *MockLedgerService) ApplyDelta(ctx context.Context, discordID int64, delta int64, txType entities.TransactionType, metadata map[string]any) (*entities.Transaction, error) {
	args := m.Called(ctx, discordID, delta, txType, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockLedgerService) SetBalance(ctx context.Context, discordID int64, newBalance int64, metadata map[string]any) (*entities.Transaction, error) {
	args := m.Called(ctx, discordID, newBalance, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, discordID int64, limit int) ([]*entities.Transaction, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

func setupWagerTest(t *testing.T) (*testhelpers.MockAccountRepository, *MockLedgerService, interfaces.WagerService) {
	config.SetTestConfig(config.NewTestConfig())
	t.Cleanup(config.ResetConfig)

	accountRepo := new(testhelpers.MockAccountRepository)
	ledger := new(MockLedgerService)
	return accountRepo, ledger, NewWagerService(accountRepo, ledger)
}

func TestWagerService_PlaceBet_DebitsStakeUpFront(t *testing.T) {
	ctx := context.Background()
	accountRepo, ledger, service := setupWagerTest(t)

	accountRepo.On("GetByDiscordID", ctx, int64(123456)).
		Return(&entities.Account{DiscordID: 123456, Balance: 1000, Registered: true}, nil)
	ledger.On("ApplyDelta", ctx, int64(123456), int64(-100), entities.TransactionTypeGameStake, mock.Anything).
		Return(&entities.Transaction{BalanceAfter: 900, ChangeAmount: -100}, nil)

	reservation, err := service.PlaceBet(ctx, 123456, "dice", 100)

	assert.NoError(t, err)
	assert.Equal(t, int64(123456), reservation.DiscordID)
	assert.Equal(t, "dice", reservation.Game)
	assert.Equal(t, int64(100), reservation.Stake)
	assert.NotEqual(t, uuid.Nil, reservation.ID)
	ledger.AssertExpectations(t)
}

func TestWagerService_PlaceBet_RejectsInvalidStakes(t *testing.T) {
	ctx := context.Background()
	_, ledger, service := setupWagerTest(t)

	_, err := service.PlaceBet(ctx, 123456, "dice", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidBet)

	_, err = service.PlaceBet(ctx, 123456, "dice", -50)
	assert.ErrorIs(t, err, domain.ErrInvalidBet)

	_, err = service.PlaceBet(ctx, 123456, "dice", 10001)
	assert.ErrorIs(t, err, domain.ErrInvalidBet)

	ledger.AssertNotCalled(t, "ApplyDelta")
}

func TestWagerService_PlaceBet_RequiresRegistration(t *testing.T) {
	ctx := context.Background()
	accountRepo, ledger, service := setupWagerTest(t)

	accountRepo.On("GetByDiscordID", ctx, int64(111)).
		Return(&entities.Account{DiscordID: 111, Balance: 1000, Registered: false}, nil)
	accountRepo.On("GetByDiscordID", ctx, int64(222)).Return(nil, nil)

	_, err := service.PlaceBet(ctx, 111, "dice", 100)
	assert.ErrorIs(t, err, domain.ErrNotRegistered)

	_, err = service.PlaceBet(ctx, 222, "dice", 100)
	assert.ErrorIs(t, err, domain.ErrNotRegistered)

	ledger.AssertNotCalled(t, "ApplyDelta")
}

func TestWagerService_Settle_WinCreditsStakeTimesMultiplier(t *testing.T) {
	ctx := context.Background()
	_, ledger, service := setupWagerTest(t)

	reservation := &interfaces.Reservation{ID: uuid.New(), DiscordID: 123456, Game: "dice", Stake: 100}
	ledger.On("ApplyDelta", ctx, int64(123456), int64(200), entities.TransactionTypeGameWin, mock.Anything).
		Return(&entities.Transaction{BalanceAfter: 1100, ChangeAmount: 200}, nil)

	result, err := service.Settle(ctx, reservation, games.OutcomeWin, 2.0, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(200), result.Payout)
	assert.Equal(t, int64(1100), result.NewBalance)
	ledger.AssertExpectations(t)
}

func TestWagerService_Settle_LossRecordsNothing(t *testing.T) {
	ctx := context.Background()
	accountRepo, ledger, service := setupWagerTest(t)

	accountRepo.On("GetByDiscordID", ctx, int64(123456)).
		Return(&entities.Account{DiscordID: 123456, Balance: 900, Registered: true}, nil)

	reservation := &interfaces.Reservation{ID: uuid.New(), DiscordID: 123456, Game: "dice", Stake: 100}
	result, err := service.Settle(ctx, reservation, games.OutcomeLoss, 0, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), result.Payout)
	assert.Equal(t, int64(900), result.NewBalance)
	ledger.AssertNotCalled(t, "ApplyDelta")
}

func TestWagerService_Settle_PushReturnsStakeAsPush(t *testing.T) {
	ctx := context.Background()
	_, ledger, service := setupWagerTest(t)

	reservation := &interfaces.Reservation{ID: uuid.New(), DiscordID: 123456, Game: "rps", Stake: 100}
	ledger.On("ApplyDelta", ctx, int64(123456), int64(100), entities.TransactionTypeGamePush, mock.Anything).
		Return(&entities.Transaction{BalanceAfter: 1000, ChangeAmount: 100}, nil)

	result, err := service.Settle(ctx, reservation, games.OutcomePush, 1.0, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(100), result.Payout)
	ledger.AssertExpectations(t)
}

func TestWagerService_Settle_PayoutTruncatesTowardZero(t *testing.T) {
	ctx := context.Background()
	_, ledger, service := setupWagerTest(t)

	// 15 * 1.87 = 28.05, truncated to 28
	reservation := &interfaces.Reservation{ID: uuid.New(), DiscordID: 123456, Game: "highlow", Stake: 15}
	ledger.On("ApplyDelta", ctx, int64(123456), int64(28), entities.TransactionTypeGameWin, mock.Anything).
		Return(&entities.Transaction{BalanceAfter: 28, ChangeAmount: 28}, nil)

	result, err := service.Settle(ctx, reservation, games.OutcomeWin, 1.87, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(28), result.Payout)
}

func TestWagerService_Settle_NegativeMultiplierRejected(t *testing.T) {
	ctx := context.Background()
	_, _, service := setupWagerTest(t)

	reservation := &interfaces.Reservation{ID: uuid.New(), DiscordID: 123456, Stake: 100}
	_, err := service.Settle(ctx, reservation, games.OutcomeWin, -1.0, nil)

	assert.Error(t, err)
}

func TestWagerService_Refund_ReturnsStakeInFull(t *testing.T) {
	ctx := context.Background()
	_, ledger, service := setupWagerTest(t)

	reservation := &interfaces.Reservation{ID: uuid.New(), DiscordID: 123456, Game: "blackjack", Stake: 100}
	ledger.On("ApplyDelta", ctx, int64(123456), int64(100), entities.TransactionTypeGameRefund, mock.Anything).
		Return(&entities.Transaction{BalanceAfter: 1000, ChangeAmount: 100}, nil)

	tx, err := service.Refund(ctx, reservation)

	assert.NoError(t, err)
	assert.Equal(t, int64(100), tx.ChangeAmount)
	ledger.AssertExpectations(t)
}
