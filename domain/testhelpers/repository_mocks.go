package testhelpers

import (
	"context"
	"time"

	"croupier/domain/entities"
	"croupier/domain/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.Account, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByDiscordIDForUpdate(ctx context.Context, discordID int64) (*entities.Account, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, discordID int64, initialBalance int64) (*entities.Account, error) {
	args := m.Called(ctx, discordID, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, discordID int64, newBalance int64) error {
	args := m.Called(ctx, discordID, newBalance)
	return args.Error(0)
}

func (m *MockAccountRepository) SetRegistered(ctx context.Context, discordID int64) error {
	args := m.Called(ctx, discordID)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Record(ctx context.Context, transaction *entities.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.Transaction, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumDeltasByUser(ctx context.Context, discordID int64) (int64, error) {
	args := m.Called(ctx, discordID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLotteryEntryRepository is a mock implementation of LotteryEntryRepository
type MockLotteryEntryRepository struct {
	mock.Mock
}

func (m *MockLotteryEntryRepository) CreateBatch(ctx context.Context, entries []*entities.LotteryEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLotteryEntryRepository) GetAll(ctx context.Context) ([]*entities.LotteryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LotteryEntry), args.Error(1)
}

func (m *MockLotteryEntryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLotteryEntryRepository) GetParticipantSummary(ctx context.Context) ([]*entities.LotteryParticipantInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LotteryParticipantInfo), args.Error(1)
}

func (m *MockLotteryEntryRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockLotteryDrawRepository is a mock implementation of LotteryDrawRepository
type MockLotteryDrawRepository struct {
	mock.Mock
}

func (m *MockLotteryDrawRepository) Create(ctx context.Context, draw *entities.LotteryDraw) error {
	args := m.Called(ctx, draw)
	return args.Error(0)
}

func (m *MockLotteryDrawRepository) GetByDate(ctx context.Context, day time.Time) (*entities.LotteryDraw, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LotteryDraw), args.Error(1)
}

func (m *MockLotteryDrawRepository) GetLatest(ctx context.Context) (*entities.LotteryDraw, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LotteryDraw), args.Error(1)
}

// MockEscrowRepository is a mock implementation of EscrowRepository
type MockEscrowRepository struct {
	mock.Mock
}

func (m *MockEscrowRepository) Create(ctx context.Context, request *entities.EscrowRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockEscrowRepository) GetByReference(ctx context.Context, reference uuid.UUID) (*entities.EscrowRequest, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EscrowRequest), args.Error(1)
}

func (m *MockEscrowRepository) GetByReferenceForUpdate(ctx context.Context, reference uuid.UUID) (*entities.EscrowRequest, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EscrowRequest), args.Error(1)
}

func (m *MockEscrowRepository) Update(ctx context.Context, request *entities.EscrowRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockEscrowRepository) GetPending(ctx context.Context, limit int) ([]*entities.EscrowRequest, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.EscrowRequest), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
