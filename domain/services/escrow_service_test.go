package services

import (
	"context"
	"testing"

	"croupier/config"
	"croupier/domain"
	"croupier/domain/entities"
	"croupier/domain/events"
	"croupier/domain/testhelpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	escrowStaffID    = int64(999999)
	escrowOutsiderID = int64(555555)
)

type escrowTestMocks struct {
	accountRepo *testhelpers.MockAccountRepository
	escrowRepo  *testhelpers.MockEscrowRepository
	ledger      *MockLedgerService
	publisher   *testhelpers.MockEventPublisher
}

func setupEscrowTest(t *testing.T) *escrowTestMocks {
	config.SetTestConfig(config.NewTestConfig())
	t.Cleanup(config.ResetConfig)

	return &escrowTestMocks{
		accountRepo: new(testhelpers.MockAccountRepository),
		escrowRepo:  new(testhelpers.MockEscrowRepository),
		ledger:      new(MockLedgerService),
		publisher:   new(testhelpers.MockEventPublisher),
	}
}

func (m *escrowTestMocks) service() *escrowService {
	checker := func(approverID int64) bool {
		return approverID == escrowStaffID
	}
	return NewEscrowService(m.accountRepo, m.escrowRepo, m.ledger, m.publisher, checker).(*escrowService)
}

func pendingWithdrawal(discordID, amount int64) *entities.EscrowRequest {
	return &entities.EscrowRequest{
		ID:        1,
		Reference: uuid.New(),
		DiscordID: discordID,
		Kind:      entities.EscrowKindWithdrawal,
		Amount:    amount,
		Status:    entities.EscrowStatusPending,
	}
}

func TestEscrowService_Submit_QueuesWithoutMovingFunds(t *testing.T) {
	ctx := context.Background()
	mocks := setupEscrowTest(t)

	mocks.accountRepo.On("GetByDiscordID", ctx, int64(123456)).
		Return(&entities.Account{DiscordID: 123456, Balance: 1000, Registered: true}, nil)
	mocks.escrowRepo.On("Create", ctx, mock.MatchedBy(func(request *entities.EscrowRequest) bool {
		return request.Status == entities.EscrowStatusPending &&
			request.Kind == entities.EscrowKindDeposit &&
			request.Amount == 500 &&
			request.Reference != uuid.Nil
	})).Return(nil)

	request, err := mocks.service().Submit(ctx, 123456, entities.EscrowKindDeposit, 500, nil)

	assert.NoError(t, err)
	assert.Equal(t, entities.EscrowStatusPending, request.Status)
	mocks.ledger.AssertNotCalled(t, "ApplyDelta")
	mocks.escrowRepo.AssertExpectations(t)
}

func TestEscrowService_Submit_RejectsInvalidAmount(t *testing.T) {
	ctx := context.Background()
	mocks := setupEscrowTest(t)

	_, err := mocks.service().Submit(ctx, 123456, entities.EscrowKindDeposit, 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = mocks.service().Submit(ctx, 123456, entities.EscrowKindDeposit, -10, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestEscrowService_Submit_WithdrawalChecksBalance(t *testing.T) {
	ctx := context.Background()
	mocks := setupEscrowTest(t)

	mocks.accountRepo.On("GetByDiscordID", ctx, int64(123456)).
		Return(&entities.Account{DiscordID: 123456, Balance: 100, Registered: true}, nil)

	_, err := mocks.service().Submit(ctx, 123456, entities.EscrowKindWithdrawal, 500, nil)

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	mocks.escrowRepo.AssertNotCalled(t, "Create")
}

func TestEscrowService_Decide_PermissionDenied(t *testing.T) {
	ctx := context.Background()
	mocks := setupEscrowTest(t)

	_, err := mocks.service().Decide(ctx, uuid.New(), escrowOutsiderID, true)

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	mocks.escrowRepo.AssertNotCalled(t, "GetByReferenceForUpdate")
}

func TestEscrowService_Decide_ApproveDepositCreditsFunds(t *testing.T) {
	ctx := context.Background()
	mocks := setupEscrowTest(t)

	request := &entities.EscrowRequest{
		ID:        1,
		Reference: uuid.New(),
		DiscordID: 123456,
		Kind:      entities.EscrowKindDeposit,
		Amount:    500,
		Status:    entities.EscrowStatusPending,
	}

	mocks.escrowRepo.On("GetByReferenceForUpdate", ctx, request.Reference).Return(request, nil)
	mocks.ledger.On("ApplyDelta", ctx, int64(123456), int64(500), entities.TransactionTypeDeposit, mock.Anything).
		Return(&entities.Transaction{ID: 77, BalanceAfter: 1500, ChangeAmount: 500}, nil)
	mocks.escrowRepo.On("Update", ctx, mock.MatchedBy(func(r *entities.EscrowRequest) bool {
		return r.Status == entities.EscrowStatusApproved &&
			r.TransactionID != nil && *r.TransactionID == 77 &&
			r.DecidedBy != nil && *r.DecidedBy == escrowStaffID
	})).Return(nil)
	mocks.publisher.On("Publish", mock.MatchedBy(func(event events.EscrowDecidedEvent) bool {
		return event.Approved && !event.ShortFunds
	})).Return(nil)

	decided, err := mocks.service().Decide(ctx, request.Reference, escrowStaffID, true)

	assert.NoError(t, err)
	assert.Equal(t, entities.EscrowStatusApproved, decided.Status)
	mocks.ledger.AssertExpectations(t)
	mocks.escrowRepo.AssertExpectations(t)
	mocks.publisher.AssertExpectations(t)
}

func TestEscrowService_Decide_ApproveWithdrawalDebitsFunds(t *testing.T) {
	ctx := context.Background()
	mocks := setupEscrowTest(t)

	request := pendingWithdrawal(123456, 500)

	mocks.escrowRepo.On("GetByReferenceForUpdate", ctx, request.Reference).Return(request, nil)
	mocks.ledger.On("ApplyDelta", ctx, int64(123456), int64(-500), entities.TransactionTypeWithdrawal, mock.Anything).
		Return(&entities.Transaction{ID: 78, BalanceAfter: 500, ChangeAmount: -500}, nil)
	mocks.escrowRepo.On("Update", ctx, mock.Anything).Return(nil)
	mocks.publisher.On("Publish", mock.Anything).Return(nil)

	decided, err := mocks.service().Decide(ctx, request.Reference, escrowStaffID, true)

	assert.NoError(t, err)
	assert.Equal(t, entities.EscrowStatusApproved, decided.Status)
	mocks.ledger.AssertExpectations(t)
}

func TestEscrowService_Decide_ShortFundsAutoRejects(t *testing.T) {
	ctx := context.Background()
	mocks := setupEscrowTest(t)

	request := pendingWithdrawal(123456, 500)

	mocks.escrowRepo.On("GetByReferenceForUpdate", ctx, request.Reference).Return(request, nil)
	// The balance was gambled away while the request waited in the queue
	mocks.ledger.On("ApplyDelta", ctx, int64(123456), int64(-500), entities.TransactionTypeWithdrawal, mock.Anything).
		Return(nil, domain.ErrInsufficientFunds)
	mocks.escrowRepo.On("Update", ctx, mock.MatchedBy(func(r *entities.EscrowRequest) bool {
		return r.Status == entities.EscrowStatusRejected && r.TransactionID == nil
	})).Return(nil)
	mocks.publisher.On("Publish", mock.MatchedBy(func(event events.EscrowDecidedEvent) bool {
		return !event.Approved && event.ShortFunds
	})).Return(nil)

	decided, err := mocks.service().Decide(ctx, request.Reference, escrowStaffID, true)

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, entities.EscrowStatusRejected, decided.Status)
	mocks.escrowRepo.AssertExpectations(t)
	mocks.publisher.AssertExpectations(t)
}

func TestEscrowService_Decide_RejectMovesNoFunds(t *testing.T) {
	ctx := context.Background()
	mocks := setupEscrowTest(t)

	request := pendingWithdrawal(123456, 500)

	mocks.escrowRepo.On("GetByReferenceForUpdate", ctx, request.Reference).Return(request, nil)
	mocks.escrowRepo.On("Update", ctx, mock.MatchedBy(func(r *entities.EscrowRequest) bool {
		return r.Status == entities.EscrowStatusRejected
	})).Return(nil)
	mocks.publisher.On("Publish", mock.MatchedBy(func(event events.EscrowDecidedEvent) bool {
		return !event.Approved && !event.ShortFunds
	})).Return(nil)

	decided, err := mocks.service().Decide(ctx, request.Reference, escrowStaffID, false)

	assert.NoError(t, err)
	assert.Equal(t, entities.EscrowStatusRejected, decided.Status)
	mocks.ledger.AssertNotCalled(t, "ApplyDelta")
}

func TestEscrowService_Decide_OnlyOnce(t *testing.T) {
	ctx := context.Background()
	mocks := setupEscrowTest(t)

	approver := escrowStaffID
	decided := pendingWithdrawal(123456, 500)
	decided.Decide(entities.EscrowStatusRejected, approver)

	mocks.escrowRepo.On("GetByReferenceForUpdate", ctx, decided.Reference).Return(decided, nil)

	request, err := mocks.service().Decide(ctx, decided.Reference, escrowStaffID, true)

	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
	assert.Equal(t, entities.EscrowStatusRejected, request.Status)
	mocks.ledger.AssertNotCalled(t, "ApplyDelta")
	mocks.escrowRepo.AssertNotCalled(t, "Update")
}

func TestEscrowService_ListPending_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	mocks := setupEscrowTest(t)

	mocks.escrowRepo.On("GetPending", ctx, 25).Return([]*entities.EscrowRequest{}, nil)

	_, err := mocks.service().ListPending(ctx, 0)

	assert.NoError(t, err)
	mocks.escrowRepo.AssertExpectations(t)
}
