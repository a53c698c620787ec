package services

import (
	"context"
	"errors"
	"fmt"

	"croupier/domain"
	"croupier/domain/entities"
	"croupier/domain/events"
	"croupier/domain/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// escrowService queues deposits and withdrawals for staff review. Funds only
// move at approval time, never at submission.
type escrowService struct {
	accountRepo    interfaces.AccountRepository
	escrowRepo     interfaces.EscrowRepository
	ledger         interfaces.LedgerService
	eventPublisher interfaces.EventPublisher
	canDecide      interfaces.PermissionChecker
}

// NewEscrowService creates a new escrow service
func NewEscrowService(
	accountRepo interfaces.AccountRepository,
	escrowRepo interfaces.EscrowRepository,
	ledger interfaces.LedgerService,
	eventPublisher interfaces.EventPublisher,
	canDecide interfaces.PermissionChecker,
) interfaces.EscrowService {
	return &escrowService{
		accountRepo:    accountRepo,
		escrowRepo:     escrowRepo,
		ledger:         ledger,
		eventPublisher: eventPublisher,
		canDecide:      canDecide,
	}
}

func (s *escrowService) Submit(ctx context.Context, discordID int64, kind entities.EscrowKind, amount int64, metadata map[string]any) (*entities.EscrowRequest, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	account, err := s.accountRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil || !account.Registered {
		return nil, domain.ErrNotRegistered
	}

	// Withdrawals are sanity-checked against the current balance, but the
	// authoritative check happens again at approval time.
	if kind == entities.EscrowKindWithdrawal && account.Balance < amount {
		return nil, fmt.Errorf("%w: balance %d, requested %d", domain.ErrInsufficientFunds, account.Balance, amount)
	}

	request := &entities.EscrowRequest{
		Reference: uuid.New(),
		DiscordID: discordID,
		Kind:      kind,
		Amount:    amount,
		Metadata:  metadata,
		Status:    entities.EscrowStatusPending,
	}
	if err := s.escrowRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create escrow request: %w", err)
	}

	log.WithFields(log.Fields{
		"reference": request.Reference,
		"discordID": discordID,
		"kind":      kind,
		"amount":    amount,
	}).Info("Escrow request submitted")

	return request, nil
}

func (s *escrowService) Decide(ctx context.Context, reference uuid.UUID, approverID int64, approve bool) (*entities.EscrowRequest, error) {
	if !s.canDecide(approverID) {
		return nil, domain.ErrPermissionDenied
	}

	request, err := s.escrowRepo.GetByReferenceForUpdate(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to lock escrow request: %w", err)
	}
	if request == nil {
		return nil, fmt.Errorf("escrow request %s not found", reference)
	}
	if request.IsDecided() {
		return request, domain.ErrAlreadyDecided
	}

	if !approve {
		request.Decide(entities.EscrowStatusRejected, approverID)
		if err := s.escrowRepo.Update(ctx, request); err != nil {
			return nil, fmt.Errorf("failed to update escrow request: %w", err)
		}
		s.publishDecision(request, false, false)
		return request, nil
	}

	delta := request.Amount
	txType := entities.TransactionTypeDeposit
	if request.Kind == entities.EscrowKindWithdrawal {
		delta = -request.Amount
		txType = entities.TransactionTypeWithdrawal
	}

	transaction, err := s.ledger.ApplyDelta(ctx, request.DiscordID, delta, txType, map[string]any{
		"reference": request.Reference.String(),
		"approver":  approverID,
	})
	if err != nil {
		// A withdrawal whose balance was gambled away while waiting in the
		// queue is rejected instead of approved.
		if errors.Is(err, domain.ErrInsufficientFunds) {
			request.Decide(entities.EscrowStatusRejected, approverID)
			if updateErr := s.escrowRepo.Update(ctx, request); updateErr != nil {
				return nil, fmt.Errorf("failed to update escrow request: %w", updateErr)
			}
			s.publishDecision(request, false, true)
			return request, err
		}
		return nil, err
	}

	request.Decide(entities.EscrowStatusApproved, approverID)
	request.TransactionID = &transaction.ID
	if err := s.escrowRepo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to update escrow request: %w", err)
	}

	s.publishDecision(request, true, false)
	return request, nil
}

func (s *escrowService) ListPending(ctx context.Context, limit int) ([]*entities.EscrowRequest, error) {
	if limit <= 0 {
		limit = 25
	}
	requests, err := s.escrowRepo.GetPending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return requests, nil
}

func (s *escrowService) publishDecision(request *entities.EscrowRequest, approved, shortFunds bool) {
	event := events.EscrowDecidedEvent{
		RequestID:  request.ID,
		Reference:  request.Reference.String(),
		DiscordID:  request.DiscordID,
		Kind:       request.Kind,
		Amount:     request.Amount,
		Approved:   approved,
		ShortFunds: shortFunds,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish escrow decision event")
	}
}
