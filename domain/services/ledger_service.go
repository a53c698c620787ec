package services

import (
	"context"
	"fmt"

	"croupier/config"
	"croupier/domain"
	"croupier/domain/entities"
	"croupier/domain/events"
	"croupier/domain/interfaces"
	"croupier/domain/utils"

	log "github.com/sirupsen/logrus"
)

type ledgerService struct {
	accountRepo     interfaces.AccountRepository
	transactionRepo interfaces.TransactionRepository
	eventPublisher  interfaces.EventPublisher
}

// NewLedgerService creates a new ledger service
func NewLedgerService(accountRepo interfaces.AccountRepository, transactionRepo interfaces.TransactionRepository, eventPublisher interfaces.EventPublisher) interfaces.LedgerService {
	return &ledgerService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		eventPublisher:  eventPublisher,
	}
}

func (s *ledgerService) GetOrCreateAccount(ctx context.Context, discordID int64) (*entities.Account, error) {
	account, err := s.accountRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account != nil {
		return account, nil
	}

	cfg := config.Get()
	account, err = s.accountRepo.Create(ctx, discordID, cfg.StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	// A zero starting balance leaves no ledger trace; the first real
	// transaction establishes the history.
	if cfg.StartingBalance > 0 {
		transaction := &entities.Transaction{
			DiscordID:       discordID,
			BalanceBefore:   0,
			BalanceAfter:    cfg.StartingBalance,
			ChangeAmount:    cfg.StartingBalance,
			TransactionType: entities.TransactionTypeInitial,
		}
		if err := utils.RecordTransaction(ctx, s.transactionRepo, s.eventPublisher, transaction); err != nil {
			return nil, err
		}
	}

	log.WithFields(log.Fields{
		"discordID": discordID,
		"balance":   account.Balance,
	}).Info("Created new account")

	return account, nil
}

func (s *ledgerService) Register(ctx context.Context, discordID int64) error {
	account, err := s.GetOrCreateAccount(ctx, discordID)
	if err != nil {
		return err
	}
	if account.Registered {
		return nil
	}

	if err := s.accountRepo.SetRegistered(ctx, discordID); err != nil {
		return fmt.Errorf("failed to register account: %w", err)
	}

	if err := s.eventPublisher.Publish(events.UserRegisteredEvent{DiscordID: discordID}); err != nil {
		log.WithError(err).Error("Failed to publish user registered event")
	}

	return nil
}

func (s *ledgerService) ApplyDelta(ctx context.Context, discordID int64, delta int64, txType entities.TransactionType, metadata map[string]any) (*entities.Transaction, error) {
	if delta == 0 {
		return nil, fmt.Errorf("delta cannot be zero")
	}

	account, err := s.lockAccount(ctx, discordID)
	if err != nil {
		return nil, err
	}

	newBalance := account.Balance + delta
	if newBalance < 0 {
		return nil, fmt.Errorf("%w: balance %d, requested %d", domain.ErrInsufficientFunds, account.Balance, -delta)
	}

	if err := s.accountRepo.UpdateBalance(ctx, discordID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	transaction := &entities.Transaction{
		DiscordID:           discordID,
		BalanceBefore:       account.Balance,
		BalanceAfter:        newBalance,
		ChangeAmount:        delta,
		TransactionType:     txType,
		TransactionMetadata: metadata,
	}
	if err := utils.RecordTransaction(ctx, s.transactionRepo, s.eventPublisher, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

func (s *ledgerService) SetBalance(ctx context.Context, discordID int64, newBalance int64, metadata map[string]any) (*entities.Transaction, error) {
	if newBalance < 0 {
		return nil, fmt.Errorf("%w: balance cannot be negative", domain.ErrInvalidAmount)
	}

	account, err := s.lockAccount(ctx, discordID)
	if err != nil {
		return nil, err
	}

	delta := newBalance - account.Balance
	if delta == 0 {
		return nil, nil
	}

	return s.ApplyDelta(ctx, discordID, delta, entities.TransactionTypeAdminAdjust, metadata)
}

func (s *ledgerService) ListTransactions(ctx context.Context, discordID int64, limit int) ([]*entities.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}

	transactions, err := s.transactionRepo.GetByUser(ctx, discordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// lockAccount fetches the account with a row lock, creating it first if this
// is the user's initial contact
func (s *ledgerService) lockAccount(ctx context.Context, discordID int64) (*entities.Account, error) {
	account, err := s.accountRepo.GetByDiscordIDForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	if account != nil {
		return account, nil
	}

	if _, err := s.GetOrCreateAccount(ctx, discordID); err != nil {
		return nil, err
	}

	account, err = s.accountRepo.GetByDiscordIDForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %d disappeared after creation", discordID)
	}
	return account, nil
}
