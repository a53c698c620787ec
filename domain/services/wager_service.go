package services

import (
	"context"
	"fmt"
	"time"

	"croupier/config"
	"croupier/domain"
	"croupier/domain/entities"
	"croupier/domain/games"
	"croupier/domain/interfaces"

	"github.com/google/uuid"
)

type wagerService struct {
	accountRepo interfaces.AccountRepository
	ledger      interfaces.LedgerService
}

// NewWagerService creates a new wager service on top of the ledger
func NewWagerService(accountRepo interfaces.AccountRepository, ledger interfaces.LedgerService) interfaces.WagerService {
	return &wagerService{
		accountRepo: accountRepo,
		ledger:      ledger,
	}
}

func (s *wagerService) PlaceBet(ctx context.Context, discordID int64, game string, stake int64) (*interfaces.Reservation, error) {
	cfg := config.Get()
	if stake <= 0 {
		return nil, fmt.Errorf("%w: stake must be positive", domain.ErrInvalidBet)
	}
	if stake > cfg.MaxBet {
		return nil, fmt.Errorf("%w: stake exceeds the maximum of %d", domain.ErrInvalidBet, cfg.MaxBet)
	}

	account, err := s.accountRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil || !account.Registered {
		return nil, domain.ErrNotRegistered
	}

	reservation := &interfaces.Reservation{
		ID:        uuid.New(),
		DiscordID: discordID,
		Game:      game,
		Stake:     stake,
		PlacedAt:  time.Now().UTC(),
	}

	// Debit before play. If anything downstream fails, the recorded stake
	// debit is the only trace and the house keeps it.
	if _, err := s.ledger.ApplyDelta(ctx, discordID, -stake, entities.TransactionTypeGameStake, map[string]any{
		"game":        game,
		"reservation": reservation.ID.String(),
	}); err != nil {
		return nil, err
	}

	return reservation, nil
}

func (s *wagerService) Settle(ctx context.Context, reservation *interfaces.Reservation, outcome games.Outcome, multiplier float64, metadata map[string]any) (*interfaces.SettleResult, error) {
	if reservation == nil {
		return nil, fmt.Errorf("nil reservation")
	}
	if multiplier < 0 {
		return nil, fmt.Errorf("multiplier cannot be negative: %f", multiplier)
	}

	payout := games.Payout(reservation.Stake, multiplier)
	result := &interfaces.SettleResult{
		Outcome: outcome,
		Payout:  payout,
	}

	// A loss credits nothing; only the stake debit stays on the ledger.
	if payout == 0 {
		account, err := s.accountRepo.GetByDiscordID(ctx, reservation.DiscordID)
		if err != nil {
			return nil, fmt.Errorf("failed to get account: %w", err)
		}
		if account != nil {
			result.NewBalance = account.Balance
		}
		return result, nil
	}

	txType := entities.TransactionTypeGameWin
	if outcome == games.OutcomePush {
		txType = entities.TransactionTypeGamePush
	}

	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["game"] = reservation.Game
	metadata["reservation"] = reservation.ID.String()
	metadata["stake"] = reservation.Stake
	metadata["multiplier"] = multiplier
	metadata["outcome"] = string(outcome)

	transaction, err := s.ledger.ApplyDelta(ctx, reservation.DiscordID, payout, txType, metadata)
	if err != nil {
		return nil, err
	}

	result.NewBalance = transaction.BalanceAfter
	return result, nil
}

func (s *wagerService) Refund(ctx context.Context, reservation *interfaces.Reservation) (*entities.Transaction, error) {
	if reservation == nil {
		return nil, fmt.Errorf("nil reservation")
	}

	return s.ledger.ApplyDelta(ctx, reservation.DiscordID, reservation.Stake, entities.TransactionTypeGameRefund, map[string]any{
		"game":        reservation.Game,
		"reservation": reservation.ID.String(),
	})
}
