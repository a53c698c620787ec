package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"croupier/config"
	"croupier/domain"
	"croupier/domain/entities"
	"croupier/domain/events"
	"croupier/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// lotteryService implements business logic for lottery operations
type lotteryService struct {
	accountRepo    interfaces.AccountRepository
	entryRepo      interfaces.LotteryEntryRepository
	drawRepo       interfaces.LotteryDrawRepository
	ledger         interfaces.LedgerService
	eventPublisher interfaces.EventPublisher
}

// NewLotteryService creates a new lottery service
func NewLotteryService(
	accountRepo interfaces.AccountRepository,
	entryRepo interfaces.LotteryEntryRepository,
	drawRepo interfaces.LotteryDrawRepository,
	ledger interfaces.LedgerService,
	eventPublisher interfaces.EventPublisher,
) interfaces.LotteryService {
	return &lotteryService{
		accountRepo:    accountRepo,
		entryRepo:      entryRepo,
		drawRepo:       drawRepo,
		ledger:         ledger,
		eventPublisher: eventPublisher,
	}
}

func (s *lotteryService) BuyTickets(ctx context.Context, discordID int64, quantity int) (*interfaces.LotteryPurchaseResult, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	account, err := s.accountRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil || !account.Registered {
		return nil, domain.ErrNotRegistered
	}

	cfg := config.Get()
	totalCost := int64(quantity) * cfg.LotteryTicketPrice

	transaction, err := s.ledger.ApplyDelta(ctx, discordID, -totalCost, entities.TransactionTypeLottoTicket, map[string]any{
		"quantity":     quantity,
		"ticket_price": cfg.LotteryTicketPrice,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*entities.LotteryEntry, quantity)
	for i := range entries {
		entries[i] = &entities.LotteryEntry{
			DiscordID:     discordID,
			PurchasePrice: cfg.LotteryTicketPrice,
			TransactionID: transaction.ID,
		}
	}
	if err := s.entryRepo.CreateBatch(ctx, entries); err != nil {
		return nil, fmt.Errorf("failed to create lottery entries: %w", err)
	}

	return &interfaces.LotteryPurchaseResult{
		Quantity:   quantity,
		TotalCost:  totalCost,
		NewBalance: transaction.BalanceAfter,
	}, nil
}

func (s *lotteryService) Status(ctx context.Context) (*interfaces.LotteryStatus, error) {
	count, err := s.entryRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	participants, err := s.entryRepo.GetParticipantSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant summary: %w", err)
	}

	lastDraw, err := s.drawRepo.GetLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest draw: %w", err)
	}

	cfg := config.Get()
	return &interfaces.LotteryStatus{
		TicketCount:  count,
		Prize:        entities.CalculateLotteryPrize(count, cfg.LotteryTicketPrice, cfg.LotteryPayoutFraction),
		Participants: participants,
		LastDraw:     lastDraw,
	}, nil
}

func (s *lotteryService) Draw(ctx context.Context, now time.Time) (*interfaces.LotteryDrawResult, error) {
	day := now.UTC().Truncate(24 * time.Hour)

	existing, err := s.drawRepo.GetByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing draw: %w", err)
	}
	if existing != nil {
		log.WithField("drawnOn", day.Format("2006-01-02")).Info("Draw already ran today, skipping")
		return &interfaces.LotteryDrawResult{AlreadyDrawn: true, Draw: existing}, nil
	}

	entries, err := s.entryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry pool: %w", err)
	}

	draw := &entities.LotteryDraw{
		DrawnOn:     day,
		TicketCount: int64(len(entries)),
	}

	if len(entries) > 0 {
		cfg := config.Get()
		draw.Prize = entities.CalculateLotteryPrize(int64(len(entries)), cfg.LotteryTicketPrice, cfg.LotteryPayoutFraction)

		winner, err := pickWinningEntry(entries)
		if err != nil {
			return nil, err
		}
		draw.WinnerDiscordID = &winner.DiscordID

		if _, err := s.ledger.ApplyDelta(ctx, winner.DiscordID, draw.Prize, entities.TransactionTypeLottoWin, map[string]any{
			"drawn_on":     day.Format("2006-01-02"),
			"ticket_count": len(entries),
		}); err != nil {
			return nil, err
		}
	}

	if err := s.drawRepo.Create(ctx, draw); err != nil {
		return nil, fmt.Errorf("failed to record draw: %w", err)
	}

	if err := s.entryRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear entry pool: %w", err)
	}

	event := events.LotteryDrawCompletedEvent{
		DrawID:          draw.ID,
		WinnerDiscordID: draw.WinnerDiscordID,
		TicketCount:     draw.TicketCount,
		Prize:           draw.Prize,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish lottery draw event")
	}

	log.WithFields(log.Fields{
		"drawnOn":     day.Format("2006-01-02"),
		"ticketCount": draw.TicketCount,
		"prize":       draw.Prize,
		"hasWinner":   draw.HasWinner(),
	}).Info("Lottery draw completed")

	return &interfaces.LotteryDrawResult{Draw: draw}, nil
}

// pickWinningEntry draws one ticket uniformly from the pool. Each entry is a
// single ticket, so a uniform pick is already weighted by tickets held.
func pickWinningEntry(entries []*entities.LotteryEntry) (*entities.LotteryEntry, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(entries))))
	if err != nil {
		return nil, fmt.Errorf("failed to draw winning ticket: %w", err)
	}
	return entries[n.Int64()], nil
}
