package interfaces

import (
	"context"
	"time"

	"croupier/domain/entities"
	"croupier/domain/games"

	"github.com/google/uuid"
)

// LedgerService owns account balances and the transaction log. Every balance
// mutation in the system flows through ApplyDelta.
type LedgerService interface {
	// GetOrCreateAccount fetches a user's account, creating it with the
	// starting balance on first contact
	GetOrCreateAccount(ctx context.Context, discordID int64) (*entities.Account, error)

	// Register marks an account as having accepted the terms of service
	Register(ctx context.Context, discordID int64) error

	// ApplyDelta atomically applies a signed balance change and records the
	// corresponding transaction. Returns ErrInsufficientFunds if the change
	// would take the balance negative.
	ApplyDelta(ctx context.Context, discordID int64, delta int64, txType entities.TransactionType, metadata map[string]any) (*entities.Transaction, error)

	// SetBalance overwrites an account's balance, recording the difference
	// as an admin adjustment
	SetBalance(ctx context.Context, discordID int64, newBalance int64, metadata map[string]any) (*entities.Transaction, error)

	// ListTransactions returns a user's recent ledger entries, newest first
	ListTransactions(ctx context.Context, discordID int64, limit int) ([]*entities.Transaction, error)
}

// Reservation is an accepted, already-debited stake awaiting resolution
type Reservation struct {
	ID        uuid.UUID
	DiscordID int64
	Game      string
	Stake     int64
	PlacedAt  time.Time
}

// SettleResult describes the outcome of settling a reservation
type SettleResult struct {
	Outcome    games.Outcome
	Payout     int64
	NewBalance int64
}

// WagerService implements the debit-before-play wager protocol shared by
// every game. PlaceBet validates and debits the stake up front; Settle
// credits the payout once the game resolves. A crashed or abandoned game
// leaves only the recorded stake debit.
type WagerService interface {
	// PlaceBet validates the stake against the registration gate, bet
	// limits and the user's balance, then debits it
	PlaceBet(ctx context.Context, discordID int64, game string, stake int64) (*Reservation, error)

	// Settle resolves a reservation: credits stake * multiplier when the
	// multiplier is positive, records nothing extra on a loss
	Settle(ctx context.Context, reservation *Reservation, outcome games.Outcome, multiplier float64, metadata map[string]any) (*SettleResult, error)

	// Refund returns a reservation's stake in full, for games cancelled
	// before resolution
	Refund(ctx context.Context, reservation *Reservation) (*entities.Transaction, error)
}

// LotteryPurchaseResult summarizes a ticket purchase
type LotteryPurchaseResult struct {
	Quantity   int
	TotalCost  int64
	NewBalance int64
}

// LotteryStatus is a snapshot of the current pool
type LotteryStatus struct {
	TicketCount  int64
	Prize        int64
	Participants []*entities.LotteryParticipantInfo
	LastDraw     *entities.LotteryDraw
}

// LotteryDrawResult describes the outcome of a draw attempt
type LotteryDrawResult struct {
	// AlreadyDrawn is true when a draw already ran on the same UTC day
	AlreadyDrawn bool
	Draw         *entities.LotteryDraw
}

// LotteryService sells weighted tickets and runs the weekly draw
type LotteryService interface {
	// BuyTickets purchases quantity tickets at the configured price,
	// debiting the total cost atomically with the pool insert
	BuyTickets(ctx context.Context, discordID int64, quantity int) (*LotteryPurchaseResult, error)

	// Status returns the current pool snapshot
	Status(ctx context.Context) (*LotteryStatus, error)

	// Draw runs the draw for the given time's UTC day: picks a winner
	// weighted by ticket count, credits the prize, clears the pool. An
	// empty pool records a winnerless draw. A repeat call on the same UTC
	// day is a no-op.
	Draw(ctx context.Context, now time.Time) (*LotteryDrawResult, error)
}

// EscrowService queues deposits and withdrawals for staff review
type EscrowService interface {
	// Submit validates and queues a request. Withdrawal requests check the
	// user's balance at submission; no funds move until approval.
	Submit(ctx context.Context, discordID int64, kind entities.EscrowKind, amount int64, metadata map[string]any) (*entities.EscrowRequest, error)

	// Decide approves or rejects a pending request once. Approving a
	// deposit credits the amount; approving a withdrawal re-validates the
	// balance and debits it, rejecting the request instead if funds no
	// longer suffice.
	Decide(ctx context.Context, reference uuid.UUID, approverID int64, approve bool) (*entities.EscrowRequest, error)

	// ListPending returns undecided requests, oldest first
	ListPending(ctx context.Context, limit int) ([]*entities.EscrowRequest, error)
}

// PermissionChecker reports whether a Discord user may decide escrow requests
type PermissionChecker func(approverID int64) bool
