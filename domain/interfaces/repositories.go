package interfaces

import (
	"context"
	"time"

	"croupier/domain/entities"
	"croupier/domain/events"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByDiscordID retrieves an account, or nil if none exists
	GetByDiscordID(ctx context.Context, discordID int64) (*entities.Account, error)

	// GetByDiscordIDForUpdate retrieves an account and locks its row for the
	// duration of the enclosing transaction, serializing concurrent balance
	// mutations for the same account
	GetByDiscordIDForUpdate(ctx context.Context, discordID int64) (*entities.Account, error)

	// Create creates a new account with the initial balance
	Create(ctx context.Context, discordID int64, initialBalance int64) (*entities.Account, error)

	// UpdateBalance sets an account's balance
	UpdateBalance(ctx context.Context, discordID int64, newBalance int64) error

	// SetRegistered marks an account as having accepted the terms of service
	SetRegistered(ctx context.Context, discordID int64) error
}

// TransactionRepository defines the interface for the append-only ledger log
type TransactionRepository interface {
	// Record appends a new transaction entry
	Record(ctx context.Context, transaction *entities.Transaction) error

	// GetByUser returns transactions for a user, most recent first
	GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.Transaction, error)

	// SumDeltasByUser returns the sum of all change amounts for a user
	SumDeltasByUser(ctx context.Context, discordID int64) (int64, error)
}

// LotteryEntryRepository defines the interface for the ticket pool
type LotteryEntryRepository interface {
	// CreateBatch inserts a batch of entries
	CreateBatch(ctx context.Context, entries []*entities.LotteryEntry) error

	// GetAll returns every entry in the pool in insertion order
	GetAll(ctx context.Context) ([]*entities.LotteryEntry, error)

	// Count returns the pool size
	Count(ctx context.Context) (int64, error)

	// GetParticipantSummary returns per-user ticket counts
	GetParticipantSummary(ctx context.Context) ([]*entities.LotteryParticipantInfo, error)

	// DeleteAll clears the pool
	DeleteAll(ctx context.Context) error
}

// LotteryDrawRepository defines the interface for completed draw records
type LotteryDrawRepository interface {
	// Create records a completed draw. Fails if a draw already exists for
	// the same UTC day.
	Create(ctx context.Context, draw *entities.LotteryDraw) error

	// GetByDate returns the draw for a UTC day, or nil if none happened
	GetByDate(ctx context.Context, day time.Time) (*entities.LotteryDraw, error)

	// GetLatest returns the most recent draw, or nil if none exist
	GetLatest(ctx context.Context) (*entities.LotteryDraw, error)
}

// EscrowRepository defines the interface for staff-reviewed requests
type EscrowRepository interface {
	// Create persists a new pending request
	Create(ctx context.Context, request *entities.EscrowRequest) error

	// GetByReference retrieves a request by its public reference, or nil
	GetByReference(ctx context.Context, reference uuid.UUID) (*entities.EscrowRequest, error)

	// GetByReferenceForUpdate retrieves a request and locks its row,
	// guarding the decide-once invariant against concurrent decisions
	GetByReferenceForUpdate(ctx context.Context, reference uuid.UUID) (*entities.EscrowRequest, error)

	// Update persists a decision on a request
	Update(ctx context.Context, request *entities.EscrowRequest) error

	// GetPending returns undecided requests, oldest first
	GetPending(ctx context.Context, limit int) ([]*entities.EscrowRequest, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events for the duration of a unit of
// work, delivering them only after the transaction commits
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush delivers all buffered events. Called after commit.
	Flush(ctx context.Context) error

	// Discard drops all buffered events. Called on rollback.
	Discard()
}
