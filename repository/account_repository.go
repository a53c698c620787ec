package repository

import (
	"context"
	"fmt"

	"croupier/database"
	"croupier/domain/entities"

	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the AccountRepository interface
type AccountRepository struct {
	q Queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepository creates a new account repository with a transaction
func newAccountRepository(tx Queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

const accountColumns = `discord_id, balance, registered, created_at, updated_at`

func scanAccount(row pgx.Row) (*entities.Account, error) {
	var account entities.Account
	err := row.Scan(
		&account.DiscordID,
		&account.Balance,
		&account.Registered,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByDiscordID retrieves an account by Discord ID
func (r *AccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE discord_id = $1
	`

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID))
	if err != nil {
		return nil, fmt.Errorf("failed to get account for discord ID %d: %w", discordID, err)
	}
	return account, nil
}

// GetByDiscordIDForUpdate retrieves an account and locks its row until the
// enclosing transaction finishes. Concurrent balance mutations for the same
// account serialize here.
func (r *AccountRepository) GetByDiscordIDForUpdate(ctx context.Context, discordID int64) (*entities.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE discord_id = $1
		FOR UPDATE
	`

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock account for discord ID %d: %w", discordID, err)
	}
	return account, nil
}

// Create creates a new account with the initial balance
func (r *AccountRepository) Create(ctx context.Context, discordID int64, initialBalance int64) (*entities.Account, error) {
	query := `
		INSERT INTO accounts (discord_id, balance)
		VALUES ($1, $2)
		RETURNING ` + accountColumns + `
	`

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID, initialBalance))
	if err != nil {
		return nil, fmt.Errorf("failed to create account for discord ID %d: %w", discordID, err)
	}
	return account, nil
}

// UpdateBalance sets an account's balance
func (r *AccountRepository) UpdateBalance(ctx context.Context, discordID int64, newBalance int64) error {
	query := `
		UPDATE accounts
		SET balance = $2, updated_at = NOW()
		WHERE discord_id = $1
	`

	tag, err := r.q.Exec(ctx, query, discordID, newBalance)
	if err != nil {
		return fmt.Errorf("failed to update balance for discord ID %d: %w", discordID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no account found for discord ID %d", discordID)
	}
	return nil
}

// SetRegistered marks an account as having accepted the terms of service
func (r *AccountRepository) SetRegistered(ctx context.Context, discordID int64) error {
	query := `
		UPDATE accounts
		SET registered = TRUE, updated_at = NOW()
		WHERE discord_id = $1
	`

	tag, err := r.q.Exec(ctx, query, discordID)
	if err != nil {
		return fmt.Errorf("failed to register account for discord ID %d: %w", discordID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no account found for discord ID %d", discordID)
	}
	return nil
}
