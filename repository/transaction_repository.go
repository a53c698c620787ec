package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"croupier/database"
	"croupier/domain/entities"
)

// TransactionRepository implements the TransactionRepository interface
type TransactionRepository struct {
	q Queryable
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

// newTransactionRepository creates a new transaction repository with a transaction
func newTransactionRepository(tx Queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Record appends a new ledger entry
func (r *TransactionRepository) Record(ctx context.Context, transaction *entities.Transaction) error {
	metadataJSON, err := json.Marshal(transaction.TransactionMetadata)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction metadata: %w", err)
	}

	query := `
		INSERT INTO transactions
		(discord_id, balance_before, balance_after, change_amount, transaction_type, transaction_metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		transaction.DiscordID,
		transaction.BalanceBefore,
		transaction.BalanceAfter,
		transaction.ChangeAmount,
		transaction.TransactionType,
		metadataJSON,
	).Scan(&transaction.ID, &transaction.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record transaction for user %d: %w", transaction.DiscordID, err)
	}

	return nil
}

// GetByUser returns a user's ledger entries, most recent first
func (r *TransactionRepository) GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.Transaction, error) {
	query := `
		SELECT id, discord_id, balance_before, balance_after, change_amount,
		       transaction_type, transaction_metadata, created_at
		FROM transactions
		WHERE discord_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, discordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user %d: %w", discordID, err)
	}
	defer rows.Close()

	var transactions []*entities.Transaction
	for rows.Next() {
		var transaction entities.Transaction
		var metadataJSON []byte

		err := rows.Scan(
			&transaction.ID,
			&transaction.DiscordID,
			&transaction.BalanceBefore,
			&transaction.BalanceAfter,
			&transaction.ChangeAmount,
			&transaction.TransactionType,
			&metadataJSON,
			&transaction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &transaction.TransactionMetadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}

		transactions = append(transactions, &transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// SumDeltasByUser returns the sum of all change amounts for a user. For a
// consistent ledger this equals the account balance minus the starting
// balance.
func (r *TransactionRepository) SumDeltasByUser(ctx context.Context, discordID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(change_amount), 0)
		FROM transactions
		WHERE discord_id = $1
	`

	var sum int64
	if err := r.q.QueryRow(ctx, query, discordID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum transaction deltas for user %d: %w", discordID, err)
	}
	return sum, nil
}
