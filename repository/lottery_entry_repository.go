package repository

import (
	"context"
	"fmt"

	"croupier/database"
	"croupier/domain/entities"
)

// LotteryEntryRepository implements the LotteryEntryRepository interface
type LotteryEntryRepository struct {
	q Queryable
}

// NewLotteryEntryRepository creates a new lottery entry repository
func NewLotteryEntryRepository(db *database.DB) *LotteryEntryRepository {
	return &LotteryEntryRepository{q: db.Pool}
}

// newLotteryEntryRepository creates a new lottery entry repository with a transaction
func newLotteryEntryRepository(tx Queryable) *LotteryEntryRepository {
	return &LotteryEntryRepository{q: tx}
}

// CreateBatch inserts a batch of entries
func (r *LotteryEntryRepository) CreateBatch(ctx context.Context, entries []*entities.LotteryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO lottery_entries (discord_id, purchase_price, transaction_id)
		VALUES ($1, $2, $3)
		RETURNING id, purchased_at
	`

	for _, entry := range entries {
		err := r.q.QueryRow(ctx, query,
			entry.DiscordID,
			entry.PurchasePrice,
			entry.TransactionID,
		).Scan(&entry.ID, &entry.PurchasedAt)
		if err != nil {
			return fmt.Errorf("failed to create lottery entry for user %d: %w", entry.DiscordID, err)
		}
	}

	return nil
}

// GetAll returns every entry in the pool in insertion order
func (r *LotteryEntryRepository) GetAll(ctx context.Context) ([]*entities.LotteryEntry, error) {
	query := `
		SELECT id, discord_id, purchase_price, transaction_id, purchased_at
		FROM lottery_entries
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lottery entries: %w", err)
	}
	defer rows.Close()

	var entries []*entities.LotteryEntry
	for rows.Next() {
		var entry entities.LotteryEntry
		err := rows.Scan(
			&entry.ID,
			&entry.DiscordID,
			&entry.PurchasePrice,
			&entry.TransactionID,
			&entry.PurchasedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lottery entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lottery entries: %w", err)
	}

	return entries, nil
}

// Count returns the pool size
func (r *LotteryEntryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM lottery_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lottery entries: %w", err)
	}
	return count, nil
}

// GetParticipantSummary returns per-user ticket counts, largest holdings first
func (r *LotteryEntryRepository) GetParticipantSummary(ctx context.Context) ([]*entities.LotteryParticipantInfo, error) {
	query := `
		SELECT discord_id, COUNT(*) AS ticket_count
		FROM lottery_entries
		GROUP BY discord_id
		ORDER BY ticket_count DESC, discord_id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query participant summary: %w", err)
	}
	defer rows.Close()

	var participants []*entities.LotteryParticipantInfo
	for rows.Next() {
		var info entities.LotteryParticipantInfo
		if err := rows.Scan(&info.DiscordID, &info.TicketCount); err != nil {
			return nil, fmt.Errorf("failed to scan participant summary: %w", err)
		}
		participants = append(participants, &info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant summary: %w", err)
	}

	return participants, nil
}

// DeleteAll clears the pool
func (r *LotteryEntryRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM lottery_entries`); err != nil {
		return fmt.Errorf("failed to clear lottery entries: %w", err)
	}
	return nil
}
