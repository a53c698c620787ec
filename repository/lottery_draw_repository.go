package repository

import (
	"context"
	"fmt"
	"time"

	"croupier/database"
	"croupier/domain/entities"

	"github.com/jackc/pgx/v5"
)

// LotteryDrawRepository implements the LotteryDrawRepository interface
type LotteryDrawRepository struct {
	q Queryable
}

// NewLotteryDrawRepository creates a new lottery draw repository
func NewLotteryDrawRepository(db *database.DB) *LotteryDrawRepository {
	return &LotteryDrawRepository{q: db.Pool}
}

// newLotteryDrawRepository creates a new lottery draw repository with a transaction
func newLotteryDrawRepository(tx Queryable) *LotteryDrawRepository {
	return &LotteryDrawRepository{q: tx}
}

// Create records a completed draw. The unique constraint on drawn_on rejects
// a second draw within the same UTC day.
func (r *LotteryDrawRepository) Create(ctx context.Context, draw *entities.LotteryDraw) error {
	query := `
		INSERT INTO lottery_draws (drawn_on, winner_discord_id, ticket_count, prize)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		draw.DrawnOn,
		draw.WinnerDiscordID,
		draw.TicketCount,
		draw.Prize,
	).Scan(&draw.ID, &draw.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record lottery draw for %s: %w", draw.DrawnOn.Format("2006-01-02"), err)
	}

	return nil
}

// GetByDate returns the draw for a UTC day, or nil if none happened
func (r *LotteryDrawRepository) GetByDate(ctx context.Context, day time.Time) (*entities.LotteryDraw, error) {
	query := `
		SELECT id, drawn_on, winner_discord_id, ticket_count, prize, created_at
		FROM lottery_draws
		WHERE drawn_on = $1
	`

	draw, err := scanDraw(r.q.QueryRow(ctx, query, day))
	if err != nil {
		return nil, fmt.Errorf("failed to get draw for %s: %w", day.Format("2006-01-02"), err)
	}
	return draw, nil
}

// GetLatest returns the most recent draw, or nil if none exist
func (r *LotteryDrawRepository) GetLatest(ctx context.Context) (*entities.LotteryDraw, error) {
	query := `
		SELECT id, drawn_on, winner_discord_id, ticket_count, prize, created_at
		FROM lottery_draws
		ORDER BY drawn_on DESC
		LIMIT 1
	`

	draw, err := scanDraw(r.q.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("failed to get latest draw: %w", err)
	}
	return draw, nil
}

func scanDraw(row pgx.Row) (*entities.LotteryDraw, error) {
	var draw entities.LotteryDraw
	err := row.Scan(
		&draw.ID,
		&draw.DrawnOn,
		&draw.WinnerDiscordID,
		&draw.TicketCount,
		&draw.Prize,
		&draw.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &draw, nil
}
