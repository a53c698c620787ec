package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"croupier/database"
	"croupier/domain/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EscrowRepository implements the EscrowRepository interface
type EscrowRepository struct {
	q Queryable
}

// NewEscrowRepository creates a new escrow repository
func NewEscrowRepository(db *database.DB) *EscrowRepository {
	return &EscrowRepository{q: db.Pool}
}

// newEscrowRepository creates a new escrow repository with a transaction
func newEscrowRepository(tx Queryable) *EscrowRepository {
	return &EscrowRepository{q: tx}
}

const escrowColumns = `id, reference, discord_id, kind, amount, metadata, status, decided_by, decided_at, transaction_id, created_at`

// Create persists a new pending request
func (r *EscrowRepository) Create(ctx context.Context, request *entities.EscrowRequest) error {
	metadataJSON, err := json.Marshal(request.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal escrow metadata: %w", err)
	}

	query := `
		INSERT INTO escrow_requests (reference, discord_id, kind, amount, metadata, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		request.Reference,
		request.DiscordID,
		request.Kind,
		request.Amount,
		metadataJSON,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create escrow request for user %d: %w", request.DiscordID, err)
	}

	return nil
}

// GetByReference retrieves a request by its public reference
func (r *EscrowRepository) GetByReference(ctx context.Context, reference uuid.UUID) (*entities.EscrowRequest, error) {
	query := `
		SELECT ` + escrowColumns + `
		FROM escrow_requests
		WHERE reference = $1
	`

	request, err := scanEscrowRequest(r.q.QueryRow(ctx, query, reference))
	if err != nil {
		return nil, fmt.Errorf("failed to get escrow request %s: %w", reference, err)
	}
	return request, nil
}

// GetByReferenceForUpdate retrieves a request and locks its row. Two staff
// members deciding the same request simultaneously serialize here, and the
// loser observes the already-decided state.
func (r *EscrowRepository) GetByReferenceForUpdate(ctx context.Context, reference uuid.UUID) (*entities.EscrowRequest, error) {
	query := `
		SELECT ` + escrowColumns + `
		FROM escrow_requests
		WHERE reference = $1
		FOR UPDATE
	`

	request, err := scanEscrowRequest(r.q.QueryRow(ctx, query, reference))
	if err != nil {
		return nil, fmt.Errorf("failed to lock escrow request %s: %w", reference, err)
	}
	return request, nil
}

// Update persists a decision on a request
func (r *EscrowRepository) Update(ctx context.Context, request *entities.EscrowRequest) error {
	query := `
		UPDATE escrow_requests
		SET status = $2, decided_by = $3, decided_at = $4, transaction_id = $5
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		request.ID,
		request.Status,
		request.DecidedBy,
		request.DecidedAt,
		request.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update escrow request %d: %w", request.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no escrow request found with ID %d", request.ID)
	}
	return nil
}

// GetPending returns undecided requests, oldest first
func (r *EscrowRepository) GetPending(ctx context.Context, limit int) ([]*entities.EscrowRequest, error) {
	query := `
		SELECT ` + escrowColumns + `
		FROM escrow_requests
		WHERE status = 'pending'
		ORDER BY created_at, id
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending escrow requests: %w", err)
	}
	defer rows.Close()

	var requests []*entities.EscrowRequest
	for rows.Next() {
		request, err := scanEscrowRequestFromRows(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating escrow requests: %w", err)
	}

	return requests, nil
}

func scanEscrowRequest(row pgx.Row) (*entities.EscrowRequest, error) {
	request, err := scanEscrowFields(row.Scan)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return request, err
}

func scanEscrowRequestFromRows(rows pgx.Rows) (*entities.EscrowRequest, error) {
	request, err := scanEscrowFields(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to scan escrow request: %w", err)
	}
	return request, nil
}

func scanEscrowFields(scan func(dest ...any) error) (*entities.EscrowRequest, error) {
	var request entities.EscrowRequest
	var metadataJSON []byte

	err := scan(
		&request.ID,
		&request.Reference,
		&request.DiscordID,
		&request.Kind,
		&request.Amount,
		&metadataJSON,
		&request.Status,
		&request.DecidedBy,
		&request.DecidedAt,
		&request.TransactionID,
		&request.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &request.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal escrow metadata: %w", err)
		}
	}

	return &request, nil
}
