package entities

import (
	"time"

	"github.com/google/uuid"
)

// EscrowKind distinguishes deposit from withdrawal requests
type EscrowKind string

const (
	EscrowKindDeposit    EscrowKind = "deposit"
	EscrowKindWithdrawal EscrowKind = "withdrawal"
)

// EscrowStatus is the review state of a request
type EscrowStatus string

const (
	EscrowStatusPending  EscrowStatus = "pending"
	EscrowStatusApproved EscrowStatus = "approved"
	EscrowStatusRejected EscrowStatus = "rejected"
)

// EscrowRequest is a staff-reviewed deposit or withdrawal. It is created
// pending and decided exactly once; after that it is terminal.
type EscrowRequest struct {
	ID            int64          `db:"id"`
	Reference     uuid.UUID      `db:"reference"`
	DiscordID     int64          `db:"discord_id"`
	Kind          EscrowKind     `db:"kind"`
	Amount        int64          `db:"amount"`
	Metadata      map[string]any `db:"metadata"`
	Status        EscrowStatus   `db:"status"`
	DecidedBy     *int64         `db:"decided_by"`
	DecidedAt     *time.Time     `db:"decided_at"`
	TransactionID *int64         `db:"transaction_id"`
	CreatedAt     time.Time      `db:"created_at"`
}

// IsDecided returns true once a staff decision has been applied
func (r *EscrowRequest) IsDecided() bool {
	return r.Status != EscrowStatusPending
}

// Decide marks the request with its terminal status
func (r *EscrowRequest) Decide(status EscrowStatus, approverID int64) {
	r.Status = status
	r.DecidedBy = &approverID
	now := time.Now().UTC()
	r.DecidedAt = &now
}

// InGameName returns the withdrawal metadata IGN, if present
func (r *EscrowRequest) InGameName() string {
	return r.metadataString("ign")
}

// ProofURL returns the deposit proof attachment URL, if present
func (r *EscrowRequest) ProofURL() string {
	return r.metadataString("proof_url")
}

func (r *EscrowRequest) metadataString(key string) string {
	if r.Metadata == nil {
		return ""
	}
	if value, ok := r.Metadata[key].(string); ok {
		return value
	}
	return ""
}
