package testutil

import (
	"time"

	"croupier/domain/entities"

	"github.com/google/uuid"
)

// CreateTestAccount creates a registered test account with default values
func CreateTestAccount(discordID int64, balance int64) *entities.Account {
	now := time.Now()
	return &entities.Account{
		DiscordID:  discordID,
		Balance:    balance,
		Registered: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CreateTestTransaction creates a test ledger entry with specific amounts
func CreateTestTransaction(discordID int64, before, change int64, transactionType entities.TransactionType) *entities.Transaction {
	return &entities.Transaction{
		DiscordID:       discordID,
		BalanceBefore:   before,
		BalanceAfter:    before + change,
		ChangeAmount:    change,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"test": true,
		},
		CreatedAt: time.Now(),
	}
}

// CreateTestEscrowRequest creates a pending escrow request
func CreateTestEscrowRequest(discordID int64, kind entities.EscrowKind, amount int64) *entities.EscrowRequest {
	return &entities.EscrowRequest{
		Reference: uuid.New(),
		DiscordID: discordID,
		Kind:      kind,
		Amount:    amount,
		Status:    entities.EscrowStatusPending,
	}
}
