package entities

import (
	"errors"
	"time"
)

// Transaction represents an immutable, append-only ledger entry describing a
// single balance change. Entries are never mutated or removed once recorded.
type Transaction struct {
	ID                  int64           `db:"id"`
	DiscordID           int64           `db:"discord_id"`
	BalanceBefore       int64           `db:"balance_before"`
	BalanceAfter        int64           `db:"balance_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	CreatedAt           time.Time       `db:"created_at"`
}

// IsCredit returns true if the change amount is positive
func (t *Transaction) IsCredit() bool {
	return t.ChangeAmount > 0
}

// IsDebit returns true if the change amount is negative
func (t *Transaction) IsDebit() bool {
	return t.ChangeAmount < 0
}

// Describe returns a human-readable description of the transaction
func (t *Transaction) Describe() string {
	switch t.TransactionType {
	case TransactionTypeGameStake:
		return "Game stake"
	case TransactionTypeGameWin:
		return "Game win"
	case TransactionTypeGamePush:
		return "Game push"
	case TransactionTypeGameRefund:
		return "Game refund"
	case TransactionTypeLottoTicket:
		return "Lottery ticket purchase"
	case TransactionTypeLottoWin:
		return "Lottery win"
	case TransactionTypeDeposit:
		return "Deposit approved"
	case TransactionTypeWithdrawal:
		return "Withdrawal approved"
	case TransactionTypeInitial:
		return "Initial balance"
	case TransactionTypeAdminAdjust:
		return "Admin adjustment"
	default:
		return string(t.TransactionType)
	}
}

// Validate performs basic consistency checks on the transaction
func (t *Transaction) Validate() error {
	if t.ChangeAmount == 0 {
		return errors.New("change amount cannot be zero")
	}

	if t.BalanceAfter != t.BalanceBefore+t.ChangeAmount {
		return errors.New("balance calculation is inconsistent")
	}

	if t.BalanceAfter < 0 {
		return errors.New("balance cannot go negative")
	}

	return nil
}
