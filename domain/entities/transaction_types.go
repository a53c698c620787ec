package entities

// TransactionType represents the type of balance change
type TransactionType string

// All transaction types supported by the system
const (
	// Game transactions
	TransactionTypeGameStake  TransactionType = "game_stake"
	TransactionTypeGameWin    TransactionType = "game_win"
	TransactionTypeGamePush   TransactionType = "game_push"
	TransactionTypeGameRefund TransactionType = "game_refund"

	// Lottery transactions
	TransactionTypeLottoTicket TransactionType = "lotto_ticket"
	TransactionTypeLottoWin    TransactionType = "lotto_win"

	// Escrow transactions
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"

	// System transactions
	TransactionTypeInitial     TransactionType = "initial"
	TransactionTypeAdminAdjust TransactionType = "admin_adjust"
)

// IsGameType returns true if the transaction type belongs to a game settlement
func (tt TransactionType) IsGameType() bool {
	return tt == TransactionTypeGameStake ||
		tt == TransactionTypeGameWin ||
		tt == TransactionTypeGamePush ||
		tt == TransactionTypeGameRefund
}

// IsLotteryType returns true if the transaction type is lottery-related
func (tt TransactionType) IsLotteryType() bool {
	return tt == TransactionTypeLottoTicket || tt == TransactionTypeLottoWin
}

// IsEscrowType returns true if the transaction type came from a staff decision
func (tt TransactionType) IsEscrowType() bool {
	return tt == TransactionTypeDeposit || tt == TransactionTypeWithdrawal
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}
