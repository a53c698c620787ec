package entities

import (
	"time"
)

// Account represents a player's casino account
type Account struct {
	DiscordID  int64     `db:"discord_id"`
	Balance    int64     `db:"balance"`
	Registered bool      `db:"registered"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// CanAfford checks if the account has sufficient balance for an amount
func (a *Account) CanAfford(amount int64) bool {
	return a.Balance >= amount
}

// CalculateNewBalance calculates what the balance would be after a change
func (a *Account) CalculateNewBalance(changeAmount int64) int64 {
	return a.Balance + changeAmount
}

// CanDebit checks whether applying a negative delta keeps the balance non-negative
func (a *Account) CanDebit(amount int64) bool {
	return a.Balance-amount >= 0
}
