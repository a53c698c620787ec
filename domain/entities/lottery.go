package entities

import (
	"math"
	"time"
)

// LotteryEntry represents a single lottery ticket. A user holding multiple
// entries has proportionally higher odds; the pool is a multiset.
type LotteryEntry struct {
	ID            int64     `db:"id"`
	DiscordID     int64     `db:"discord_id"`
	PurchasePrice int64     `db:"purchase_price"`
	TransactionID int64     `db:"transaction_id"`
	PurchasedAt   time.Time `db:"purchased_at"`
}

// LotteryDraw records a completed (possibly empty) draw. The DrawnOn date
// carries a unique constraint, which is the duplicate-draw guard for a
// scheduler firing more than once within the same UTC day.
type LotteryDraw struct {
	ID              int64     `db:"id"`
	DrawnOn         time.Time `db:"drawn_on"`
	WinnerDiscordID *int64    `db:"winner_discord_id"`
	TicketCount     int64     `db:"ticket_count"`
	Prize           int64     `db:"prize"`
	CreatedAt       time.Time `db:"created_at"`
}

// HasWinner returns true if the draw paid out to someone
func (d *LotteryDraw) HasWinner() bool {
	return d.WinnerDiscordID != nil
}

// CalculateLotteryPrize computes the pooled prize for a draw:
// floor(tickets * price * payoutFraction). The house keeps the remainder.
func CalculateLotteryPrize(ticketCount int64, ticketPrice int64, payoutFraction float64) int64 {
	return int64(math.Floor(float64(ticketCount*ticketPrice) * payoutFraction))
}

// LotteryParticipantInfo summarizes one participant's ticket holdings
type LotteryParticipantInfo struct {
	DiscordID   int64 `db:"discord_id"`
	TicketCount int64 `db:"ticket_count"`
}
