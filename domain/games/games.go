// Package games contains the pure outcome resolvers for every casino game.
// Resolvers are deterministic functions of an injected randomness source and
// the player's choices; they never touch balances. The wager engine debits the
// stake before a resolver draws and credits stake * multiplier afterwards.
package games

import "math/rand"

// Rand is the randomness source injected into every resolver.
// *math/rand.Rand satisfies it; tests supply scripted sequences.
type Rand interface {
	Intn(n int) int
}

// systemRand adapts the process-wide math/rand source, which is safe for
// concurrent use
type systemRand struct{}

func (systemRand) Intn(n int) int {
	return rand.Intn(n)
}

// DefaultRand is the production randomness source
var DefaultRand Rand = systemRand{}

// Outcome classifies a resolved game from the player's perspective
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomePush      Outcome = "push"
	OutcomeBlackjack Outcome = "blackjack"
)

// Payout applies a multiplier to a stake, truncating toward zero.
// 0 = total loss, 1 = push (stake returned), >1 = net win.
func Payout(stake int64, multiplier float64) int64 {
	return int64(float64(stake) * multiplier)
}
