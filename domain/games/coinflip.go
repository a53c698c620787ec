package games

import "fmt"

// CoinSide is a coinflip call or landing
type CoinSide string

const (
	CoinHeads CoinSide = "heads"
	CoinTails CoinSide = "tails"
)

// ParseCoinSide validates a user-supplied call
func ParseCoinSide(s string) (CoinSide, error) {
	switch CoinSide(s) {
	case CoinHeads, CoinTails:
		return CoinSide(s), nil
	default:
		return "", fmt.Errorf("invalid coin side %q", s)
	}
}

// CoinflipResult is the outcome of a single flip
type CoinflipResult struct {
	Call       CoinSide
	Landed     CoinSide
	Outcome    Outcome
	Multiplier float64
}

// FlipCoin flips a fair coin against the player's call. A match pays 2x the
// stake, a miss loses it.
func FlipCoin(rng Rand, call CoinSide) CoinflipResult {
	landed := CoinHeads
	if rng.Intn(2) == 1 {
		landed = CoinTails
	}

	result := CoinflipResult{
		Call:   call,
		Landed: landed,
	}

	if landed == call {
		result.Outcome = OutcomeWin
		result.Multiplier = 2.0
	} else {
		result.Outcome = OutcomeLoss
		result.Multiplier = 0
	}

	return result
}
