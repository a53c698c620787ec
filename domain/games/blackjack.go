package games

import (
	"errors"
	"sort"
)

// BlackjackState tracks the simplified blackjack state machine
type BlackjackState int

const (
	BlackjackInProgress BlackjackState = iota
	BlackjackPlayerBust
	BlackjackResolved
)

// Blackjack is a simplified blackjack hand. Cards are drawn uniformly from
// 1..11 with no deck or suits; the dealer draws to 17 on stand. A starting
// hand of {1,10} is a natural and pays 2.5x regardless of the dealer.
type Blackjack struct {
	PlayerHand []int
	DealerHand []int
	State      BlackjackState
}

var errHandOver = errors.New("blackjack hand is already over")

func drawBlackjackCard(rng Rand) int {
	return rng.Intn(11) + 1
}

// NewBlackjack deals two cards each to player and dealer
func NewBlackjack(rng Rand) *Blackjack {
	return &Blackjack{
		PlayerHand: []int{drawBlackjackCard(rng), drawBlackjackCard(rng)},
		DealerHand: []int{drawBlackjackCard(rng), drawBlackjackCard(rng)},
		State:      BlackjackInProgress,
	}
}

// IsTerminal returns true once no further player action is possible
func (b *Blackjack) IsTerminal() bool {
	return b.State != BlackjackInProgress
}

// Hit draws one card for the player. Going over 21 busts the hand.
func (b *Blackjack) Hit(rng Rand) error {
	if b.IsTerminal() {
		return errHandOver
	}

	b.PlayerHand = append(b.PlayerHand, drawBlackjackCard(rng))
	if b.PlayerTotal() > 21 {
		b.State = BlackjackPlayerBust
	}
	return nil
}

// Stand ends the player's turn; the dealer draws until reaching 17
func (b *Blackjack) Stand(rng Rand) error {
	if b.IsTerminal() {
		return errHandOver
	}

	for b.DealerTotal() < 17 {
		b.DealerHand = append(b.DealerHand, drawBlackjackCard(rng))
	}
	b.State = BlackjackResolved
	return nil
}

// PlayerTotal sums the player hand
func (b *Blackjack) PlayerTotal() int {
	return handTotal(b.PlayerHand)
}

// DealerTotal sums the dealer hand
func (b *Blackjack) DealerTotal() int {
	return handTotal(b.DealerHand)
}

// HasNatural reports whether the player hand is exactly an ace and a ten
func (b *Blackjack) HasNatural() bool {
	if len(b.PlayerHand) != 2 {
		return false
	}
	hand := []int{b.PlayerHand[0], b.PlayerHand[1]}
	sort.Ints(hand)
	return hand[0] == 1 && hand[1] == 10
}

// Resolve determines the final outcome and payout multiplier. The natural
// check wins ahead of everything else; otherwise bust loses, then higher
// non-busted total wins at 2x, equal totals push, lower total loses.
func (b *Blackjack) Resolve() (Outcome, float64) {
	if b.HasNatural() {
		return OutcomeBlackjack, 2.5
	}

	playerTotal := b.PlayerTotal()
	dealerTotal := b.DealerTotal()

	switch {
	case playerTotal > 21:
		return OutcomeLoss, 0
	case dealerTotal > 21 || playerTotal > dealerTotal:
		return OutcomeWin, 2.0
	case playerTotal < dealerTotal:
		return OutcomeLoss, 0
	default:
		return OutcomePush, 1.0
	}
}

func handTotal(hand []int) int {
	total := 0
	for _, card := range hand {
		total += card
	}
	return total
}
