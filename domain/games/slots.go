package games

// Slot reel symbol alphabet
var slotSymbols = []string{"🍒", "🍋", "🍉", "⭐", "🔔", "🍇"}

const (
	// SlotBaseMultiplier applies to a fresh spin or one following a loss
	SlotBaseMultiplier = 2.0
	// SlotRepeatWinMultiplier applies to a spin immediately following a win.
	// Consecutive wins deliberately pay less than a post-loss win; this is
	// house-edge tuning, not a bug.
	SlotRepeatWinMultiplier = 1.5
)

// SlotsResult is the outcome of one spin
type SlotsResult struct {
	Reels      [3]string
	Won        bool
	Multiplier float64
	// NextMultiplier is the multiplier the player's next spin pays at
	NextMultiplier float64
}

// SpinSlots spins three independent reels at the given multiplier. All three
// symbols matching wins stake * multiplier; the result carries the multiplier
// for the following attempt (1.5 after a win, 2.0 after a loss).
func SpinSlots(rng Rand, multiplier float64) SlotsResult {
	var reels [3]string
	for i := range reels {
		reels[i] = slotSymbols[rng.Intn(len(slotSymbols))]
	}

	result := SlotsResult{Reels: reels}

	if reels[0] == reels[1] && reels[1] == reels[2] {
		result.Won = true
		result.Multiplier = multiplier
		result.NextMultiplier = SlotRepeatWinMultiplier
	} else {
		result.Multiplier = 0
		result.NextMultiplier = SlotBaseMultiplier
	}

	return result
}

// SpinFrame produces a transient reel frame for spin animation. It has no
// bearing on the settled result.
func SpinFrame(rng Rand) [3]string {
	var reels [3]string
	for i := range reels {
		reels[i] = slotSymbols[rng.Intn(len(slotSymbols))]
	}
	return reels
}
