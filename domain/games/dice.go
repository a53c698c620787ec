package games

// DiceResult is the outcome of a dice duel against the house
type DiceResult struct {
	PlayerRoll int
	BotRoll    int
	Outcome    Outcome
	Multiplier float64
}

// RollDice rolls two independent six-sided dice. Matching rolls win at 2x
// the stake (net +1x); anything else loses the stake.
func RollDice(rng Rand) DiceResult {
	player := rng.Intn(6) + 1
	bot := rng.Intn(6) + 1

	result := DiceResult{
		PlayerRoll: player,
		BotRoll:    bot,
	}

	if player == bot {
		result.Outcome = OutcomeWin
		result.Multiplier = 2.0
	} else {
		result.Outcome = OutcomeLoss
		result.Multiplier = 0
	}

	return result
}
