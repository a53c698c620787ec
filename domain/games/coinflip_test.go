package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCoinSide(t *testing.T) {
	side, err := ParseCoinSide("heads")
	assert.NoError(t, err)
	assert.Equal(t, CoinHeads, side)

	side, err = ParseCoinSide("tails")
	assert.NoError(t, err)
	assert.Equal(t, CoinTails, side)

	_, err = ParseCoinSide("edge")
	assert.Error(t, err)
}

func TestFlipCoin_CorrectCallWins(t *testing.T) {
	result := FlipCoin(newScriptedRand(0), CoinHeads)

	assert.Equal(t, CoinHeads, result.Landed)
	assert.Equal(t, OutcomeWin, result.Outcome)
	assert.Equal(t, 2.0, result.Multiplier)
}

func TestFlipCoin_WrongCallLoses(t *testing.T) {
	result := FlipCoin(newScriptedRand(1), CoinHeads)

	assert.Equal(t, CoinTails, result.Landed)
	assert.Equal(t, OutcomeLoss, result.Outcome)
	assert.Equal(t, 0.0, result.Multiplier)
}
