package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinSlots_TripleMatchWins(t *testing.T) {
	result := SpinSlots(newScriptedRand(0, 0, 0), SlotBaseMultiplier)

	assert.True(t, result.Won)
	assert.Equal(t, SlotBaseMultiplier, result.Multiplier)
	assert.Equal(t, SlotRepeatWinMultiplier, result.NextMultiplier)
	assert.Equal(t, result.Reels[0], result.Reels[1])
	assert.Equal(t, result.Reels[1], result.Reels[2])
}

func TestSpinSlots_MixedReelsLose(t *testing.T) {
	result := SpinSlots(newScriptedRand(0, 1, 2), SlotBaseMultiplier)

	assert.False(t, result.Won)
	assert.Equal(t, 0.0, result.Multiplier)
	assert.Equal(t, SlotBaseMultiplier, result.NextMultiplier)
}

func TestSpinSlots_MultiplierChain(t *testing.T) {
	// A win pays at the incoming multiplier and lowers the next one
	first := SpinSlots(newScriptedRand(3, 3, 3), SlotBaseMultiplier)
	assert.True(t, first.Won)
	assert.Equal(t, 2.0, first.Multiplier)

	// A consecutive win pays the reduced repeat multiplier
	second := SpinSlots(newScriptedRand(3, 3, 3), first.NextMultiplier)
	assert.True(t, second.Won)
	assert.Equal(t, 1.5, second.Multiplier)
	assert.Equal(t, SlotRepeatWinMultiplier, second.NextMultiplier)

	// A loss resets the chain back to the base multiplier
	third := SpinSlots(newScriptedRand(0, 1, 2), second.NextMultiplier)
	assert.False(t, third.Won)
	assert.Equal(t, SlotBaseMultiplier, third.NextMultiplier)
}

func TestSpinFrame_ProducesValidSymbols(t *testing.T) {
	frame := SpinFrame(newScriptedRand(0, 2, 4))
	for _, symbol := range frame {
		assert.Contains(t, slotSymbols, symbol)
	}
}
