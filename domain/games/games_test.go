package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// scriptedRand returns a fixed sequence of values, reduced modulo n
type scriptedRand struct {
	values []int
	pos    int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.values[r.pos%len(r.values)]
	r.pos++
	return v % n
}

func newScriptedRand(values ...int) *scriptedRand {
	return &scriptedRand{values: values}
}

func TestPayout(t *testing.T) {
	assert.Equal(t, int64(200), Payout(100, 2.0))
	assert.Equal(t, int64(250), Payout(100, 2.5))
	assert.Equal(t, int64(100), Payout(100, 1.0))
	assert.Equal(t, int64(0), Payout(100, 0))

	// Fractional payouts truncate toward zero, the house keeps the remainder
	assert.Equal(t, int64(187), Payout(100, 1.87))
	assert.Equal(t, int64(53), Payout(10, 5.3))
	assert.Equal(t, int64(3), Payout(3, 1.1))
}
