package common

import (
	"errors"
	"fmt"
	"testing"

	"croupier/domain"

	"github.com/stretchr/testify/assert"
)

func TestUserMessageForError_MapsSentinels(t *testing.T) {
	cases := map[error]string{
		domain.ErrNotRegistered:     "register",
		domain.ErrInvalidBet:        "Invalid bet",
		domain.ErrInsufficientFunds: "enough coins",
		domain.ErrInvalidQuantity:   "Quantity",
		domain.ErrInvalidAmount:     "Amount",
		domain.ErrPermissionDenied:  "permission",
		domain.ErrNoActiveSession:   "No active game",
		domain.ErrAlreadyDecided:    "already been decided",
	}

	for sentinel, fragment := range cases {
		assert.Contains(t, UserMessageForError(sentinel), fragment)
	}
}

func TestUserMessageForError_UnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("placing bet: %w", domain.ErrInsufficientFunds)
	assert.Contains(t, UserMessageForError(wrapped), "enough coins")
}

func TestUserMessageForError_UnknownErrorGetsGenericMessage(t *testing.T) {
	message := UserMessageForError(errors.New("connection reset"))
	assert.NotContains(t, message, "connection reset")
	assert.Contains(t, message, "Something went wrong")
}
