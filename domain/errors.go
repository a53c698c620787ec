package domain

import "errors"

// Recoverable, user-facing error conditions. Services return these (possibly
// wrapped) and the bot layer matches them with errors.Is to pick a reply.
var (
	// ErrNotRegistered is returned when a user invokes a wagering operation
	// before accepting the terms of service.
	ErrNotRegistered = errors.New("user is not registered")

	// ErrInvalidBet is returned when a bet amount is non-positive or exceeds
	// the configured maximum.
	ErrInvalidBet = errors.New("invalid bet amount")

	// ErrInsufficientFunds is returned when a debit would drive a balance
	// negative. No state is mutated when this is returned.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidQuantity is returned for non-positive lottery ticket quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidAmount is returned for non-positive escrow or adjustment amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrPermissionDenied is returned when an approver lacks the staff
	// capability required to decide an escrow request.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNoActiveSession is returned when a game action arrives for a user
	// with no live session, including replayed clicks on a finished game.
	ErrNoActiveSession = errors.New("no active game session")

	// ErrAlreadyDecided is returned when an escrow request receives a second
	// decision. The first decision stands.
	ErrAlreadyDecided = errors.New("request already decided")
)
