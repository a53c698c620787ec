package events

import (
	"croupier/domain/entities"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange        EventType = "balance_change"
	EventTypeUserRegistered       EventType = "user_registered"
	EventTypeLotteryDrawCompleted EventType = "lottery_draw_completed"
	EventTypeEscrowDecided        EventType = "escrow_decided"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred. Every ledger
// append emits exactly one of these; audit sinks subscribe to it.
type BalanceChangeEvent struct {
	DiscordID       int64
	OldBalance      int64
	NewBalance      int64
	TransactionType entities.TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserRegisteredEvent represents a user accepting the terms of service
type UserRegisteredEvent struct {
	DiscordID int64
}

func (e UserRegisteredEvent) Type() EventType {
	return EventTypeUserRegistered
}

// LotteryDrawCompletedEvent represents a finished lottery draw. WinnerDiscordID
// is nil when the pool was empty.
type LotteryDrawCompletedEvent struct {
	DrawID          int64
	WinnerDiscordID *int64
	TicketCount     int64
	Prize           int64
}

func (e LotteryDrawCompletedEvent) Type() EventType {
	return EventTypeLotteryDrawCompleted
}

// EscrowDecidedEvent represents a staff decision on a deposit or withdrawal
type EscrowDecidedEvent struct {
	RequestID  int64
	Reference  string
	DiscordID  int64
	Kind       entities.EscrowKind
	Amount     int64
	Approved   bool
	ShortFunds bool // withdrawal approved but balance no longer covered it
}

func (e EscrowDecidedEvent) Type() EventType {
	return EventTypeEscrowDecided
}
