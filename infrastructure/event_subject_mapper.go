package infrastructure

import (
	"fmt"

	"croupier/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeBalanceChange:
		return "casino.ledger.balance_changed"
	case events.EventTypeUserRegistered:
		return "casino.users.registered"
	case events.EventTypeLotteryDrawCompleted:
		return "casino.lottery.draw_completed"
	case events.EventTypeEscrowDecided:
		return "casino.escrow.decided"
	default:
		return fmt.Sprintf("casino.unknown.%s", event.Type())
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"casino.ledger.balance_changed",
		"casino.users.registered",
		"casino.lottery.draw_completed",
		"casino.escrow.decided",
	}
}
