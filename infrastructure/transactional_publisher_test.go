package infrastructure

import (
	"context"
	"errors"
	"testing"

	"croupier/domain/events"

	"github.com/stretchr/testify/assert"
)

// recordingPublisher captures delivered events for assertions
type recordingPublisher struct {
	delivered []events.Event
	err       error
}

func (p *recordingPublisher) Publish(event events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.delivered = append(p.delivered, event)
	return nil
}

func TestTransactionalPublisher_HoldsUntilFlush(t *testing.T) {
	real := &recordingPublisher{}
	publisher := NewTransactionalPublisher(real)

	event := events.BalanceChangeEvent{DiscordID: 123, ChangeAmount: -100}
	assert.NoError(t, publisher.Publish(event))
	assert.Empty(t, real.delivered)

	assert.NoError(t, publisher.Flush(context.Background()))
	assert.Equal(t, []events.Event{event}, real.delivered)
}

func TestTransactionalPublisher_FlushPreservesOrder(t *testing.T) {
	real := &recordingPublisher{}
	publisher := NewTransactionalPublisher(real)

	first := events.BalanceChangeEvent{DiscordID: 1, ChangeAmount: -100}
	second := events.BalanceChangeEvent{DiscordID: 1, ChangeAmount: 200}
	assert.NoError(t, publisher.Publish(first))
	assert.NoError(t, publisher.Publish(second))

	assert.NoError(t, publisher.Flush(context.Background()))
	assert.Equal(t, []events.Event{first, second}, real.delivered)
}

func TestTransactionalPublisher_DiscardDropsEvents(t *testing.T) {
	real := &recordingPublisher{}
	publisher := NewTransactionalPublisher(real)

	assert.NoError(t, publisher.Publish(events.UserRegisteredEvent{DiscordID: 123}))
	publisher.Discard()

	assert.NoError(t, publisher.Flush(context.Background()))
	assert.Empty(t, real.delivered)
}

func TestTransactionalPublisher_FlushClearsPending(t *testing.T) {
	real := &recordingPublisher{}
	publisher := NewTransactionalPublisher(real)

	assert.NoError(t, publisher.Publish(events.UserRegisteredEvent{DiscordID: 123}))
	assert.NoError(t, publisher.Flush(context.Background()))
	assert.NoError(t, publisher.Flush(context.Background()))

	// The second flush delivers nothing
	assert.Len(t, real.delivered, 1)
}

func TestTransactionalPublisher_FlushIsBestEffort(t *testing.T) {
	real := &recordingPublisher{err: errors.New("delivery failed")}
	publisher := NewTransactionalPublisher(real)

	assert.NoError(t, publisher.Publish(events.UserRegisteredEvent{DiscordID: 123}))

	// Delivery failure doesn't surface; the transaction is already committed
	assert.NoError(t, publisher.Flush(context.Background()))
}
