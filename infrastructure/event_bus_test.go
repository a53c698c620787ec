package infrastructure

import (
	"context"
	"testing"
	"time"

	"croupier/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_DeliversToSubscribers(t *testing.T) {
	bus := NewEventBus()
	received := make(chan events.Event, 1)

	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		received <- event
	})

	published := events.BalanceChangeEvent{DiscordID: 123, ChangeAmount: -100}
	require.NoError(t, bus.Publish(published))

	select {
	case event := <-received:
		assert.Equal(t, published, event)
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestEventBus_OnlyMatchingTypeReceives(t *testing.T) {
	bus := NewEventBus()
	balanceEvents := make(chan events.Event, 1)
	registerEvents := make(chan events.Event, 1)

	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		balanceEvents <- event
	})
	bus.Subscribe(events.EventTypeUserRegistered, func(ctx context.Context, event events.Event) {
		registerEvents <- event
	})

	require.NoError(t, bus.Publish(events.UserRegisteredEvent{DiscordID: 123}))

	select {
	case <-registerEvents:
	case <-time.After(time.Second):
		t.Fatal("registered handler was not invoked")
	}

	select {
	case <-balanceEvents:
		t.Fatal("balance handler should not have been invoked")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventBus_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewEventBus()
	received := make(chan struct{}, 1)

	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		panic("handler bug")
	})
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		received <- struct{}{}
	})

	require.NoError(t, bus.Publish(events.BalanceChangeEvent{DiscordID: 123, ChangeAmount: 1}))

	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("surviving handler was not invoked")
	}
}

func TestEventBus_NoSubscribersIsFine(t *testing.T) {
	bus := NewEventBus()
	assert.NoError(t, bus.Publish(events.UserRegisteredEvent{DiscordID: 123}))
}
