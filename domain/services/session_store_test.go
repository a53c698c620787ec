package services

import (
	"sync"
	"testing"

	"croupier/domain"

	"github.com/stretchr/testify/assert"
)

func TestSessionStore_PutRejectsDuplicate(t *testing.T) {
	store := NewSessionStore()

	assert.NoError(t, store.Put(NewGameSession(123, "blackjack", 100, nil)))
	assert.Error(t, store.Put(NewGameSession(123, "blackjack", 200, nil)))

	// A different game for the same user is fine
	assert.NoError(t, store.Put(NewGameSession(123, "highlow", 100, nil)))
}

func TestSessionStore_TakeIsTerminal(t *testing.T) {
	store := NewSessionStore()
	session := NewGameSession(123, "blackjack", 100, nil)
	assert.NoError(t, store.Put(session))

	taken, err := store.Take(123, "blackjack")
	assert.NoError(t, err)
	assert.Equal(t, session.ID, taken.ID)

	// A replayed click finds nothing
	_, err = store.Take(123, "blackjack")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestSessionStore_TakeExactlyOneWinner(t *testing.T) {
	store := NewSessionStore()
	assert.NoError(t, store.Put(NewGameSession(123, "highlow", 100, nil)))

	const attempts = 50
	var wg sync.WaitGroup
	wins := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Take(123, "highlow"); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1)
}

func TestSessionStore_GetDoesNotRemove(t *testing.T) {
	store := NewSessionStore()
	assert.NoError(t, store.Put(NewGameSession(123, "slots", 100, nil)))

	_, ok := store.Get(123, "slots")
	assert.True(t, ok)
	_, ok = store.Get(123, "slots")
	assert.True(t, ok)

	_, ok = store.Get(456, "slots")
	assert.False(t, ok)
}

func TestSessionStore_ReplaceDisplaces(t *testing.T) {
	store := NewSessionStore()
	first := NewGameSession(123, "slots", 100, nil)
	assert.NoError(t, store.Put(first))

	second := NewGameSession(123, "slots", 200, nil)
	store.Replace(second)

	current, ok := store.Get(123, "slots")
	assert.True(t, ok)
	assert.Equal(t, second.ID, current.ID)
}

func TestSessionStore_Remove(t *testing.T) {
	store := NewSessionStore()
	assert.NoError(t, store.Put(NewGameSession(123, "slots", 100, nil)))

	store.Remove(123, "slots")
	_, ok := store.Get(123, "slots")
	assert.False(t, ok)

	// Removing an absent session is harmless
	store.Remove(123, "slots")
}
