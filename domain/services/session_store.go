package services

import (
	"fmt"
	"sync"
	"time"

	"croupier/domain"

	"github.com/google/uuid"
)

// GameSession holds the in-flight state of a multi-step game for one user.
// Sessions live only in memory; a restart abandons them and the debited
// stake stays with the house.
type GameSession struct {
	ID        uuid.UUID
	DiscordID int64
	Game      string
	// State carries the game-specific payload, e.g. *games.Blackjack or a
	// high-low reference card
	State     any
	Stake     int64
	CreatedAt time.Time
}

type sessionKey struct {
	discordID int64
	game      string
}

// SessionStore tracks live game sessions keyed by (user, game). One user can
// play different games concurrently but holds at most one session per game.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[sessionKey]*GameSession
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[sessionKey]*GameSession),
	}
}

// NewGameSession builds a session for a placed stake
func NewGameSession(discordID int64, game string, stake int64, state any) *GameSession {
	return &GameSession{
		ID:        uuid.New(),
		DiscordID: discordID,
		Game:      game,
		State:     state,
		Stake:     stake,
		CreatedAt: time.Now().UTC(),
	}
}

// Put stores a session, failing if the user already has a live session for
// the same game
func (s *SessionStore) Put(session *GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey{discordID: session.DiscordID, game: session.Game}
	if _, exists := s.sessions[key]; exists {
		return fmt.Errorf("user %d already has a live %s session", session.DiscordID, session.Game)
	}
	s.sessions[key] = session
	return nil
}

// Replace stores a session, displacing any existing one for the same key
func (s *SessionStore) Replace(session *GameSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey{discordID: session.DiscordID, game: session.Game}] = session
}

// Get returns the live session for (user, game), if any
func (s *SessionStore) Get(discordID int64, game string) (*GameSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionKey{discordID: discordID, game: game}]
	return session, ok
}

// Take atomically removes and returns the live session for (user, game).
// Exactly one caller wins; replayed clicks on a finished game get
// ErrNoActiveSession. This is the idempotency guard for terminal actions.
func (s *SessionStore) Take(discordID int64, game string) (*GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey{discordID: discordID, game: game}
	session, ok := s.sessions[key]
	if !ok {
		return nil, domain.ErrNoActiveSession
	}
	delete(s.sessions, key)
	return session, nil
}

// Remove drops the session for (user, game) if present
func (s *SessionStore) Remove(discordID int64, game string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey{discordID: discordID, game: game})
}
