package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gabble-labs/gabble/backend/internal/model/chat"
)

var ErrSessionNotFound = errors.New("session not found")

// Service keeps per-session state the client chooses to sync: the session
// record itself, an optional transcript for audit/debug, and the user's
// preferences. Everything is in memory; the turn pipeline never reads it.
type Service struct {
	mu          sync.RWMutex
	sessions    map[string]chat.Session
	messages    map[string][]chat.Message
	preferences map[string]chat.Preferences
}

// NewService bootstraps the in-memory store.
func NewService() *Service {
	return &Service{
		sessions:    make(map[string]chat.Session),
		messages:    make(map[string][]chat.Message),
		preferences: make(map[string]chat.Preferences),
	}
}

// CreateSession provisions an anonymous session bound to a personality.
func (s *Service) CreateSession(_ context.Context, personalityID string) (chat.Session, error) {
	session := chat.Session{
		ID:          uuid.NewString(),
		Personality: personalityID,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.messages[session.ID] = make([]chat.Message, 0, 16)
	s.mu.Unlock()

	return session, nil
}

// SaveMessage appends a message to the session transcript.
func (s *Service) SaveMessage(_ context.Context, message chat.Message) error {
	if message.SessionID == "" {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[message.SessionID]; !ok {
		return ErrSessionNotFound
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	s.messages[message.SessionID] = append(s.messages[message.SessionID], message)
	return nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// LoadTranscript returns stored messages for the provided session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// GetPreferences returns stored preferences, or the defaults when the
// session has never saved any.
func (s *Service) GetPreferences(_ context.Context, sessionID string) (chat.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return chat.Preferences{}, ErrSessionNotFound
	}
	if prefs, ok := s.preferences[sessionID]; ok {
		return prefs, nil
	}
	return chat.DefaultPreferences(), nil
}

// SavePreferences upserts the preferences row for a session.
func (s *Service) SavePreferences(_ context.Context, sessionID string, prefs chat.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	s.preferences[sessionID] = prefs
	return nil
}
