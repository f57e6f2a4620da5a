package application

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"jnmoveis/internal/assistant/domain"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

const (
	// DefaultSessionTTL inactivité au-delà de laquelle une session est oubliée
	DefaultSessionTTL = 2 * time.Hour
	// DefaultHistory messages conservés par session (environ 20 échanges)
	DefaultHistory = 40
)

// Session historique d'une conversation; les tours d'une même session sont sérialisés
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	messages []openai.ChatCompletionMessage
}

// History copie de l'historique
func (s *Session) History() []openai.ChatCompletionMessage {
	return append([]openai.ChatCompletionMessage(nil), s.messages...)
}

// SessionStore sessions en mémoire, expirées après ttl d'inactivité
type SessionStore struct {
	cache   *sharedinfra.InMemoryCache
	ttl     time.Duration
	history int
}

// NewSessionStore crée le magasin; les valeurs nulles prennent les défauts
func NewSessionStore(ttl time.Duration, history int) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if history <= 0 {
		history = DefaultHistory
	}
	return &SessionStore{
		cache:   sharedinfra.NewInMemoryCache(ttl),
		ttl:     ttl,
		history: history,
	}
}

func sessionKey(id uuid.UUID) string {
	return sharedinfra.NewCacheKeyBuilder("session").Add(id.String()).Build()
}

// New ouvre une session
func (s *SessionStore) New() *Session {
	session := &Session{ID: uuid.New()}
	s.cache.Set(sessionKey(session.ID), session, s.ttl)
	return session
}

// Get session par identifiant; ErrSessionNotFound si inconnue, expirée ou mal formée
func (s *SessionStore) Get(id string) (*Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrSessionNotFound, id)
	}
	v, ok := s.cache.Get(sessionKey(parsed))
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, parsed)
	}
	return v.(*Session), nil
}

// Open session existante, ou nouvelle quand id est vide
func (s *SessionStore) Open(id string) (*Session, error) {
	if id == "" {
		return s.New(), nil
	}
	return s.Get(id)
}

// Save remplace l'historique et prolonge la session.
// L'historique tronqué commence toujours par un message utilisateur.
func (s *SessionStore) Save(session *Session, messages []openai.ChatCompletionMessage) {
	if len(messages) > s.history {
		messages = messages[len(messages)-s.history:]
		for len(messages) > 0 && messages[0].Role != openai.ChatMessageRoleUser {
			messages = messages[1:]
		}
	}
	session.messages = messages
	s.cache.Set(sessionKey(session.ID), session, s.ttl)
}

// Delete ferme une session
func (s *SessionStore) Delete(id string) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}
	s.cache.Delete(sessionKey(session.ID))
	return nil
}

// Len nombre de sessions actives
func (s *SessionStore) Len() int {
	return s.cache.Len()
}

// Close arrête le nettoyage périodique
func (s *SessionStore) Close() {
	s.cache.Stop()
}
