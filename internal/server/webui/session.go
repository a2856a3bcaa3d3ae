package webui

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/dashboard"
	"github.com/sbdiallo/stockboard/internal/domain/models"
	"github.com/sbdiallo/stockboard/pkg/clients/inventory"
)

// Session binds one logged-in user to one dashboard instance. It is the
// session capability handed into the dashboard core: the core reads the
// current user and requests logout through it, but never owns it.
type Session struct {
	ID   string
	User models.AuthUser
	Dash *dashboard.Dashboard

	manager *SessionManager
}

// CurrentUser returns the logged-in username.
func (s *Session) CurrentUser() string { return s.User.Username }

// Logout discards the session.
func (s *Session) Logout() { s.manager.Remove(s.ID) }

// ClientFactory builds an authenticated inventory client for a bearer token.
type ClientFactory func(token string) inventory.Client

// SessionManager handles the per-user dashboard sessions.
type SessionManager struct {
	newClient ClientFactory
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates a new session manager.
func NewSessionManager(newClient ClientFactory, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		newClient: newClient,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Create starts a dashboard session for the given user and API token.
func (sm *SessionManager) Create(user models.AuthUser, token string) *Session {
	session := &Session{
		ID:      uuid.NewString(),
		User:    user,
		manager: sm,
	}
	session.Dash = dashboard.New(sm.newClient(token), session, sm.logger.Named("dashboard"))

	sm.mu.Lock()
	sm.sessions[session.ID] = session
	sm.mu.Unlock()

	sm.logger.Info("session created", zap.String("user", user.Username))
	return session
}

// Get retrieves a session by id.
func (sm *SessionManager) Get(id string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, ok := sm.sessions[id]
	return session, ok
}

// Remove discards a session.
func (sm *SessionManager) Remove(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, id)
}
