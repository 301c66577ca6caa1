package session

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Data is the persisted part of a session.
type Data struct {
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Session is the per-request view of a client's session.
type Session struct {
	ID      string
	data    Data
	dirty   bool
	cleared bool
}

// New returns an anonymous session with the given id.
func New(id string) *Session {
	return &Session{ID: id}
}

// Username returns the authenticated username, if any.
func (s *Session) Username() (string, bool) {
	return s.data.Username, s.data.Username != ""
}

// Role returns the role stored at login.
func (s *Session) Role() string {
	return s.data.Role
}

// IsAuthenticated reports whether a user is logged in on this session.
func (s *Session) IsAuthenticated() bool {
	return s.data.Username != ""
}

// Authenticate records a successful login.
func (s *Session) Authenticate(username, role string) {
	s.data = Data{Username: username, Role: role}
	s.dirty = true
	s.cleared = false
}

// Clear drops all session state.
func (s *Session) Clear() {
	s.data = Data{}
	s.dirty = false
	s.cleared = true
}

// Data returns a copy of the session contents.
func (s *Session) Data() Data {
	return s.data
}

// Store persists session data by id.
type Store interface {
	Load(ctx context.Context, id string) (Data, bool, error)
	Save(ctx context.Context, id string, data Data) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// Manager binds sessions to a Store.
type Manager struct {
	store Store
	log   *zap.Logger
}

func NewManager(store Store, log *zap.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// Start loads the session for id, or begins a new anonymous one when id is unknown.
func (m *Manager) Start(ctx context.Context, id string) (*Session, error) {
	if id != "" {
		data, ok, err := m.store.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			return &Session{ID: id, data: data}, nil
		}
	}
	return New(uuid.NewString()), nil
}

// Commit persists changes made during the request.
func (m *Manager) Commit(ctx context.Context, s *Session) error {
	switch {
	case s.cleared:
		m.log.Debug("session cleared", zap.String("session", s.ID))
		return m.store.Delete(ctx, s.ID)
	case s.dirty:
		return m.store.Save(ctx, s.ID, s.data)
	}
	return nil
}
