package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Session is the signed-in state a view needs to call authenticated
// endpoints.
type Session struct {
	AccessToken string    `json:"access_token"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Token returns the bearer token, or ErrNoSession when there is none or it
// has expired.
func (s *Session) Token() (string, error) {
	if s == nil || s.AccessToken == "" {
		return "", ErrNoSession
	}
	if !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt) {
		return "", ErrNoSession
	}
	return s.AccessToken, nil
}

// NewSession builds a session from a Register or Login result.
func NewSession(res *AuthResult) *Session {
	s := &Session{
		AccessToken: res.Token,
		UserID:      res.ID,
		Username:    res.Username,
	}
	if res.ExpiresAt != nil {
		s.ExpiresAt = *res.ExpiresAt
	}
	return s
}

// SessionStore persists the current session between invocations.
type SessionStore interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// FileSessionStore keeps the session as JSON in a file only the owner can
// read.
type FileSessionStore struct {
	Path string
}

// DefaultSessionPath is ~/.promptvault/session.json.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".promptvault", "session.json"), nil
}

// Load returns ErrNoSession when no session was saved.
func (f *FileSessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return &s, nil
}

func (f *FileSessionStore) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o600)
}

func (f *FileSessionStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemorySessionStore keeps the session in memory.
type MemorySessionStore struct {
	mu      sync.Mutex
	session *Session
}

func (m *MemorySessionStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, ErrNoSession
	}
	s := *m.session
	return &s, nil
}

func (m *MemorySessionStore) Save(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	m.session = &copied
	return nil
}

func (m *MemorySessionStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
