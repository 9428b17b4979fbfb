package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/flicky/carcare-storefront/internal/model"
)

// MockSession remembers the signed-in mock user across restarts.
type MockSession struct {
	mu    sync.Mutex
	path  string
	carts CartRepository
}

type sessionFile struct {
	User *model.User `json:"user"`
}

func NewMockSession(path string, carts CartRepository) *MockSession {
	return &MockSession{path: path, carts: carts}
}

// Load returns nil when no session has been saved.
func (s *MockSession) Load() (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *MockSession) read() (*model.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read mock session: %w", err)
	}
	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode mock session: %w", err)
	}
	return f.User, nil
}

func (s *MockSession) Save(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.PasswordHash = ""
	data, err := json.Marshal(sessionFile{User: &user})
	if err != nil {
		return fmt.Errorf("encode mock session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write mock session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write mock session: %w", err)
	}
	return nil
}

// Clear forgets the session and empties the cart of userID. It does
// nothing when the saved session belongs to someone else.
func (s *MockSession) Clear(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, err := s.read()
	if err != nil {
		return err
	}
	if user == nil || user.ID != userID {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove mock session: %w", err)
	}
	if s.carts != nil {
		return s.carts.Clear(ctx, user.ID)
	}
	return nil
}

func (s *MockSession) Path() string {
	return filepath.Clean(s.path)
}
