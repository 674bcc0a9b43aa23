package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the session across command invocations. Save and Clear
// replace or remove all fields in one step; readers never observe a
// partially written session.
type Store interface {
	Save(Session) error
	Load() (Session, error)
	Clear() error
	IsAuthenticated() bool
}

// FileStore keeps the session in a JSON file, the CLI analogue of the
// browser's origin-scoped local storage.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Save(s Session) error {
	s = s.normalize()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	// Write-then-rename so a crash mid-write cannot leave a torn session.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

func (f *FileStore) Load() (Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// A corrupt session file is the same as no session.
		return Session{}, nil
	}
	return s.normalize(), nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (f *FileStore) IsAuthenticated() bool {
	s, err := f.Load()
	return err == nil && s.AccessToken != ""
}

// MemoryStore is the in-memory backing store used by tests.
type MemoryStore struct {
	mu sync.Mutex
	s  Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s.normalize()
	return nil
}

func (m *MemoryStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = Session{}
	return nil
}

func (m *MemoryStore) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.AccessToken != ""
}
