package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoCredential reports that no bearer credential is persisted.
var ErrNoCredential = errors.New("session: no credential stored")

// Store persists exactly one bearer credential across restarts. Load returns
// ErrNoCredential when nothing is stored; Clear is idempotent.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type credentialFile struct {
	Credential string `json:"credential"`
}

// FileStore keeps the credential in a single JSON document on disk, the
// client-side equivalent of the browser's fixed-key local storage slot.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// DefaultCredentialPath returns the conventional per-user credential location.
func DefaultCredentialPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("session: resolve config dir: %w", err)
	}
	return filepath.Join(dir, "storelens", "credential.json"), nil
}

// NewFileStore builds a store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted credential.
func (s *FileStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("session: read credential: %w", err)
	}
	var doc credentialFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("session: decode credential: %w", err)
	}
	if doc.Credential == "" {
		return "", ErrNoCredential
	}
	return doc.Credential, nil
}

// Save writes the credential, creating parent directories as needed.
func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" {
		return errors.New("session: refusing to store empty credential")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: create credential dir: %w", err)
	}
	data, err := json.Marshal(credentialFile{Credential: token})
	if err != nil {
		return fmt.Errorf("session: encode credential: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session: write credential: %w", err)
	}
	return nil
}

// Clear removes the credential file; clearing an already-empty store is a
// no-op.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: clear credential: %w", err)
	}
	return nil
}

// Token implements backend.TokenSource: the current credential or empty.
func (s *FileStore) Token() string {
	token, err := s.Load()
	if err != nil {
		return ""
	}
	return token
}

// MemoryStore is an in-process Store for tests and demos.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored credential or ErrNoCredential.
func (s *MemoryStore) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNoCredential
	}
	return s.token, nil
}

// Save replaces the stored credential.
func (s *MemoryStore) Save(token string) error {
	if token == "" {
		return errors.New("session: refusing to store empty credential")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear drops the stored credential.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Token implements backend.TokenSource.
func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
