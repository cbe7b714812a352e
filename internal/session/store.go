package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"

	"github.com/smartpest-dev/smartpest/internal/models"
)

const (
	// Logical keys for the two persisted session fields
	KeyAuthToken = "authToken"
	KeyUser      = "user"

	keyringService = "smartpest"

	configDirName   = "smartpest"
	sessionFileName = "session.json"
)

// ErrCorruptSession indicates the persisted profile could not be decoded.
// It is handled internally by clearing the store; it is never user-visible.
var ErrCorruptSession = errors.New("corrupt session data")

// Store is the key-value persistence boundary for session data. Backends can
// be swapped (file, OS keyring, in-memory for tests) without touching the
// session context.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// FileStore persists keys as a JSON object in a single file under the user's
// config directory, surviving restarts.
type FileStore struct {
	path string
}

// NewFileStore creates a file store at the default per-user location
func NewFileStore() (*FileStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	path := filepath.Join(homeDir, ".config", configDirName, sessionFileName)
	return NewFileStoreAt(path), nil
}

// NewFileStoreAt creates a file store at an explicit path
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// Unreadable file is treated as empty; the typed layer fails closed
		return map[string]string{}, nil
	}
	return values, nil
}

func (s *FileStore) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

func (s *FileStore) Remove(key string) error {
	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

// KeyringStore persists keys in the OS keychain/credential manager
type KeyringStore struct {
	service string
}

// NewKeyringStore creates a keyring-backed store
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: keyringService}
}

func (s *KeyringStore) Get(key string) (string, bool, error) {
	value, err := keyring.Get(s.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read keyring: %w", err)
	}
	return value, true, nil
}

func (s *KeyringStore) Set(key, value string) error {
	if err := keyring.Set(s.service, key, value); err != nil {
		return fmt.Errorf("failed to write keyring: %w", err)
	}
	return nil
}

func (s *KeyringStore) Remove(key string) error {
	if err := keyring.Delete(s.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory store for tests and ephemeral sessions
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	delete(s.values, key)
	return nil
}

// SessionStore is the typed persistence layer over a Store: exactly two
// fields, the credential and the serialized profile, under fixed keys.
type SessionStore struct {
	kv Store
}

// NewSessionStore wraps a key-value backend
func NewSessionStore(kv Store) *SessionStore {
	return &SessionStore{kv: kv}
}

// Write persists the credential and profile. If the profile cannot be
// serialized, nothing is committed.
func (s *SessionStore) Write(credential string, profile models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}

	if err := s.kv.Set(KeyAuthToken, credential); err != nil {
		return err
	}
	return s.kv.Set(KeyUser, string(data))
}

// Read returns the persisted credential and profile. A missing pair is
// reported as absent (nil profile, no error). A profile that fails to decode,
// or that violates the role invariant, is reported as ErrCorruptSession; the
// caller must clear the store and fall back to logged-out.
func (s *SessionStore) Read() (string, *models.UserProfile, error) {
	credential, haveToken, err := s.kv.Get(KeyAuthToken)
	if err != nil {
		return "", nil, err
	}

	raw, haveUser, err := s.kv.Get(KeyUser)
	if err != nil {
		return "", nil, err
	}

	if !haveToken || !haveUser || credential == "" {
		return "", nil, nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return "", nil, ErrCorruptSession
	}
	if !profile.Role.Valid() {
		return "", nil, ErrCorruptSession
	}

	return credential, &profile, nil
}

// Clear removes both fields; safe to call when nothing is stored
func (s *SessionStore) Clear() error {
	if err := s.kv.Remove(KeyAuthToken); err != nil {
		return err
	}
	return s.kv.Remove(KeyUser)
}
