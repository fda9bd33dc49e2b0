// ABOUTME: Persists the session between program runs
// ABOUTME: Small JSON file with token expiry and backend cookies under the user config directory

package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

const storeFileName = "session.json"

// storedCookie is the persisted shape of a backend session cookie. Only
// name and value matter for replay; the jar scopes them to the API host.
type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// storedSession is the on-disk shape: the token expiry plus the
// HTTP-only cookies the backend set, so a fresh process can resume the
// session the way a browser would with its own cookie store.
type storedSession struct {
	AccessTokenExpiresAt int64          `json:"accessTokenExpiresAt"`
	Cookies              []storedCookie `json:"cookies,omitempty"`
}

// Store reads and writes the persisted session.
type Store struct {
	path string
}

// NewStore creates a store rooted at the given config directory.
func NewStore(configDir string) *Store {
	return &Store{path: filepath.Join(configDir, storeFileName)}
}

// DefaultConfigDir resolves the per-user config directory, honoring
// XDG_CONFIG_HOME.
func DefaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "ventas-admin")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".ventas-admin")
	}
	return filepath.Join(home, ".config", "ventas-admin")
}

func (s *Store) read() (storedSession, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return storedSession{}, false
	}
	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		slog.Warn("discarding corrupt session file", "path", s.path, "error", err)
		return storedSession{}, false
	}
	return stored, true
}

// Load returns the stored expiry in epoch milliseconds. The second
// return is false when nothing is stored or the file is unreadable.
func (s *Store) Load() (int64, bool) {
	stored, ok := s.read()
	if !ok || stored.AccessTokenExpiresAt <= 0 {
		return 0, false
	}
	return stored.AccessTokenExpiresAt, true
}

// LoadCookies returns the persisted backend cookies, or nil when no
// session is stored.
func (s *Store) LoadCookies() []*http.Cookie {
	stored, ok := s.read()
	if !ok || len(stored.Cookies) == 0 {
		return nil
	}
	cookies := make([]*http.Cookie, 0, len(stored.Cookies))
	for _, c := range stored.Cookies {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return cookies
}

// Save writes the expiry and the backend cookies, creating the config
// directory if needed. The file stays 0600: the cookies are the session
// credential.
func (s *Store) Save(expiresAtMs int64, cookies []*http.Cookie) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	stored := storedSession{AccessTokenExpiresAt: expiresAtMs}
	for _, c := range cookies {
		stored.Cookies = append(stored.Cookies, storedCookie{Name: c.Name, Value: c.Value})
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the stored session. A missing file is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
