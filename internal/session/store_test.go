// ABOUTME: Tests for the persisted session store
// ABOUTME: Covers expiry and cookie round-trips, clearing, and corrupt files

package session

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestStore_RoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	if _, ok := s.Load(); ok {
		t.Fatal("expected empty store")
	}

	if err := s.Save(1700000000000, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, ok := s.Load()
	if !ok {
		t.Fatal("expected stored expiry")
	}
	if got != 1700000000000 {
		t.Errorf("expected 1700000000000, got %d", got)
	}
}

func TestStore_CookieRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	if got := s.LoadCookies(); got != nil {
		t.Fatalf("expected no cookies in empty store, got %v", got)
	}

	cookies := []*http.Cookie{
		{Name: "access_token", Value: "tok-1"},
		{Name: "refresh_token", Value: "tok-2"},
	}
	if err := s.Save(1700000000000, cookies); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := s.LoadCookies()
	if len(got) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(got))
	}
	if got[0].Name != "access_token" || got[0].Value != "tok-1" {
		t.Errorf("unexpected first cookie: %+v", got[0])
	}
	if got[1].Name != "refresh_token" || got[1].Value != "tok-2" {
		t.Errorf("unexpected second cookie: %+v", got[1])
	}

	// Expiry still reads back alongside the cookies.
	if expiry, ok := s.Load(); !ok || expiry != 1700000000000 {
		t.Errorf("expected expiry to survive, got %d (ok=%v)", expiry, ok)
	}
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(t.TempDir())

	if err := s.Save(123, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok := s.Load(); ok {
		t.Error("expected store empty after clear")
	}

	// Clearing an already-empty store is not an error.
	if err := s.Clear(); err != nil {
		t.Errorf("clear on empty store failed: %v", err)
	}
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.Load(); ok {
		t.Error("expected corrupt file to read as no session")
	}
}

func TestStore_CreatesConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	s := NewStore(dir)

	if err := s.Save(42, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if got, ok := s.Load(); !ok || got != 42 {
		t.Errorf("expected 42, got %d (ok=%v)", got, ok)
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	if got := DefaultConfigDir(); got != "/tmp/xdg/ventas-admin" {
		t.Errorf("unexpected config dir: %s", got)
	}
}
