// ABOUTME: Tests for the login and logout command flows
// ABOUTME: Runs against httptest servers standing in for the backend

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func setupCmdTest(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg = nil
	apiURLFlag = server.URL
	t.Cleanup(func() { apiURLFlag = ""; cfg = nil; jsonOutput = false })
	return server
}

func TestRunLogin_Success(t *testing.T) {
	setupCmdTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		expiry := time.Now().Add(time.Hour).UnixMilli()
		w.Write([]byte(`{"accessTokenExpiresAt": ` + strconv.FormatInt(expiry, 10) + `}`))
	}))

	loginEmail = "admin@example.com"
	loginPassword = "secret"
	defer func() { loginEmail = ""; loginPassword = "" }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Logged in as admin@example.com") {
		t.Errorf("unexpected output: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "Session refresh scheduled") {
		t.Errorf("expected refresh schedule in output: %s", buf.String())
	}
}

func TestRunLogin_BadCredentials(t *testing.T) {
	setupCmdTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Credenciales inválidas"}`))
	}))

	loginEmail = "admin@example.com"
	loginPassword = "wrong"
	defer func() { loginEmail = ""; loginPassword = "" }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Credenciales inválidas") {
		t.Errorf("expected server message in output: %s", buf.String())
	}
}

func TestRunLogout_RemoteFailureStillSucceeds(t *testing.T) {
	setupCmdTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "boom"}`))
	}))

	var buf bytes.Buffer
	if code := runLogout(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "local session cleared") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
