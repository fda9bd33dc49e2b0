// ABOUTME: Tests for the session lifecycle manager
// ABOUTME: Covers refresh scheduling, fail-closed behavior, and role checks

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/nmorales/ventas-admin/internal/client"
)

type fakeAuthAPI struct {
	mu           sync.Mutex
	refreshCount int
	logoutCount  int
	cookies      []*http.Cookie

	loginFn   func() (*client.TokenInfo, error)
	refreshFn func(ctx context.Context) (*client.TokenInfo, error)
	logoutErr error
	meFn      func() (*client.Usuario, error)
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*client.TokenInfo, error) {
	if f.loginFn != nil {
		return f.loginFn()
	}
	return &client.TokenInfo{AccessTokenExpiresAt: time.Now().Add(time.Hour).UnixMilli()}, nil
}

func (f *fakeAuthAPI) RefreshToken(ctx context.Context) (*client.TokenInfo, error) {
	f.mu.Lock()
	f.refreshCount++
	f.mu.Unlock()
	if f.refreshFn != nil {
		return f.refreshFn(ctx)
	}
	return &client.TokenInfo{AccessTokenExpiresAt: time.Now().Add(time.Hour).UnixMilli()}, nil
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	f.mu.Lock()
	f.logoutCount++
	f.mu.Unlock()
	return f.logoutErr
}

func (f *fakeAuthAPI) Me(ctx context.Context) (*client.Usuario, error) {
	if f.meFn != nil {
		return f.meFn()
	}
	return &client.Usuario{Email: "test@example.com"}, nil
}

func (f *fakeAuthAPI) Cookies() []*http.Cookie {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cookies
}

func (f *fakeAuthAPI) SetCookies(cookies []*http.Cookie) {
	f.mu.Lock()
	f.cookies = cookies
	f.mu.Unlock()
}

func (f *fakeAuthAPI) refreshes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshCount
}

func newTestManager(t *testing.T) (*Manager, *fakeAuthAPI) {
	t.Helper()
	api := &fakeAuthAPI{}
	store := NewStore(t.TempDir())
	return NewManager(api, store), api
}

func TestScheduleAutoRefresh_DoesNotFireEarly(t *testing.T) {
	m, api := newTestManager(t)

	expiry := time.Now().Add(time.Hour).UnixMilli()
	m.ScheduleAutoRefresh(context.Background(), expiry)

	if got := api.refreshes(); got != 0 {
		t.Errorf("expected no refresh before the lead window, got %d", got)
	}

	refreshAt, armed := m.RefreshPending()
	if !armed {
		t.Fatal("expected a pending refresh")
	}
	want := time.UnixMilli(expiry).Add(-RefreshLead)
	if !refreshAt.Equal(want) {
		t.Errorf("expected refresh at %v, got %v", want, refreshAt)
	}
}

func TestScheduleAutoRefresh_ImmediateInsideLeadWindow(t *testing.T) {
	m, api := newTestManager(t)

	// Expires in 30s, inside the one-minute lead: refresh runs inline.
	m.ScheduleAutoRefresh(context.Background(), time.Now().Add(30*time.Second).UnixMilli())

	if got := api.refreshes(); got != 1 {
		t.Errorf("expected one immediate refresh, got %d", got)
	}
	// The fake handed back a fresh expiry, so the timer must be re-armed.
	if _, armed := m.RefreshPending(); !armed {
		t.Error("expected timer re-armed after successful refresh")
	}
}

func TestScheduleAutoRefresh_SupersedesPendingTimer(t *testing.T) {
	m, api := newTestManager(t)

	first := time.Now().Add(RefreshLead + 60*time.Millisecond).UnixMilli()
	second := time.Now().Add(RefreshLead + 120*time.Millisecond).UnixMilli()
	m.ScheduleAutoRefresh(context.Background(), first)
	m.ScheduleAutoRefresh(context.Background(), second)

	// The fake returns a far-future expiry on refresh, so the chain
	// stops after one fire. Only the second schedule may fire.
	time.Sleep(250 * time.Millisecond)

	if got := api.refreshes(); got != 1 {
		t.Errorf("expected exactly one refresh from the superseding timer, got %d", got)
	}
}

func TestScheduledRefresh_RearmsFromNewExpiry(t *testing.T) {
	m, api := newTestManager(t)
	if err := m.store.Save(time.Now().Add(time.Hour).UnixMilli(), nil); err != nil {
		t.Fatal(err)
	}

	m.ScheduleAutoRefresh(context.Background(), time.Now().Add(RefreshLead+30*time.Millisecond).UnixMilli())
	time.Sleep(150 * time.Millisecond)

	if got := api.refreshes(); got != 1 {
		t.Fatalf("expected one refresh, got %d", got)
	}
	if _, armed := m.RefreshPending(); !armed {
		t.Error("expected timer re-armed from the refreshed expiry")
	}
	if !m.Authenticated() {
		t.Error("expected session still authenticated after refresh")
	}
}

func TestRefreshFailure_EndsSession(t *testing.T) {
	m, api := newTestManager(t)
	api.refreshFn = func(context.Context) (*client.TokenInfo, error) {
		return nil, errors.New("boom")
	}
	if err := m.store.Save(time.Now().Add(time.Hour).UnixMilli(), nil); err != nil {
		t.Fatal(err)
	}

	if err := m.RefreshAccessToken(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	if _, ok := m.store.Load(); ok {
		t.Error("expected stored expiry cleared after failed refresh")
	}
	if _, armed := m.RefreshPending(); armed {
		t.Error("expected no pending refresh after failure")
	}
	if m.Authenticated() {
		t.Error("expected session ended")
	}
}

func TestRefresh_MissingExpiryIsFailure(t *testing.T) {
	m, api := newTestManager(t)
	api.refreshFn = func(context.Context) (*client.TokenInfo, error) {
		return &client.TokenInfo{}, nil
	}
	if err := m.store.Save(time.Now().Add(time.Hour).UnixMilli(), nil); err != nil {
		t.Fatal(err)
	}

	if err := m.RefreshAccessToken(context.Background()); err == nil {
		t.Fatal("expected error for refresh response without expiry")
	}
	if _, ok := m.store.Load(); ok {
		t.Error("expected stored expiry cleared")
	}
}

func TestLogin_Success(t *testing.T) {
	m, _ := newTestManager(t)

	result := m.Login(context.Background(), "admin@example.com", "secret")
	if !result.OK {
		t.Fatalf("expected login to succeed, got message %q", result.Message)
	}
	if result.Message != "" {
		t.Errorf("expected empty message on success, got %q", result.Message)
	}
	if !m.Authenticated() {
		t.Error("expected authenticated session")
	}
	if _, armed := m.RefreshPending(); !armed {
		t.Error("expected auto-refresh armed after login")
	}
}

func TestLogin_ServerMessagePreferred(t *testing.T) {
	m, api := newTestManager(t)
	api.loginFn = func() (*client.TokenInfo, error) {
		return nil, &client.APIError{StatusCode: 401, Message: "Credenciales inválidas"}
	}

	result := m.Login(context.Background(), "admin@example.com", "wrong")
	if result.OK {
		t.Fatal("expected login to fail")
	}
	if result.Message != "Credenciales inválidas" {
		t.Errorf("expected server message, got %q", result.Message)
	}
}

func TestLogin_TransportErrorText(t *testing.T) {
	m, api := newTestManager(t)
	api.loginFn = func() (*client.TokenInfo, error) {
		return nil, errors.New("cannot connect to backend at http://localhost:3001")
	}

	result := m.Login(context.Background(), "admin@example.com", "secret")
	if result.OK {
		t.Fatal("expected login to fail")
	}
	if result.Message != "cannot connect to backend at http://localhost:3001" {
		t.Errorf("unexpected message: %q", result.Message)
	}
}

type emptyError struct{}

func (emptyError) Error() string { return "" }

func TestLogin_FallbackMessage(t *testing.T) {
	m, api := newTestManager(t)
	api.loginFn = func() (*client.TokenInfo, error) {
		return nil, emptyError{}
	}

	result := m.Login(context.Background(), "admin@example.com", "secret")
	if result.OK {
		t.Fatal("expected login to fail")
	}
	if result.Message != "Error de red o del servidor" {
		t.Errorf("expected fallback message, got %q", result.Message)
	}
}

func TestLogin_MissingExpiryStillSucceeds(t *testing.T) {
	m, api := newTestManager(t)
	api.loginFn = func() (*client.TokenInfo, error) {
		return &client.TokenInfo{}, nil
	}

	result := m.Login(context.Background(), "admin@example.com", "secret")
	if !result.OK {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if _, armed := m.RefreshPending(); armed {
		t.Error("expected no refresh scheduled without an expiry")
	}
	if _, ok := m.store.Load(); ok {
		t.Error("expected nothing persisted without an expiry")
	}
}

func TestLogout_ClearsLocalStateOnRemoteFailure(t *testing.T) {
	m, api := newTestManager(t)
	api.logoutErr = errors.New("backend unavailable")
	if err := m.store.Save(time.Now().Add(time.Hour).UnixMilli(), nil); err != nil {
		t.Fatal(err)
	}
	m.ScheduleAutoRefresh(context.Background(), time.Now().Add(time.Hour).UnixMilli())

	if err := m.Logout(context.Background()); err == nil {
		t.Error("expected remote logout error to be reported")
	}

	if _, ok := m.store.Load(); ok {
		t.Error("expected stored expiry cleared despite remote failure")
	}
	if _, armed := m.RefreshPending(); armed {
		t.Error("expected pending refresh cancelled")
	}
	if m.CurrentUser() != nil {
		t.Error("expected cached user cleared")
	}
}

func TestLogout_PendingTimerDoesNotFire(t *testing.T) {
	m, api := newTestManager(t)
	if err := m.store.Save(time.Now().Add(time.Hour).UnixMilli(), nil); err != nil {
		t.Fatal(err)
	}

	m.ScheduleAutoRefresh(context.Background(), time.Now().Add(RefreshLead+50*time.Millisecond).UnixMilli())
	if err := m.Logout(context.Background()); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)

	if got := api.refreshes(); got != 0 {
		t.Errorf("expected no refresh after logout, got %d", got)
	}
}

func TestHasRole(t *testing.T) {
	m, api := newTestManager(t)
	api.meFn = func() (*client.Usuario, error) {
		return &client.Usuario{
			Email: "admin@example.com",
			Role:  []client.Role{{ID: 1, Name: "dueño"}, {ID: 2, Name: "vendedor"}},
		}, nil
	}

	if m.HasRole("dueño") {
		t.Error("expected false before user is loaded")
	}

	if _, err := m.LoadUser(context.Background()); err != nil {
		t.Fatal(err)
	}

	if !m.HasRole("dueño") {
		t.Error("expected dueño role")
	}
	if !m.HasRole("vendedor") {
		t.Error("expected vendedor role")
	}
	if m.HasRole("Dueño") {
		t.Error("role match must be case-sensitive")
	}
	if m.HasRole("empleado") {
		t.Error("did not expect empleado role")
	}
}

func TestResume(t *testing.T) {
	m, _ := newTestManager(t)

	if m.Resume(context.Background()) {
		t.Error("expected no session to resume")
	}

	if err := m.store.Save(time.Now().Add(time.Hour).UnixMilli(), nil); err != nil {
		t.Fatal(err)
	}
	if !m.Resume(context.Background()) {
		t.Fatal("expected stored session to resume")
	}
	if _, armed := m.RefreshPending(); !armed {
		t.Error("expected refresh armed after resume")
	}
}

func TestAuthenticated_ExpiredSession(t *testing.T) {
	m, _ := newTestManager(t)
	if err := m.store.Save(time.Now().Add(-time.Minute).UnixMilli(), nil); err != nil {
		t.Fatal(err)
	}

	if m.Authenticated() {
		t.Error("expected expired session to read as unauthenticated")
	}
}

func TestResume_RestoresStoredCookies(t *testing.T) {
	m, api := newTestManager(t)
	cookies := []*http.Cookie{{Name: "access_token", Value: "tok-1"}}
	if err := m.store.Save(time.Now().Add(time.Hour).UnixMilli(), cookies); err != nil {
		t.Fatal(err)
	}

	if !m.Resume(context.Background()) {
		t.Fatal("expected stored session to resume")
	}

	got := api.Cookies()
	if len(got) != 1 || got[0].Name != "access_token" || got[0].Value != "tok-1" {
		t.Errorf("expected stored cookie reinstalled into the client, got %v", got)
	}
}

// sessionBackend is an httptest handler that only honors requests
// carrying the session cookie it set at login, like the real backend.
func sessionBackend(t *testing.T, expiresAt int64) (*httptest.Server, *int) {
	t.Helper()
	refreshes := 0
	requireCookie := func(w http.ResponseWriter, r *http.Request) bool {
		c, err := r.Cookie("access_token")
		if err != nil || c.Value != "tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message": "No autorizado"}`)
			return false
		}
		return true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "tok-1", Path: "/", HttpOnly: true})
		json.NewEncoder(w).Encode(map[string]int64{"accessTokenExpiresAt": expiresAt})
	})
	mux.HandleFunc("/users/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		if !requireCookie(w, r) {
			return
		}
		refreshes++
		json.NewEncoder(w).Encode(map[string]int64{"accessTokenExpiresAt": time.Now().Add(time.Hour).UnixMilli()})
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		if !requireCookie(w, r) {
			return
		}
		fmt.Fprint(w, `{"id": 1, "email": "ana@empresa.com", "role": [{"id": 1, "name": "dueño"}]}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &refreshes
}

func TestSessionSurvivesNewClient(t *testing.T) {
	server, _ := sessionBackend(t, time.Now().Add(time.Hour).UnixMilli())
	dir := t.TempDir()

	c1 := client.New(server.URL, "")
	m1 := NewManager(c1, NewStore(dir))
	if result := m1.Login(context.Background(), "ana@empresa.com", "secret"); !result.OK {
		t.Fatalf("login failed: %s", result.Message)
	}

	// A second invocation: fresh client, fresh manager, same store.
	c2 := client.New(server.URL, "")
	m2 := NewManager(c2, NewStore(dir))
	if !m2.Resume(context.Background()) {
		t.Fatal("expected stored session to resume")
	}
	u, err := m2.LoadUser(context.Background())
	if err != nil {
		t.Fatalf("expected the resumed session to authenticate, got %v", err)
	}
	if u.Email != "ana@empresa.com" {
		t.Errorf("unexpected user %q", u.Email)
	}
}

func TestResume_RefreshInsideLeadKeepsSession(t *testing.T) {
	server, refreshes := sessionBackend(t, time.Now().Add(time.Hour).UnixMilli())
	dir := t.TempDir()

	c1 := client.New(server.URL, "")
	m1 := NewManager(c1, NewStore(dir))
	if result := m1.Login(context.Background(), "ana@empresa.com", "secret"); !result.OK {
		t.Fatalf("login failed: %s", result.Message)
	}

	// Rewrite the stored expiry into the lead window, keeping the
	// cookies, so the next resume refreshes immediately.
	store := NewStore(dir)
	if err := store.Save(time.Now().Add(30*time.Second).UnixMilli(), store.LoadCookies()); err != nil {
		t.Fatal(err)
	}

	c2 := client.New(server.URL, "")
	m2 := NewManager(c2, NewStore(dir))
	if !m2.Resume(context.Background()) {
		t.Fatal("expected stored session to resume")
	}

	if *refreshes != 1 {
		t.Fatalf("expected one immediate refresh, got %d", *refreshes)
	}
	if !m2.Authenticated() {
		t.Error("expected the refreshed session to stay authenticated")
	}
	if _, ok := NewStore(dir).Load(); !ok {
		t.Error("expected the stored session to survive the resume")
	}
}

func TestLogout_CancelsInFlightRefresh(t *testing.T) {
	m, api := newTestManager(t)
	if err := m.store.Save(time.Now().Add(time.Hour).UnixMilli(), nil); err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	unblocked := make(chan struct{})
	api.refreshFn = func(ctx context.Context) (*client.TokenInfo, error) {
		close(started)
		<-ctx.Done()
		close(unblocked)
		return nil, ctx.Err()
	}

	m.ScheduleAutoRefresh(context.Background(), time.Now().Add(RefreshLead+30*time.Millisecond).UnixMilli())
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("expected the scheduled refresh to fire")
	}

	if err := m.Logout(context.Background()); err != nil {
		t.Fatal(err)
	}
	select {
	case <-unblocked:
	case <-time.After(time.Second):
		t.Fatal("expected logout to cancel the in-flight refresh")
	}
}
