// ABOUTME: Session lifecycle manager for the cookie-based backend auth
// ABOUTME: Schedules token refreshes ahead of expiry and fails closed

package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nmorales/ventas-admin/internal/client"
)

// RefreshLead is how long before token expiry the auto-refresh fires.
const RefreshLead = time.Minute

// loginFallbackMessage is shown when a login failure carries no usable
// message from the server or transport.
const loginFallbackMessage = "Error de red o del servidor"

// AuthAPI is the slice of the backend client the manager needs. The
// cookie accessors let the manager persist the backend's HTTP-only
// session cookies next to the expiry and reinstall them on resume, so
// the session survives across program invocations.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*client.TokenInfo, error)
	RefreshToken(ctx context.Context) (*client.TokenInfo, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*client.Usuario, error)
	Cookies() []*http.Cookie
	SetCookies(cookies []*http.Cookie)
}

// LoginResult reports a login attempt to the UI layer. Message is only
// set on failure.
type LoginResult struct {
	OK      bool
	Message string
}

// Manager owns the session: it tracks the token expiry, keeps exactly
// one pending refresh timer, and clears all session state on any
// refresh failure so the user is sent back to login rather than left
// with a silently dead cookie.
type Manager struct {
	api   AuthAPI
	store *Store
	now   func() time.Time

	sf singleflight.Group

	mu        sync.Mutex
	timer     *time.Timer
	gen       uint64
	refreshAt time.Time
	armed     bool
	user      *client.Usuario

	// refreshCtx governs timer-fired refreshes; cancelled on endSession
	// so an in-flight refresh stops with the session.
	refreshCtx    context.Context
	refreshCancel context.CancelFunc
}

// NewManager builds a manager around the API client and session store.
func NewManager(api AuthAPI, store *Store) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{api: api, store: store, now: time.Now, refreshCtx: ctx, refreshCancel: cancel}
}

// Login authenticates against the backend. On success the expiry is
// persisted and the auto-refresh timer armed. On failure the result
// message is, in order of preference, the server's structured message,
// the transport error text, or a generic fallback.
func (m *Manager) Login(ctx context.Context, email, password string) LoginResult {
	tok, err := m.api.Login(ctx, email, password)
	if err != nil {
		msg := loginFallbackMessage
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		} else if err.Error() != "" {
			msg = err.Error()
		}
		return LoginResult{OK: false, Message: msg}
	}

	if tok.AccessTokenExpiresAt <= 0 {
		// Authenticated, but with no expiry there is nothing to
		// schedule; the session will simply lapse server-side.
		slog.Warn("login response carried no token expiry, auto-refresh disabled")
		return LoginResult{OK: true}
	}

	if err := m.store.Save(tok.AccessTokenExpiresAt, m.api.Cookies()); err != nil {
		slog.Warn("failed to persist session", "error", err)
	}
	m.ScheduleAutoRefresh(ctx, tok.AccessTokenExpiresAt)
	return LoginResult{OK: true}
}

// ScheduleAutoRefresh arms a single refresh timer to fire RefreshLead
// before the given expiry (epoch milliseconds). Any previously pending
// timer is cancelled first, so at most one refresh is ever scheduled.
// An expiry already inside the lead window triggers an immediate
// synchronous refresh instead.
func (m *Manager) ScheduleAutoRefresh(ctx context.Context, expiresAtMs int64) {
	m.mu.Lock()
	m.cancelTimerLocked()

	target := time.UnixMilli(expiresAtMs).Add(-RefreshLead)
	delay := target.Sub(m.now())
	if delay <= 0 {
		m.mu.Unlock()
		// Token is about to expire; refresh inline rather than
		// arming a timer that would fire immediately.
		if err := m.RefreshAccessToken(ctx); err != nil {
			slog.Warn("immediate token refresh failed", "error", err)
		}
		return
	}

	gen := m.gen
	m.refreshAt = target
	m.armed = true
	m.timer = time.AfterFunc(delay, func() {
		m.fireRefresh(gen)
	})
	m.mu.Unlock()
}

// fireRefresh runs in the timer goroutine. A stale generation means the
// timer was superseded or the session ended; the fire is then a no-op.
func (m *Manager) fireRefresh(gen uint64) {
	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.armed = false
	ctx := m.refreshCtx
	m.mu.Unlock()

	if _, ok := m.store.Load(); !ok {
		// Logged out between scheduling and firing.
		return
	}
	if err := m.RefreshAccessToken(ctx); err != nil {
		slog.Warn("scheduled token refresh failed", "error", err)
	}
}

// RefreshAccessToken renews the token and re-arms the timer from the
// new expiry. Any failure, including a response without a usable
// expiry, ends the session: stored expiry cleared, timer cancelled.
// There is no retry; the next login starts a fresh session.
func (m *Manager) RefreshAccessToken(ctx context.Context) error {
	tok, err := m.api.RefreshToken(ctx)
	if err != nil {
		m.endSession()
		return err
	}
	if tok.AccessTokenExpiresAt <= 0 {
		m.endSession()
		return errors.New("refresh response carried no token expiry")
	}

	// The backend may rotate the cookie on refresh; persist it with the
	// new expiry.
	if err := m.store.Save(tok.AccessTokenExpiresAt, m.api.Cookies()); err != nil {
		slog.Warn("failed to persist refreshed session", "error", err)
	}
	m.ScheduleAutoRefresh(ctx, tok.AccessTokenExpiresAt)
	return nil
}

// Logout tells the backend to drop the session and always clears local
// state, even when the remote call fails. The returned error reports
// the remote failure for logging; local cleanup is unconditional.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.api.Logout(ctx)
	m.endSession()
	return err
}

// endSession clears every trace of the session. The store is cleared
// before the timer is cancelled so a timer firing in the gap sees no
// stored expiry and does nothing.
func (m *Manager) endSession() {
	if err := m.store.Clear(); err != nil {
		slog.Warn("failed to clear stored session", "error", err)
	}
	m.mu.Lock()
	m.cancelTimerLocked()
	m.user = nil
	// Stop any in-flight refresh; the next login gets a fresh context.
	m.refreshCancel()
	m.refreshCtx, m.refreshCancel = context.WithCancel(context.Background())
	m.mu.Unlock()
}

// cancelTimerLocked invalidates any pending refresh. Callers hold mu.
func (m *Manager) cancelTimerLocked() {
	m.gen++
	m.armed = false
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// Resume re-arms the refresh timer from a previously stored session,
// for example when the program starts with a live session on disk. The
// stored backend cookies are reinstalled first, so the refresh (and
// every later request) carries the credential. It reports whether a
// stored session was found.
func (m *Manager) Resume(ctx context.Context) bool {
	expiresAt, ok := m.store.Load()
	if !ok {
		return false
	}
	m.api.SetCookies(m.store.LoadCookies())
	m.ScheduleAutoRefresh(ctx, expiresAt)
	return true
}

// Authenticated reports whether a stored, unexpired session exists.
func (m *Manager) Authenticated() bool {
	expiresAt, ok := m.store.Load()
	return ok && m.now().UnixMilli() < expiresAt
}

// LoadUser fetches the authenticated user, deduplicating concurrent
// calls. The result is cached until the session ends.
func (m *Manager) LoadUser(ctx context.Context) (*client.Usuario, error) {
	m.mu.Lock()
	if m.user != nil {
		u := m.user
		m.mu.Unlock()
		return u, nil
	}
	m.mu.Unlock()

	v, err, _ := m.sf.Do("me", func() (interface{}, error) {
		return m.api.Me(ctx)
	})
	if err != nil {
		return nil, err
	}
	u := v.(*client.Usuario)
	m.mu.Lock()
	m.user = u
	m.mu.Unlock()
	return u, nil
}

// CurrentUser returns the cached user, or nil when none is loaded.
func (m *Manager) CurrentUser() *client.Usuario {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// HasRole reports whether the cached user holds the exact role name.
// Comparison is case-sensitive; with no user loaded it is false.
func (m *Manager) HasRole(name string) bool {
	m.mu.Lock()
	u := m.user
	m.mu.Unlock()
	if u == nil {
		return false
	}
	for _, role := range u.Role {
		if role.Name == name {
			return true
		}
	}
	return false
}

// CanAccess reports whether the cached user may enter the section.
func (m *Manager) CanAccess(s Section) bool {
	m.mu.Lock()
	u := m.user
	m.mu.Unlock()
	return Allowed(u, s)
}

// RefreshPending returns the time the next auto-refresh will fire, and
// whether one is armed.
func (m *Manager) RefreshPending() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshAt, m.armed
}
