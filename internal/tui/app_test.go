// ABOUTME: Integration tests for the root TUI model
// ABOUTME: Tests screen transitions and message routing

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/nmorales/ventas-admin/internal/cache"
	"github.com/nmorales/ventas-admin/internal/client"
	"github.com/nmorales/ventas-admin/internal/session"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	c := client.New("http://localhost:3001", "")
	m := session.NewManager(c, session.NewStore(t.TempDir()))
	return NewApp(m, c, cache.NewRefs(time.Minute))
}

func duenoUser() *client.Usuario {
	return &client.Usuario{
		ID:    "1",
		Email: "ana@empresa.com",
		Role:  []client.Role{{ID: 1, Name: session.RoleDueno}},
	}
}

func TestAppInitialScreenIsLogin(t *testing.T) {
	app := newTestApp(t)

	if app.screen != ScreenLogin {
		t.Errorf("expected initial screen to be ScreenLogin, got %d", app.screen)
	}
	if app.login == nil {
		t.Error("expected login screen to be initialized")
	}
}

func TestAppLoginFailureShowsMessage(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40

	msg := loginResultMsg{result: session.LoginResult{OK: false, Message: "Credenciales inválidas"}}
	updated, _ := app.Update(msg)

	result := updated.(*App)
	if result.screen != ScreenLogin {
		t.Errorf("expected to stay on ScreenLogin, got %d", result.screen)
	}
	if !strings.Contains(result.View(), "Credenciales inválidas") {
		t.Error("expected login view to show the failure message")
	}
}

func TestAppUserLoadedBuildsMenu(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40

	msg := userLoadedMsg{user: duenoUser()}
	updated, _ := app.Update(msg)

	result := updated.(*App)
	if result.screen != ScreenMenu {
		t.Errorf("expected ScreenMenu after user loaded, got %d", result.screen)
	}
	if result.menu == nil {
		t.Error("expected menu to be created")
	}
	if !strings.Contains(result.View(), "ana@empresa.com") {
		t.Error("expected menu view to show the user email")
	}
}

func TestAppListingLoadedFillsBrowser(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40
	app.section = session.SectionVentas
	app.browser = NewBrowser("Ventas", 20)
	app.screen = ScreenBrowser

	msg := listingLoadedMsg{
		section: session.SectionVentas,
		headers: []string{"ID", "Cliente", "Total"},
		rows:    [][]string{{"1", "García Ana", "350.00"}},
	}
	updated, _ := app.Update(msg)

	result := updated.(*App)
	view := result.View()
	if !strings.Contains(view, "García Ana") {
		t.Error("expected browser view to contain the loaded row")
	}
	if !strings.Contains(view, "Cliente") {
		t.Error("expected browser view to contain the header")
	}
}

func TestAppStaleListingIsIgnored(t *testing.T) {
	app := newTestApp(t)
	app.section = session.SectionVentas
	app.browser = NewBrowser("Ventas", 20)
	app.screen = ScreenBrowser

	// A response for a section the user already left must not clobber
	// the current browser.
	msg := listingLoadedMsg{
		section: session.SectionProductos,
		headers: []string{"ID"},
		rows:    [][]string{{"9"}},
	}
	updated, _ := app.Update(msg)

	result := updated.(*App)
	if !result.browser.loading {
		t.Error("expected browser to remain in loading state")
	}
}

func TestAppViewContainsFrame(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40

	view := app.View()
	if !strings.Contains(view, "Ventas Admin") {
		t.Error("expected header to contain 'Ventas Admin'")
	}
	if !strings.Contains(view, "╭─") || !strings.Contains(view, "╰─") {
		t.Error("expected header and footer borders")
	}
}

func TestFormatTimeSince(t *testing.T) {
	if got := formatTimeSince(time.Now()); got != "just now" {
		t.Errorf("expected 'just now', got %q", got)
	}
	if got := formatTimeSince(time.Now().Add(-30 * time.Second)); !strings.HasSuffix(got, "s ago") {
		t.Errorf("expected seconds suffix, got %q", got)
	}
	if got := formatTimeSince(time.Now().Add(-5 * time.Minute)); got != "5m ago" {
		t.Errorf("expected '5m ago', got %q", got)
	}
}
