// ABOUTME: Tests for the customer commands and section gating
// ABOUTME: Uses a fake backend with a stored session on disk

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/nmorales/ventas-admin/internal/session"
)

// storeSession writes a live session where requireSection will find it.
// setupCmdTest points XDG_CONFIG_HOME at a temp dir first.
func storeSession(t *testing.T) {
	t.Helper()
	store := session.NewStore(session.DefaultConfigDir())
	cookies := []*http.Cookie{{Name: "access_token", Value: "tok-1"}}
	if err := store.Save(time.Now().Add(time.Hour).UnixMilli(), cookies); err != nil {
		t.Fatal(err)
	}
}

func backendWithUser(t *testing.T, roles string, extra http.HandlerFunc) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 1, "email": "admin@example.com", "role": [` + roles + `]}`))
	})
	mux.HandleFunc("/users/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		expiry := time.Now().Add(time.Hour).UnixMilli()
		w.Write([]byte(`{"accessTokenExpiresAt": ` + strconv.FormatInt(expiry, 10) + `}`))
	})
	if extra != nil {
		mux.HandleFunc("/", extra)
	}
	return mux
}

func TestRunClientesList(t *testing.T) {
	setupCmdTest(t, backendWithUser(t, `{"id": 1, "name": "dueño"}`, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cliente" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"data": [
			{"id": 1, "nombre": "Juan", "apellido": "Pérez", "tipo_documento": "DNI", "num_documento": "30111222", "telefono": "351-555"}
		], "total": 1}`))
	}))
	storeSession(t)

	var buf bytes.Buffer
	if code := runClientesList(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "Pérez") || !strings.Contains(out, "1 of 1 customers") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestRunClientesList_DeniedRole(t *testing.T) {
	setupCmdTest(t, backendWithUser(t, `{"id": 4, "name": "vendedor"}`, nil))
	storeSession(t)

	var buf bytes.Buffer
	if code := runClientesList(context.Background(), &buf); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "Not authorized") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestRunClientesList_NoSession(t *testing.T) {
	setupCmdTest(t, backendWithUser(t, `{"id": 1, "name": "dueño"}`, nil))
	// No stored session.

	var buf bytes.Buffer
	if code := runClientesList(context.Background(), &buf); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "No active session") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestRunClientesCreate_RequiresFields(t *testing.T) {
	setupCmdTest(t, backendWithUser(t, `{"id": 4, "name": "vendedor"}`, nil))
	storeSession(t)

	clienteNombre = ""
	clienteApellido = ""
	clienteNumDoc = ""

	var buf bytes.Buffer
	if code := runClientesCreate(context.Background(), &buf); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "required") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestParseDetalles(t *testing.T) {
	lines, err := parseDetalles([]string{"3:2", "7:1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[0].ProductoID != 3 || lines[0].Cantidad != 2 {
		t.Errorf("unexpected lines: %+v", lines)
	}

	if _, err := parseDetalles([]string{"bad"}); err == nil {
		t.Error("expected error for malformed detalle")
	}
	if _, err := parseDetalles([]string{"0:5"}); err == nil {
		t.Error("expected error for zero product id")
	}
	if _, err := parseDetalles([]string{"3:0"}); err == nil {
		t.Error("expected error for zero quantity")
	}
}
