// ABOUTME: Tests for the API client transport and auth endpoints
// ABOUTME: Uses httptest servers standing in for the backend

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		http.SetCookie(w, &http.Cookie{Name: "accessToken", Value: "abc", HttpOnly: true})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accessTokenExpiresAt": 1700000000000}`))
	}))
	defer server.Close()

	c := New(server.URL, "")
	tok, err := c.Login(context.Background(), "admin@example.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.AccessTokenExpiresAt != 1700000000000 {
		t.Errorf("expected expiry 1700000000000, got %d", tok.AccessTokenExpiresAt)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Credenciales inválidas", "error": "Unauthorized", "statusCode": 401}`))
	}))
	defer server.Close()

	c := New(server.URL, "")
	_, err := c.Login(context.Background(), "admin@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Credenciales inválidas" {
		t.Errorf("unexpected message: %q", apiErr.Message)
	}
}

func TestLogin_ValidationMessageArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": ["email must be an email", "password should not be empty"]}`))
	}))
	defer server.Close()

	c := New(server.URL, "")
	_, err := c.Login(context.Background(), "not-an-email", "")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	want := "email must be an email; password should not be empty"
	if apiErr.Message != want {
		t.Errorf("expected %q, got %q", want, apiErr.Message)
	}
}

func TestCookiePersistsAcrossRequests(t *testing.T) {
	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/login":
			http.SetCookie(w, &http.Cookie{Name: "accessToken", Value: "tok-123", Path: "/"})
			w.Write([]byte(`{"accessTokenExpiresAt": 1}`))
		case "/users/me":
			if cookie, err := r.Cookie("accessToken"); err == nil {
				gotCookie = cookie.Value
			}
			w.Write([]byte(`{"id": 7, "email": "admin@example.com", "role": [{"id": 1, "name": "dueño"}]}`))
		}
	}))
	defer server.Close()

	c := New(server.URL, "")
	if _, err := c.Login(context.Background(), "admin@example.com", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	u, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}

	if gotCookie != "tok-123" {
		t.Errorf("expected session cookie on follow-up request, got %q", gotCookie)
	}
	if len(u.Role) != 1 || u.Role[0].Name != "dueño" {
		t.Errorf("unexpected roles: %+v", u.Role)
	}
}

func TestAdminKeyHeader(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-admin-key")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(server.URL, "super-secret")
	if _, err := c.ListMarcas(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "super-secret" {
		t.Errorf("expected admin key header, got %q", gotKey)
	}
}

func TestSearchProductos_QueryParams(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/producto/advanced" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"total": 0, "data": []}`))
	}))
	defer server.Close()

	c := New(server.URL, "")
	_, err := c.SearchProductos(context.Background(), ProductoFilter{
		Nombre:  "taladro",
		MarcaID: 3,
		Page:    2,
		Limit:   10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "limit=10&marcaId=3&nombre=taladro&page=2" {
		t.Errorf("unexpected query: %s", gotQuery)
	}
}

func TestGetVenta_DecodesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/venta/42" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"id": 42,
			"fecha": "2026-08-01",
			"cliente": "Pérez Juan",
			"formaPago": "Efectivo",
			"detallesVenta": [
				{"producto": "Taladro", "cantidad": 2, "subtotal": "240.00"}
			],
			"total": 240
		}`))
	}))
	defer server.Close()

	c := New(server.URL, "")
	v, err := c.GetVenta(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.ID != 42 || len(v.DetallesVenta) != 1 {
		t.Errorf("unexpected venta: %+v", v)
	}
	if v.DetallesVenta[0].Cantidad != 2 {
		t.Errorf("expected cantidad 2, got %d", v.DetallesVenta[0].Cantidad)
	}
}

func TestProducto_MarcaAsStringOrObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/producto/1":
			w.Write([]byte(`{"id": 1, "nombre": "Taladro", "marca": "Bosch", "linea": "Herramientas"}`))
		case "/producto/2":
			w.Write([]byte(`{"id": 2, "nombre": "Sierra", "marca": {"id": 3, "nombre": "Makita"}, "linea": {"id": 4, "nombre": "Corte"}}`))
		}
	}))
	defer server.Close()

	c := New(server.URL, "")

	p1, err := c.GetProducto(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p1.Marca.Nombre != "Bosch" {
		t.Errorf("expected marca Bosch, got %q", p1.Marca.Nombre)
	}

	p2, err := c.GetProducto(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p2.Marca.ID != 3 || p2.Marca.Nombre != "Makita" {
		t.Errorf("unexpected marca: %+v", p2.Marca)
	}
}

func TestRequestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	c := New(server.URL, "")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Me(ctx)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if err.Error() != "request timed out" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestCannotConnect(t *testing.T) {
	c := New("http://127.0.0.1:1", "")
	_, err := c.ListLineas(context.Background())
	if err == nil {
		t.Fatal("expected connection error")
	}
}
