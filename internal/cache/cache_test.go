// ABOUTME: Tests for the reference-data cache
// ABOUTME: Covers fetch-through, TTL expiry, invalidation, and error passthrough

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nmorales/ventas-admin/internal/client"
)

func countingMarcas(calls *int, marcas []client.Marca, err error) func(context.Context) ([]client.Marca, error) {
	return func(context.Context) ([]client.Marca, error) {
		*calls++
		return marcas, err
	}
}

func TestRefs_FetchThrough(t *testing.T) {
	r := NewRefs(time.Minute)
	calls := 0
	fetch := countingMarcas(&calls, []client.Marca{{ID: 1, Nombre: "Stanley"}}, nil)

	got, err := r.Marcas(context.Background(), fetch)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Nombre != "Stanley" {
		t.Errorf("unexpected listing: %+v", got)
	}

	// The second access inside the TTL serves the cached value.
	if _, err := r.Marcas(context.Background(), fetch); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected one fetch, got %d", calls)
	}
}

func TestRefs_TTLExpiry(t *testing.T) {
	r := NewRefs(30 * time.Millisecond)
	calls := 0
	fetch := countingMarcas(&calls, []client.Marca{{ID: 1, Nombre: "Stanley"}}, nil)

	if _, err := r.Marcas(context.Background(), fetch); err != nil {
		t.Fatal(err)
	}
	time.Sleep(60 * time.Millisecond)
	if _, err := r.Marcas(context.Background(), fetch); err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("expected refetch after TTL, got %d fetches", calls)
	}
}

func TestRefs_ErrorsAreNotCached(t *testing.T) {
	r := NewRefs(time.Minute)
	calls := 0
	failing := countingMarcas(&calls, nil, errors.New("backend unavailable"))

	if _, err := r.Marcas(context.Background(), failing); err == nil {
		t.Fatal("expected fetch error")
	}

	// The failure must not poison the cache: the next access fetches.
	working := countingMarcas(&calls, []client.Marca{{ID: 1, Nombre: "Stanley"}}, nil)
	got, err := r.Marcas(context.Background(), working)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("unexpected listing: %+v", got)
	}
	if calls != 2 {
		t.Errorf("expected two fetches, got %d", calls)
	}
}

func TestRefs_Invalidate(t *testing.T) {
	r := NewRefs(time.Minute)
	calls := 0
	fetch := countingMarcas(&calls, []client.Marca{{ID: 1, Nombre: "Stanley"}}, nil)

	if _, err := r.Marcas(context.Background(), fetch); err != nil {
		t.Fatal(err)
	}
	r.Invalidate()
	if _, err := r.Marcas(context.Background(), fetch); err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("expected refetch after invalidation, got %d fetches", calls)
	}
}

func TestRefs_KindsAreIndependent(t *testing.T) {
	r := NewRefs(time.Minute)

	marcaCalls := 0
	if _, err := r.Marcas(context.Background(), countingMarcas(&marcaCalls, nil, nil)); err != nil {
		t.Fatal(err)
	}

	// Filling marcas must not mark lineas or formas de pago fresh.
	lineaCalls := 0
	if _, err := r.Lineas(context.Background(), func(context.Context) ([]client.Linea, error) {
		lineaCalls++
		return []client.Linea{{ID: 1, Nombre: "Herramientas"}}, nil
	}); err != nil {
		t.Fatal(err)
	}
	formaCalls := 0
	if _, err := r.FormasPago(context.Background(), func(context.Context) ([]client.FormaPago, error) {
		formaCalls++
		return []client.FormaPago{{ID: 1, Nombre: "Efectivo"}}, nil
	}); err != nil {
		t.Fatal(err)
	}

	if lineaCalls != 1 || formaCalls != 1 {
		t.Errorf("expected each kind fetched once, got lineas=%d formas=%d", lineaCalls, formaCalls)
	}
}
