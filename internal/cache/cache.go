// ABOUTME: TTL cache for the backend's slow-changing reference listings
// ABOUTME: Fetch-through accessors for marcas, líneas, and formas de pago

package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nmorales/ventas-admin/internal/client"
)

// fetched is one cached listing with its fill time.
type fetched[T any] struct {
	value []T
	at    time.Time
}

func (f fetched[T]) fresh(ttl time.Duration) bool {
	return !f.at.IsZero() && time.Since(f.at) < ttl
}

// Refs caches the reference listings that forms and browsers reuse
// (brands, lines, payment methods), so navigating between screens does
// not refetch data that changes rarely. Entries expire after the
// configured TTL; Invalidate drops them early.
type Refs struct {
	ttl time.Duration

	mu         sync.Mutex
	marcas     fetched[client.Marca]
	lineas     fetched[client.Linea]
	formasPago fetched[client.FormaPago]
}

// NewRefs creates a reference cache with the given TTL.
func NewRefs(ttl time.Duration) *Refs {
	return &Refs{ttl: ttl}
}

// Marcas returns the cached brand listing, fetching through when the
// entry is stale. Fetch errors are returned and never cached.
func (r *Refs) Marcas(ctx context.Context, fetch func(context.Context) ([]client.Marca, error)) ([]client.Marca, error) {
	return lookup(ctx, r, &r.marcas, "marcas", fetch)
}

// Lineas returns the cached product-line listing.
func (r *Refs) Lineas(ctx context.Context, fetch func(context.Context) ([]client.Linea, error)) ([]client.Linea, error) {
	return lookup(ctx, r, &r.lineas, "lineas", fetch)
}

// FormasPago returns the cached payment-method listing.
func (r *Refs) FormasPago(ctx context.Context, fetch func(context.Context) ([]client.FormaPago, error)) ([]client.FormaPago, error) {
	return lookup(ctx, r, &r.formasPago, "formas-pago", fetch)
}

// Invalidate drops every cached listing, forcing the next access to
// fetch. Used when the user explicitly refreshes a view.
func (r *Refs) Invalidate() {
	r.mu.Lock()
	r.marcas = fetched[client.Marca]{}
	r.lineas = fetched[client.Linea]{}
	r.formasPago = fetched[client.FormaPago]{}
	r.mu.Unlock()
	slog.Debug("reference cache invalidated")
}

// lookup serves the entry while fresh and fetches through otherwise.
// The lock is released during the fetch; a concurrent duplicate fetch
// is harmless, the last writer wins.
func lookup[T any](ctx context.Context, r *Refs, e *fetched[T], kind string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	r.mu.Lock()
	if e.fresh(r.ttl) {
		v := e.value
		r.mu.Unlock()
		slog.Debug("reference cache hit", "kind", kind)
		return v, nil
	}
	r.mu.Unlock()

	v, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	*e = fetched[T]{value: v, at: time.Now()}
	r.mu.Unlock()
	slog.Debug("reference cache filled", "kind", kind, "count", len(v), "ttl", r.ttl)
	return v, nil
}
