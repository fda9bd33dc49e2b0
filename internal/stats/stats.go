// ABOUTME: Client-side sales statistics aggregation
// ABOUTME: Collects listings concurrently and folds them into a summary

package stats

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nmorales/ventas-admin/internal/client"
)

// detailFetchLimit caps how many sale details are fetched for the
// top-product ranking, so the dashboard stays responsive on large
// histories.
const detailFetchLimit = 50

// API is the slice of the backend client the collector needs.
type API interface {
	ListVentas(ctx context.Context) ([]client.VentaListItem, error)
	GetVenta(ctx context.Context, id int) (*client.VentaDetallada, error)
	ListProveedores(ctx context.Context) ([]client.Proveedor, error)
	ListMarcas(ctx context.Context) ([]client.Marca, error)
	ListLineas(ctx context.Context) ([]client.Linea, error)
}

// Ranked is a name with an accumulated value, for top-N listings.
type Ranked struct {
	Name  string
	Value float64
}

// Summary is the aggregated view the statistics screens render.
type Summary struct {
	VentasTotal    int
	ImporteTotal   float64
	PorResponsable []Ranked
	PorFormaPago   []Ranked
	TopClientes    []Ranked
	TopProductos   []Ranked

	// MonthlyTotals holds the sale totals of the last twelve months,
	// oldest first, for the trend sparkline.
	MonthlyTotals []float64

	Proveedores int
	Marcas      int
	Lineas      int
}

// Collect fetches everything the summary needs. Listings are retrieved
// in parallel; a failure in any of them fails the whole collection.
func Collect(ctx context.Context, api API) (*Summary, error) {
	var (
		ventas      []client.VentaListItem
		proveedores []client.Proveedor
		marcas      []client.Marca
		lineas      []client.Linea
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ventas, err = api.ListVentas(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		proveedores, err = api.ListProveedores(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		marcas, err = api.ListMarcas(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		lineas, err = api.ListLineas(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := summarize(ventas, time.Now())
	summary.Proveedores = len(proveedores)
	summary.Marcas = len(marcas)
	summary.Lineas = len(lineas)

	topProductos, err := collectTopProductos(ctx, api, ventas)
	if err != nil {
		return nil, err
	}
	summary.TopProductos = topProductos

	return summary, nil
}

// summarize folds the sale listing into the summary aggregates.
func summarize(ventas []client.VentaListItem, now time.Time) *Summary {
	s := &Summary{VentasTotal: len(ventas)}

	porResponsable := map[string]float64{}
	porFormaPago := map[string]float64{}
	porCliente := map[string]float64{}
	monthly := map[string]float64{}

	for _, v := range ventas {
		s.ImporteTotal += v.Total
		porResponsable[v.Responsable] += v.Total
		porFormaPago[v.FormaPago] += v.Total
		porCliente[v.Cliente] += v.Total
		if t, err := parseFecha(v.Fecha); err == nil {
			monthly[t.Format("2006-01")] += v.Total
		}
	}

	s.PorResponsable = rank(porResponsable, 0)
	s.PorFormaPago = rank(porFormaPago, 0)
	s.TopClientes = rank(porCliente, 5)
	s.MonthlyTotals = lastTwelveMonths(monthly, now)
	return s
}

// collectTopProductos fetches recent sale details concurrently and
// ranks products by units sold.
func collectTopProductos(ctx context.Context, api API, ventas []client.VentaListItem) ([]Ranked, error) {
	recent := ventas
	if len(recent) > detailFetchLimit {
		recent = recent[len(recent)-detailFetchLimit:]
	}

	details := make([]*client.VentaDetallada, len(recent))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, v := range recent {
		g.Go(func() error {
			d, err := api.GetVenta(gctx, v.ID)
			if err != nil {
				return err
			}
			details[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	units := map[string]float64{}
	for _, d := range details {
		for _, line := range d.DetallesVenta {
			units[line.Producto] += float64(line.Cantidad)
		}
	}
	return rank(units, 5), nil
}

// rank sorts a name→value map descending; limit 0 keeps everything.
func rank(values map[string]float64, limit int) []Ranked {
	out := make([]Ranked, 0, len(values))
	for name, value := range values {
		out = append(out, Ranked{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// lastTwelveMonths projects the monthly totals onto a fixed window
// ending at the current month, oldest first.
func lastTwelveMonths(monthly map[string]float64, now time.Time) []float64 {
	out := make([]float64, 12)
	// Anchor on the first of the month so AddDate never skips a month.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < 12; i++ {
		out[i] = monthly[anchor.AddDate(0, i-11, 0).Format("2006-01")]
	}
	return out
}

// parseFecha accepts the backend's date shapes.
func parseFecha(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &time.ParseError{Layout: "2006-01-02", Value: s}
}
