// ABOUTME: Sale (venta) and payment-method endpoints
// ABOUTME: Sale registration, detailed lookup, and the filtered search

package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// VentaLineInput is one product line of a new sale.
type VentaLineInput struct {
	ProductoID int `json:"productoId"`
	Cantidad   int `json:"cantidad"`
}

// CreateVentaInput is the payload for registering a sale.
type CreateVentaInput struct {
	ClienteID   int              `json:"clienteId"`
	FormaPagoID int              `json:"formaPagoId"`
	Detalles    []VentaLineInput `json:"detalles"`
}

// VentaFilter narrows the advanced sale search. Zero values mean the
// filter is not applied. Dates use the backend's YYYY-MM-DD form.
type VentaFilter struct {
	Cliente     string
	Responsable string
	FormaPagoID int
	FechaDesde  string
	FechaHasta  string
	Page        int
	Limit       int
}

func (f VentaFilter) query() url.Values {
	q := url.Values{}
	if f.Cliente != "" {
		q.Set("cliente", f.Cliente)
	}
	if f.Responsable != "" {
		q.Set("responsable", f.Responsable)
	}
	if f.FormaPagoID > 0 {
		q.Set("formaPagoId", strconv.Itoa(f.FormaPagoID))
	}
	if f.FechaDesde != "" {
		q.Set("fechaDesde", f.FechaDesde)
	}
	if f.FechaHasta != "" {
		q.Set("fechaHasta", f.FechaHasta)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func (c *Client) ListVentas(ctx context.Context) ([]VentaListItem, error) {
	var list []VentaListItem
	if err := c.get(ctx, "/venta", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SearchVentas runs the advanced filtered search and returns one page.
func (c *Client) SearchVentas(ctx context.Context, filter VentaFilter) (*VentasPage, error) {
	var result VentasPage
	if err := c.get(ctx, "/venta/advanced", filter.query(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetVenta(ctx context.Context, id int) (*VentaDetallada, error) {
	var v VentaDetallada
	if err := c.get(ctx, fmt.Sprintf("/venta/%d", id), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) CreateVenta(ctx context.Context, input CreateVentaInput) (*VentaDetallada, error) {
	var v VentaDetallada
	if err := c.post(ctx, "/venta", input, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) UpdateVenta(ctx context.Context, id int, input CreateVentaInput) (*VentaDetallada, error) {
	var v VentaDetallada
	if err := c.put(ctx, fmt.Sprintf("/venta/%d", id), input, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) DeleteVenta(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/venta/%d", id))
}

// ListFormasPago returns the available payment methods.
func (c *Client) ListFormasPago(ctx context.Context) ([]FormaPago, error) {
	var list []FormaPago
	if err := c.get(ctx, "/forma-pago", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
