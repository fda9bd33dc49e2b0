// ABOUTME: Product (producto) endpoints
// ABOUTME: CRUD plus the filtered advanced search

package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CreateProductoInput is the payload for registering a product.
type CreateProductoInput struct {
	Nombre            string  `json:"nombre"`
	Descripcion       string  `json:"descripcion,omitempty"`
	PrecioSinImpuesto float64 `json:"precio_sin_impuesto"`
	Impuesto          float64 `json:"impuesto"`
	Stock             int     `json:"stock"`
	MarcaID           int     `json:"marcaId"`
	LineaID           int     `json:"lineaId"`
}

// UpdateProductoInput carries partial product updates.
type UpdateProductoInput struct {
	Nombre            string   `json:"nombre,omitempty"`
	Descripcion       string   `json:"descripcion,omitempty"`
	PrecioSinImpuesto *float64 `json:"precio_sin_impuesto,omitempty"`
	Impuesto          *float64 `json:"impuesto,omitempty"`
	Stock             *int     `json:"stock,omitempty"`
	MarcaID           int      `json:"marcaId,omitempty"`
	LineaID           int      `json:"lineaId,omitempty"`
}

// ProductoFilter narrows the advanced product search. Zero values mean
// the filter is not applied.
type ProductoFilter struct {
	Nombre    string
	MarcaID   int
	LineaID   int
	PrecioMin float64
	PrecioMax float64
	Page      int
	Limit     int
}

func (f ProductoFilter) query() url.Values {
	q := url.Values{}
	if f.Nombre != "" {
		q.Set("nombre", f.Nombre)
	}
	if f.MarcaID > 0 {
		q.Set("marcaId", strconv.Itoa(f.MarcaID))
	}
	if f.LineaID > 0 {
		q.Set("lineaId", strconv.Itoa(f.LineaID))
	}
	if f.PrecioMin > 0 {
		q.Set("precioMin", strconv.FormatFloat(f.PrecioMin, 'f', -1, 64))
	}
	if f.PrecioMax > 0 {
		q.Set("precioMax", strconv.FormatFloat(f.PrecioMax, 'f', -1, 64))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func (c *Client) ListProductos(ctx context.Context) ([]Producto, error) {
	var list []Producto
	if err := c.get(ctx, "/producto", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SearchProductos runs the advanced filtered search and returns one page.
func (c *Client) SearchProductos(ctx context.Context, filter ProductoFilter) (*ProductosPage, error) {
	var result ProductosPage
	if err := c.get(ctx, "/producto/advanced", filter.query(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetProducto(ctx context.Context, id int) (*Producto, error) {
	var p Producto
	if err := c.get(ctx, fmt.Sprintf("/producto/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProducto(ctx context.Context, input CreateProductoInput) (*Producto, error) {
	var p Producto
	if err := c.post(ctx, "/producto", input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProducto(ctx context.Context, id int, input UpdateProductoInput) (*Producto, error) {
	var p Producto
	if err := c.patch(ctx, fmt.Sprintf("/producto/%d", id), input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProducto(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/producto/%d", id))
}
