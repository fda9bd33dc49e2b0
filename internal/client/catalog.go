// ABOUTME: Brand (marca) and product-line (línea) endpoints
// ABOUTME: Catalog CRUD plus the marca/línea assignment operation

package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CreateMarcaInput is the payload for creating a brand.
type CreateMarcaInput struct {
	Nombre string `json:"nombre"`
	Lineas []int  `json:"lineas,omitempty"`
}

// UpdateMarcaInput carries partial brand updates.
type UpdateMarcaInput struct {
	Nombre string `json:"nombre,omitempty"`
	Lineas []int  `json:"lineas,omitempty"`
}

func (c *Client) ListMarcas(ctx context.Context) ([]Marca, error) {
	var list []Marca
	if err := c.get(ctx, "/marca", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetMarca(ctx context.Context, id int) (*Marca, error) {
	var m Marca
	if err := c.get(ctx, fmt.Sprintf("/marca/%d", id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) CreateMarca(ctx context.Context, input CreateMarcaInput) (*Marca, error) {
	var m Marca
	if err := c.post(ctx, "/marca", input, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) UpdateMarca(ctx context.Context, id int, input UpdateMarcaInput) (*Marca, error) {
	var m Marca
	if err := c.patch(ctx, fmt.Sprintf("/marca/%d", id), input, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) DeleteMarca(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/marca/%d", id))
}

// AssignLineaToMarca associates an existing line with a brand.
func (c *Client) AssignLineaToMarca(ctx context.Context, marcaID, lineaID int) error {
	body := map[string]int{"lineaId": lineaID}
	return c.post(ctx, fmt.Sprintf("/marca/%d/assign-linea", marcaID), body, nil)
}

// CreateLineaInput is the payload for creating a product line.
type CreateLineaInput struct {
	Nombre string `json:"nombre"`
}

func (c *Client) ListLineas(ctx context.Context) ([]Linea, error) {
	var list []Linea
	if err := c.get(ctx, "/linea", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListLineasByMarca returns the lines associated with a brand.
func (c *Client) ListLineasByMarca(ctx context.Context, marcaID int) ([]Linea, error) {
	query := url.Values{"marcaId": []string{strconv.Itoa(marcaID)}}
	var list []Linea
	if err := c.get(ctx, "/linea", query, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetLinea(ctx context.Context, id int) (*LineaDetallada, error) {
	var l LineaDetallada
	if err := c.get(ctx, fmt.Sprintf("/linea/%d", id), nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) CreateLinea(ctx context.Context, input CreateLineaInput) (*Linea, error) {
	var l Linea
	if err := c.post(ctx, "/linea", input, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) UpdateLinea(ctx context.Context, id int, input CreateLineaInput) (*Linea, error) {
	var l Linea
	if err := c.patch(ctx, fmt.Sprintf("/linea/%d", id), input, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) DeleteLinea(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/linea/%d", id))
}
