// ABOUTME: Customer (cliente) endpoints
// ABOUTME: Paged listing plus CRUD

package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CreateClienteInput is the payload for registering a customer.
type CreateClienteInput struct {
	Nombre        string `json:"nombre"`
	Apellido      string `json:"apellido"`
	TipoDocumento string `json:"tipo_documento"`
	NumDocumento  string `json:"num_documento"`
	Telefono      string `json:"telefono,omitempty"`
}

// UpdateClienteInput carries partial customer updates.
type UpdateClienteInput struct {
	Nombre        string `json:"nombre,omitempty"`
	Apellido      string `json:"apellido,omitempty"`
	TipoDocumento string `json:"tipo_documento,omitempty"`
	NumDocumento  string `json:"num_documento,omitempty"`
	Telefono      string `json:"telefono,omitempty"`
}

// ListClientes returns one page of customers. Page numbering starts at 1;
// search filters by name, surname, or document number.
func (c *Client) ListClientes(ctx context.Context, page, limit int, search string) (*ClientesPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		query.Set("search", search)
	}
	var result ClientesPage
	if err := c.get(ctx, "/cliente", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetCliente(ctx context.Context, id int) (*Cliente, error) {
	var cl Cliente
	if err := c.get(ctx, fmt.Sprintf("/cliente/%d", id), nil, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

func (c *Client) CreateCliente(ctx context.Context, input CreateClienteInput) (*Cliente, error) {
	var cl Cliente
	if err := c.post(ctx, "/cliente", input, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

func (c *Client) UpdateCliente(ctx context.Context, id int, input UpdateClienteInput) (*Cliente, error) {
	var cl Cliente
	if err := c.patch(ctx, fmt.Sprintf("/cliente/%d", id), input, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

func (c *Client) DeleteCliente(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/cliente/%d", id))
}
