// ABOUTME: Supplier (proveedor) endpoints
// ABOUTME: CRUD plus the supplier/product association

package client

import (
	"context"
	"fmt"
)

// CreateProveedorInput is the payload for registering a supplier.
type CreateProveedorInput struct {
	Nombre    string `json:"nombre"`
	CUIT      string `json:"cuit"`
	Direccion string `json:"direccion,omitempty"`
}

// UpdateProveedorInput carries partial supplier updates.
type UpdateProveedorInput struct {
	Nombre    string `json:"nombre,omitempty"`
	CUIT      string `json:"cuit,omitempty"`
	Direccion string `json:"direccion,omitempty"`
}

// AssociateProductoInput links a supplier to a product with the
// supplier-specific price and code.
type AssociateProductoInput struct {
	ProveedorID     int     `json:"proveedorId"`
	ProductoID      int     `json:"productoId"`
	PrecioProveedor float64 `json:"precio_proveedor"`
	CodigoProveedor string  `json:"codigo_proveedor,omitempty"`
}

func (c *Client) ListProveedores(ctx context.Context) ([]Proveedor, error) {
	var list []Proveedor
	if err := c.get(ctx, "/proveedor", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetProveedor(ctx context.Context, id int) (*Proveedor, error) {
	var p Proveedor
	if err := c.get(ctx, fmt.Sprintf("/proveedor/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProveedor(ctx context.Context, input CreateProveedorInput) (*Proveedor, error) {
	var p Proveedor
	if err := c.post(ctx, "/proveedor", input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProveedor(ctx context.Context, id int, input UpdateProveedorInput) (*Proveedor, error) {
	var p Proveedor
	if err := c.patch(ctx, fmt.Sprintf("/proveedor/%d", id), input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProveedor(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/proveedor/%d", id))
}

// AssociateProducto records a supplier's price and code for a product.
func (c *Client) AssociateProducto(ctx context.Context, input AssociateProductoInput) error {
	return c.post(ctx, "/proveedor-x-producto", input, nil)
}
