// ABOUTME: Data types mirroring the sales-management API contract
// ABOUTME: Field names follow the backend's JSON shapes verbatim

package client

import "encoding/json"

// TokenInfo carries the only credential detail the client ever learns:
// the access token's expiry as epoch milliseconds. The token itself stays
// in the server-set HTTP-only cookie.
type TokenInfo struct {
	AccessTokenExpiresAt int64 `json:"accessTokenExpiresAt"`
}

// Role is a named permission group assigned to a user.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Usuario is the server-asserted identity returned by /users endpoints.
type Usuario struct {
	ID    json.Number `json:"id"`
	Email string      `json:"email"`
	Role  []Role      `json:"role"`
}

// Marca is a product brand.
type Marca struct {
	ID     int     `json:"id"`
	Nombre string  `json:"nombre"`
	Lineas []Linea `json:"lineas,omitempty"`
}

// Linea is a product line.
type Linea struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// LineaDetallada is a product line with its associated brands.
type LineaDetallada struct {
	ID        int     `json:"id"`
	Nombre    string  `json:"nombre"`
	Marcas    []Marca `json:"marcas"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// Proveedor is a supplier.
type Proveedor struct {
	ID        int    `json:"id"`
	Nombre    string `json:"nombre"`
	CUIT      string `json:"cuit"`
	Direccion string `json:"direccion,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Cliente is a customer.
type Cliente struct {
	ID            int    `json:"id"`
	Nombre        string `json:"nombre"`
	Apellido      string `json:"apellido"`
	TipoDocumento string `json:"tipo_documento"`
	NumDocumento  string `json:"num_documento"`
	Telefono      string `json:"telefono"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// ClientesPage is the paged customer listing.
type ClientesPage struct {
	Data  []Cliente `json:"data"`
	Total int       `json:"total"`
}

// NameRef is a reference the backend serializes either as a bare name or
// as an {id, nombre} object depending on the endpoint.
type NameRef struct {
	ID     int
	Nombre string
}

func (r *NameRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		r.Nombre = s
		return nil
	}
	var obj struct {
		ID     int    `json:"id"`
		Nombre string `json:"nombre"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = obj.ID
	r.Nombre = obj.Nombre
	return nil
}

func (r NameRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     int    `json:"id"`
		Nombre string `json:"nombre"`
	}{r.ID, r.Nombre})
}

func (r NameRef) String() string {
	return r.Nombre
}

// ProveedorProducto is a supplier association on a product detail.
type ProveedorProducto struct {
	Nombre          string `json:"nombre"`
	PrecioProveedor string `json:"precio_proveedor"`
	CodigoProveedor string `json:"codigo_proveedor"`
}

// Producto is a product as returned by the backend.
type Producto struct {
	ID                int                 `json:"id"`
	Nombre            string              `json:"nombre"`
	Descripcion       string              `json:"descripcion"`
	PrecioSinImpuesto string              `json:"precio_sin_impuesto"`
	PrecioConImpuesto float64             `json:"precio_con_impuesto"`
	Impuesto          float64             `json:"impuesto,omitempty"`
	Stock             int                 `json:"stock"`
	Marca             NameRef             `json:"marca"`
	Linea             NameRef             `json:"linea"`
	Proveedores       []ProveedorProducto `json:"proveedores,omitempty"`
	CreatedAt         string              `json:"createdAt,omitempty"`
	UpdatedAt         string              `json:"updatedAt,omitempty"`
}

// ProductosPage is the paged advanced product search result.
type ProductosPage struct {
	Total int        `json:"total"`
	Data  []Producto `json:"data"`
}

// FormaPago is a payment method.
type FormaPago struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// VentaListItem is a sale as it appears in listings.
type VentaListItem struct {
	ID          int     `json:"id"`
	Fecha       string  `json:"fecha"`
	Cliente     string  `json:"cliente"`
	Responsable string  `json:"responsable"`
	FormaPago   string  `json:"formaPago"`
	Total       float64 `json:"total"`
}

// DetalleVenta is one line of a detailed sale.
type DetalleVenta struct {
	Producto          string  `json:"producto"`
	Descripcion       string  `json:"descripcion"`
	PrecioSinImpuesto string  `json:"precio_sin_impuesto"`
	Impuesto          float64 `json:"impuesto"`
	PrecioImpuesto    float64 `json:"precio_impuesto"`
	Cantidad          int     `json:"cantidad"`
	Subtotal          string  `json:"subtotal"`
}

// VentaDetallada is a sale with its full detail lines.
type VentaDetallada struct {
	ID              int            `json:"id"`
	Fecha           string         `json:"fecha"`
	Cliente         string         `json:"cliente"`
	Documento       string         `json:"documento"`
	TelefonoCliente string         `json:"telefono_cliente"`
	Responsable     string         `json:"responsable"`
	FormaPago       string         `json:"formaPago"`
	DetallesVenta   []DetalleVenta `json:"detallesVenta"`
	Total           float64        `json:"total"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}

// VentasPage is the paged advanced sale search result.
type VentasPage struct {
	Total int             `json:"total"`
	Data  []VentaListItem `json:"data"`
}
