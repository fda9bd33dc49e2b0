// ABOUTME: Product commands for the ventas-admin CLI
// ABOUTME: Product CRUD plus the filtered advanced search

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nmorales/ventas-admin/internal/client"
	"github.com/nmorales/ventas-admin/internal/session"
)

var (
	productoFiltroNombre string
	productoFiltroMarca  int
	productoFiltroLinea  int
	productoPrecioMin    float64
	productoPrecioMax    float64
	productoPage         int
	productoLimit        int

	productoNombre      string
	productoDescripcion string
	productoPrecio      float64
	productoImpuesto    float64
	productoStock       int
	productoMarcaID     int
	productoLineaID     int
)

var productosCmd = &cobra.Command{
	Use:   "productos",
	Short: "Manage products",
}

var productosListCmd = &cobra.Command{
	Use:   "list",
	Short: "Search products with filters",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductosList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var productosGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one product with its suppliers",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductosGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var productosCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a product",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductosCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var productosUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductosUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var productosDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductosDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	productosListCmd.Flags().StringVar(&productoFiltroNombre, "nombre", "", "Filter by name")
	productosListCmd.Flags().IntVar(&productoFiltroMarca, "marca", 0, "Filter by brand ID")
	productosListCmd.Flags().IntVar(&productoFiltroLinea, "linea", 0, "Filter by line ID")
	productosListCmd.Flags().Float64Var(&productoPrecioMin, "precio-min", 0, "Minimum price")
	productosListCmd.Flags().Float64Var(&productoPrecioMax, "precio-max", 0, "Maximum price")
	productosListCmd.Flags().IntVar(&productoPage, "page", 1, "Page number")
	productosListCmd.Flags().IntVar(&productoLimit, "limit", 20, "Page size")

	for _, c := range []*cobra.Command{productosCreateCmd, productosUpdateCmd} {
		c.Flags().StringVar(&productoNombre, "nombre", "", "Product name")
		c.Flags().StringVar(&productoDescripcion, "descripcion", "", "Description")
		c.Flags().Float64Var(&productoPrecio, "precio", 0, "Price before tax")
		c.Flags().Float64Var(&productoImpuesto, "impuesto", 0, "Tax rate")
		c.Flags().IntVar(&productoStock, "stock", 0, "Stock units")
		c.Flags().IntVar(&productoMarcaID, "marca", 0, "Brand ID")
		c.Flags().IntVar(&productoLineaID, "linea", 0, "Line ID")
	}

	productosCmd.AddCommand(productosListCmd, productosGetCmd, productosCreateCmd, productosUpdateCmd, productosDeleteCmd)
	rootCmd.AddCommand(productosCmd)
}

func runProductosList(ctx context.Context, w io.Writer) int {
	_, c, code := requireSection(ctx, w, session.SectionProductos)
	if code != 0 {
		return code
	}

	page, err := c.SearchProductos(ctx, client.ProductoFilter{
		Nombre:    productoFiltroNombre,
		MarcaID:   productoFiltroMarca,
		LineaID:   productoFiltroLinea,
		PrecioMin: productoPrecioMin,
		PrecioMax: productoPrecioMax,
		Page:      productoPage,
		Limit:     productoLimit,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(page, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatProductosHuman(page))
	}
	return 0
}

func runProductosGet(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionProductos)
	if code != 0 {
		return code
	}

	p, err := c.GetProducto(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(p, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatProductoHuman(p))
	}
	return 0
}

func runProductosCreate(ctx context.Context, w io.Writer) int {
	if productoNombre == "" || productoPrecio <= 0 || productoMarcaID <= 0 || productoLineaID <= 0 {
		fmt.Fprintln(w, "Error: --nombre, --precio, --marca, and --linea are required")
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionProductos)
	if code != 0 {
		return code
	}

	p, err := c.CreateProducto(ctx, client.CreateProductoInput{
		Nombre:            productoNombre,
		Descripcion:       productoDescripcion,
		PrecioSinImpuesto: productoPrecio,
		Impuesto:          productoImpuesto,
		Stock:             productoStock,
		MarcaID:           productoMarcaID,
		LineaID:           productoLineaID,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Created product %d: %s\n", p.ID, p.Nombre)
	return 0
}

func runProductosUpdate(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionProductos)
	if code != 0 {
		return code
	}

	input := client.UpdateProductoInput{
		Nombre:      productoNombre,
		Descripcion: productoDescripcion,
		MarcaID:     productoMarcaID,
		LineaID:     productoLineaID,
	}
	if productoPrecio > 0 {
		input.PrecioSinImpuesto = &productoPrecio
	}
	if productoImpuesto > 0 {
		input.Impuesto = &productoImpuesto
	}
	if productoStock > 0 {
		input.Stock = &productoStock
	}

	p, err := c.UpdateProducto(ctx, id, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Updated product %d\n", p.ID)
	return 0
}

func runProductosDelete(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionProductos)
	if code != 0 {
		return code
	}

	if err := c.DeleteProducto(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Removed product %d\n", id)
	return 0
}

// formatProductosHuman renders one page of products as a table
func formatProductosHuman(page *client.ProductosPage) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tMARCA\tLÍNEA\tPRECIO\tSTOCK")
	for _, p := range page.Data {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\t%d\n",
			p.ID, p.Nombre, p.Marca, p.Linea, p.PrecioConImpuesto, p.Stock)
	}
	tw.Flush()
	fmt.Fprintf(&sb, "\n%d of %d products", len(page.Data), page.Total)
	return sb.String()
}

// formatProductoHuman renders a product detail with its suppliers
func formatProductoHuman(p *client.Producto) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ID:           %d\n", p.ID)
	fmt.Fprintf(&sb, "Nombre:       %s\n", p.Nombre)
	fmt.Fprintf(&sb, "Descripción:  %s\n", p.Descripcion)
	fmt.Fprintf(&sb, "Marca:        %s\n", p.Marca)
	fmt.Fprintf(&sb, "Línea:        %s\n", p.Linea)
	fmt.Fprintf(&sb, "Precio:       %s sin imp. / %.2f con imp.\n", p.PrecioSinImpuesto, p.PrecioConImpuesto)
	fmt.Fprintf(&sb, "Stock:        %d\n", p.Stock)
	if len(p.Proveedores) > 0 {
		fmt.Fprintln(&sb, "Proveedores:")
		for _, pp := range p.Proveedores {
			fmt.Fprintf(&sb, "  - %s (precio %s, código %s)\n", pp.Nombre, pp.PrecioProveedor, pp.CodigoProveedor)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
