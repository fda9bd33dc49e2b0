// ABOUTME: Supplier commands for the ventas-admin CLI
// ABOUTME: Supplier CRUD plus linking suppliers to products

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
	proveedorNombre    string
	proveedorCUIT      string
	proveedorDireccion string

	asociarProductoID int
	asociarPrecio     float64
	asociarCodigo     string
)

var proveedoresCmd = &cobra.Command{
	Use:   "proveedores",
	Short: "Manage suppliers",
}

var proveedoresListCmd = &cobra.Command{
	Use:   "list",
	Short: "List suppliers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProveedoresList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var proveedoresCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a supplier",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProveedoresCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var proveedoresUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a supplier",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProveedoresUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var proveedoresDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a supplier",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProveedoresDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var proveedoresAsociarCmd = &cobra.Command{
	Use:   "asociar <proveedor-id>",
	Short: "Link a supplier to a product with its price and code",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProveedoresAsociar(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{proveedoresCreateCmd, proveedoresUpdateCmd} {
		c.Flags().StringVar(&proveedorNombre, "nombre", "", "Supplier name")
		c.Flags().StringVar(&proveedorCUIT, "cuit", "", "Tax ID (CUIT)")
		c.Flags().StringVar(&proveedorDireccion, "direccion", "", "Address")
	}
	proveedoresAsociarCmd.Flags().IntVar(&asociarProductoID, "producto", 0, "Product ID")
	proveedoresAsociarCmd.Flags().Float64Var(&asociarPrecio, "precio", 0, "Supplier price")
	proveedoresAsociarCmd.Flags().StringVar(&asociarCodigo, "codigo", "", "Supplier product code")

	proveedoresCmd.AddCommand(proveedoresListCmd, proveedoresCreateCmd, proveedoresUpdateCmd, proveedoresDeleteCmd, proveedoresAsociarCmd)
	rootCmd.AddCommand(proveedoresCmd)
}

func runProveedoresList(ctx context.Context, w io.Writer) int {
	_, c, code := requireSection(ctx, w, session.SectionProveedores)
	if code != 0 {
		return code
	}

	proveedores, err := c.ListProveedores(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(proveedores, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		var sb strings.Builder
		tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNOMBRE\tCUIT\tDIRECCIÓN")
		for _, p := range proveedores {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Nombre, p.CUIT, p.Direccion)
		}
		tw.Flush()
		fmt.Fprintf(&sb, "\n%d suppliers", len(proveedores))
		fmt.Fprintln(w, sb.String())
	}
	return 0
}

func runProveedoresCreate(ctx context.Context, w io.Writer) int {
	if proveedorNombre == "" || proveedorCUIT == "" {
		fmt.Fprintln(w, "Error: --nombre and --cuit are required")
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionProveedores)
	if code != 0 {
		return code
	}

	p, err := c.CreateProveedor(ctx, client.CreateProveedorInput{
		Nombre:    proveedorNombre,
		CUIT:      proveedorCUIT,
		Direccion: proveedorDireccion,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Created supplier %d: %s\n", p.ID, p.Nombre)
	return 0
}

func runProveedoresUpdate(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionProveedores)
	if code != 0 {
		return code
	}

	p, err := c.UpdateProveedor(ctx, id, client.UpdateProveedorInput{
		Nombre:    proveedorNombre,
		CUIT:      proveedorCUIT,
		Direccion: proveedorDireccion,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Updated supplier %d\n", p.ID)
	return 0
}

func runProveedoresDelete(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionProveedores)
	if code != 0 {
		return code
	}

	if err := c.DeleteProveedor(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Removed supplier %d\n", id)
	return 0
}

func runProveedoresAsociar(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}
	if asociarProductoID <= 0 || asociarPrecio <= 0 {
		fmt.Fprintln(w, "Error: --producto and --precio are required")
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionProveedores)
	if code != 0 {
		return code
	}

	err = c.AssociateProducto(ctx, client.AssociateProductoInput{
		ProveedorID:     id,
		ProductoID:      asociarProductoID,
		PrecioProveedor: asociarPrecio,
		CodigoProveedor: asociarCodigo,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Linked supplier %d to product %d\n", id, asociarProductoID)
	return 0
}
