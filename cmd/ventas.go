// ABOUTME: Sale commands for the ventas-admin CLI
// ABOUTME: Listing, filtered search, detail, registration, and removal

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
	ventaFiltroCliente     string
	ventaFiltroResponsable string
	ventaFiltroFormaPago   int
	ventaFiltroDesde       string
	ventaFiltroHasta       string
	ventaPage              int
	ventaLimit             int

	ventaClienteID   int
	ventaFormaPagoID int
	ventaDetalles    []string
)

var ventasCmd = &cobra.Command{
	Use:   "ventas",
	Short: "Manage sales",
}

var ventasListCmd = &cobra.Command{
	Use:   "list",
	Short: "Search sales with filters",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runVentasList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var ventasGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one sale with its lines",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runVentasGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var ventasCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a sale",
	Long: `Register a sale for a customer. Lines are given as repeated
--detalle flags in the form productoId:cantidad.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runVentasCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var ventasDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a sale",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runVentasDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var formasPagoCmd = &cobra.Command{
	Use:   "formas-pago",
	Short: "List payment methods",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runFormasPago(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	ventasListCmd.Flags().StringVar(&ventaFiltroCliente, "cliente", "", "Filter by customer name")
	ventasListCmd.Flags().StringVar(&ventaFiltroResponsable, "responsable", "", "Filter by salesperson")
	ventasListCmd.Flags().IntVar(&ventaFiltroFormaPago, "forma-pago", 0, "Filter by payment method ID")
	ventasListCmd.Flags().StringVar(&ventaFiltroDesde, "desde", "", "Start date (YYYY-MM-DD)")
	ventasListCmd.Flags().StringVar(&ventaFiltroHasta, "hasta", "", "End date (YYYY-MM-DD)")
	ventasListCmd.Flags().IntVar(&ventaPage, "page", 1, "Page number")
	ventasListCmd.Flags().IntVar(&ventaLimit, "limit", 20, "Page size")

	ventasCreateCmd.Flags().IntVar(&ventaClienteID, "cliente", 0, "Customer ID")
	ventasCreateCmd.Flags().IntVar(&ventaFormaPagoID, "forma-pago", 0, "Payment method ID")
	ventasCreateCmd.Flags().StringArrayVar(&ventaDetalles, "detalle", nil, "Sale line as productoId:cantidad (repeatable)")

	ventasCmd.AddCommand(ventasListCmd, ventasGetCmd, ventasCreateCmd, ventasDeleteCmd)
	rootCmd.AddCommand(ventasCmd)
	rootCmd.AddCommand(formasPagoCmd)
}

func runVentasList(ctx context.Context, w io.Writer) int {
	_, c, code := requireSection(ctx, w, session.SectionVentas)
	if code != 0 {
		return code
	}

	page, err := c.SearchVentas(ctx, client.VentaFilter{
		Cliente:     ventaFiltroCliente,
		Responsable: ventaFiltroResponsable,
		FormaPagoID: ventaFiltroFormaPago,
		FechaDesde:  ventaFiltroDesde,
		FechaHasta:  ventaFiltroHasta,
		Page:        ventaPage,
		Limit:       ventaLimit,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(page, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatVentasHuman(page))
	}
	return 0
}

func runVentasGet(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionVentas)
	if code != 0 {
		return code
	}

	v, err := c.GetVenta(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(v, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatVentaHuman(v))
	}
	return 0
}

func runVentasCreate(ctx context.Context, w io.Writer) int {
	if ventaClienteID <= 0 || ventaFormaPagoID <= 0 || len(ventaDetalles) == 0 {
		fmt.Fprintln(w, "Error: --cliente, --forma-pago, and at least one --detalle are required")
		return 2
	}

	lines, err := parseDetalles(ventaDetalles)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionVentas)
	if code != 0 {
		return code
	}

	v, err := c.CreateVenta(ctx, client.CreateVentaInput{
		ClienteID:   ventaClienteID,
		FormaPagoID: ventaFormaPagoID,
		Detalles:    lines,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Registered sale %d, total %.2f\n", v.ID, v.Total)
	return 0
}

func runVentasDelete(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionVentas)
	if code != 0 {
		return code
	}

	if err := c.DeleteVenta(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Removed sale %d\n", id)
	return 0
}

func runFormasPago(ctx context.Context, w io.Writer) int {
	_, c, code := requireSection(ctx, w, session.SectionVentas)
	if code != 0 {
		return code
	}

	formas, err := c.ListFormasPago(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(formas, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		for _, f := range formas {
			fmt.Fprintf(w, "%d  %s\n", f.ID, f.Nombre)
		}
	}
	return 0
}

// parseDetalles converts productoId:cantidad strings into sale lines.
func parseDetalles(raw []string) ([]client.VentaLineInput, error) {
	lines := make([]client.VentaLineInput, 0, len(raw))
	for _, entry := range raw {
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid detalle %q, want productoId:cantidad", entry)
		}
		productoID, err := strconv.Atoi(parts[0])
		if err != nil || productoID <= 0 {
			return nil, fmt.Errorf("invalid product id in %q", entry)
		}
		cantidad, err := strconv.Atoi(parts[1])
		if err != nil || cantidad <= 0 {
			return nil, fmt.Errorf("invalid quantity in %q", entry)
		}
		lines = append(lines, client.VentaLineInput{ProductoID: productoID, Cantidad: cantidad})
	}
	return lines, nil
}

// formatVentasHuman renders one page of sales as a table
func formatVentasHuman(page *client.VentasPage) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFECHA\tCLIENTE\tRESPONSABLE\tFORMA PAGO\tTOTAL")
	for _, v := range page.Data {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.2f\n",
			v.ID, v.Fecha, v.Cliente, v.Responsable, v.FormaPago, v.Total)
	}
	tw.Flush()
	fmt.Fprintf(&sb, "\n%d of %d sales", len(page.Data), page.Total)
	return sb.String()
}

// formatVentaHuman renders a sale detail with its lines
func formatVentaHuman(v *client.VentaDetallada) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Venta:        %d (%s)\n", v.ID, v.Fecha)
	fmt.Fprintf(&sb, "Cliente:      %s (%s)\n", v.Cliente, v.Documento)
	fmt.Fprintf(&sb, "Responsable:  %s\n", v.Responsable)
	fmt.Fprintf(&sb, "Forma pago:   %s\n", v.FormaPago)
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCTO\tCANTIDAD\tSUBTOTAL")
	for _, d := range v.DetallesVenta {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", d.Producto, d.Cantidad, d.Subtotal)
	}
	tw.Flush()
	fmt.Fprintf(&sb, "Total:        %.2f", v.Total)
	return sb.String()
}
