// ABOUTME: Statistics command for the ventas-admin CLI
// ABOUTME: Renders the aggregated sales summary with role-based filtering

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nmorales/ventas-admin/internal/session"
	"github.com/nmorales/ventas-admin/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show sales statistics",
	Long: `Aggregate sales into totals per salesperson, payment method, customer,
and product. Revenue breakdowns are only shown to the dueño role.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runStats(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// runStats collects and renders the summary and returns exit code
func runStats(ctx context.Context, w io.Writer) int {
	m, c, code := requireSection(ctx, w, session.SectionEstadisticas)
	if code != 0 {
		return code
	}

	summary, err := stats.Collect(ctx, c)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	showRevenue := m.HasRole(session.RoleDueno)
	if IsJSONOutput() {
		fmt.Fprintln(w, formatStatsJSON(summary, showRevenue))
	} else {
		fmt.Fprintln(w, formatStatsHuman(summary, showRevenue))
	}
	return 0
}

// formatStatsHuman formats the summary for human readability. Revenue
// sections are reserved for the dueño role.
func formatStatsHuman(s *stats.Summary, showRevenue bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Ventas:       %d\n", s.VentasTotal)
	fmt.Fprintf(&sb, "Proveedores:  %d\n", s.Proveedores)
	fmt.Fprintf(&sb, "Marcas:       %d\n", s.Marcas)
	fmt.Fprintf(&sb, "Líneas:       %d\n", s.Lineas)

	fmt.Fprintln(&sb, "\nTop productos (unidades):")
	for _, r := range s.TopProductos {
		fmt.Fprintf(&sb, "  %-24s %.0f\n", r.Name, r.Value)
	}

	if showRevenue {
		fmt.Fprintf(&sb, "\nImporte total: %.2f\n", s.ImporteTotal)
		fmt.Fprintln(&sb, "\nPor responsable:")
		for _, r := range s.PorResponsable {
			fmt.Fprintf(&sb, "  %-24s %.2f\n", r.Name, r.Value)
		}
		fmt.Fprintln(&sb, "\nPor forma de pago:")
		for _, r := range s.PorFormaPago {
			fmt.Fprintf(&sb, "  %-24s %.2f\n", r.Name, r.Value)
		}
		fmt.Fprintln(&sb, "\nTop clientes:")
		for _, r := range s.TopClientes {
			fmt.Fprintf(&sb, "  %-24s %.2f\n", r.Name, r.Value)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatStatsJSON formats the summary as JSON
func formatStatsJSON(s *stats.Summary, showRevenue bool) string {
	output := map[string]interface{}{
		"ventas":        s.VentasTotal,
		"proveedores":   s.Proveedores,
		"marcas":        s.Marcas,
		"lineas":        s.Lineas,
		"top_productos": s.TopProductos,
	}
	if showRevenue {
		output["importe_total"] = s.ImporteTotal
		output["por_responsable"] = s.PorResponsable
		output["por_forma_pago"] = s.PorFormaPago
		output["top_clientes"] = s.TopClientes
		output["mensual"] = s.MonthlyTotals
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
