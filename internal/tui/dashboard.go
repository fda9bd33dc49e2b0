// ABOUTME: Statistics dashboard screen for the TUI
// ABOUTME: Metric blocks and trend sparkline over the collected summary

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nmorales/ventas-admin/internal/stats"
	"github.com/nmorales/ventas-admin/internal/tui/icons"
	"github.com/nmorales/ventas-admin/internal/tui/styles"
	"github.com/nmorales/ventas-admin/internal/tui/widgets"
)

// Dashboard renders the aggregated sales summary
type Dashboard struct {
	summary     *stats.Summary
	showRevenue bool
	width       int
}

// NewDashboard builds the dashboard; revenue sections are reserved for
// the dueño role.
func NewDashboard(summary *stats.Summary, showRevenue bool, width int) *Dashboard {
	return &Dashboard{summary: summary, showRevenue: showRevenue, width: width}
}

// SetWidth adjusts the layout width
func (d *Dashboard) SetWidth(w int) {
	d.width = w
}

// View renders the metric blocks and rankings
func (d *Dashboard) View() string {
	if d.summary == nil {
		return styles.Subtitle.Render("Cargando estadísticas...")
	}

	config := widgets.DefaultMetricBlockConfig()

	blocks := []string{
		widgets.CountBlock(icons.Sale, "Ventas", d.summary.VentasTotal, "registradas", config),
		widgets.CountBlock(icons.Supplier, "Proveedores", d.summary.Proveedores, "activos", config),
		widgets.CountBlock(icons.Brand, "Marcas", d.summary.Marcas, "en catálogo", config),
		widgets.CountBlock(icons.Line, "Líneas", d.summary.Lineas, "en catálogo", config),
	}
	if d.showRevenue {
		blocks = append(blocks, widgets.MetricBlockWithSparkline(
			icons.Chart,
			"Facturación",
			fmt.Sprintf("%.0f", d.summary.ImporteTotal),
			d.summary.MonthlyTotals,
			"últimos 12 meses",
			config,
		))
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Chart.String() + " Estadísticas"))
	sb.WriteString("\n")
	sb.WriteString(joinBlocks(blocks, d.width, config.Width))
	sb.WriteString("\n\n")

	sb.WriteString(renderRanking("Top productos (unidades)", d.summary.TopProductos, "%.0f"))
	if d.showRevenue {
		sb.WriteString("\n")
		sb.WriteString(renderRanking("Por responsable", d.summary.PorResponsable, "%.2f"))
		sb.WriteString("\n")
		sb.WriteString(renderRanking("Por forma de pago", d.summary.PorFormaPago, "%.2f"))
		sb.WriteString("\n")
		sb.WriteString(renderRanking("Top clientes", d.summary.TopClientes, "%.2f"))
	}

	return sb.String()
}

// joinBlocks lays metric blocks out horizontally, wrapping to rows when
// the terminal is narrow.
func joinBlocks(blocks []string, width, blockWidth int) string {
	perRow := 1
	if blockWidth > 0 && width > blockWidth {
		perRow = width / (blockWidth + 1)
		if perRow < 1 {
			perRow = 1
		}
	}

	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		end := i + perRow
		if end > len(blocks) {
			end = len(blocks)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks[i:end]...))
	}
	return strings.Join(rows, "\n")
}

// renderRanking renders a small name/value list
func renderRanking(title string, ranked []stats.Ranked, valueFormat string) string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(title))
	sb.WriteString("\n")
	if len(ranked) == 0 {
		sb.WriteString("  (sin datos)\n")
		return sb.String()
	}
	for _, r := range ranked {
		value := fmt.Sprintf(valueFormat, r.Value)
		sb.WriteString(fmt.Sprintf("  %-28s %s\n", r.Name, styles.ValueStyle.Render(value)))
	}
	return sb.String()
}
