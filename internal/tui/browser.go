// ABOUTME: Tabular resource browser screen for the TUI
// ABOUTME: Renders listings (clientes, productos, ventas, ...) with scrolling

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nmorales/ventas-admin/internal/tui/styles"
)

// BrowserBackMsg is sent when the user leaves the browser
type BrowserBackMsg struct{}

// BrowserRefreshMsg asks the app to reload the current listing
type BrowserRefreshMsg struct{}

// Browser shows one resource listing as a scrollable table
type Browser struct {
	title   string
	headers []string
	rows    [][]string
	cursor  int
	offset  int
	height  int
	loading bool
	errMsg  string
}

// NewBrowser builds a browser in the loading state
func NewBrowser(title string, height int) *Browser {
	if height < 5 {
		height = 5
	}
	return &Browser{title: title, height: height, loading: true}
}

// SetRows replaces the table contents
func (b *Browser) SetRows(headers []string, rows [][]string) {
	b.headers = headers
	b.rows = rows
	b.cursor = 0
	b.offset = 0
	b.loading = false
	b.errMsg = ""
}

// SetError shows a load failure
func (b *Browser) SetError(msg string) {
	b.loading = false
	b.errMsg = msg
}

// SetHeight adjusts the visible row window
func (b *Browser) SetHeight(h int) {
	if h >= 5 {
		b.height = h
	}
}

// Update handles scrolling and navigation
func (b *Browser) Update(msg tea.Msg) (*Browser, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	visible := b.visibleRows()
	switch key.String() {
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
			if b.cursor < b.offset {
				b.offset = b.cursor
			}
		}
	case "down", "j":
		if b.cursor < len(b.rows)-1 {
			b.cursor++
			if b.cursor >= b.offset+visible {
				b.offset = b.cursor - visible + 1
			}
		}
	case "r":
		b.loading = true
		b.errMsg = ""
		return b, func() tea.Msg { return BrowserRefreshMsg{} }
	case "b", "esc":
		return b, func() tea.Msg { return BrowserBackMsg{} }
	}
	return b, nil
}

func (b *Browser) visibleRows() int {
	// Title, header row, help line, and padding eat into the height.
	v := b.height - 4
	if v < 1 {
		v = 1
	}
	return v
}

// View renders the table
func (b *Browser) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(b.title))
	sb.WriteString("\n")

	switch {
	case b.loading:
		sb.WriteString(styles.Subtitle.Render("Cargando..."))
	case b.errMsg != "":
		sb.WriteString(styles.StatusError.Render("Error: " + b.errMsg))
	case len(b.rows) == 0:
		sb.WriteString(styles.Subtitle.Render("Sin resultados."))
	default:
		widths := b.columnWidths()
		sb.WriteString(styles.TableHeader.Render(renderRow(b.headers, widths)))
		sb.WriteString("\n")

		visible := b.visibleRows()
		end := b.offset + visible
		if end > len(b.rows) {
			end = len(b.rows)
		}
		for i := b.offset; i < end; i++ {
			line := renderRow(b.rows[i], widths)
			if i == b.cursor {
				sb.WriteString(styles.Selected.Render("> " + line))
			} else {
				sb.WriteString("  " + line)
			}
			sb.WriteString("\n")
		}
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d/%d", b.cursor+1, len(b.rows))))
	}

	sb.WriteString(styles.Help.Render("\n↑↓ scroll · r refresh · b back · q quit"))
	return styles.ActivePanel.Render(sb.String())
}

// columnWidths sizes each column to its widest cell
func (b *Browser) columnWidths() []int {
	widths := make([]int, len(b.headers))
	for i, h := range b.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range b.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	// Cap very wide columns so the table stays on screen.
	for i := range widths {
		if widths[i] > 32 {
			widths[i] = 32
		}
	}
	return widths
}

func renderRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if lipgloss.Width(cell) > widths[i] {
			cell = truncateCell(cell, widths[i])
		}
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	return strings.Join(parts, "  ")
}

func truncateCell(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
