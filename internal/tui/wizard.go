// ABOUTME: Sale registration wizard as a bubbletea model
// ABOUTME: Uses huh forms to pick customer, product lines, and payment method

package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nmorales/ventas-admin/internal/client"
	"github.com/nmorales/ventas-admin/internal/tui/icons"
	"github.com/nmorales/ventas-admin/internal/tui/styles"
)

// SaleCompleteMsg is sent when the wizard finishes successfully
type SaleCompleteMsg struct {
	Input client.CreateVentaInput
}

// SaleCancelledMsg is sent when the wizard is cancelled
type SaleCancelledMsg struct{}

// wizard step names for the progress line
var saleSteps = []string{"Cliente", "Productos", "Forma de pago"}

// SaleWizard walks through registering a sale
type SaleWizard struct {
	clientes  []client.Cliente
	productos []client.Producto
	formas    []client.FormaPago

	form  *huh.Form
	step  int
	lines []client.VentaLineInput

	// Form field values (strings for huh)
	clienteID  string
	productoID string
	cantidad   string
	addMore    bool
	formaID    string
}

// NewSaleWizard builds the wizard from pre-fetched reference data
func NewSaleWizard(clientes []client.Cliente, productos []client.Producto, formas []client.FormaPago) *SaleWizard {
	w := &SaleWizard{
		clientes:  clientes,
		productos: productos,
		formas:    formas,
		step:      1,
		cantidad:  "1",
	}
	w.form = w.clienteForm()
	return w
}

// formTheme returns a huh theme matching the application palette
func formTheme() *huh.Theme {
	t := huh.ThemeBase()

	blue := lipgloss.Color("#0EA5E9")
	blueLight := lipgloss.Color("#38BDF8")
	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")
	slate := lipgloss.Color("#334155")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(blue).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(blue)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(blueLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(blue).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(grayLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(blue).
		Bold(true)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(blue)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(blue)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(blue).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

func (w *SaleWizard) clienteForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(w.clientes))
	for _, c := range w.clientes {
		label := fmt.Sprintf("%s %s (%s)", c.Apellido, c.Nombre, c.NumDocumento)
		options = append(options, huh.NewOption(label, strconv.Itoa(c.ID)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Cliente").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(options...).
				Value(&w.clienteID),
		).Title("Paso 1: Cliente").
			Description("¿Para quién es la venta?"),
	).WithTheme(formTheme())
}

func (w *SaleWizard) productoForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(w.productos))
	for _, p := range w.productos {
		label := fmt.Sprintf("%s (%.2f, stock %d)", p.Nombre, p.PrecioConImpuesto, p.Stock)
		options = append(options, huh.NewOption(label, strconv.Itoa(p.ID)))
	}

	w.productoID = ""
	w.cantidad = "1"
	w.addMore = false

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Producto").
				Options(options...).
				Value(&w.productoID),
			huh.NewInput().
				Title("Cantidad").
				Placeholder("1").
				CharLimit(5).
				Value(&w.cantidad).
				Validate(validatePositiveInt),
			huh.NewConfirm().
				Title("¿Agregar otro producto?").
				Affirmative("Sí").
				Negative("No").
				Value(&w.addMore),
		).Title(fmt.Sprintf("Paso 2: Productos (%d agregados)", len(w.lines))).
			Description("Elija producto y cantidad"),
	).WithTheme(formTheme())
}

func (w *SaleWizard) formaPagoForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(w.formas))
	for _, f := range w.formas {
		options = append(options, huh.NewOption(f.Nombre, strconv.Itoa(f.ID)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Forma de pago").
				Options(options...).
				Value(&w.formaID),
		).Title("Paso 3: Forma de pago").
			Description("¿Cómo paga el cliente?"),
	).WithTheme(formTheme())
}

// Init implements tea.Model
func (w *SaleWizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update advances the form and steps
func (w *SaleWizard) Update(msg tea.Msg) (*SaleWizard, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return w, func() tea.Msg { return SaleCancelledMsg{} }
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}
	return w, cmd
}

func (w *SaleWizard) advanceStep() (*SaleWizard, tea.Cmd) {
	switch w.step {
	case 1:
		w.step = 2
		w.form = w.productoForm()
		return w, w.form.Init()

	case 2:
		productoID, _ := strconv.Atoi(w.productoID)
		cantidad, _ := strconv.Atoi(w.cantidad)
		if productoID > 0 && cantidad > 0 {
			w.lines = append(w.lines, client.VentaLineInput{ProductoID: productoID, Cantidad: cantidad})
		}
		if w.addMore {
			w.form = w.productoForm()
			return w, w.form.Init()
		}
		w.step = 3
		w.form = w.formaPagoForm()
		return w, w.form.Init()

	case 3:
		clienteID, _ := strconv.Atoi(w.clienteID)
		formaID, _ := strconv.Atoi(w.formaID)
		input := client.CreateVentaInput{
			ClienteID:   clienteID,
			FormaPagoID: formaID,
			Detalles:    w.lines,
		}
		return w, func() tea.Msg { return SaleCompleteMsg{Input: input} }
	}
	return w, nil
}

// View renders the progress line and the active form
func (w *SaleWizard) View() string {
	var sb strings.Builder

	var steps []string
	for i, name := range saleSteps {
		stepNum := i + 1
		switch {
		case stepNum < w.step:
			steps = append(steps, styles.StatusOK.Render(icons.CheckOK.String())+" "+styles.Subtitle.Render(name))
		case stepNum == w.step:
			steps = append(steps, styles.Selected.Render("● "+name))
		default:
			steps = append(steps, styles.Subtitle.Render("○ "+name))
		}
	}
	sb.WriteString(strings.Join(steps, "    "))
	sb.WriteString("\n\n")
	sb.WriteString(w.form.View())

	return sb.String()
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}
