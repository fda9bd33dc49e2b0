// ABOUTME: Customer registration form as a bubbletea model
// ABOUTME: huh form collecting the fields for a new customer

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nmorales/ventas-admin/internal/client"
)

// ClienteCompleteMsg is sent when the customer form is submitted
type ClienteCompleteMsg struct {
	Input client.CreateClienteInput
}

// ClienteCancelledMsg is sent when the customer form is cancelled
type ClienteCancelledMsg struct{}

// ClienteForm collects a new customer
type ClienteForm struct {
	form *huh.Form

	nombre   string
	apellido string
	tipoDoc  string
	numDoc   string
	telefono string
}

// NewClienteForm builds the registration form
func NewClienteForm() *ClienteForm {
	f := &ClienteForm{tipoDoc: "DNI"}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nombre").
				CharLimit(80).
				Value(&f.nombre).
				Validate(requireField),
			huh.NewInput().
				Title("Apellido").
				CharLimit(80).
				Value(&f.apellido).
				Validate(requireField),
			huh.NewSelect[string]().
				Title("Tipo de documento").
				Options(
					huh.NewOption("DNI", "DNI"),
					huh.NewOption("CUIT", "CUIT"),
					huh.NewOption("CUIL", "CUIL"),
					huh.NewOption("Pasaporte", "PASAPORTE"),
				).
				Value(&f.tipoDoc),
			huh.NewInput().
				Title("Número de documento").
				CharLimit(20).
				Value(&f.numDoc).
				Validate(requireField),
			huh.NewInput().
				Title("Teléfono").
				CharLimit(30).
				Value(&f.telefono),
		).Title("Registrar cliente"),
	).WithTheme(formTheme())

	return f
}

// Init implements tea.Model
func (f *ClienteForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update advances the form
func (f *ClienteForm) Update(msg tea.Msg) (*ClienteForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, func() tea.Msg { return ClienteCancelledMsg{} }
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		input := client.CreateClienteInput{
			Nombre:        strings.TrimSpace(f.nombre),
			Apellido:      strings.TrimSpace(f.apellido),
			TipoDocumento: f.tipoDoc,
			NumDocumento:  strings.TrimSpace(f.numDoc),
			Telefono:      strings.TrimSpace(f.telefono),
		}
		return f, func() tea.Msg { return ClienteCompleteMsg{Input: input} }
	}
	return f, cmd
}

// View renders the form
func (f *ClienteForm) View() string {
	return f.form.View()
}

func requireField(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}
