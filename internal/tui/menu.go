// ABOUTME: Role-gated main menu for the TUI
// ABOUTME: Lists only the sections the logged-in user may enter

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmorales/ventas-admin/internal/client"
	"github.com/nmorales/ventas-admin/internal/session"
	"github.com/nmorales/ventas-admin/internal/tui/icons"
	"github.com/nmorales/ventas-admin/internal/tui/styles"
)

// SectionSelectedMsg is sent when the user picks a section
type SectionSelectedMsg struct {
	Section session.Section
}

// MenuCancelledMsg is sent when the user quits from the menu
type MenuCancelledMsg struct{}

// LogoutRequestedMsg is sent when the user asks to log out
type LogoutRequestedMsg struct{}

type menuEntry struct {
	section session.Section
	label   string
	icon    icons.Icon
}

// Menu is the main navigation screen
type Menu struct {
	entries []menuEntry
	cursor  int
	user    *client.Usuario
}

// sectionLabels maps sections to their display labels and icons.
var sectionLabels = map[session.Section]menuEntry{
	session.SectionVentas:            {label: "Ventas", icon: icons.Sale},
	session.SectionClientesConsultar: {label: "Clientes · consultar", icon: icons.Customer},
	session.SectionClientesRegistrar: {label: "Clientes · registrar", icon: icons.Customer},
	session.SectionProductos:         {label: "Productos", icon: icons.Product},
	session.SectionMarcas:            {label: "Marcas", icon: icons.Brand},
	session.SectionLineasConsultar:   {label: "Líneas · consultar", icon: icons.Line},
	session.SectionLineasRegistrar:   {label: "Líneas · registrar", icon: icons.Line},
	session.SectionProveedores:       {label: "Proveedores", icon: icons.Supplier},
	session.SectionEstadisticas:      {label: "Estadísticas", icon: icons.Chart},
	session.SectionUsuarios:          {label: "Usuarios", icon: icons.Users},
	session.SectionPerfil:            {label: "Perfil", icon: icons.Profile},
}

// NewMenu builds the menu for the given user, keeping only the sections
// their roles allow.
func NewMenu(user *client.Usuario) *Menu {
	m := &Menu{user: user}
	for _, s := range session.Sections() {
		if !session.Allowed(user, s) {
			continue
		}
		entry := sectionLabels[s]
		entry.section = s
		m.entries = append(m.entries, entry)
	}
	return m
}

// Update handles menu navigation
func (m *Menu) Update(msg tea.Msg) (*Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.entries) > 0 {
			selected := m.entries[m.cursor].section
			return m, func() tea.Msg { return SectionSelectedMsg{Section: selected} }
		}
	case "l":
		return m, func() tea.Msg { return LogoutRequestedMsg{} }
	case "q", "esc":
		return m, func() tea.Msg { return MenuCancelledMsg{} }
	}
	return m, nil
}

// View renders the menu
func (m *Menu) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.App.String() + " Administración de ventas"))
	sb.WriteString("\n")
	if m.user != nil {
		sb.WriteString(styles.Subtitle.Render(m.user.Email))
		sb.WriteString("\n")
	}

	if len(m.entries) == 0 {
		sb.WriteString(styles.StatusError.Render("Your roles do not grant access to any section."))
		return styles.Panel.Render(sb.String())
	}

	for i, entry := range m.entries {
		line := fmt.Sprintf("%s %s", entry.icon.String(), entry.label)
		if i == m.cursor {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(styles.Help.Render("↑↓ navigate · enter select · l logout · q quit"))
	return styles.Panel.Render(sb.String())
}
