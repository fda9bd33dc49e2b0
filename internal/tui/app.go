// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, session lifecycle, and data loading

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nmorales/ventas-admin/internal/cache"
	"github.com/nmorales/ventas-admin/internal/client"
	"github.com/nmorales/ventas-admin/internal/session"
	"github.com/nmorales/ventas-admin/internal/stats"
	"github.com/nmorales/ventas-admin/internal/tui/icons"
	"github.com/nmorales/ventas-admin/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenMenu
	ScreenBrowser
	ScreenClienteForm
	ScreenWizard
	ScreenDashboard
	ScreenPerfil
)

// Layout constants
const (
	minTerminalWidth = 80
	frameOverhead    = 8 // header, footer, panel borders and padding
)

// loginResultMsg is sent when a login attempt finishes
type loginResultMsg struct {
	result session.LoginResult
}

// userLoadedMsg is sent when the authenticated user is fetched
type userLoadedMsg struct {
	user *client.Usuario
	err  error
}

// listingLoadedMsg carries one resource listing for the browser
type listingLoadedMsg struct {
	section session.Section
	headers []string
	rows    [][]string
	err     error
}

// wizardDataMsg carries the reference data the sale wizard needs
type wizardDataMsg struct {
	clientes  []client.Cliente
	productos []client.Producto
	formas    []client.FormaPago
	err       error
}

// saleSavedMsg is sent when a sale registration completes
type saleSavedMsg struct {
	venta *client.VentaDetallada
	err   error
}

// clienteSavedMsg is sent when a customer registration completes
type clienteSavedMsg struct {
	cliente *client.Cliente
	err     error
}

// statsLoadedMsg is sent when the statistics summary is collected
type statsLoadedMsg struct {
	summary *stats.Summary
	err     error
}

// App is the root model for the TUI
type App struct {
	session *session.Manager
	client  *client.Client
	refs    *cache.Refs

	screen     Screen
	width      int
	height     int
	section    session.Section
	notice     string
	lastUpdate time.Time

	// Child models
	login       *Login
	menu        *Menu
	browser     *Browser
	clienteForm *ClienteForm
	wizard      *SaleWizard
	dashboard   *Dashboard
}

// NewApp creates the root TUI model
func NewApp(m *session.Manager, c *client.Client, refs *cache.Refs) *App {
	return &App{
		session: m,
		client:  c,
		refs:    refs,
		screen:  ScreenLogin,
		login:   NewLogin(),
	}
}

// Init resumes a stored session when one exists
func (a *App) Init() tea.Cmd {
	if a.session.Authenticated() {
		a.session.Resume(context.Background())
		return a.loadUser()
	}
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.browser != nil {
			a.browser.SetHeight(a.contentHeight())
		}
		if a.dashboard != nil {
			a.dashboard.SetWidth(a.contentWidth())
		}
		if a.screen == ScreenWizard || a.screen == ScreenClienteForm {
			return a.forwardToActiveForm(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeKey(msg)

	case LoginSubmittedMsg:
		return a, a.attemptLogin(msg.Email, msg.Password)

	case LoginCancelledMsg:
		return a, tea.Quit

	case loginResultMsg:
		if !msg.result.OK {
			if a.login != nil {
				a.login.SetError(msg.result.Message)
			}
			return a, nil
		}
		return a, a.loadUser()

	case userLoadedMsg:
		if msg.err != nil {
			return a.expireToLogin(msg.err)
		}
		a.menu = NewMenu(msg.user)
		a.screen = ScreenMenu
		a.login = nil
		return a, nil

	case SectionSelectedMsg:
		return a.openSection(msg.Section)

	case MenuCancelledMsg:
		return a, tea.Quit

	case LogoutRequestedMsg:
		// Best effort remote logout; local state always cleared.
		_ = a.session.Logout(context.Background())
		a.login = NewLogin()
		a.menu = nil
		a.screen = ScreenLogin
		a.notice = ""
		return a, nil

	case listingLoadedMsg:
		if a.browser == nil || msg.section != a.section {
			return a, nil
		}
		if msg.err != nil {
			if isUnauthorized(msg.err) {
				return a.expireToLogin(msg.err)
			}
			a.browser.SetError(msg.err.Error())
			return a, nil
		}
		a.browser.SetRows(msg.headers, msg.rows)
		a.lastUpdate = time.Now()
		return a, nil

	case BrowserRefreshMsg:
		// An explicit refresh must bypass the reference cache.
		a.refs.Invalidate()
		return a, a.loadListing(a.section)

	case BrowserBackMsg:
		a.screen = ScreenMenu
		a.browser = nil
		return a, nil

	case wizardDataMsg:
		if msg.err != nil {
			if isUnauthorized(msg.err) {
				return a.expireToLogin(msg.err)
			}
			a.notice = styles.StatusError.Render("Error: " + msg.err.Error())
			a.screen = ScreenMenu
			return a, nil
		}
		a.wizard = NewSaleWizard(msg.clientes, msg.productos, msg.formas)
		a.screen = ScreenWizard
		return a, a.wizard.Init()

	case SaleCompleteMsg:
		a.wizard = nil
		return a, a.saveSale(msg.Input)

	case SaleCancelledMsg:
		a.wizard = nil
		a.screen = ScreenMenu
		return a, nil

	case saleSavedMsg:
		if msg.err != nil {
			a.notice = styles.StatusError.Render("Error: " + msg.err.Error())
		} else {
			a.notice = styles.StatusOK.Render(fmt.Sprintf("Venta %d registrada, total %.2f", msg.venta.ID, msg.venta.Total))
		}
		a.screen = ScreenMenu
		return a, nil

	case ClienteCompleteMsg:
		a.clienteForm = nil
		return a, a.saveCliente(msg.Input)

	case ClienteCancelledMsg:
		a.clienteForm = nil
		a.screen = ScreenMenu
		return a, nil

	case clienteSavedMsg:
		if msg.err != nil {
			a.notice = styles.StatusError.Render("Error: " + msg.err.Error())
		} else {
			a.notice = styles.StatusOK.Render(fmt.Sprintf("Cliente %s %s registrado", msg.cliente.Nombre, msg.cliente.Apellido))
		}
		a.screen = ScreenMenu
		return a, nil

	case statsLoadedMsg:
		if msg.err != nil {
			if isUnauthorized(msg.err) {
				return a.expireToLogin(msg.err)
			}
			a.notice = styles.StatusError.Render("Error: " + msg.err.Error())
			a.screen = ScreenMenu
			return a, nil
		}
		a.dashboard = NewDashboard(msg.summary, a.session.HasRole(session.RoleDueno), a.contentWidth())
		a.screen = ScreenDashboard
		a.lastUpdate = time.Now()
		return a, nil

	default:
		// huh forms need every message forwarded while active.
		if a.screen == ScreenWizard || a.screen == ScreenClienteForm {
			return a.forwardToActiveForm(msg)
		}
		if a.screen == ScreenLogin && a.login != nil {
			var cmd tea.Cmd
			a.login, cmd = a.login.Update(msg)
			return a, cmd
		}
	}

	return a, nil
}

// routeKey dispatches keys to the active screen
func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenLogin:
		if a.login == nil {
			return a, nil
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case ScreenMenu:
		if a.menu == nil {
			return a, nil
		}
		a.notice = ""
		var cmd tea.Cmd
		a.menu, cmd = a.menu.Update(msg)
		return a, cmd

	case ScreenBrowser:
		if a.browser == nil {
			return a, nil
		}
		if msg.String() == "q" {
			return a, tea.Quit
		}
		if msg.String() == "n" && a.section == session.SectionVentas {
			return a, a.loadWizardData()
		}
		var cmd tea.Cmd
		a.browser, cmd = a.browser.Update(msg)
		return a, cmd

	case ScreenClienteForm, ScreenWizard:
		return a.forwardToActiveForm(msg)

	case ScreenDashboard, ScreenPerfil:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "b", "esc":
			a.screen = ScreenMenu
			a.dashboard = nil
			return a, nil
		case "r":
			if a.screen == ScreenDashboard {
				return a, a.loadStats()
			}
		}
	}
	return a, nil
}

func (a *App) forwardToActiveForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case a.screen == ScreenWizard && a.wizard != nil:
		var cmd tea.Cmd
		a.wizard, cmd = a.wizard.Update(msg)
		return a, cmd
	case a.screen == ScreenClienteForm && a.clienteForm != nil:
		var cmd tea.Cmd
		a.clienteForm, cmd = a.clienteForm.Update(msg)
		return a, cmd
	}
	return a, nil
}

// openSection transitions from the menu into a section
func (a *App) openSection(s session.Section) (tea.Model, tea.Cmd) {
	if !a.session.CanAccess(s) {
		a.notice = styles.StatusError.Render("No autorizado para " + string(s))
		return a, nil
	}
	a.section = s

	switch s {
	case session.SectionEstadisticas:
		return a, a.loadStats()
	case session.SectionPerfil:
		a.screen = ScreenPerfil
		return a, nil
	case session.SectionClientesRegistrar:
		a.clienteForm = NewClienteForm()
		a.screen = ScreenClienteForm
		return a, a.clienteForm.Init()
	default:
		entry := sectionLabels[s]
		a.browser = NewBrowser(entry.icon.String()+" "+entry.label, a.contentHeight())
		a.screen = ScreenBrowser
		return a, a.loadListing(s)
	}
}

// expireToLogin drops to the login screen after an auth failure
func (a *App) expireToLogin(err error) (tea.Model, tea.Cmd) {
	_ = a.session.Logout(context.Background())
	a.login = NewLogin()
	a.login.SetError("Sesión expirada: " + err.Error())
	a.menu = nil
	a.browser = nil
	a.dashboard = nil
	a.screen = ScreenLogin
	return a, nil
}

// isUnauthorized reports whether the error is a 401 from the backend
func isUnauthorized(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

// attemptLogin runs the login against the session manager
func (a *App) attemptLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		result := a.session.Login(context.Background(), email, password)
		return loginResultMsg{result: result}
	}
}

// loadUser fetches the authenticated user for menu construction
func (a *App) loadUser() tea.Cmd {
	return func() tea.Msg {
		user, err := a.session.LoadUser(context.Background())
		return userLoadedMsg{user: user, err: err}
	}
}

// loadListing fetches the listing for a section and shapes it into rows
func (a *App) loadListing(s session.Section) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		msg := listingLoadedMsg{section: s}

		switch s {
		case session.SectionClientesConsultar:
			page, err := a.client.ListClientes(ctx, 1, 100, "")
			if err != nil {
				msg.err = err
				break
			}
			msg.headers = []string{"ID", "Apellido", "Nombre", "Documento", "Teléfono"}
			for _, c := range page.Data {
				msg.rows = append(msg.rows, []string{
					strconv.Itoa(c.ID), c.Apellido, c.Nombre,
					c.TipoDocumento + " " + c.NumDocumento, c.Telefono,
				})
			}

		case session.SectionMarcas:
			marcas, err := a.refs.Marcas(ctx, a.client.ListMarcas)
			if err != nil {
				msg.err = err
				break
			}
			msg.headers = []string{"ID", "Nombre", "Líneas"}
			for _, m := range marcas {
				names := make([]string, 0, len(m.Lineas))
				for _, l := range m.Lineas {
					names = append(names, l.Nombre)
				}
				msg.rows = append(msg.rows, []string{
					strconv.Itoa(m.ID), m.Nombre, strings.Join(names, ", "),
				})
			}

		case session.SectionLineasConsultar, session.SectionLineasRegistrar:
			lineas, err := a.refs.Lineas(ctx, a.client.ListLineas)
			if err != nil {
				msg.err = err
				break
			}
			msg.headers = []string{"ID", "Nombre"}
			for _, l := range lineas {
				msg.rows = append(msg.rows, []string{strconv.Itoa(l.ID), l.Nombre})
			}

		case session.SectionProductos:
			page, err := a.client.SearchProductos(ctx, client.ProductoFilter{Page: 1, Limit: 100})
			if err != nil {
				msg.err = err
				break
			}
			msg.headers = []string{"ID", "Nombre", "Marca", "Línea", "Precio", "Stock"}
			for _, p := range page.Data {
				msg.rows = append(msg.rows, []string{
					strconv.Itoa(p.ID), p.Nombre, p.Marca.String(), p.Linea.String(),
					fmt.Sprintf("%.2f", p.PrecioConImpuesto), strconv.Itoa(p.Stock),
				})
			}

		case session.SectionProveedores:
			proveedores, err := a.client.ListProveedores(ctx)
			if err != nil {
				msg.err = err
				break
			}
			msg.headers = []string{"ID", "Nombre", "CUIT", "Dirección"}
			for _, p := range proveedores {
				msg.rows = append(msg.rows, []string{
					strconv.Itoa(p.ID), p.Nombre, p.CUIT, p.Direccion,
				})
			}

		case session.SectionVentas:
			ventas, err := a.client.ListVentas(ctx)
			if err != nil {
				msg.err = err
				break
			}
			msg.headers = []string{"ID", "Fecha", "Cliente", "Responsable", "Forma de pago", "Total"}
			for _, v := range ventas {
				msg.rows = append(msg.rows, []string{
					strconv.Itoa(v.ID), v.Fecha, v.Cliente, v.Responsable,
					v.FormaPago, fmt.Sprintf("%.2f", v.Total),
				})
			}

		case session.SectionUsuarios:
			usuarios, err := a.client.ListUsuarios(ctx)
			if err != nil {
				msg.err = err
				break
			}
			msg.headers = []string{"ID", "Email", "Roles"}
			for _, u := range usuarios {
				names := make([]string, 0, len(u.Role))
				for _, r := range u.Role {
					names = append(names, r.Name)
				}
				msg.rows = append(msg.rows, []string{
					u.ID.String(), u.Email, strings.Join(names, ", "),
				})
			}

		default:
			msg.err = fmt.Errorf("no listing for %s", s)
		}

		return msg
	}
}

// loadWizardData fetches the reference data the sale wizard needs
func (a *App) loadWizardData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		clientes, err := a.client.ListClientes(ctx, 1, 200, "")
		if err != nil {
			return wizardDataMsg{err: err}
		}
		productos, err := a.client.SearchProductos(ctx, client.ProductoFilter{Page: 1, Limit: 200})
		if err != nil {
			return wizardDataMsg{err: err}
		}
		formas, err := a.refs.FormasPago(ctx, a.client.ListFormasPago)
		if err != nil {
			return wizardDataMsg{err: err}
		}

		return wizardDataMsg{clientes: clientes.Data, productos: productos.Data, formas: formas}
	}
}

// saveSale posts the wizard result to the backend
func (a *App) saveSale(input client.CreateVentaInput) tea.Cmd {
	return func() tea.Msg {
		venta, err := a.client.CreateVenta(context.Background(), input)
		return saleSavedMsg{venta: venta, err: err}
	}
}

// saveCliente posts the customer form result to the backend
func (a *App) saveCliente(input client.CreateClienteInput) tea.Cmd {
	return func() tea.Msg {
		cliente, err := a.client.CreateCliente(context.Background(), input)
		return clienteSavedMsg{cliente: cliente, err: err}
	}
}

// loadStats collects the statistics summary
func (a *App) loadStats() tea.Cmd {
	return func() tea.Msg {
		summary, err := stats.Collect(context.Background(), a.client)
		return statsLoadedMsg{summary: summary, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		if a.login != nil {
			content = a.login.View()
		}
	case ScreenMenu:
		if a.menu != nil {
			content = a.menu.View()
		}
		if a.notice != "" {
			content += "\n" + a.notice
		}
	case ScreenBrowser:
		if a.browser != nil {
			content = a.browser.View()
		}
	case ScreenClienteForm:
		if a.clienteForm != nil {
			content = a.clienteForm.View()
		}
	case ScreenWizard:
		if a.wizard != nil {
			content = a.wizard.View()
		}
	case ScreenDashboard:
		if a.dashboard != nil {
			content = styles.ActivePanel.Render(a.dashboard.View())
		}
	case ScreenPerfil:
		content = a.viewPerfil()
	}

	return a.wrapWithFrame(content)
}

// viewPerfil renders the logged-in user's account
func (a *App) viewPerfil() string {
	user := a.session.CurrentUser()
	if user == nil {
		return styles.Subtitle.Render("Cargando...")
	}

	names := make([]string, 0, len(user.Role))
	for _, r := range user.Role {
		names = append(names, r.Name)
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Profile.String() + " Perfil"))
	sb.WriteString("\n")
	sb.WriteString("Email:  " + styles.ValueStyle.Render(user.Email) + "\n")
	sb.WriteString("Roles:  " + strings.Join(names, ", ") + "\n")
	if at, armed := a.session.RefreshPending(); armed {
		sb.WriteString("Renovación de sesión: " + at.Format("15:04:05") + "\n")
	}
	sb.WriteString(styles.Help.Render("\nb back · q quit"))
	return styles.Panel.Render(sb.String())
}

// contentWidth is the width available inside the frame
func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - 4
	}
	return a.width - 4
}

// contentHeight is the height available inside the frame
func (a *App) contentHeight() int {
	return a.height - frameOverhead
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Ventas Admin"))

	rightText := ""
	if user := a.session.CurrentUser(); user != nil && a.screen != ScreenLogin {
		rightText = contextStyle.Render(user.Email) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"enter Submit", "tab Field", "esc Quit"}
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "l Logout", "q Quit"}
	case ScreenBrowser:
		if a.section == session.SectionVentas {
			shortcuts = []string{"↑↓ Scroll", "n New sale", "r Refresh", "b Back", "q Quit"}
		} else {
			shortcuts = []string{"↑↓ Scroll", "r Refresh", "b Back", "q Quit"}
		}
	case ScreenClienteForm, ScreenWizard:
		shortcuts = []string{"↑↓ Select", "Enter Confirm", "Esc Cancel"}
	case ScreenDashboard:
		shortcuts = []string{"r Refresh", "b Back", "q Quit"}
	case ScreenPerfil:
		shortcuts = []string{"b Back", "q Quit"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && (a.screen == ScreenBrowser || a.screen == ScreenDashboard) {
		elapsed := formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯")
}

// formatTimeSince formats a duration since the given time
func formatTimeSince(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}
