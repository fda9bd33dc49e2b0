// ABOUTME: Login screen for the TUI
// ABOUTME: Email and password inputs submitting to the session manager

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmorales/ventas-admin/internal/tui/icons"
	"github.com/nmorales/ventas-admin/internal/tui/styles"
)

// LoginSubmittedMsg carries the entered credentials to the app
type LoginSubmittedMsg struct {
	Email    string
	Password string
}

// LoginCancelledMsg is sent when the user quits from the login screen
type LoginCancelledMsg struct{}

// Login is the credential entry screen
type Login struct {
	email    textinput.Model
	password textinput.Model
	focused  int
	errMsg   string
	busy     bool
}

// NewLogin builds the login screen with the email field focused
func NewLogin() *Login {
	email := textinput.New()
	email.Placeholder = "usuario@empresa.com"
	email.CharLimit = 120
	email.Width = 36
	email.Focus()

	password := textinput.New()
	password.Placeholder = "contraseña"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	password.Width = 36

	return &Login{email: email, password: password}
}

// SetError shows a failure message and re-enables the form
func (l *Login) SetError(msg string) {
	l.errMsg = msg
	l.busy = false
}

// Update handles input and submission
func (l *Login) Update(msg tea.Msg) (*Login, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, l.updateInputs(msg)
	}
	if l.busy {
		return l, nil
	}

	switch key.String() {
	case "tab", "shift+tab", "up", "down":
		l.focused = (l.focused + 1) % 2
		if l.focused == 0 {
			l.email.Focus()
			l.password.Blur()
		} else {
			l.email.Blur()
			l.password.Focus()
		}
		return l, nil

	case "enter":
		if l.focused == 0 {
			// Move on to the password field.
			l.focused = 1
			l.email.Blur()
			l.password.Focus()
			return l, nil
		}
		email := strings.TrimSpace(l.email.Value())
		password := l.password.Value()
		if email == "" || password == "" {
			l.errMsg = "Ingrese email y contraseña"
			return l, nil
		}
		l.busy = true
		l.errMsg = ""
		return l, func() tea.Msg { return LoginSubmittedMsg{Email: email, Password: password} }

	case "esc", "ctrl+c":
		return l, func() tea.Msg { return LoginCancelledMsg{} }
	}

	return l, l.updateInputs(msg)
}

func (l *Login) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	l.email, cmd = l.email.Update(msg)
	cmds = append(cmds, cmd)
	l.password, cmd = l.password.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

// View renders the login form
func (l *Login) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Lock.String() + " Iniciar sesión"))
	sb.WriteString("\n")
	sb.WriteString("Email\n")
	sb.WriteString(l.email.View())
	sb.WriteString("\n\nContraseña\n")
	sb.WriteString(l.password.View())
	sb.WriteString("\n")

	if l.busy {
		sb.WriteString("\n" + styles.Subtitle.Render("Verificando credenciales..."))
	}
	if l.errMsg != "" {
		sb.WriteString("\n" + styles.StatusError.Render(l.errMsg))
	}

	sb.WriteString(styles.Help.Render("\nenter submit · tab switch field · esc quit"))
	return styles.ActivePanel.Render(sb.String())
}
