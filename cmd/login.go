// ABOUTME: Login command for the ventas-admin CLI
// ABOUTME: Authenticates against the backend and persists the session expiry

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nmorales/ventas-admin/internal/session"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the backend",
	Long: `Authenticate with email and password. On success the access token
lives in the backend's HTTP-only cookie and only its expiry is stored
locally, so other commands can schedule refreshes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	email, password := loginEmail, loginPassword
	if email == "" || password == "" {
		if err := promptCredentials(&email, &password); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	m, _ := newSession()
	result := m.Login(ctx, email, password)
	if !result.OK {
		if IsJSONOutput() {
			fmt.Fprintln(w, formatLoginJSON(result, time.Time{}))
		} else {
			fmt.Fprintf(w, "Login failed: %s\n", result.Message)
		}
		return 1
	}

	refreshAt, _ := m.RefreshPending()
	if IsJSONOutput() {
		fmt.Fprintln(w, formatLoginJSON(result, refreshAt))
	} else {
		fmt.Fprintf(w, "Logged in as %s\n", email)
		if !refreshAt.IsZero() {
			fmt.Fprintf(w, "Session refresh scheduled for %s\n", refreshAt.Format(time.RFC3339))
		}
	}
	return 0
}

// promptCredentials fills the missing credential fields interactively.
func promptCredentials(email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("usuario@empresa.com").
			Value(email))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Contraseña").
			EchoMode(huh.EchoModePassword).
			Value(password))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// formatLoginJSON formats the login result as JSON
func formatLoginJSON(result session.LoginResult, refreshAt time.Time) string {
	output := map[string]interface{}{
		"ok": result.OK,
	}
	if result.Message != "" {
		output["message"] = result.Message
	}
	if !refreshAt.IsZero() {
		output["refresh_at"] = refreshAt.Format(time.RFC3339)
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
