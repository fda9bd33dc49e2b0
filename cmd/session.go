// ABOUTME: Session status command for the ventas-admin CLI
// ABOUTME: Reports the stored expiry, refresh schedule, and current user

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
	"time"

	"github.com/spf13/cobra"

	"github.com/nmorales/ventas-admin/internal/client"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show session status",
	Long:  `Show whether a session is active, when the token expires, and who is logged in.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSession(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

// runSession reports session state and returns exit code
func runSession(ctx context.Context, w io.Writer) int {
	m, _ := newSession()

	if !m.Authenticated() {
		if IsJSONOutput() {
			fmt.Fprintln(w, `{"active": false}`)
		} else {
			fmt.Fprintln(w, "No active session.")
		}
		return 1
	}

	m.Resume(ctx)
	refreshAt, armed := m.RefreshPending()

	user, err := m.LoadUser(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatSessionJSON(user, refreshAt, armed))
	} else {
		fmt.Fprintln(w, formatSessionHuman(user, refreshAt, armed))
	}
	return 0
}

// formatSessionHuman formats session state for human readability
func formatSessionHuman(user *client.Usuario, refreshAt time.Time, armed bool) string {
	refresh := "none scheduled"
	if armed {
		refresh = refreshAt.Format(time.RFC3339)
	}
	return fmt.Sprintf(`Session:  active
User:     %s
Roles:    %s
Refresh:  %s`, user.Email, roleNames(user), refresh)
}

// formatSessionJSON formats session state as JSON
func formatSessionJSON(user *client.Usuario, refreshAt time.Time, armed bool) string {
	output := map[string]interface{}{
		"active": true,
		"user":   user.Email,
		"roles":  strings.Split(roleNames(user), ", "),
	}
	if armed {
		output["refresh_at"] = refreshAt.Format(time.RFC3339)
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}

// roleNames joins the user's role names for display.
func roleNames(user *client.Usuario) string {
	names := make([]string, 0, len(user.Role))
	for _, r := range user.Role {
		names = append(names, r.Name)
	}
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
