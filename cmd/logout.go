// ABOUTME: Logout command for the ventas-admin CLI
// ABOUTME: Ends the remote session and always clears local state

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Long: `Tell the backend to invalidate the session cookie and clear the
locally stored expiry. Local state is cleared even when the backend
cannot be reached.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout executes the logout flow and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	m, _ := newSession()
	if err := m.Logout(ctx); err != nil {
		fmt.Fprintf(w, "Remote logout failed (%v); local session cleared.\n", err)
		return 0
	}
	fmt.Fprintln(w, "Logged out.")
	return 0
}
