// ABOUTME: Profile command for the ventas-admin CLI
// ABOUTME: Shows and updates the logged-in user's own account

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nmorales/ventas-admin/internal/session"
)

var (
	perfilEmail    string
	perfilPassword string
)

var perfilCmd = &cobra.Command{
	Use:   "perfil",
	Short: "Show or update your profile",
	Long:  `Show the logged-in user's account. With flags, update the email or password.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPerfil(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	perfilCmd.Flags().StringVar(&perfilEmail, "email", "", "New email")
	perfilCmd.Flags().StringVar(&perfilPassword, "password", "", "New password")
	rootCmd.AddCommand(perfilCmd)
}

// runPerfil shows or updates the profile and returns exit code
func runPerfil(ctx context.Context, w io.Writer) int {
	m, c, code := requireSection(ctx, w, session.SectionPerfil)
	if code != 0 {
		return code
	}

	if perfilEmail != "" || perfilPassword != "" {
		update := map[string]interface{}{}
		if perfilEmail != "" {
			update["email"] = perfilEmail
		}
		if perfilPassword != "" {
			update["password"] = perfilPassword
		}
		user, err := c.UpdateMe(ctx, update)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintf(w, "Profile updated: %s\n", user.Email)
		return 0
	}

	user := m.CurrentUser()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Email:  %s\nRoles:  %s\n", user.Email, roleNames(user))
	}
	return 0
}
