// ABOUTME: User-administration commands for the ventas-admin CLI
// ABOUTME: Listing and updating accounts, gated to administrators

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nmorales/ventas-admin/internal/session"
)

var (
	usuarioEmail    string
	usuarioPassword string
)

var usuariosCmd = &cobra.Command{
	Use:   "usuarios",
	Short: "Administer user accounts",
}

var usuariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsuariosList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var usuariosGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsuariosGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var usuariosUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsuariosUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	usuariosUpdateCmd.Flags().StringVar(&usuarioEmail, "email", "", "New email")
	usuariosUpdateCmd.Flags().StringVar(&usuarioPassword, "password", "", "New password")

	usuariosCmd.AddCommand(usuariosListCmd, usuariosGetCmd, usuariosUpdateCmd)
	rootCmd.AddCommand(usuariosCmd)
}

func runUsuariosList(ctx context.Context, w io.Writer) int {
	_, c, code := requireSection(ctx, w, session.SectionUsuarios)
	if code != 0 {
		return code
	}

	usuarios, err := c.ListUsuarios(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(usuarios, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		var sb strings.Builder
		tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tEMAIL\tROLES")
		for _, u := range usuarios {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", u.ID.String(), u.Email, roleNames(&u))
		}
		tw.Flush()
		fmt.Fprintf(&sb, "\n%d accounts", len(usuarios))
		fmt.Fprintln(w, sb.String())
	}
	return 0
}

func runUsuariosGet(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionUsuarios)
	if code != 0 {
		return code
	}

	u, err := c.GetUsuario(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(u, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "ID:     %s\nEmail:  %s\nRoles:  %s\n", u.ID.String(), u.Email, roleNames(u))
	}
	return 0
}

func runUsuariosUpdate(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}
	if usuarioEmail == "" && usuarioPassword == "" {
		fmt.Fprintln(w, "Error: nothing to update, pass --email or --password")
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionUsuarios)
	if code != 0 {
		return code
	}

	update := map[string]interface{}{}
	if usuarioEmail != "" {
		update["email"] = usuarioEmail
	}
	if usuarioPassword != "" {
		update["password"] = usuarioPassword
	}

	u, err := c.UpdateUsuario(ctx, id, update)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Updated account %s\n", u.ID.String())
	return 0
}
