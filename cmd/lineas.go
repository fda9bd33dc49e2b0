// ABOUTME: Product-line commands for the ventas-admin CLI
// ABOUTME: Line CRUD with distinct consult and register role gates

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

	"github.com/nmorales/ventas-admin/internal/client"
	"github.com/nmorales/ventas-admin/internal/session"
)

var (
	lineaNombre  string
	lineaMarcaID int
)

var lineasCmd = &cobra.Command{
	Use:   "lineas",
	Short: "Manage product lines",
}

var lineasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List product lines",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLineasList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var lineasGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one line with its brands",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLineasGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var lineasCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a product line",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLineasCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var lineasUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename a product line",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLineasUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var lineasDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a product line",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLineasDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	lineasListCmd.Flags().IntVar(&lineaMarcaID, "marca", 0, "Only lines of this brand ID")
	for _, c := range []*cobra.Command{lineasCreateCmd, lineasUpdateCmd} {
		c.Flags().StringVar(&lineaNombre, "nombre", "", "Line name")
	}

	lineasCmd.AddCommand(lineasListCmd, lineasGetCmd, lineasCreateCmd, lineasUpdateCmd, lineasDeleteCmd)
	rootCmd.AddCommand(lineasCmd)
}

func runLineasList(ctx context.Context, w io.Writer) int {
	_, c, code := requireSection(ctx, w, session.SectionLineasConsultar)
	if code != 0 {
		return code
	}

	var (
		lineas []client.Linea
		err    error
	)
	if lineaMarcaID > 0 {
		lineas, err = c.ListLineasByMarca(ctx, lineaMarcaID)
	} else {
		lineas, err = c.ListLineas(ctx)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(lineas, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		var sb strings.Builder
		tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNOMBRE")
		for _, l := range lineas {
			fmt.Fprintf(tw, "%d\t%s\n", l.ID, l.Nombre)
		}
		tw.Flush()
		fmt.Fprintf(&sb, "\n%d lines", len(lineas))
		fmt.Fprintln(w, sb.String())
	}
	return 0
}

func runLineasGet(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionLineasConsultar)
	if code != 0 {
		return code
	}

	l, err := c.GetLinea(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(l, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		names := make([]string, 0, len(l.Marcas))
		for _, m := range l.Marcas {
			names = append(names, m.Nombre)
		}
		fmt.Fprintf(w, "ID:      %d\nNombre:  %s\nMarcas:  %s\n", l.ID, l.Nombre, strings.Join(names, ", "))
	}
	return 0
}

func runLineasCreate(ctx context.Context, w io.Writer) int {
	if lineaNombre == "" {
		fmt.Fprintln(w, "Error: --nombre is required")
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionLineasRegistrar)
	if code != 0 {
		return code
	}

	l, err := c.CreateLinea(ctx, client.CreateLineaInput{Nombre: lineaNombre})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Created line %d: %s\n", l.ID, l.Nombre)
	return 0
}

func runLineasUpdate(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionLineasRegistrar)
	if code != 0 {
		return code
	}

	l, err := c.UpdateLinea(ctx, id, client.CreateLineaInput{Nombre: lineaNombre})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Updated line %d\n", l.ID)
	return 0
}

func runLineasDelete(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionLineasRegistrar)
	if code != 0 {
		return code
	}

	if err := c.DeleteLinea(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Removed line %d\n", id)
	return 0
}
