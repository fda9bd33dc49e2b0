// ABOUTME: Brand commands for the ventas-admin CLI
// ABOUTME: Brand CRUD plus assigning product lines to brands

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
	marcaNombre string
	marcaLineas []int
)

var marcasCmd = &cobra.Command{
	Use:   "marcas",
	Short: "Manage brands",
}

var marcasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List brands with their lines",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runMarcasList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var marcasCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a brand",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runMarcasCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var marcasUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a brand",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runMarcasUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var marcasDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a brand",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runMarcasDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var marcasAssignCmd = &cobra.Command{
	Use:   "assign-linea <marca-id> <linea-id>",
	Short: "Assign an existing line to a brand",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runMarcasAssign(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{marcasCreateCmd, marcasUpdateCmd} {
		c.Flags().StringVar(&marcaNombre, "nombre", "", "Brand name")
		c.Flags().IntSliceVar(&marcaLineas, "lineas", nil, "Line IDs to associate")
	}

	marcasCmd.AddCommand(marcasListCmd, marcasCreateCmd, marcasUpdateCmd, marcasDeleteCmd, marcasAssignCmd)
	rootCmd.AddCommand(marcasCmd)
}

func runMarcasList(ctx context.Context, w io.Writer) int {
	_, c, code := requireSection(ctx, w, session.SectionMarcas)
	if code != 0 {
		return code
	}

	marcas, err := c.ListMarcas(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(marcas, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatMarcasHuman(marcas))
	}
	return 0
}

func runMarcasCreate(ctx context.Context, w io.Writer) int {
	if marcaNombre == "" {
		fmt.Fprintln(w, "Error: --nombre is required")
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionMarcas)
	if code != 0 {
		return code
	}

	m, err := c.CreateMarca(ctx, client.CreateMarcaInput{Nombre: marcaNombre, Lineas: marcaLineas})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Created brand %d: %s\n", m.ID, m.Nombre)
	return 0
}

func runMarcasUpdate(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionMarcas)
	if code != 0 {
		return code
	}

	m, err := c.UpdateMarca(ctx, id, client.UpdateMarcaInput{Nombre: marcaNombre, Lineas: marcaLineas})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Updated brand %d\n", m.ID)
	return 0
}

func runMarcasDelete(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionMarcas)
	if code != 0 {
		return code
	}

	if err := c.DeleteMarca(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Removed brand %d\n", id)
	return 0
}

func runMarcasAssign(ctx context.Context, w io.Writer, marcaArg, lineaArg string) int {
	marcaID, err := strconv.Atoi(marcaArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid marca id %q\n", marcaArg)
		return 2
	}
	lineaID, err := strconv.Atoi(lineaArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid linea id %q\n", lineaArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionMarcas)
	if code != 0 {
		return code
	}

	if err := c.AssignLineaToMarca(ctx, marcaID, lineaID); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Assigned line %d to brand %d\n", lineaID, marcaID)
	return 0
}

// formatMarcasHuman renders brands and their lines as a table
func formatMarcasHuman(marcas []client.Marca) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tLÍNEAS")
	for _, m := range marcas {
		names := make([]string, 0, len(m.Lineas))
		for _, l := range m.Lineas {
			names = append(names, l.Nombre)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", m.ID, m.Nombre, strings.Join(names, ", "))
	}
	tw.Flush()
	fmt.Fprintf(&sb, "\n%d brands", len(marcas))
	return sb.String()
}
