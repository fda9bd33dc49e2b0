// ABOUTME: Customer commands for the ventas-admin CLI
// ABOUTME: Paged listing, detail, registration, update, and removal

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
	clientesPage   int
	clientesLimit  int
	clientesSearch string

	clienteNombre    string
	clienteApellido  string
	clienteTipoDoc   string
	clienteNumDoc    string
	clienteTelefono  string
)

var clientesCmd = &cobra.Command{
	Use:   "clientes",
	Short: "Manage customers",
}

var clientesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runClientesList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var clientesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one customer",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runClientesGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var clientesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a customer",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runClientesCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var clientesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a customer",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runClientesUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var clientesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a customer",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runClientesDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	clientesListCmd.Flags().IntVar(&clientesPage, "page", 1, "Page number")
	clientesListCmd.Flags().IntVar(&clientesLimit, "limit", 20, "Page size")
	clientesListCmd.Flags().StringVar(&clientesSearch, "search", "", "Filter by name, surname, or document")

	for _, c := range []*cobra.Command{clientesCreateCmd, clientesUpdateCmd} {
		c.Flags().StringVar(&clienteNombre, "nombre", "", "First name")
		c.Flags().StringVar(&clienteApellido, "apellido", "", "Surname")
		c.Flags().StringVar(&clienteTipoDoc, "tipo-documento", "", "Document type (DNI, CUIT, ...)")
		c.Flags().StringVar(&clienteNumDoc, "num-documento", "", "Document number")
		c.Flags().StringVar(&clienteTelefono, "telefono", "", "Phone number")
	}

	clientesCmd.AddCommand(clientesListCmd, clientesGetCmd, clientesCreateCmd, clientesUpdateCmd, clientesDeleteCmd)
	rootCmd.AddCommand(clientesCmd)
}

func runClientesList(ctx context.Context, w io.Writer) int {
	_, c, code := requireSection(ctx, w, session.SectionClientesConsultar)
	if code != 0 {
		return code
	}

	page, err := c.ListClientes(ctx, clientesPage, clientesLimit, clientesSearch)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(page, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatClientesHuman(page))
	}
	return 0
}

func runClientesGet(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionClientesConsultar)
	if code != 0 {
		return code
	}

	cl, err := c.GetCliente(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(cl, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "ID:         %d\nNombre:     %s %s\nDocumento:  %s %s\nTeléfono:   %s\n",
			cl.ID, cl.Nombre, cl.Apellido, cl.TipoDocumento, cl.NumDocumento, cl.Telefono)
	}
	return 0
}

func runClientesCreate(ctx context.Context, w io.Writer) int {
	if clienteNombre == "" || clienteApellido == "" || clienteNumDoc == "" {
		fmt.Fprintln(w, "Error: --nombre, --apellido, and --num-documento are required")
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionClientesRegistrar)
	if code != 0 {
		return code
	}

	cl, err := c.CreateCliente(ctx, client.CreateClienteInput{
		Nombre:        clienteNombre,
		Apellido:      clienteApellido,
		TipoDocumento: clienteTipoDoc,
		NumDocumento:  clienteNumDoc,
		Telefono:      clienteTelefono,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Created customer %d: %s %s\n", cl.ID, cl.Nombre, cl.Apellido)
	return 0
}

func runClientesUpdate(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionClientesRegistrar)
	if code != 0 {
		return code
	}

	cl, err := c.UpdateCliente(ctx, id, client.UpdateClienteInput{
		Nombre:        clienteNombre,
		Apellido:      clienteApellido,
		TipoDocumento: clienteTipoDoc,
		NumDocumento:  clienteNumDoc,
		Telefono:      clienteTelefono,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Updated customer %d\n", cl.ID)
	return 0
}

func runClientesDelete(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid id %q\n", idArg)
		return 2
	}

	_, c, code := requireSection(ctx, w, session.SectionClientesRegistrar)
	if code != 0 {
		return code
	}

	if err := c.DeleteCliente(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Removed customer %d\n", id)
	return 0
}

// formatClientesHuman renders one page of customers as a table
func formatClientesHuman(page *client.ClientesPage) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tAPELLIDO\tDOCUMENTO\tTELÉFONO")
	for _, cl := range page.Data {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s %s\t%s\n",
			cl.ID, cl.Nombre, cl.Apellido, cl.TipoDocumento, cl.NumDocumento, cl.Telefono)
	}
	tw.Flush()
	fmt.Fprintf(&sb, "\n%d of %d customers", len(page.Data), page.Total)
	return sb.String()
}
