// ABOUTME: Root command for the ventas-admin CLI
// ABOUTME: Handles global flags, configuration, and shared client wiring

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nmorales/ventas-admin/internal/client"
	"github.com/nmorales/ventas-admin/internal/config"
	"github.com/nmorales/ventas-admin/internal/logger"
	"github.com/nmorales/ventas-admin/internal/session"
)

var (
	apiURLFlag   string
	adminKeyFlag string
	jsonOutput   bool

	cfg *config.Config
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "ventas-admin",
	Short: "Terminal admin for the retail sales-management backend",
	Long: `ventas-admin is a terminal front-end for the retail sales-management API.

It manages customers, brands, product lines, products, suppliers, and
sales, with role-gated access backed by the server's cookie session.

Environment Variables:
  VENTAS_API_URL       Backend API URL (default: http://localhost:3001)
  VENTAS_ADMIN_KEY     Value for the x-admin-key header, optional
  VENTAS_HTTP_TIMEOUT  HTTP timeout in seconds (default: 30)
  LOG_LEVEL            debug, info, warn, error (default: info)`,
}

// Execute runs the root command
func Execute() error {
	// A missing .env file is fine; env vars still apply.
	_ = godotenv.Load()
	logger.Init()

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Backend API URL (overrides VENTAS_API_URL)")
	rootCmd.PersistentFlags().StringVar(&adminKeyFlag, "admin-key", "", "Admin key header (overrides VENTAS_ADMIN_KEY)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// getConfig returns the loaded configuration, loading lazily when a
// command function is exercised without going through Execute.
func getConfig() *config.Config {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			slog.Warn("invalid configuration, using defaults", "error", err)
			loaded = &config.Config{APIURL: "http://localhost:3001", HTTPTimeout: 30, CacheTTL: 300}
		}
		cfg = loaded
	}
	return cfg
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURLFlag != "" {
		return apiURLFlag
	}
	return getConfig().APIURL
}

// GetAdminKey returns the admin key from flag or env
func GetAdminKey() string {
	if adminKeyFlag != "" {
		return adminKeyFlag
	}
	return getConfig().AdminKey
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newClient builds the API client from the effective configuration.
func newClient() *client.Client {
	timeout := time.Duration(getConfig().HTTPTimeout) * time.Second
	return client.NewWithTimeout(GetAPIURL(), GetAdminKey(), timeout)
}

// newSession wires a session manager around a fresh API client.
func newSession() (*session.Manager, *client.Client) {
	c := newClient()
	m := session.NewManager(c, session.NewStore(session.DefaultConfigDir()))
	return m, c
}

// requireSection resumes the stored session, loads the user, and checks
// the section gate. It returns the manager and client on success; on
// failure it writes the reason and returns a non-zero exit code.
func requireSection(ctx context.Context, w io.Writer, s session.Section) (*session.Manager, *client.Client, int) {
	m, c := newSession()
	if !m.Resume(ctx) {
		fmt.Fprintln(w, "No active session. Run 'ventas-admin login' first.")
		return nil, nil, 2
	}
	if _, err := m.LoadUser(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil, nil, 2
	}
	if !m.CanAccess(s) {
		fmt.Fprintf(w, "Not authorized: your roles do not grant access to %s\n", s)
		return nil, nil, 2
	}
	return m, c, 0
}
