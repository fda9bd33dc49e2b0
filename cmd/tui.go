// ABOUTME: Interactive TUI command for the ventas-admin CLI
// ABOUTME: Launches the full-screen terminal interface

package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nmorales/ventas-admin/internal/cache"
	"github.com/nmorales/ventas-admin/internal/session"
	"github.com/nmorales/ventas-admin/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal interface",
	Long: `Open the full-screen interface: login, role-gated menu, resource
browsers, the sale wizard, and the statistics dashboard.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runTUI()
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI starts the bubbletea program and returns exit code
func runTUI() int {
	c := newClient()
	m := session.NewManager(c, session.NewStore(session.DefaultConfigDir()))
	refs := cache.NewRefs(time.Duration(getConfig().CacheTTL) * time.Second)

	app := tui.NewApp(m, c, refs)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
