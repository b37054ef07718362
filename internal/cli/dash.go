package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"statuswatch/internal/tui"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the terminal dashboard",
	Long: `Open a full-screen dashboard showing every monitored URL with its last
result. Keys: c check now, s start/stop monitoring, r refresh, q quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		p := tea.NewProgram(tui.NewModel(a), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to start dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashCmd)
}
