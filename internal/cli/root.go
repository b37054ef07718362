// Package cli implements the statuswatch command tree.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"statuswatch/internal/app"
	"statuswatch/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "statuswatch",
	Short: "Monitor HTTP endpoints and alert when they go down",
	Long: `Statuswatch keeps a list of URLs, checks them on a schedule, and records
every result. Failures raise a desktop notification and, when configured,
a Slack message.

Run it bare for the interactive prompt, or use the subcommands directly:

  statuswatch add https://example.com
  statuswatch check
  statuswatch start --interval 30s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return runInteractive(cmd.Context(), a)
	},
}

// Execute runs the command tree. Interrupts cancel the command context so
// the long-running commands (start, serve, dash) shut down cleanly.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $STATUSWATCH_CONFIG or ~/.config/statuswatch/config.yml)")
}

func newApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}
