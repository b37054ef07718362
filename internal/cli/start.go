package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"statuswatch/internal/app"
)

var startInterval time.Duration

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start continuous monitoring",
	Long: `Check every URL on a fixed interval until interrupted. Results stream to
the terminal and every check is recorded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		interval := startInterval
		if interval <= 0 {
			interval = a.Config.IntervalDuration()
		}
		return runMonitor(cmd.Context(), a, interval)
	},
}

func init() {
	startCmd.Flags().DurationVar(&startInterval, "interval", 0, "check interval (default from config)")
	rootCmd.AddCommand(startCmd)
}

// runMonitor blocks until ctx is cancelled, printing results as cycles
// produce them.
func runMonitor(ctx context.Context, a *app.App, interval time.Duration) error {
	fmt.Printf("\nStarting continuous monitoring (checking every %s)...\n", interval)
	fmt.Println("Press Ctrl+C to stop.")
	fmt.Println()

	events := a.Scheduler.Events()
	a.Scheduler.Start(interval)

	for {
		select {
		case <-ctx.Done():
			a.Scheduler.Stop()
			fmt.Println("\n\nMonitoring stopped by user.")
			return nil
		case r := <-events:
			printResult(r)
		}
	}
}
