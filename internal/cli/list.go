package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"statuswatch/internal/app"
	"statuswatch/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List monitored URLs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		listURLs(cmd.Context(), a)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// listURLs prints the registry, annotated with the last recorded result
// where one exists. The annotation is best effort; a broken store still
// lists the URLs.
func listURLs(ctx context.Context, a *app.App) {
	urls := a.Registry.List()
	if len(urls) == 0 {
		fmt.Println("No URLs added yet.")
		return
	}

	fmt.Println("\nMonitored URLs:")
	for i, u := range urls {
		line := fmt.Sprintf("  %d. %s", i+1, u)
		if rows, err := a.Results.History(ctx, store.HistoryFilter{URL: u, Limit: 1}); err == nil && len(rows) > 0 {
			last := rows[0]
			line += fmt.Sprintf(" (%s, %s)", last.Status, humanize.Time(last.CheckedAt))
		}
		fmt.Println(line)
	}
	fmt.Println()
}
