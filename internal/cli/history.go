package cli

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"statuswatch/internal/domain"
	"statuswatch/internal/store"
)

var (
	historyURL   string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded check results",
	Long: `Show recorded results, most recent first.

Examples:
  statuswatch history
  statuswatch history --url example.com --limit 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		f := store.HistoryFilter{Limit: historyLimit}
		if historyURL != "" {
			f.URL = domain.NormalizeURL(historyURL)
		}
		rows, err := a.Results.History(cmd.Context(), f)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No checks recorded yet.")
			return nil
		}
		for _, r := range rows {
			printHistoryRow(r)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyURL, "url", "", "only results for this URL")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "max rows (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func printHistoryRow(r domain.CheckResult) {
	icon := "✓"
	if !r.OK() {
		icon = "✗"
	}
	code := "N/A"
	if r.StatusCode != nil {
		code = strconv.Itoa(*r.StatusCode)
	}
	elapsed := "N/A"
	if r.ResponseTime > 0 {
		elapsed = fmt.Sprintf("%.3fs", r.ResponseTime)
	}

	fmt.Printf("%s %-3s %8s  %-18s %s", icon, code, elapsed, humanize.Time(r.CheckedAt), r.URL)
	if r.ErrorMessage != "" {
		fmt.Printf("  (%s)", r.ErrorMessage)
	}
	fmt.Println()
}
