package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"statuswatch/internal/app"
	"statuswatch/internal/domain"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check all URLs once",
	Long:  `Run one check cycle over every monitored URL, record the results, and print them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		checkAll(cmd.Context(), a)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkAll(ctx context.Context, a *app.App) {
	urls := a.Registry.List()
	if len(urls) == 0 {
		fmt.Println("No URLs to check. Please add URLs first.")
		return
	}

	fmt.Printf("\n[%s] Checking %d URL(s)...\n", time.Now().Format("2006-01-02 15:04:05"), len(urls))

	results := a.Scheduler.CheckOnce(ctx)
	for _, u := range urls {
		r, ok := results[u]
		if !ok {
			continue
		}
		printResult(r)
	}
}

func printResult(r domain.CheckResult) {
	icon := "✓"
	if !r.OK() {
		icon = "✗"
	}
	fmt.Printf("  %s %s\n", icon, r.URL)

	code := "N/A"
	if r.StatusCode != nil {
		code = strconv.Itoa(*r.StatusCode)
	}
	elapsed := "N/A"
	if r.ResponseTime > 0 {
		elapsed = fmt.Sprintf("%.3fs", r.ResponseTime)
	}
	fmt.Printf("    Status: %s | Code: %s | Time: %s\n", r.Status, code, elapsed)

	if r.ErrorMessage != "" {
		fmt.Printf("    Error: %s\n", r.ErrorMessage)
	}
}
