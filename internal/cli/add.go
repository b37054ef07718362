package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"statuswatch/internal/app"
	"statuswatch/internal/domain"
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a URL to monitor",
	Long: `Add a URL to the monitored set. A bare host gets an https:// prefix.

Examples:
  statuswatch add https://example.com
  statuswatch add example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return addURL(a, args[0])
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

// addURL is shared with the interactive prompt. A rejected URL is user
// feedback, not an error; only storage failures come back as errors.
func addURL(a *app.App, raw string) error {
	u := domain.NormalizeURL(raw)
	if err := domain.ValidateURL(u); err != nil {
		fmt.Println("Invalid URL.")
		return nil
	}

	added, err := a.Registry.Add(u)
	if err != nil {
		return err
	}
	if !added {
		fmt.Printf("URL already exists: %s\n", u)
		return nil
	}
	fmt.Printf("Added URL: %s\n", u)
	return nil
}
