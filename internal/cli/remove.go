package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"statuswatch/internal/app"
	"statuswatch/internal/domain"
)

var removeCmd = &cobra.Command{
	Use:   "remove <url>",
	Short: "Remove a URL from the monitored set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return removeURL(a, args[0])
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func removeURL(a *app.App, raw string) error {
	u := domain.NormalizeURL(raw)
	if u == "" {
		fmt.Println("Invalid URL.")
		return nil
	}

	removed, err := a.Registry.Remove(u)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("URL not found: %s\n", u)
		return nil
	}
	fmt.Printf("Removed URL: %s\n", u)
	return nil
}
