package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statuswatch/internal/config"
	"statuswatch/internal/logging"
	"statuswatch/internal/notify"
	"statuswatch/internal/registry"
	"statuswatch/internal/store"
	"statuswatch/internal/store/postgres"
	"statuswatch/internal/store/sqlite"
)

var doctorNotify bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that statuswatch can run on this machine",
	Long: `Verify the configuration, data files, result store, and notification
channels. Use --notify to send a test notification.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd.Context())
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorNotify, "notify", false, "send a test notification")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(ctx context.Context) error {
	ok := func(msg string) { fmt.Println("✔", msg) }
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	bad := func(msg string) { fmt.Fprintln(os.Stderr, "✖", msg) }

	path := configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			bad("config path: " + err.Error())
			return err
		}
		path = p
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		warn("no config file at " + path + "; defaults in effect")
	} else {
		ok("config file " + path)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		bad("config: " + err.Error())
		return err
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		bad("log dir " + cfg.LogDir + ": " + err.Error())
		return err
	}
	defer logger.Sync()
	ok("log dir " + cfg.LogDir)

	reg, err := registry.Open(cfg.URLsFile, logger)
	if err != nil {
		bad("urls file " + cfg.URLsFile + ": " + err.Error())
		return err
	}
	ok(fmt.Sprintf("urls file %s (%d URL(s))", cfg.URLsFile, reg.Len()))

	var results store.ResultStore
	if cfg.DatabaseURL != "" {
		results, err = postgres.New(ctx, cfg.DatabaseURL)
	} else {
		results, err = sqlite.New(ctx, cfg.Database)
	}
	if err != nil {
		bad("store: " + err.Error())
		return err
	}
	defer results.Close()
	if cfg.DatabaseURL != "" {
		ok("postgres store reachable")
	} else {
		ok("sqlite store " + cfg.Database)
	}

	if !cfg.Notifications.Enabled {
		warn("notifications disabled in config")
	} else {
		desktop := notify.NewDesktop(cfg.Notifications.AppName)
		if desktop != nil {
			ok("desktop notifications available")
		} else {
			warn("desktop notifications unavailable (headless session or notify-send missing)")
		}

		var slack *notify.Slack
		if cfg.Notifications.SlackWebhook != "" {
			slack = notify.NewSlack(cfg.Notifications.SlackWebhook)
			ok("slack webhook configured")
		}

		if doctorNotify {
			var channels notify.Multi
			if desktop != nil {
				channels = append(channels, desktop)
			}
			if slack != nil {
				channels = append(channels, slack)
			}
			if len(channels) == 0 {
				warn("no notification channel to test")
			} else if err := channels.Send(ctx, "Test Notification", "Notifications are working!"); err != nil {
				bad("test notification: " + err.Error())
				return err
			} else {
				ok("test notification sent")
			}
		}
	}

	ok("doctor passed")
	return nil
}
