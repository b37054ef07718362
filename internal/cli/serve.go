package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"statuswatch/internal/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with periodic monitoring",
	Long: `Serve the JSON API and keep periodic checks running until interrupted.

Endpoints:
  GET    /healthz
  GET    /api/urls                 POST   /api/urls
  DELETE /api/urls?url=<url>       POST   /api/check
  GET    /api/history?url=&limit=`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		addr := serveAddr
		if addr == "" {
			addr = a.Config.APIAddr
		}
		interval := a.Config.IntervalDuration()

		api := httpapi.NewServer(a.Logger, a.Registry, a.Results, a.Scheduler, a.Checker)
		srv := &http.Server{Addr: addr, Handler: api.Router()}

		a.Scheduler.Start(interval)

		errCh := make(chan error, 1)
		go func() {
			a.Logger.Info("api_listen", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		fmt.Printf("Serving API on http://%s (checking every %s)\n", addr, interval)
		fmt.Println("Press Ctrl+C to stop.")

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		// Stop the checks first, then let in-flight requests finish.
		a.Scheduler.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
