package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newswatch/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Poll all configured feeds on an interval",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		interval, err := time.ParseDuration(cfg.PollInterval)
		if err != nil {
			return fmt.Errorf("invalid poll_interval: %w", err)
		}

		r, cleanup, err := buildRunner(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		slog.Info("starting poller", "feeds", len(r.Feeds), "interval", interval)
		mgr := worker.NewManager(&worker.Poller{Runner: r, Interval: interval})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			cancel()
		}()

		return mgr.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
