package cmd

import (
	"context"
	"fmt"
	"time"

	"newswatch/internal/config"
	"newswatch/internal/feed"
	"newswatch/internal/fetcher"
	"newswatch/internal/notify"
	"newswatch/internal/processor"
	"newswatch/internal/redisclient"
	"newswatch/internal/relevance"
	"newswatch/internal/state"

	"github.com/spf13/cobra"
)

// runCmd processes every configured feed once and exits.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process all configured feeds once",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		r, cleanup, err := buildRunner(cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		r.RunAll(context.Background())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// buildRunner wires the pipeline from configuration. The returned
// cleanup releases any backend connections.
func buildRunner(cfg config.Config) (*processor.Runner, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var store state.Store
	switch cfg.State.Backend {
	case "redis":
		rdb := redisclient.New(cfg.Redis)
		cleanup = func() { _ = rdb.Close() }
		store = state.NewRedisStore(rdb)
	case "file":
		store = state.NewFileStore(cfg.State.Path)
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}

	retryBase, err := time.ParseDuration(cfg.LLM.RetryBase)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("invalid llm.retry_base: %w", err)
	}

	feeds := make([]processor.Feed, 0, len(cfg.Feeds))
	for _, fc := range cfg.Feeds {
		ad, err := feed.Lookup(fc.Adapter)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("feed %q: %w", fc.Name, err)
		}
		feeds = append(feeds, processor.Feed{
			Name:    fc.Name,
			URLs:    fc.URLs,
			Adapter: ad,
			Prompt:  fc.Prompt,
		})
	}

	p := &processor.Processor{
		Fetcher: fetcher.New(nil),
		Store:   store,
		Scorer: relevance.NewOpenAI(relevance.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Concurrency: cfg.LLM.Concurrency,
			MaxAttempts: cfg.LLM.MaxAttempts,
			RetryBase:   retryBase,
		}),
		Notifier: notify.NewSMTP(notify.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			User:     cfg.Email.User,
			Password: cfg.Email.Password,
			To:       cfg.Email.To,
		}),
		Threshold: cfg.LLM.Threshold,
	}
	return &processor.Runner{Processor: p, Feeds: feeds}, cleanup, nil
}
