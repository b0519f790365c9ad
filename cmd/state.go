package cmd

import (
	"context"
	"fmt"
	"time"

	"newswatch/internal/redisclient"
	"newswatch/internal/state"

	"github.com/spf13/cobra"
)

// stateCmd prints the stored watermark for every configured feed.
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print each feed's stored watermark",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		var store state.Store
		switch cfg.State.Backend {
		case "redis":
			rdb := redisclient.New(cfg.Redis)
			defer rdb.Close()
			store = state.NewRedisStore(rdb)
		case "file":
			store = state.NewFileStore(cfg.State.Path)
		default:
			return fmt.Errorf("unknown state backend %q", cfg.State.Backend)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		for _, f := range cfg.Feeds {
			t, ok, err := store.Get(ctx, f.Name)
			switch {
			case err != nil:
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s error: %v\n", f.Name, err)
			case !ok:
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s (no previous run)\n", f.Name)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", f.Name, state.FormatTime(t))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
