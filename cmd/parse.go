package cmd

import (
	"context"
	"fmt"
	"os"

	"newswatch/internal/feed"
	"newswatch/internal/fetcher"

	"github.com/spf13/cobra"
)

var parseAdapterName string

// parseCmd fetches one URL and prints the normalized items, for
// checking a source's adapter fit before adding it to config.
var parseCmd = &cobra.Command{
	Use:   "parse <url>",
	Short: "Debug: fetch a feed URL and print its normalized items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		ad, err := feed.Lookup(parseAdapterName)
		if err != nil {
			return err
		}

		outcomes := fetcher.New(nil).FetchAll(context.Background(), []string{url})
		if outcomes[0].Err != nil {
			return outcomes[0].Err
		}
		items, err := ad.Parse(outcomes[0].Body)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "%d items\n", len(items))
		for i, it := range items {
			fmt.Fprintf(os.Stdout, "--- %d\n", i)
			fmt.Fprintf(os.Stdout, "title:    %s\n", it.Title)
			fmt.Fprintf(os.Stdout, "link:     %s\n", it.Link)
			if it.Author != "" {
				fmt.Fprintf(os.Stdout, "author:   %s\n", it.Author)
			}
			if it.PubDate != nil {
				fmt.Fprintf(os.Stdout, "pub_date: %s (raw: %q)\n", it.PubDate.Format("2006-01-02 15:04:05"), it.PubDateRaw)
			} else {
				fmt.Fprintf(os.Stdout, "pub_date: absent (raw: %q)\n", it.PubDateRaw)
			}
			if it.Image != "" {
				fmt.Fprintf(os.Stdout, "image:    %s\n", it.Image)
			}
			fmt.Fprintf(os.Stdout, "desc:     %s\n", it.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseAdapterName, "adapter", "a", "universal", "adapter to parse with")
}
