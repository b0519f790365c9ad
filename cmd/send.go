package cmd

import (
	"context"
	"fmt"
	"time"

	"newswatch/internal/notify"

	"github.com/spf13/cobra"
)

// sendCmd delivers a test message through the configured notifier so
// SMTP credentials can be verified without waiting for a relevant item.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a test email through the configured SMTP settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		n := notify.NewSMTP(notify.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			User:     cfg.Email.User,
			Password: cfg.Email.Password,
			To:       cfg.Email.To,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		subject := "newswatch test message"
		body := fmt.Sprintf("Test message sent at %s.\n", time.Now().UTC().Format(time.RFC1123))
		if err := n.Send(ctx, subject, body); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Test email sent.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
