package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/analytics"
	"storefront/internal/app"
	"storefront/internal/state"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the shopping assistant a single question",
	Long: `Send one message to the shopping assistant using the configured chat
provider and catalog. Useful for checking API keys before serving traffic.`,
	Args: cobra.MinimumNArgs(1),
	RunE: askAssistant,
}

func init() {
	chatCmd.Flags().Bool("prompt", false, "print the system prompt before asking")
	rootCmd.AddCommand(chatCmd)
}

func askAssistant(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.RabbitMQ.Enabled = false
	cfg.Server.RequestLog = false

	a, err := app.New(cfg, app.Options{Tracker: analytics.Nop{}})
	if err != nil {
		return fmt.Errorf("failed to start assistant: %w", err)
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if show, _ := cmd.Flags().GetBool("prompt"); show {
		prompt, err := a.Chat.SystemPrompt()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n\n", prompt)
	}

	ctx := context.Background()
	if cfg.Chat.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Chat.Timeout)
		defer cancel()
	}

	reply := a.Chat.Send(ctx, state.NewID(), strings.Join(args, " "))
	if reply.IsError {
		return errors.New(reply.Text)
	}
	fmt.Fprintln(out, reply.Text)
	return nil
}
