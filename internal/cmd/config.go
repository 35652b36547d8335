package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const redacted = "********"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE:  printConfig,
}

func init() {
	configCmd.Flags().Bool("show-secrets", false, "print secrets instead of masking them")
	rootCmd.AddCommand(configCmd)
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if show, _ := cmd.Flags().GetBool("show-secrets"); !show {
		for _, secret := range []*string{
			&cfg.Auth.JWTSecret,
			&cfg.Auth.AdminPassword,
			&cfg.Chat.APIKey,
			&cfg.Analytics.AccessToken,
		} {
			if *secret != "" {
				*secret = redacted
			}
		}
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
