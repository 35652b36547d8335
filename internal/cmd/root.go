package cmd

import (
	"fmt"
	"os"

	"storefront/internal/config"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "SAR Legacy storefront service",
	Long: `Storefront serves the SAR Legacy shop: catalog browsing, per-session
carts and wishlists, a simulated checkout, an admin console and a shopping
assistant backed by a configurable LLM provider.

Configuration is read from storefront.yaml and STOREFRONT_* environment
variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a config file (default: search ./deploy, ., $HOME/.storefront, /etc/storefront)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
