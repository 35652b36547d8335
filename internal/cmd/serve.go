package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/app"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront HTTP server",
	Long: `Start the storefront HTTP server which provides:
- the /api/v1 REST API for catalog, cart, wishlist, checkout and chat
- JWT login for customers and the admin console
- optional order events and analytics over RabbitMQ`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address, overrides server.addr")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	a, err := app.New(cfg, app.Options{})
	if err != nil {
		return fmt.Errorf("failed to start storefront: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- a.Listen()
	}()

	select {
	case <-quit:
		log.Println("Shutting down server...")
	case err := <-serveErr:
		a.Close()
		return fmt.Errorf("server failed: %w", err)
	}

	if err := a.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}
