package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"storefront/internal/analytics"
	"storefront/internal/app"
	"storefront/internal/models"

	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List catalog products",
	Long: `List the products the configured catalog would serve, filtered the same
way as GET /api/v1/products.`,
	RunE: listProducts,
}

func init() {
	productsCmd.Flags().String("category", string(models.CategoryAll), "category filter")
	productsCmd.Flags().StringP("query", "q", "", "case-insensitive search in name and description")
	rootCmd.AddCommand(productsCmd)
}

func listProducts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.RabbitMQ.Enabled = false
	cfg.Server.RequestLog = false

	a, err := app.New(cfg, app.Options{Tracker: analytics.Nop{}})
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer a.Close()

	raw, _ := cmd.Flags().GetString("category")
	category, ok := models.ParseCategory(raw)
	if !ok {
		return fmt.Errorf("unknown category %q", raw)
	}
	query, _ := cmd.Flags().GetString("query")
	products, err := a.Catalog.Filter(context.Background(), "", category, query)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tRATING")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t$%.2f\t%.1f\n", p.ID, p.Name, p.Category, p.Price, p.Rating)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d product(s)\n", len(products))
	return nil
}
