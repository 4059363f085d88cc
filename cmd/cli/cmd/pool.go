// Package cmd - pool command
package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cloudpool/adapters/storage"
	"cloudpool/core/pool"
	"cloudpool/core/pricing"
	"cloudpool/internal/config"
)

var (
	poolDir      string
	poolCustomer string
)

// poolCmd represents the pool command
var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Show pooled savings for the current invoice collection",
	Long: `Read the current invoice collection and report what the pool
saves versus everyone paying standalone. With --customer, also show the
proportional breakdown for that customer's invoices.

Examples:
  cloudpool pool
  cloudpool pool --invoices ./invoices
  cloudpool pool --customer "Acme Corp"`,
	Args: cobra.NoArgs,
	RunE: runPool,
}

func init() {
	poolCmd.Flags().StringVarP(&poolDir, "invoices", "i", "", "invoice directory (overrides the configured repository)")
	poolCmd.Flags().StringVarP(&poolCustomer, "customer", "c", "", "also show per-invoice savings for this customer")
}

func runPool(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	storageCfg := cfg.Storage
	if poolDir != "" {
		storageCfg = config.StorageConfig{Backend: "file", Directory: poolDir}
	}
	store, err := storage.New(storageCfg)
	if err != nil {
		return err
	}
	defer store.Close()

	invoices, err := store.List(context.Background())
	if err != nil {
		return err
	}
	if len(invoices) == 0 {
		fmt.Println("No invoices in the pool.")
		return nil
	}

	cat, err := buildCatalog(cfg)
	if err != nil {
		return err
	}
	allocator := pool.NewAllocator(pricing.NewCalculator(cat))

	stats := allocator.PoolStats(invoices)
	fmt.Printf("Pool: %d customers\n", stats.TotalCustomers)
	fmt.Printf("  Standalone total: $%.2f\n", stats.StandaloneCostTotal)
	fmt.Printf("  Pooled total:     $%.2f\n", stats.PooledCostTotal)
	fmt.Printf("  Estimated savings: $%.2f (%.1f%%)\n", stats.EstimatedSavings, stats.SavingsPercentage)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nCUSTOMER\tINVOICE\tSTANDALONE\tPOOLED\tSAVINGS\t%")
	for _, inv := range invoices {
		if poolCustomer != "" && inv.CustomerName != poolCustomer {
			continue
		}
		s := allocator.CustomerSavings(inv, invoices)
		fmt.Fprintf(w, "%s\t%s\t$%.2f\t$%.2f\t$%.2f\t%.1f\n",
			inv.CustomerName, inv.ID, s.Standalone, s.Pooled, s.Savings, s.Percentage)
	}
	return w.Flush()
}
