// Package cmd - extract command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cloudpool/adapters/storage"
	"cloudpool/core/catalog"
	"cloudpool/core/extract"
	"cloudpool/core/identity"
	"cloudpool/core/invoice"
	"cloudpool/core/pricing"
	"cloudpool/internal/config"
	"cloudpool/internal/logging"
)

var (
	extractCustomer string
	extractSave     bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract usage records from an invoice text file",
	Long: `Parse raw invoice text into normalized usage records.

The file must contain UTF-8 text (PDF extraction happens upstream).
With --save the assembled invoice is appended to the configured
invoice repository so it joins the pool.

Examples:
  cloudpool extract --customer "Acme Corp" invoice.txt
  cloudpool extract --customer "Acme Corp" --save invoice.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractCustomer, "customer", "c", "", "customer name the invoice belongs to (required)")
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "append the invoice to the configured repository")
	_ = extractCmd.MarkFlagRequired("customer")
}

// buildCatalog assembles the pricing catalog, applying the configured
// HCL override file when present.
func buildCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat := catalog.Default()
	if cfg.Catalog.OverridePath != "" {
		if err := cat.LoadHCL(cfg.Catalog.OverridePath); err != nil {
			return nil, err
		}
		logging.Info("loaded catalog overrides", zap.String("path", cfg.Catalog.OverridePath))
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func extractorConfig(cfg *config.Config) extract.Config {
	ec := extract.DefaultConfig()
	if cfg.Extract.LookaheadChars > 0 {
		ec.LookaheadChars = cfg.Extract.LookaheadChars
	}
	if cfg.Extract.LookaheadLines > 0 {
		ec.LookaheadLines = cfg.Extract.LookaheadLines
	}
	if cfg.Extract.YQuantum > 0 {
		ec.YQuantum = cfg.Extract.YQuantum
	}
	if cfg.Catalog.DefaultRegion != "" {
		ec.Region = cfg.Catalog.DefaultRegion
	}
	return ec
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading invoice file: %w", err)
	}

	cat, err := buildCatalog(cfg)
	if err != nil {
		return err
	}
	calc := pricing.NewCalculator(cat)
	extractor := extract.New(calc, extractorConfig(cfg))

	records, err := extractor.Extract(string(text))
	if err != nil {
		return err
	}

	inv, err := invoice.Build(extractCustomer, args[0], records, identity.UUID{}, identity.SystemClock{})
	if err != nil {
		return err
	}

	if extractSave {
		store, err := storage.New(cfg.Storage)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Append(context.Background(), inv); err != nil {
			return err
		}
		logging.Info("invoice saved", zap.String("invoice_id", inv.ID))
	}

	out, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
