// Package cmd provides the CLI commands for cloudpool.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cloudpool/internal/config"
	"cloudpool/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cloudpool",
	Short: "Estimate savings from pooling cloud usage across customers",
	Long: `cloudpool estimates the volume-discount savings available when
customers merge their AWS usage into a shared billing pool.

It extracts normalized usage records from raw invoice text, prices the
merged usage against tiered SKU tables, and allocates the pooled cost
back to each customer in proportion to their usage.

Examples:
  cloudpool extract --customer "Acme Corp" invoice.txt
  cloudpool pool --invoices ./invoices
  cloudpool pool --invoices ./invoices --customer "Acme Corp"`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cloudpool.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(poolCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cloudpool version 0.1.0")
	},
}
