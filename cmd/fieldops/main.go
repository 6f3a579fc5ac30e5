package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/cli"
	"github.com/example/fieldops/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "fieldops",
		Short:   "fieldops - time tracking and job costing for field crews",
		Version: version.String(),
		Long: `fieldops is a CLI tool for managing work orders, line items, labor timers,
and the derived cost rollups that keep actuals in sync with logged time.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.TimerCmd())
	rootCmd.AddCommand(cli.EntryCmd())
	rootCmd.AddCommand(cli.WorkOrderCmd())
	rootCmd.AddCommand(cli.LineItemCmd())
	rootCmd.AddCommand(cli.WorkerCmd())
	rootCmd.AddCommand(cli.LoadoutCmd())
	rootCmd.AddCommand(cli.EquipmentCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
