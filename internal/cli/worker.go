package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Manage workers",
	Long:  "Create workers and maintain their hourly rates",
}

var workerCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new worker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		role, _ := cmd.Flags().GetString("role")

		req := primary.CreateWorkerRequest{Name: args[0], Role: role}
		if cmd.Flags().Changed("rate") {
			rate, _ := cmd.Flags().GetFloat64("rate")
			req.EffectiveRate = &rate
		}
		if cmd.Flags().Changed("burdened-rate") {
			rate, _ := cmd.Flags().GetFloat64("burdened-rate")
			req.BurdenedRate = &rate
		}

		worker, err := wire.WorkerService().CreateWorker(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to create worker: %w", err)
		}

		fmt.Printf("✓ Created worker %s: %s\n", worker.ID, worker.Name)
		return nil
	},
}

var workerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		status, _ := cmd.Flags().GetString("status")

		workers, err := wire.WorkerService().ListWorkers(ctx, status)
		if err != nil {
			return fmt.Errorf("failed to list workers: %w", err)
		}

		if len(workers) == 0 {
			fmt.Println("No workers found")
			return nil
		}

		for _, w := range workers {
			rate := "default"
			switch {
			case w.EffectiveRate != nil:
				rate = fmt.Sprintf("%.2f/hr", *w.EffectiveRate)
			case w.BurdenedRate != nil:
				rate = fmt.Sprintf("%.2f/hr (burdened)", *w.BurdenedRate)
			}
			fmt.Printf("%s  %-20s %-10s %s\n", w.ID, w.Name, w.Role, rate)
		}
		return nil
	},
}

var workerSetRateCmd = &cobra.Command{
	Use:   "set-rate [worker-id]",
	Short: "Set a worker's hourly rates",
	Long:  "Set a worker's effective and/or fully-burdened hourly rate. Omitted flags clear the stored value.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var effective, burdened *float64
		if cmd.Flags().Changed("rate") {
			rate, _ := cmd.Flags().GetFloat64("rate")
			effective = &rate
		}
		if cmd.Flags().Changed("burdened-rate") {
			rate, _ := cmd.Flags().GetFloat64("burdened-rate")
			burdened = &rate
		}

		if err := wire.WorkerService().SetRates(ctx, args[0], effective, burdened); err != nil {
			return fmt.Errorf("failed to set rates: %w", err)
		}

		fmt.Printf("✓ Updated rates for %s\n", args[0])
		return nil
	},
}

// WorkerCmd returns the worker command with subcommands
func WorkerCmd() *cobra.Command {
	workerCreateCmd.Flags().String("role", "", "worker role")
	workerCreateCmd.Flags().Float64("rate", 0, "effective hourly rate")
	workerCreateCmd.Flags().Float64("burdened-rate", 0, "fully-burdened hourly rate")

	workerListCmd.Flags().String("status", "", "filter by status: active, inactive")

	workerSetRateCmd.Flags().Float64("rate", 0, "effective hourly rate")
	workerSetRateCmd.Flags().Float64("burdened-rate", 0, "fully-burdened hourly rate")

	workerCmd.AddCommand(workerCreateCmd)
	workerCmd.AddCommand(workerListCmd)
	workerCmd.AddCommand(workerSetRateCmd)
	return workerCmd
}
