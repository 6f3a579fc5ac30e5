package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/app"
	"github.com/example/fieldops/internal/config"
	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Manage labor timers",
	Long:  "Start, stop, and inspect labor timers. A worker can have at most one running timer.",
}

var timerStartCmd = &cobra.Command{
	Use:   "start [work-order-id]",
	Short: "Start a timer on a work order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		workOrderID := args[0]
		workerID, _ := cmd.Flags().GetString("worker")
		lineItemID, _ := cmd.Flags().GetString("line-item")
		taskType, _ := cmd.Flags().GetString("type")
		taskLabel, _ := cmd.Flags().GetString("label")

		workerID = resolveWorker(workerID)
		if workerID == "" {
			return fmt.Errorf("no worker specified\nHint: Use --worker or set default_worker in .fieldops/config.json")
		}

		entry, err := wire.TimerService().Start(ctx, primary.StartTimerRequest{
			WorkerID:    workerID,
			WorkOrderID: workOrderID,
			LineItemID:  lineItemID,
			TaskType:    taskType,
			TaskLabel:   taskLabel,
		})
		if err != nil {
			if errors.Is(err, app.ErrTimerActive) {
				return fmt.Errorf("timer already active for %s: stop the active timer first", workerID)
			}
			return fmt.Errorf("failed to start timer: %w", err)
		}

		fmt.Printf("✓ Timer started for %s on %s\n", workerID, workOrderID)
		fmt.Printf("  Entry: %s\n", entry.ID)
		if entry.LineItemID != "" {
			fmt.Printf("  Line item: %s\n", entry.LineItemID)
		}
		fmt.Printf("  Rates: %.2f/hr labor + %.2f/hr equipment\n", entry.LaborRate, entry.EquipmentRate)
		return nil
	},
}

var timerStopCmd = &cobra.Command{
	Use:   "stop [entry-id]",
	Short: "Stop a running timer",
	Long:  "Stop a running timer by entry ID, or the current worker's open timer when omitted.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		note, _ := cmd.Flags().GetString("note")

		var entryID string
		if len(args) > 0 {
			entryID = args[0]
		} else {
			workerID, _ := cmd.Flags().GetString("worker")
			workerID = resolveWorker(workerID)
			if workerID == "" {
				return fmt.Errorf("no entry ID given and no worker to look up\nHint: Use --worker or set default_worker in .fieldops/config.json")
			}
			open, err := wire.TimerService().GetOpen(ctx, workerID)
			if err != nil {
				return fmt.Errorf("failed to look up open timer: %w", err)
			}
			if open == nil {
				return fmt.Errorf("no open timer for %s", workerID)
			}
			entryID = open.ID
		}

		result, err := wire.TimerService().Stop(ctx, primary.StopTimerRequest{
			TimeEntryID: entryID,
			Note:        note,
		})
		if err != nil {
			if errors.Is(err, app.ErrEntryClosed) {
				return fmt.Errorf("entry %s is already closed", entryID)
			}
			return fmt.Errorf("failed to stop timer: %w", err)
		}

		fmt.Printf("✓ Timer stopped: %.2f hours, %.2f total cost\n", result.DurationHours, result.TotalCost)
		return nil
	},
}

var timerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current worker's open timer",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		workerID, _ := cmd.Flags().GetString("worker")
		workerID = resolveWorker(workerID)
		if workerID == "" {
			return fmt.Errorf("no worker specified\nHint: Use --worker or set default_worker in .fieldops/config.json")
		}

		open, err := wire.TimerService().GetOpen(ctx, workerID)
		if err != nil {
			return fmt.Errorf("failed to look up open timer: %w", err)
		}
		if open == nil {
			fmt.Printf("No open timer for %s\n", workerID)
			return nil
		}

		elapsed := time.Since(open.StartedAt)
		fmt.Printf("Timer running for %s\n", workerID)
		fmt.Printf("  Entry: %s\n", open.ID)
		fmt.Printf("  Work order: %s", open.WorkOrderID)
		if open.LineItemID != "" {
			fmt.Printf(" / %s", open.LineItemID)
		}
		fmt.Println()
		fmt.Printf("  Task: %s (%s)\n", open.TaskLabel, open.TaskType)
		fmt.Printf("  Started: %s (%.1f hours ago)\n", open.StartedAt.Format(time.RFC3339), elapsed.Hours())
		return nil
	},
}

// resolveWorker falls back to the configured default worker.
func resolveWorker(workerID string) string {
	if workerID != "" {
		return workerID
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	cfg, err := config.LoadConfig(cwd)
	if err != nil {
		return ""
	}
	return cfg.DefaultWorker
}

// TimerCmd returns the timer command with subcommands
func TimerCmd() *cobra.Command {
	timerStartCmd.Flags().String("worker", "", "worker ID (EMP-XXX)")
	timerStartCmd.Flags().String("line-item", "", "line item ID for productive work")
	timerStartCmd.Flags().String("type", primary.TaskTypeProductive, "task type: productive or support")
	timerStartCmd.Flags().String("label", "", "task label")

	timerStopCmd.Flags().String("worker", "", "worker ID (EMP-XXX)")
	timerStopCmd.Flags().String("note", "", "note to attach to the entry")

	timerStatusCmd.Flags().String("worker", "", "worker ID (EMP-XXX)")

	timerCmd.AddCommand(timerStartCmd)
	timerCmd.AddCommand(timerStopCmd)
	timerCmd.AddCommand(timerStatusCmd)
	return timerCmd
}
