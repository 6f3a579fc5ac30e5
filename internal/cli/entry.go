package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage time entries",
	Long:  "Record backdated manual entries and list entries per work order",
}

var entryAddCmd = &cobra.Command{
	Use:   "add [work-order-id]",
	Short: "Add a backdated manual entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		workOrderID := args[0]
		workerID, _ := cmd.Flags().GetString("worker")
		lineItemID, _ := cmd.Flags().GetString("line-item")
		taskType, _ := cmd.Flags().GetString("type")
		taskLabel, _ := cmd.Flags().GetString("label")
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")
		note, _ := cmd.Flags().GetString("note")

		workerID = resolveWorker(workerID)
		if workerID == "" {
			return fmt.Errorf("no worker specified\nHint: Use --worker or set default_worker in .fieldops/config.json")
		}

		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return fmt.Errorf("invalid --start (want RFC3339, e.g. 2026-08-28T07:30:00Z): %w", err)
		}
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return fmt.Errorf("invalid --end (want RFC3339): %w", err)
		}

		entry, err := wire.TimerService().AddManualEntry(ctx, primary.ManualEntryRequest{
			WorkerID:    workerID,
			WorkOrderID: workOrderID,
			LineItemID:  lineItemID,
			TaskType:    taskType,
			TaskLabel:   taskLabel,
			StartedAt:   start,
			EndedAt:     end,
			Note:        note,
		})
		if err != nil {
			return fmt.Errorf("failed to add manual entry: %w", err)
		}

		fmt.Printf("✓ Recorded %.2f hours for %s on %s (cost %.2f)\n",
			*entry.DurationHours, workerID, workOrderID, *entry.TotalCost)
		return nil
	},
}

var entryListCmd = &cobra.Command{
	Use:   "list [work-order-id]",
	Short: "List time entries for a work order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		entries, err := wire.TimerService().ListEntries(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No time entries found")
			return nil
		}

		for _, e := range entries {
			state := "open"
			detail := fmt.Sprintf("started %s", e.StartedAt.Format("2006-01-02 15:04"))
			if e.EndedAt != nil {
				state = "closed"
				detail = fmt.Sprintf("%.2fh, cost %.2f", *e.DurationHours, *e.TotalCost)
			}
			target := e.WorkOrderID
			if e.LineItemID != "" {
				target = e.LineItemID
			}
			fmt.Printf("%s  %-10s %-10s %-6s %s\n", e.ID, e.WorkerID, target, state, detail)
		}
		return nil
	},
}

// EntryCmd returns the entry command with subcommands
func EntryCmd() *cobra.Command {
	entryAddCmd.Flags().String("worker", "", "worker ID (EMP-XXX)")
	entryAddCmd.Flags().String("line-item", "", "line item ID for productive work")
	entryAddCmd.Flags().String("type", primary.TaskTypeProductive, "task type: productive or support")
	entryAddCmd.Flags().String("label", "", "task label")
	entryAddCmd.Flags().String("start", "", "start instant (RFC3339)")
	entryAddCmd.Flags().String("end", "", "end instant (RFC3339)")
	entryAddCmd.Flags().String("note", "", "note to attach to the entry")
	entryAddCmd.MarkFlagRequired("start")
	entryAddCmd.MarkFlagRequired("end")

	entryCmd.AddCommand(entryAddCmd)
	entryCmd.AddCommand(entryListCmd)
	return entryCmd
}
