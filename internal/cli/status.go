package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [work-order-id]",
		Short: "Show a work order's actuals against its estimates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			wo, err := wire.WorkOrderService().GetWorkOrder(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get work order: %w", err)
			}

			fmt.Printf("%s  %s", wo.ID, wo.Title)
			if wo.Customer != "" {
				fmt.Printf(" (%s)", wo.Customer)
			}
			fmt.Printf("  %s\n", statusColor(wo.Status).Sprintf("[%s]", wo.Status))
			if wo.CompletedAt != "" {
				fmt.Printf("Completed: %s\n", wo.CompletedAt)
			}
			if wo.LoadoutID != "" {
				fmt.Printf("Loadout: %s\n", wo.LoadoutID)
			}
			fmt.Println()

			fmt.Printf("Hours:  %.2f productive + %.2f support (estimated %.1f)\n",
				wo.ActualProductiveHours, wo.ActualSupportHours, wo.EstimatedHours)
			costLine := fmt.Sprintf("Cost:   %.2f actual (estimated %.2f)", wo.ActualTotalCost, wo.EstimatedCost)
			if wo.ActualTotalCost > wo.EstimatedCost && wo.EstimatedCost > 0 {
				costLine += color.New(color.FgRed).Sprint("  over estimate")
			}
			fmt.Println(costLine)
			fmt.Println()

			items, err := wire.LineItemService().ListLineItems(ctx, wo.ID)
			if err != nil {
				return fmt.Errorf("failed to list line items: %w", err)
			}
			if len(items) == 0 {
				fmt.Println("No line items")
				return nil
			}

			fmt.Println("Line items:")
			for _, li := range items {
				fmt.Printf("  %s %s  %s", li.ID, statusColor(li.Status).Sprintf("[%s]", li.Status), li.Title)
				fmt.Printf("  %.2fh / %.1fh est", li.ActualHours, li.EstimatedHours)
				if li.ProductionRate != nil {
					fmt.Printf(", rate %.1f/h", *li.ProductionRate)
				}
				if li.ActualHours > 0 {
					varianceStr := fmt.Sprintf(", variance %+.2fh", li.Variance)
					if li.Variance > 0 {
						fmt.Print(color.New(color.FgYellow).Sprint(varianceStr))
					} else {
						fmt.Print(varianceStr)
					}
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func statusColor(status string) *color.Color {
	switch status {
	case primary.StatusCompleted:
		return color.New(color.FgHiGreen)
	case primary.StatusInProgress:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgHiBlue)
	}
}
