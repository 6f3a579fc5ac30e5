package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

var lineItemCmd = &cobra.Command{
	Use:   "lineitem",
	Short: "Manage line items (billable scope units)",
	Long:  "Add, complete, reopen, and delete line items on a work order",
}

var lineItemAddCmd = &cobra.Command{
	Use:   "add [work-order-id] [title]",
	Short: "Add a line item to a work order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		hours, _ := cmd.Flags().GetFloat64("hours")
		cost, _ := cmd.Flags().GetFloat64("cost")
		score, _ := cmd.Flags().GetFloat64("score")

		resp, err := wire.LineItemService().AddLineItem(ctx, primary.AddLineItemRequest{
			WorkOrderID:    args[0],
			Title:          args[1],
			EstimatedHours: hours,
			EstimatedCost:  cost,
			EstimatedScore: score,
		})
		if err != nil {
			return fmt.Errorf("failed to add line item: %w", err)
		}

		li := resp.LineItem
		fmt.Printf("✓ Added line item %s: %s\n", li.ID, li.Title)
		fmt.Printf("  Estimates: %.1f hours, %.2f cost, %.0f score\n", li.EstimatedHours, li.EstimatedCost, li.EstimatedScore)
		return nil
	},
}

var lineItemListCmd = &cobra.Command{
	Use:   "list [work-order-id]",
	Short: "List line items for a work order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		items, err := wire.LineItemService().ListLineItems(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to list line items: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("No line items found")
			return nil
		}

		for _, li := range items {
			fmt.Printf("%s  [%s] %s  est %.1fh actual %.2fh", li.ID, li.Status, li.Title, li.EstimatedHours, li.ActualHours)
			if li.ProductionRate != nil {
				fmt.Printf("  rate %.1f/h", *li.ProductionRate)
			}
			fmt.Println()
		}
		return nil
	},
}

var lineItemCompleteCmd = &cobra.Command{
	Use:   "complete [line-item-id]",
	Short: "Mark a line item complete",
	Long:  "Mark a line item complete. The work order completes when all its line items are complete.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.LineItemService().MarkComplete(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to complete line item: %w", err)
		}

		fmt.Printf("✓ Completed line item %s\n", args[0])

		li, err := wire.LineItemService().GetLineItem(ctx, args[0])
		if err == nil {
			wo, err := wire.WorkOrderService().GetWorkOrder(ctx, li.WorkOrderID)
			if err == nil && wo.Status == primary.StatusCompleted {
				fmt.Printf("✓ Work order %s is now completed\n", wo.ID)
			}
		}
		return nil
	},
}

var lineItemReopenCmd = &cobra.Command{
	Use:   "reopen [line-item-id]",
	Short: "Reopen a completed line item",
	Long:  "Reopen a completed line item. A completed work order is reopened with it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.LineItemService().Reopen(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to reopen line item: %w", err)
		}

		fmt.Printf("✓ Reopened line item %s\n", args[0])
		return nil
	},
}

var lineItemDeleteCmd = &cobra.Command{
	Use:   "delete [line-item-id]",
	Short: "Delete a line item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.LineItemService().DeleteLineItem(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete line item: %w", err)
		}

		fmt.Printf("✓ Deleted line item %s\n", args[0])
		return nil
	},
}

// LineItemCmd returns the lineitem command with subcommands
func LineItemCmd() *cobra.Command {
	lineItemAddCmd.Flags().Float64("hours", 0, "estimated hours")
	lineItemAddCmd.Flags().Float64("cost", 0, "estimated cost")
	lineItemAddCmd.Flags().Float64("score", 0, "estimated score (productivity units)")

	lineItemCmd.AddCommand(lineItemAddCmd)
	lineItemCmd.AddCommand(lineItemListCmd)
	lineItemCmd.AddCommand(lineItemCompleteCmd)
	lineItemCmd.AddCommand(lineItemReopenCmd)
	lineItemCmd.AddCommand(lineItemDeleteCmd)
	return lineItemCmd
}
