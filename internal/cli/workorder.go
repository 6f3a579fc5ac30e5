package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

var workOrderCmd = &cobra.Command{
	Use:   "workorder",
	Short: "Manage work orders (customer jobs)",
	Long:  "Create, list, and manage work orders in the fieldops ledger",
}

var workOrderCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new work order",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		title := args[0]
		customer, _ := cmd.Flags().GetString("customer")

		resp, err := wire.WorkOrderService().CreateWorkOrder(ctx, primary.CreateWorkOrderRequest{
			Title:    title,
			Customer: customer,
		})
		if err != nil {
			return fmt.Errorf("failed to create work order: %w", err)
		}

		wo := resp.WorkOrder
		fmt.Printf("✓ Created work order %s: %s\n", wo.ID, wo.Title)
		if wo.Customer != "" {
			fmt.Printf("  Customer: %s\n", wo.Customer)
		}
		return nil
	},
}

var workOrderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List work orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		status, _ := cmd.Flags().GetString("status")
		customer, _ := cmd.Flags().GetString("customer")

		workOrders, err := wire.WorkOrderService().ListWorkOrders(ctx, primary.WorkOrderFilters{
			Status:   status,
			Customer: customer,
		})
		if err != nil {
			return fmt.Errorf("failed to list work orders: %w", err)
		}

		if len(workOrders) == 0 {
			fmt.Println("No work orders found")
			return nil
		}

		for _, wo := range workOrders {
			fmt.Printf("%s  [%s] %s", wo.ID, wo.Status, wo.Title)
			if wo.Customer != "" {
				fmt.Printf(" (%s)", wo.Customer)
			}
			fmt.Println()
		}
		return nil
	},
}

var workOrderAssignLoadoutCmd = &cobra.Command{
	Use:   "assign-loadout [work-order-id] [loadout-id]",
	Short: "Assign a loadout to a work order",
	Long:  "Assign a loadout to a work order. Pass an empty loadout ID to clear the assignment.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		workOrderID := args[0]
		loadoutID := ""
		if len(args) > 1 {
			loadoutID = args[1]
		}

		if err := wire.WorkOrderService().AssignLoadout(ctx, workOrderID, loadoutID); err != nil {
			return fmt.Errorf("failed to assign loadout: %w", err)
		}

		if loadoutID == "" {
			fmt.Printf("✓ Cleared loadout on %s\n", workOrderID)
		} else {
			fmt.Printf("✓ Assigned %s to %s\n", loadoutID, workOrderID)
		}
		return nil
	},
}

var workOrderDeleteCmd = &cobra.Command{
	Use:   "delete [work-order-id]",
	Short: "Delete a work order and all its line items and time entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.WorkOrderService().DeleteWorkOrder(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete work order: %w", err)
		}

		fmt.Printf("✓ Deleted work order %s\n", args[0])
		return nil
	},
}

// WorkOrderCmd returns the workorder command with subcommands
func WorkOrderCmd() *cobra.Command {
	workOrderCreateCmd.Flags().String("customer", "", "customer name")
	workOrderListCmd.Flags().String("status", "", "filter by status: not_started, in_progress, completed")
	workOrderListCmd.Flags().String("customer", "", "filter by customer name")

	workOrderCmd.AddCommand(workOrderCreateCmd)
	workOrderCmd.AddCommand(workOrderListCmd)
	workOrderCmd.AddCommand(workOrderAssignLoadoutCmd)
	workOrderCmd.AddCommand(workOrderDeleteCmd)
	return workOrderCmd
}
