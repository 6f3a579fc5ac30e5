package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

var loadoutCmd = &cobra.Command{
	Use:   "loadout",
	Short: "Manage loadouts (equipment bundles)",
	Long:  "Create loadouts, attach equipment, and review combined hourly costs",
}

var loadoutCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new loadout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		loadout, err := wire.LoadoutService().CreateLoadout(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to create loadout: %w", err)
		}

		fmt.Printf("✓ Created loadout %s: %s\n", loadout.ID, loadout.Name)
		return nil
	},
}

var loadoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loadouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		loadouts, err := wire.LoadoutService().ListLoadouts(ctx)
		if err != nil {
			return fmt.Errorf("failed to list loadouts: %w", err)
		}

		if len(loadouts) == 0 {
			fmt.Println("No loadouts found")
			return nil
		}

		for _, l := range loadouts {
			fmt.Printf("%s  %-20s %d items, %.2f/hr\n", l.ID, l.Name, len(l.Equipment), l.HourlyCost)
		}
		return nil
	},
}

var loadoutAddEquipmentCmd = &cobra.Command{
	Use:   "add-equipment [loadout-id] [equipment-id]",
	Short: "Attach equipment to a loadout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.LoadoutService().AddEquipment(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to add equipment: %w", err)
		}

		fmt.Printf("✓ Added %s to %s\n", args[1], args[0])
		return nil
	},
}

var loadoutRemoveEquipmentCmd = &cobra.Command{
	Use:   "remove-equipment [loadout-id] [equipment-id]",
	Short: "Detach equipment from a loadout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.LoadoutService().RemoveEquipment(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to remove equipment: %w", err)
		}

		fmt.Printf("✓ Removed %s from %s\n", args[1], args[0])
		return nil
	},
}

var equipmentCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new equipment item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		hourlyCost, _ := cmd.Flags().GetFloat64("hourly-cost")

		eq, err := wire.LoadoutService().CreateEquipment(ctx, primary.CreateEquipmentRequest{
			Name:       args[0],
			HourlyCost: hourlyCost,
		})
		if err != nil {
			return fmt.Errorf("failed to create equipment: %w", err)
		}

		fmt.Printf("✓ Created equipment %s: %s (%.2f/hr)\n", eq.ID, eq.Name, eq.HourlyCost)
		return nil
	},
}

var equipmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List equipment",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		equipment, err := wire.LoadoutService().ListEquipment(ctx)
		if err != nil {
			return fmt.Errorf("failed to list equipment: %w", err)
		}

		if len(equipment) == 0 {
			fmt.Println("No equipment found")
			return nil
		}

		for _, eq := range equipment {
			fmt.Printf("%s  %-20s %.2f/hr [%s]\n", eq.ID, eq.Name, eq.HourlyCost, eq.Status)
		}
		return nil
	},
}

// LoadoutCmd returns the loadout command with subcommands
func LoadoutCmd() *cobra.Command {
	loadoutCmd.AddCommand(loadoutCreateCmd)
	loadoutCmd.AddCommand(loadoutListCmd)
	loadoutCmd.AddCommand(loadoutAddEquipmentCmd)
	loadoutCmd.AddCommand(loadoutRemoveEquipmentCmd)
	return loadoutCmd
}

// EquipmentCmd returns the equipment command with subcommands
func EquipmentCmd() *cobra.Command {
	equipmentCreateCmd.Flags().Float64("hourly-cost", 0, "hourly operating cost")

	equipmentCmd := &cobra.Command{
		Use:   "equipment",
		Short: "Manage equipment items",
	}
	equipmentCmd.AddCommand(equipmentCreateCmd)
	equipmentCmd.AddCommand(equipmentListCmd)
	return equipmentCmd
}
