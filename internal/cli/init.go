package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the fieldops database",
		Long:  `Initialize the fieldops database at ~/.fieldops/fieldops.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing fieldops database at %s\n", dbPath)

			if err := db.InitSchema(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			if seed {
				database, err := db.GetDB()
				if err != nil {
					return fmt.Errorf("failed to get database: %w", err)
				}
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Println("✓ Development fixtures seeded")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  fieldops worker create \"Your Name\" --rate 55")
			fmt.Println("  fieldops workorder create \"My First Job\"")
			fmt.Println("  fieldops status WO-001")

			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "seed development fixtures")
	return cmd
}
