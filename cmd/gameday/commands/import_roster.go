package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/gameday/pkg/core/services"
)

// ImportRosterCmd creates the importRoster command
func ImportRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "importRoster",
		Short: "Import the volunteer roster from the configured sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.ImportRoster(app.Ctx, app.Database, client, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nImported %d volunteers.\n", result.Imported)
			if len(result.UnknownDepartments) > 0 {
				fmt.Printf("Unknown departments stored as unassigned:\n")
				for _, dept := range result.UnknownDepartments {
					fmt.Printf("  - %s\n", dept)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
