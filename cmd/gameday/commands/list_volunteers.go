package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/gameday/pkg/core/attendance"
	"github.com/jakechorley/gameday/pkg/core/model"
)

// ListVolunteersCmd creates the listVolunteers command
func ListVolunteersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listVolunteers",
		Short: "List volunteers from the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			department, _ := cmd.Flags().GetString("department")
			includeInactive, _ := cmd.Flags().GetBool("include-inactive")

			volunteers, err := app.Database.ListVolunteers(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list volunteers: %w", err)
			}

			filtered := attendance.FilterVolunteers(volunteers, attendance.FilterOptions{
				SearchText:      search,
				Department:      department,
				IncludeInactive: includeInactive,
			})

			fmt.Printf("\nFound %d volunteers:\n\n", len(filtered))
			for _, v := range filtered {
				dept := v.Department
				if dept == "" {
					dept = model.DepartmentUnassigned
				}
				activeInfo := ""
				if !v.Active {
					activeInfo = " [inactive]"
				}
				fmt.Printf("- %s (%s) - %s%s\n", v.FullName(), v.ID, dept, activeInfo)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("search", "", "Case-insensitive substring match on volunteer name")
	cmd.Flags().String("department", "", "Filter by department (or 'all')")
	cmd.Flags().Bool("include-inactive", false, "Include inactive volunteers")

	return cmd
}
