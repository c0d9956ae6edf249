package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/gameday/pkg/core/services"
)

// ExportReportCmd creates the exportReport command
func ExportReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exportReport",
		Short: "Append the season attendance report to the configured sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			count, err := services.ExportSeasonReport(app.Ctx, app.Database, client, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nExported attendance summaries for %d volunteers to %s (%s).\n\n",
				count, app.Cfg.ReportSheetID, app.Cfg.ReportTab)

			return nil
		},
	}
}
