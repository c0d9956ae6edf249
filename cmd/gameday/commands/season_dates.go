package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/gameday/pkg/core/services"
)

// SeasonDatesCmd creates the seasonDates command
func SeasonDatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seasonDates",
		Short: "Generate the next game dates from the configured season rrule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")

			dates, err := services.GenerateSeasonDates(app.Ctx, app.Database, app.Logger, app.Cfg.Season.RRule, count, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\nCreated %d game dates:\n\n", len(dates))
			for i, d := range dates {
				fmt.Printf("  %2d. %s\n", i+1, d.Date)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("count", 10, "Number of game dates to generate")

	return cmd
}
