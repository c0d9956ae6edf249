package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/gameday/internal/config"
	"github.com/jakechorley/gameday/pkg/core/model"
)

// RosterClient fetches the volunteer roster from its external source
type RosterClient interface {
	FetchRoster(cfg *config.Config) ([]model.Volunteer, error)
}

// RosterStore defines the database operations needed for roster import
type RosterStore interface {
	UpsertVolunteer(ctx context.Context, v model.Volunteer) error
}

// ImportRosterResult summarizes an import run
type ImportRosterResult struct {
	Imported           int
	UnknownDepartments []string
}

// ImportRoster reads the volunteer roster from the configured sheet and
// upserts each volunteer into the store. Departments outside the
// configured closed set are stored as unset rather than rejected, so a
// typo in the sheet cannot block the rest of the import.
func ImportRoster(ctx context.Context, database RosterStore, client RosterClient, cfg *config.Config, logger *zap.Logger) (*ImportRosterResult, error) {
	logger.Info("Importing roster", zap.String("sheet_id", cfg.RosterSheetID), zap.String("tab", cfg.RosterTab))

	volunteers, err := client.FetchRoster(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	logger.Debug("Fetched roster rows", zap.Int("count", len(volunteers)))

	result := &ImportRosterResult{}
	for _, vol := range volunteers {
		if vol.Department != "" && !cfg.HasDepartment(vol.Department) {
			logger.Warn("Unknown department, storing volunteer as unassigned",
				zap.String("volunteer_id", vol.ID),
				zap.String("department", vol.Department))
			result.UnknownDepartments = append(result.UnknownDepartments, vol.Department)
			vol.Department = ""
		}

		if err := database.UpsertVolunteer(ctx, vol); err != nil {
			return nil, fmt.Errorf("failed to upsert volunteer %s: %w", vol.ID, err)
		}
		result.Imported++
	}

	logger.Info("Roster import completed",
		zap.Int("imported", result.Imported),
		zap.Int("unknown_departments", len(result.UnknownDepartments)))

	return result, nil
}
