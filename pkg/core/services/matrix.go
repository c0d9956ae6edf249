package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/gameday/pkg/core/attendance"
	"github.com/jakechorley/gameday/pkg/core/model"
)

// VolunteerLister lists the full volunteer roster in store order
type VolunteerLister interface {
	ListVolunteers(ctx context.Context) ([]model.Volunteer, error)
}

// GameDateLister lists all game dates in ascending date order
type GameDateLister interface {
	ListGameDates(ctx context.Context) ([]model.GameDate, error)
}

// StatusLister lists every persisted status record
type StatusLister interface {
	ListStatusRecords(ctx context.Context) ([]model.StatusRecord, error)
}

// MatrixStore defines the database operations needed to load the full
// attendance matrix plus the write-through mutations the matrix performs
type MatrixStore interface {
	VolunteerLister
	GameDateLister
	StatusLister
	attendance.MutationStore
}

// LoadMatrix fetches the full volunteer, game date and status record sets
// and builds the attendance matrix from them. No pagination: the matrix
// always reflects complete sets.
func LoadMatrix(ctx context.Context, database MatrixStore, logger *zap.Logger) (*attendance.Matrix, error) {
	logger.Debug("Fetching volunteers")
	volunteers, err := database.ListVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteers: %w", err)
	}
	logger.Debug("Found volunteers", zap.Int("count", len(volunteers)))

	logger.Debug("Fetching game dates")
	dates, err := database.ListGameDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game dates: %w", err)
	}
	logger.Debug("Found game dates", zap.Int("count", len(dates)))

	logger.Debug("Fetching status records")
	records, err := database.ListStatusRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch status records: %w", err)
	}
	logger.Debug("Found status records", zap.Int("count", len(records)))

	return attendance.NewMatrix(database, logger, volunteers, dates, records), nil
}
