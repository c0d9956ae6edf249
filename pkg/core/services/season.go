package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/gameday/pkg/core/model"
)

// SeasonStore defines the database operations needed for seeding game dates
type SeasonStore interface {
	GameDateLister
	InsertGameDates(ctx context.Context, dates []model.GameDate) error
}

// GenerateSeasonDates expands a recurrence rule into the next count game
// dates and inserts them. Generation starts the day after the latest
// existing game date, or the day after now when the store is empty, so
// repeated runs extend the season without duplicating dates.
func GenerateSeasonDates(ctx context.Context, database SeasonStore, logger *zap.Logger, ruleStr string, count int, now time.Time) ([]model.GameDate, error) {
	if count <= 0 {
		return nil, fmt.Errorf("date count must be positive, got %d", count)
	}
	if ruleStr == "" {
		return nil, fmt.Errorf("no season rrule configured")
	}

	rule, err := rrule.StrToRRule(ruleStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse season rrule: %w", err)
	}

	logger.Info("Generating season dates", zap.String("rrule", ruleStr), zap.Int("count", count))

	existing, err := database.ListGameDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game dates: %w", err)
	}

	anchor := startOfDay(now)
	if len(existing) > 0 {
		// Dates come back ascending; continue after the last one
		last, err := time.Parse("2006-01-02", existing[len(existing)-1].Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse latest game date: %w", err)
		}
		if last.After(anchor) {
			anchor = last
		}
	}
	logger.Debug("Season anchor", zap.String("after", anchor.Format("2006-01-02")))

	rule.DTStart(anchor.AddDate(0, 0, 1))

	dates := make([]model.GameDate, 0, count)
	next := rule.Iterator()
	for len(dates) < count {
		occurrence, ok := next()
		if !ok {
			return nil, fmt.Errorf("rrule produced only %d of %d dates", len(dates), count)
		}
		dates = append(dates, model.GameDate{
			ID:     uuid.New().String(),
			Date:   occurrence.Format("2006-01-02"),
			Active: true,
		})
	}

	if err := database.InsertGameDates(ctx, dates); err != nil {
		return nil, fmt.Errorf("failed to insert game dates: %w", err)
	}

	logger.Info("Season dates created",
		zap.Int("count", len(dates)),
		zap.String("first", dates[0].Date),
		zap.String("last", dates[len(dates)-1].Date))

	return dates, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
