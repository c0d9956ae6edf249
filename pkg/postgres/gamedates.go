package postgres

import (
	"context"
	"time"

	"github.com/jakechorley/gameday/pkg/core/model"
)

// ListGameDates retrieves all game dates in ascending date order
func (db *DB) ListGameDates(ctx context.Context) ([]model.GameDate, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, date, active
		FROM game_dates
		ORDER BY date
	`)
	if err != nil {
		return nil, storeError("query game dates", err)
	}
	defer rows.Close()

	var dates []model.GameDate
	for rows.Next() {
		var d model.GameDate
		var date time.Time
		if err := rows.Scan(&d.ID, &date, &d.Active); err != nil {
			return nil, storeError("scan game date", err)
		}
		d.Date = date.Format("2006-01-02")
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate game dates", err)
	}

	return dates, nil
}

// GetGameDate retrieves a single game date by id
func (db *DB) GetGameDate(ctx context.Context, id string) (*model.GameDate, error) {
	var d model.GameDate
	var date time.Time
	err := db.pool.QueryRow(ctx, `
		SELECT id, date, active
		FROM game_dates
		WHERE id = $1
	`, id).Scan(&d.ID, &date, &d.Active)
	if err != nil {
		return nil, storeError("get game date", err)
	}
	d.Date = date.Format("2006-01-02")
	return &d, nil
}

// InsertGameDates inserts the given game dates. Used by season seeding.
func (db *DB) InsertGameDates(ctx context.Context, dates []model.GameDate) error {
	for _, d := range dates {
		_, err := db.pool.Exec(ctx, `
			INSERT INTO game_dates (id, date, active)
			VALUES ($1, $2, $3)
		`, d.ID, d.Date, d.Active)
		if err != nil {
			return storeError("insert game date", err)
		}
	}
	return nil
}
