package postgres

import (
	"context"

	"github.com/jakechorley/gameday/pkg/core/model"
)

// ListStatusRecords retrieves every status record
func (db *DB) ListStatusRecords(ctx context.Context) ([]model.StatusRecord, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, volunteer_id, game_date_id, status
		FROM volunteer_date_status
	`)
	if err != nil {
		return nil, storeError("query status records", err)
	}
	defer rows.Close()

	var records []model.StatusRecord
	for rows.Next() {
		var r model.StatusRecord
		if err := rows.Scan(&r.ID, &r.VolunteerID, &r.GameDateID, &r.Status); err != nil {
			return nil, storeError("scan status record", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate status records", err)
	}

	return records, nil
}

// UpsertStatus inserts a status record or overwrites the status in place.
// The unique (volunteer_id, game_date_id) constraint guarantees at most
// one record per pair even under concurrent writers.
func (db *DB) UpsertStatus(ctx context.Context, record model.StatusRecord) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO volunteer_date_status (id, volunteer_id, game_date_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (volunteer_id, game_date_id) DO UPDATE SET
			status = EXCLUDED.status
	`, record.ID, record.VolunteerID, record.GameDateID, string(record.Status))
	if err != nil {
		return storeError("upsert status", err)
	}
	return nil
}

// DeleteStatus removes the status record for a (volunteer, date) pair.
// Deleting a pair with no record is not an error.
func (db *DB) DeleteStatus(ctx context.Context, volunteerID, gameDateID string) error {
	_, err := db.pool.Exec(ctx, `
		DELETE FROM volunteer_date_status
		WHERE volunteer_id = $1 AND game_date_id = $2
	`, volunteerID, gameDateID)
	if err != nil {
		return storeError("delete status", err)
	}
	return nil
}
