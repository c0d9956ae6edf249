package postgres

import (
	"context"

	"github.com/jakechorley/gameday/pkg/core/attendance"
	"github.com/jakechorley/gameday/pkg/core/model"
)

// ListVolunteers retrieves all volunteers ordered by department then name.
// Unassigned departments sort last.
func (db *DB) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, first_name, last_name, COALESCE(department, ''), active
		FROM volunteers
		ORDER BY department NULLS LAST, last_name, first_name
	`)
	if err != nil {
		return nil, storeError("query volunteers", err)
	}
	defer rows.Close()

	var volunteers []model.Volunteer
	for rows.Next() {
		var v model.Volunteer
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName, &v.Department, &v.Active); err != nil {
			return nil, storeError("scan volunteer", err)
		}
		volunteers = append(volunteers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate volunteers", err)
	}

	return volunteers, nil
}

// GetVolunteer retrieves a single volunteer by id
func (db *DB) GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error) {
	var v model.Volunteer
	err := db.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, COALESCE(department, ''), active
		FROM volunteers
		WHERE id = $1
	`, id).Scan(&v.ID, &v.FirstName, &v.LastName, &v.Department, &v.Active)
	if err != nil {
		return nil, storeError("get volunteer", err)
	}
	return &v, nil
}

// SetVolunteerActive updates a volunteer's active flag
func (db *DB) SetVolunteerActive(ctx context.Context, volunteerID string, active bool) error {
	tag, err := db.pool.Exec(ctx, `
		UPDATE volunteers SET active = $2 WHERE id = $1
	`, volunteerID, active)
	if err != nil {
		return storeError("update volunteer active", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNotFound("volunteer %s not found", volunteerID)
	}
	return nil
}

// UpsertVolunteer inserts a volunteer or updates name, department and
// active flag on conflict. Used by roster import; an empty department is
// stored as NULL.
func (db *DB) UpsertVolunteer(ctx context.Context, v model.Volunteer) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO volunteers (id, first_name, last_name, department, active)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			department = EXCLUDED.department,
			active     = EXCLUDED.active
	`, v.ID, v.FirstName, v.LastName, v.Department, v.Active)
	if err != nil {
		return storeError("upsert volunteer", err)
	}
	return nil
}
