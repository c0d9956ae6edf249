package attendance

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/gameday/pkg/core/model"
)

// MutationStore defines the write-through operations the matrix needs from
// the external store. Implementations must keep at most one status record
// per (volunteer, game date) pair.
type MutationStore interface {
	UpsertStatus(ctx context.Context, record model.StatusRecord) error
	DeleteStatus(ctx context.Context, volunteerID, gameDateID string) error
	SetVolunteerActive(ctx context.Context, volunteerID string, active bool) error
}

// Matrix is the in-memory attendance snapshot: every volunteer joined with
// a status per known game date plus rollup summary counts. A Matrix is
// built from full record sets and patched only through its own mutation
// methods; mutations write to the store first and patch local state only
// after the store confirms, so the snapshot is always last-known-good.
//
// A Matrix is owned by a single caller and is not safe for concurrent use.
type Matrix struct {
	store  MutationStore
	logger *zap.Logger

	volunteers []model.Volunteer
	dates      []model.GameDate
	views      map[string]*model.VolunteerView
	dateIDs    map[string]bool
}

// NewMatrix builds the per-volunteer views from full record sets.
// Volunteers keep store order (department, last name); dates are expected
// in ascending date order. Records for unknown volunteers or dates are
// ignored.
func NewMatrix(store MutationStore, logger *zap.Logger, volunteers []model.Volunteer, dates []model.GameDate, records []model.StatusRecord) *Matrix {
	m := &Matrix{
		store:      store,
		logger:     logger,
		volunteers: volunteers,
		dates:      dates,
		views:      make(map[string]*model.VolunteerView, len(volunteers)),
		dateIDs:    make(map[string]bool, len(dates)),
	}

	for _, d := range dates {
		m.dateIDs[d.ID] = true
	}

	// Index records by volunteer so each view is built in one pass
	byVolunteer := make(map[string][]model.StatusRecord, len(volunteers))
	for _, rec := range records {
		byVolunteer[rec.VolunteerID] = append(byVolunteer[rec.VolunteerID], rec)
	}

	for _, vol := range volunteers {
		view := &model.VolunteerView{
			Volunteer: vol,
			Statuses:  make(map[string]model.AttendanceStatus, len(dates)),
		}
		for _, d := range dates {
			view.Statuses[d.ID] = model.StatusUnset
		}
		for _, rec := range byVolunteer[vol.ID] {
			if !m.dateIDs[rec.GameDateID] || !rec.Status.IsValid() {
				continue
			}
			view.Statuses[rec.GameDateID] = rec.Status
			bump(&view.Summary, rec.Status, 1)
			view.Summary.Total++
		}
		m.views[vol.ID] = view
	}

	return m
}

// Volunteers returns the volunteers in store order
func (m *Matrix) Volunteers() []model.Volunteer {
	return m.volunteers
}

// Dates returns the known game dates in ascending date order
func (m *Matrix) Dates() []model.GameDate {
	return m.dates
}

// View returns the view for one volunteer, or nil if unknown
func (m *Matrix) View(volunteerID string) *model.VolunteerView {
	return m.views[volunteerID]
}

// Views returns all views in volunteer order
func (m *Matrix) Views() []*model.VolunteerView {
	views := make([]*model.VolunteerView, 0, len(m.volunteers))
	for _, vol := range m.volunteers {
		views = append(views, m.views[vol.ID])
	}
	return views
}

// SetStatus records a status for a (volunteer, date) pair, creating the
// status record if none exists and overwriting it otherwise. The store
// write happens first; on success the local summary is patched
// incrementally. Setting the already-recorded status is a no-op upsert.
func (m *Matrix) SetStatus(ctx context.Context, volunteerID, gameDateID string, status model.AttendanceStatus) (*model.VolunteerView, error) {
	if !status.IsValid() {
		return nil, ErrValidation("unrecognized status %q", status)
	}
	view, ok := m.views[volunteerID]
	if !ok {
		return nil, ErrNotFound("volunteer %s not found", volunteerID)
	}
	if !m.dateIDs[gameDateID] {
		return nil, ErrNotFound("game date %s not found", gameDateID)
	}

	prev := view.Statuses[gameDateID]

	record := model.StatusRecord{
		ID:          uuid.NewString(),
		VolunteerID: volunteerID,
		GameDateID:  gameDateID,
		Status:      status,
	}
	if err := m.store.UpsertStatus(ctx, record); err != nil {
		return nil, err
	}

	view.Statuses[gameDateID] = status
	switch {
	case prev == model.StatusUnset:
		bump(&view.Summary, status, 1)
		view.Summary.Total++
	case prev != status:
		bump(&view.Summary, prev, -1)
		bump(&view.Summary, status, 1)
	}

	m.logger.Debug("Status set",
		zap.String("volunteer_id", volunteerID),
		zap.String("game_date_id", gameDateID),
		zap.String("from", string(prev)),
		zap.String("to", string(status)))

	return view, nil
}

// ClearStatus deletes the status record for a (volunteer, date) pair.
// Clearing a pair with no record is a no-op, not an error. The store
// delete happens first; on success the prior status is removed from the
// summary, floored at zero to tolerate drift from concurrent writers.
func (m *Matrix) ClearStatus(ctx context.Context, volunteerID, gameDateID string) (*model.VolunteerView, error) {
	view, ok := m.views[volunteerID]
	if !ok {
		return nil, ErrNotFound("volunteer %s not found", volunteerID)
	}
	if !m.dateIDs[gameDateID] {
		return nil, ErrNotFound("game date %s not found", gameDateID)
	}

	prev := view.Statuses[gameDateID]
	if prev == model.StatusUnset {
		return view, nil
	}

	if err := m.store.DeleteStatus(ctx, volunteerID, gameDateID); err != nil {
		return nil, err
	}

	view.Statuses[gameDateID] = model.StatusUnset
	bump(&view.Summary, prev, -1)
	view.Summary.Total--
	floor(&view.Summary)

	m.logger.Debug("Status cleared",
		zap.String("volunteer_id", volunteerID),
		zap.String("game_date_id", gameDateID),
		zap.String("was", string(prev)))

	return view, nil
}

// ToggleActive flips a volunteer's active flag with a write-through update
func (m *Matrix) ToggleActive(ctx context.Context, volunteerID string) (*model.Volunteer, error) {
	view, ok := m.views[volunteerID]
	if !ok {
		return nil, ErrNotFound("volunteer %s not found", volunteerID)
	}

	next := !view.Volunteer.Active
	if err := m.store.SetVolunteerActive(ctx, volunteerID, next); err != nil {
		return nil, err
	}

	view.Volunteer.Active = next
	for i := range m.volunteers {
		if m.volunteers[i].ID == volunteerID {
			m.volunteers[i].Active = next
			break
		}
	}

	m.logger.Debug("Active flag toggled",
		zap.String("volunteer_id", volunteerID),
		zap.Bool("active", next))

	return &view.Volunteer, nil
}

func bump(s *model.Summary, status model.AttendanceStatus, delta int) {
	switch status {
	case model.StatusScheduled:
		s.Scheduled += delta
	case model.StatusPresent:
		s.Present += delta
	case model.StatusAbsent:
		s.Absent += delta
	}
}

func floor(s *model.Summary) {
	if s.Scheduled < 0 {
		s.Scheduled = 0
	}
	if s.Present < 0 {
		s.Present = 0
	}
	if s.Absent < 0 {
		s.Absent = 0
	}
	if s.Total < 0 {
		s.Total = 0
	}
}
