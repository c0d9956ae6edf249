package attendance

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/gameday/pkg/core/model"
)

// mockMutationStore implements MutationStore for testing
type mockMutationStore struct {
	upserted      []model.StatusRecord
	deleted       []string // "volunteerID/gameDateID"
	activeChanges map[string]bool
	err           error
}

func (m *mockMutationStore) UpsertStatus(ctx context.Context, record model.StatusRecord) error {
	if m.err != nil {
		return m.err
	}
	m.upserted = append(m.upserted, record)
	return nil
}

func (m *mockMutationStore) DeleteStatus(ctx context.Context, volunteerID, gameDateID string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, volunteerID+"/"+gameDateID)
	return nil
}

func (m *mockMutationStore) SetVolunteerActive(ctx context.Context, volunteerID string, active bool) error {
	if m.err != nil {
		return m.err
	}
	if m.activeChanges == nil {
		m.activeChanges = make(map[string]bool)
	}
	m.activeChanges[volunteerID] = active
	return nil
}

func testVolunteers() []model.Volunteer {
	return []model.Volunteer{
		{ID: "vol-a", FirstName: "Alice", LastName: "Smith", Department: "operations", Active: true},
		{ID: "vol-b", FirstName: "Bob", LastName: "Jones", Department: "concessions", Active: true},
	}
}

func testDates() []model.GameDate {
	return []model.GameDate{
		{ID: "d1", Date: "2025-03-01", Active: true},
		{ID: "d2", Date: "2025-03-08", Active: true},
		{ID: "d3", Date: "2025-03-15", Active: true},
	}
}

func TestNewMatrix_EveryDateKeyedEvenWithoutRecords(t *testing.T) {
	m := NewMatrix(&mockMutationStore{}, zap.NewNop(), testVolunteers(), testDates(), nil)

	view := m.View("vol-a")
	require.NotNil(t, view)
	assert.Len(t, view.Statuses, 3)
	for _, dateID := range []string{"d1", "d2", "d3"} {
		status, ok := view.Statuses[dateID]
		assert.True(t, ok, "date %s missing from status map", dateID)
		assert.Equal(t, model.StatusUnset, status)
	}
	assert.Equal(t, model.Summary{}, view.Summary)
}

func TestNewMatrix_SummaryPartitionsRecordsByStatus(t *testing.T) {
	records := []model.StatusRecord{
		{ID: "r1", VolunteerID: "vol-a", GameDateID: "d1", Status: model.StatusPresent},
		{ID: "r2", VolunteerID: "vol-a", GameDateID: "d2", Status: model.StatusAbsent},
		{ID: "r3", VolunteerID: "vol-a", GameDateID: "d3", Status: model.StatusScheduled},
		{ID: "r4", VolunteerID: "vol-b", GameDateID: "d1", Status: model.StatusPresent},
	}
	m := NewMatrix(&mockMutationStore{}, zap.NewNop(), testVolunteers(), testDates(), records)

	a := m.View("vol-a")
	assert.Equal(t, model.Summary{Scheduled: 1, Present: 1, Absent: 1, Total: 3}, a.Summary)
	assert.Equal(t, model.StatusPresent, a.Statuses["d1"])
	assert.Equal(t, model.StatusAbsent, a.Statuses["d2"])
	assert.Equal(t, model.StatusScheduled, a.Statuses["d3"])

	b := m.View("vol-b")
	assert.Equal(t, model.Summary{Present: 1, Total: 1}, b.Summary)
	assert.Equal(t, model.StatusUnset, b.Statuses["d2"])
}

func TestNewMatrix_IgnoresRecordsForUnknownDates(t *testing.T) {
	records := []model.StatusRecord{
		{ID: "r1", VolunteerID: "vol-a", GameDateID: "gone", Status: model.StatusPresent},
	}
	m := NewMatrix(&mockMutationStore{}, zap.NewNop(), testVolunteers(), testDates(), records)

	view := m.View("vol-a")
	assert.Equal(t, 0, view.Summary.Total)
	assert.Len(t, view.Statuses, 3)
}

func TestSetStatus_CreatesRecordAndIncrementsSummary(t *testing.T) {
	store := &mockMutationStore{}
	m := NewMatrix(store, zap.NewNop(), testVolunteers(), testDates(), nil)

	view, err := m.SetStatus(context.Background(), "vol-a", "d1", model.StatusScheduled)
	require.NoError(t, err)

	assert.Equal(t, model.Summary{Scheduled: 1, Total: 1}, view.Summary)
	assert.Equal(t, model.StatusScheduled, view.Statuses["d1"])

	require.Len(t, store.upserted, 1)
	assert.Equal(t, "vol-a", store.upserted[0].VolunteerID)
	assert.Equal(t, "d1", store.upserted[0].GameDateID)
	assert.Equal(t, model.StatusScheduled, store.upserted[0].Status)
	assert.NotEmpty(t, store.upserted[0].ID)
}

func TestSetStatus_OverwriteMovesCountTotalUnchanged(t *testing.T) {
	store := &mockMutationStore{}
	m := NewMatrix(store, zap.NewNop(), testVolunteers(), testDates(), nil)
	ctx := context.Background()

	_, err := m.SetStatus(ctx, "vol-a", "d1", model.StatusScheduled)
	require.NoError(t, err)
	view, err := m.SetStatus(ctx, "vol-a", "d1", model.StatusPresent)
	require.NoError(t, err)

	assert.Equal(t, model.Summary{Scheduled: 0, Present: 1, Total: 1}, view.Summary)
	assert.Equal(t, model.StatusPresent, view.Statuses["d1"])
}

func TestSetStatus_Idempotent(t *testing.T) {
	store := &mockMutationStore{}
	m := NewMatrix(store, zap.NewNop(), testVolunteers(), testDates(), nil)
	ctx := context.Background()

	first, err := m.SetStatus(ctx, "vol-a", "d1", model.StatusPresent)
	require.NoError(t, err)
	once := first.Summary

	twice, err := m.SetStatus(ctx, "vol-a", "d1", model.StatusPresent)
	require.NoError(t, err)

	assert.Equal(t, once, twice.Summary, "setting the same status twice must not double count")
	assert.Equal(t, model.Summary{Present: 1, Total: 1}, twice.Summary)
}

func TestSetStatus_UnknownVolunteer(t *testing.T) {
	m := NewMatrix(&mockMutationStore{}, zap.NewNop(), testVolunteers(), testDates(), nil)

	_, err := m.SetStatus(context.Background(), "nobody", "d1", model.StatusPresent)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestSetStatus_UnknownDate(t *testing.T) {
	m := NewMatrix(&mockMutationStore{}, zap.NewNop(), testVolunteers(), testDates(), nil)

	_, err := m.SetStatus(context.Background(), "vol-a", "d99", model.StatusPresent)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestSetStatus_UnrecognizedStatus(t *testing.T) {
	store := &mockMutationStore{}
	m := NewMatrix(store, zap.NewNop(), testVolunteers(), testDates(), nil)

	_, err := m.SetStatus(context.Background(), "vol-a", "d1", model.AttendanceStatus("late"))
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Empty(t, store.upserted, "nothing should reach the store")
}

func TestSetStatus_StoreFailureLeavesStateUnchanged(t *testing.T) {
	records := []model.StatusRecord{
		{ID: "r1", VolunteerID: "vol-a", GameDateID: "d1", Status: model.StatusScheduled},
	}
	store := &mockMutationStore{err: ErrStoreUnavailable("store down", fmt.Errorf("connection refused"))}
	m := NewMatrix(store, zap.NewNop(), testVolunteers(), testDates(), records)

	_, err := m.SetStatus(context.Background(), "vol-a", "d1", model.StatusPresent)
	require.Error(t, err)
	assert.Equal(t, KindStoreUnavailable, KindOf(err))

	view := m.View("vol-a")
	assert.Equal(t, model.StatusScheduled, view.Statuses["d1"], "prior status must survive a failed write")
	assert.Equal(t, model.Summary{Scheduled: 1, Total: 1}, view.Summary)
}

func TestClearStatus_RemovesRecordAndDecrementsSummary(t *testing.T) {
	records := []model.StatusRecord{
		{ID: "r1", VolunteerID: "vol-a", GameDateID: "d1", Status: model.StatusAbsent},
		{ID: "r2", VolunteerID: "vol-a", GameDateID: "d2", Status: model.StatusPresent},
	}
	store := &mockMutationStore{}
	m := NewMatrix(store, zap.NewNop(), testVolunteers(), testDates(), records)

	view, err := m.ClearStatus(context.Background(), "vol-a", "d1")
	require.NoError(t, err)

	assert.Equal(t, model.StatusUnset, view.Statuses["d1"])
	assert.Equal(t, model.Summary{Present: 1, Total: 1}, view.Summary)
	assert.Equal(t, []string{"vol-a/d1"}, store.deleted)
}

func TestClearStatus_NoRecordIsNoOp(t *testing.T) {
	store := &mockMutationStore{}
	m := NewMatrix(store, zap.NewNop(), testVolunteers(), testDates(), nil)

	view, err := m.ClearStatus(context.Background(), "vol-a", "d1")
	require.NoError(t, err)
	assert.Equal(t, model.Summary{}, view.Summary)
	assert.Empty(t, store.deleted, "no store call for a pair with no record")
}

func TestClearStatus_StoreFailureLeavesStateUnchanged(t *testing.T) {
	records := []model.StatusRecord{
		{ID: "r1", VolunteerID: "vol-a", GameDateID: "d1", Status: model.StatusPresent},
	}
	store := &mockMutationStore{err: ErrStoreUnavailable("store down", fmt.Errorf("timeout"))}
	m := NewMatrix(store, zap.NewNop(), testVolunteers(), testDates(), records)

	_, err := m.ClearStatus(context.Background(), "vol-a", "d1")
	require.Error(t, err)

	view := m.View("vol-a")
	assert.Equal(t, model.StatusPresent, view.Statuses["d1"])
	assert.Equal(t, model.Summary{Present: 1, Total: 1}, view.Summary)
}

// The full lifecycle from the design notes: schedule, mark present, clear.
func TestStatusLifecycle_ScheduledPresentCleared(t *testing.T) {
	store := &mockMutationStore{}
	m := NewMatrix(store, zap.NewNop(), testVolunteers(), testDates(), nil)
	ctx := context.Background()

	view, err := m.SetStatus(ctx, "vol-a", "d1", model.StatusScheduled)
	require.NoError(t, err)
	assert.Equal(t, model.Summary{Scheduled: 1, Total: 1}, view.Summary)

	view, err = m.SetStatus(ctx, "vol-a", "d1", model.StatusPresent)
	require.NoError(t, err)
	assert.Equal(t, model.Summary{Present: 1, Total: 1}, view.Summary)

	view, err = m.ClearStatus(ctx, "vol-a", "d1")
	require.NoError(t, err)
	assert.Equal(t, model.Summary{}, view.Summary)
	assert.Equal(t, model.StatusUnset, view.Statuses["d1"])
}

// Total must equal the sum of the partitioned counts after any sequence of
// mutations.
func TestSummaryInvariant_TotalEqualsSumOfCounts(t *testing.T) {
	store := &mockMutationStore{}
	m := NewMatrix(store, zap.NewNop(), testVolunteers(), testDates(), nil)
	ctx := context.Background()

	steps := []struct {
		dateID string
		status model.AttendanceStatus
		clear  bool
	}{
		{dateID: "d1", status: model.StatusScheduled},
		{dateID: "d2", status: model.StatusPresent},
		{dateID: "d1", status: model.StatusPresent},
		{dateID: "d3", status: model.StatusAbsent},
		{dateID: "d2", clear: true},
		{dateID: "d2", clear: true},
		{dateID: "d1", status: model.StatusAbsent},
		{dateID: "d3", clear: true},
	}

	for i, step := range steps {
		var view *model.VolunteerView
		var err error
		if step.clear {
			view, err = m.ClearStatus(ctx, "vol-a", step.dateID)
		} else {
			view, err = m.SetStatus(ctx, "vol-a", step.dateID, step.status)
		}
		require.NoError(t, err, "step %d", i)

		s := view.Summary
		assert.Equal(t, s.Scheduled+s.Present+s.Absent, s.Total, "step %d", i)
		assert.GreaterOrEqual(t, s.Scheduled, 0, "step %d", i)
		assert.GreaterOrEqual(t, s.Present, 0, "step %d", i)
		assert.GreaterOrEqual(t, s.Absent, 0, "step %d", i)
	}
}

func TestAttendanceRate_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, model.Summary{}.AttendanceRate())
	assert.Equal(t, 100.0, model.Summary{Present: 3, Total: 3}.AttendanceRate())
	assert.InDelta(t, 50.0, model.Summary{Present: 1, Absent: 1, Total: 2}.AttendanceRate(), 0.0001)
	assert.InDelta(t, 100.0/3, model.Summary{Present: 1, Scheduled: 1, Absent: 1, Total: 3}.AttendanceRate(), 0.0001)
}

func TestToggleActive_FlipsFlagWriteThrough(t *testing.T) {
	store := &mockMutationStore{}
	m := NewMatrix(store, zap.NewNop(), testVolunteers(), testDates(), nil)

	vol, err := m.ToggleActive(context.Background(), "vol-a")
	require.NoError(t, err)
	assert.False(t, vol.Active)
	assert.Equal(t, false, store.activeChanges["vol-a"])
	assert.False(t, m.Volunteers()[0].Active, "roster slice must reflect the toggle")

	vol, err = m.ToggleActive(context.Background(), "vol-a")
	require.NoError(t, err)
	assert.True(t, vol.Active)
}

func TestToggleActive_StoreFailureLeavesFlagUnchanged(t *testing.T) {
	store := &mockMutationStore{err: ErrStoreUnavailable("store down", fmt.Errorf("network"))}
	m := NewMatrix(store, zap.NewNop(), testVolunteers(), testDates(), nil)

	_, err := m.ToggleActive(context.Background(), "vol-a")
	require.Error(t, err)
	assert.True(t, m.View("vol-a").Volunteer.Active)
}

func TestToggleActive_UnknownVolunteer(t *testing.T) {
	m := NewMatrix(&mockMutationStore{}, zap.NewNop(), testVolunteers(), testDates(), nil)

	_, err := m.ToggleActive(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestViews_PreservesVolunteerOrder(t *testing.T) {
	m := NewMatrix(&mockMutationStore{}, zap.NewNop(), testVolunteers(), testDates(), nil)

	views := m.Views()
	require.Len(t, views, 2)
	assert.Equal(t, "vol-a", views[0].Volunteer.ID)
	assert.Equal(t, "vol-b", views[1].Volunteer.ID)
}
