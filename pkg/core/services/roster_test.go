package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/gameday/internal/config"
	"github.com/jakechorley/gameday/pkg/core/model"
)

// mockRosterClient implements RosterClient for testing
type mockRosterClient struct {
	volunteers []model.Volunteer
	err        error
}

func (m *mockRosterClient) FetchRoster(cfg *config.Config) ([]model.Volunteer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.volunteers, nil
}

// mockRosterStore implements RosterStore for testing
type mockRosterStore struct {
	upserted []model.Volunteer
	err      error
}

func (m *mockRosterStore) UpsertVolunteer(ctx context.Context, v model.Volunteer) error {
	if m.err != nil {
		return m.err
	}
	m.upserted = append(m.upserted, v)
	return nil
}

func rosterConfig() *config.Config {
	return &config.Config{
		DatabaseURL:   "postgres://localhost/gameday",
		HTTPAddr:      ":8080",
		Departments:   []string{"operations", "concessions"},
		RosterSheetID: "sheet-1",
		RosterTab:     "Roster",
	}
}

func TestImportRoster_UpsertsEveryVolunteer(t *testing.T) {
	client := &mockRosterClient{
		volunteers: []model.Volunteer{
			{ID: "vol-a", FirstName: "Alice", LastName: "Smith", Department: "operations", Active: true},
			{ID: "vol-b", FirstName: "Bob", LastName: "Jones", Department: "concessions", Active: false},
		},
	}
	store := &mockRosterStore{}

	result, err := ImportRoster(context.Background(), store, client, rosterConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.UnknownDepartments)
	assert.Equal(t, client.volunteers, store.upserted)
}

func TestImportRoster_UnknownDepartmentStoredUnassigned(t *testing.T) {
	client := &mockRosterClient{
		volunteers: []model.Volunteer{
			{ID: "vol-a", FirstName: "Alice", LastName: "Smith", Department: "catering", Active: true},
			{ID: "vol-b", FirstName: "Bob", LastName: "Jones", Department: "operations", Active: true},
		},
	}
	store := &mockRosterStore{}

	result, err := ImportRoster(context.Background(), store, client, rosterConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, []string{"catering"}, result.UnknownDepartments)

	require.Len(t, store.upserted, 2)
	assert.Equal(t, "", store.upserted[0].Department)
	assert.Equal(t, "operations", store.upserted[1].Department)
}

func TestImportRoster_EmptyDepartmentAllowed(t *testing.T) {
	client := &mockRosterClient{
		volunteers: []model.Volunteer{
			{ID: "vol-a", FirstName: "Alice", LastName: "Smith", Active: true},
		},
	}
	store := &mockRosterStore{}

	result, err := ImportRoster(context.Background(), store, client, rosterConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.UnknownDepartments)
}

func TestImportRoster_FetchFailure(t *testing.T) {
	client := &mockRosterClient{err: errors.New("sheet unavailable")}
	store := &mockRosterStore{}

	_, err := ImportRoster(context.Background(), store, client, rosterConfig(), zap.NewNop())
	require.Error(t, err)
	assert.Empty(t, store.upserted)
}

func TestImportRoster_UpsertFailureAborts(t *testing.T) {
	client := &mockRosterClient{
		volunteers: []model.Volunteer{
			{ID: "vol-a", FirstName: "Alice", LastName: "Smith", Department: "operations", Active: true},
		},
	}
	store := &mockRosterStore{err: errors.New("connection reset")}

	_, err := ImportRoster(context.Background(), store, client, rosterConfig(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vol-a")
}
