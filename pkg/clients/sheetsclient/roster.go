package sheetsclient

import (
	"fmt"
	"strings"

	"github.com/jakechorley/gameday/internal/config"
	"github.com/jakechorley/gameday/pkg/core/model"
)

// Expected column names in the roster sheet
var rosterFields = []string{
	"Unique ID",
	"First name",
	"Last name",
	"Department",
	"Active",
}

// FetchRoster retrieves and parses volunteers from the configured spreadsheet
func (c *Client) FetchRoster(cfg *config.Config) ([]model.Volunteer, error) {
	values, err := c.GetValues(cfg.RosterSheetID, cfg.RosterTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	volunteers, err := parseRoster(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	return volunteers, nil
}

// parseRoster converts raw spreadsheet data into Volunteer structs
func parseRoster(raw [][]interface{}) ([]model.Volunteer, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	// Build field index map from header row
	fieldIndexes := make(map[string]int)
	headerRow := raw[0]

	for _, field := range rosterFields {
		index := -1
		for i, cell := range headerRow {
			if cellStr, ok := cell.(string); ok && cellStr == field {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}

	getField := func(field string, row []interface{}) string {
		index, ok := fieldIndexes[field]
		if !ok {
			return ""
		}
		if index >= len(row) {
			return ""
		}
		if str, ok := row[index].(string); ok {
			return str
		}
		return ""
	}

	volunteers := make([]model.Volunteer, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		firstName := getField("First name", row)
		// Skip empty rows (rows with no first name)
		if firstName == "" {
			continue
		}

		id := getField("Unique ID", row)
		if id == "" {
			return nil, fmt.Errorf("row %d has no unique ID", i+1)
		}

		volunteer := model.Volunteer{
			ID:         id,
			FirstName:  firstName,
			LastName:   getField("Last name", row),
			Department: strings.ToLower(strings.TrimSpace(getField("Department", row))),
			Active:     parseActive(getField("Active", row)),
		}

		volunteers = append(volunteers, volunteer)
	}

	return volunteers, nil
}

// parseActive interprets the Active cell; anything other than an
// explicit no reads as active
func parseActive(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "no", "n", "false", "0", "inactive":
		return false
	default:
		return true
	}
}
