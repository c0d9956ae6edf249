package attendance

import (
	"strings"

	"github.com/jakechorley/gameday/pkg/core/model"
)

// DepartmentAll disables department filtering
const DepartmentAll = "all"

// FilterOptions combines the roster filter predicates. All predicates are
// ANDed together.
type FilterOptions struct {
	// SearchText matches case-insensitively against "first last"
	SearchText string
	// Department matches exactly, or DepartmentAll / empty for no filter
	Department string
	// IncludeInactive keeps inactive volunteers in the result
	IncludeInactive bool
}

// FilterVolunteers returns the volunteers matching opts, preserving input
// order. The function is pure and stateless.
func FilterVolunteers(volunteers []model.Volunteer, opts FilterOptions) []model.Volunteer {
	search := strings.ToLower(strings.TrimSpace(opts.SearchText))

	filtered := make([]model.Volunteer, 0, len(volunteers))
	for _, vol := range volunteers {
		if !opts.IncludeInactive && !vol.Active {
			continue
		}
		if opts.Department != "" && opts.Department != DepartmentAll && vol.Department != opts.Department {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(vol.FullName()), search) {
			continue
		}
		filtered = append(filtered, vol)
	}
	return filtered
}

// GroupByDepartment groups volunteers by department, preserving input
// order within each group. Volunteers with no department are grouped
// under model.DepartmentUnassigned.
func GroupByDepartment(volunteers []model.Volunteer) map[string][]model.Volunteer {
	groups := make(map[string][]model.Volunteer)
	for _, vol := range volunteers {
		key := vol.Department
		if key == "" {
			key = model.DepartmentUnassigned
		}
		groups[key] = append(groups[key], vol)
	}
	return groups
}
