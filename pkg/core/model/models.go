package model

// AttendanceStatus is a volunteer's recorded status for one game date
type AttendanceStatus string

const (
	// StatusUnset is the absence of a status record for a (volunteer, date)
	// pair. It is never persisted.
	StatusUnset AttendanceStatus = ""

	StatusScheduled AttendanceStatus = "scheduled"
	StatusPresent   AttendanceStatus = "present"
	StatusAbsent    AttendanceStatus = "absent"
)

func (s AttendanceStatus) IsValid() bool {
	return s == StatusScheduled || s == StatusPresent || s == StatusAbsent
}

// DepartmentUnassigned is the grouping key for volunteers with no department
const DepartmentUnassigned = "unassigned"

// Volunteer represents a volunteer on the roster
type Volunteer struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"` // Empty string if unassigned
	Active     bool   `json:"active"`
}

// FullName returns the "first last" display name used for searching
func (v Volunteer) FullName() string {
	return v.FirstName + " " + v.LastName
}

// GameDate represents one occasion volunteers can be scheduled for
type GameDate struct {
	ID     string `json:"id"`
	Date   string `json:"date"` // YYYY-MM-DD
	Active bool   `json:"active"`
}

// StatusRecord is the persisted status of one volunteer on one game date.
// At most one record exists per (VolunteerID, GameDateID) pair.
type StatusRecord struct {
	ID          string           `json:"id"`
	VolunteerID string           `json:"volunteer_id"`
	GameDateID  string           `json:"game_date_id"`
	Status      AttendanceStatus `json:"status"`
}

// Summary holds a volunteer's status counts partitioned by status value
type Summary struct {
	Scheduled int `json:"scheduled"`
	Present   int `json:"present"`
	Absent    int `json:"absent"`
	Total     int `json:"total"`
}

// AttendanceRate returns the percentage of total assignments marked
// present, in [0, 100]. Defined as 0 when there are no assignments.
// Rounding happens at presentation time, not here.
func (s Summary) AttendanceRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Present) / float64(s.Total) * 100
}

// VolunteerView joins a volunteer with its per-date statuses and summary.
// Statuses contains a key for every known game date id; the value is
// StatusUnset when no record exists for the pair.
type VolunteerView struct {
	Volunteer Volunteer                   `json:"volunteer"`
	Statuses  map[string]AttendanceStatus `json:"statuses"`
	Summary   Summary                     `json:"summary"`
}
