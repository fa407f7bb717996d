package models

import "fmt"

// ShiftKind distinguishes shifts the engine may relocate from those it may not.
type ShiftKind string

const (
	// ShiftFixed shifts keep their day and window; only staffing is decided.
	ShiftFixed ShiftKind = "fixed"
	// ShiftFlexible shifts may be moved to whichever slot maximizes the
	// number of eligible staff.
	ShiftFlexible ShiftKind = "flexible"
)

// Availability maps a weekday (0=Monday .. 6=Sunday) to the disjoint windows
// during which a staff member can work.
type Availability map[int][]TimeWindow

// DefaultAvailability returns full-day availability on all seven days.
func DefaultAvailability() Availability {
	a := make(Availability, 7)
	for day := 0; day < 7; day++ {
		a[day] = []TimeWindow{{StartMinute: 0, EndMinute: MinutesPerDay}}
	}
	return a
}

// IsAvailable reports whether some single window registered for the day fully
// contains the requested window. Two adjacent windows are never merged at
// query time: a request straddling them is unavailable.
func (a Availability) IsAvailable(day int, window TimeWindow) bool {
	for _, avail := range a[day] {
		if avail.Contains(window) {
			return true
		}
	}
	return false
}

// StaffMember is a person who can be assigned to shifts.
type StaffMember struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	WeeklyCap    int          `json:"weekly_cap"`
	Availability Availability `json:"availability"`
	Color        string       `json:"color,omitempty"`
}

// Validate checks the staff invariants.
func (m *StaffMember) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("staff member %q has no id", m.Name)
	}
	if m.WeeklyCap < 1 {
		return fmt.Errorf("staff %s: weekly cap must be at least 1", m.ID)
	}
	for day, windows := range m.Availability {
		if day < 0 || day > 6 {
			return fmt.Errorf("staff %s: availability day %d out of range", m.ID, day)
		}
		for _, w := range windows {
			if err := w.Validate(); err != nil {
				return fmt.Errorf("staff %s: %w", m.ID, err)
			}
		}
	}
	return nil
}

// ConflictPair names two staff members who must never share a shift.
// The relation is unordered: (a,b) and (b,a) are the same pair.
type ConflictPair struct {
	StaffA string `json:"staff_a"`
	StaffB string `json:"staff_b"`
}

// Shift is a unit of work that needs staffing.
type Shift struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Kind          ShiftKind  `json:"kind"`
	Day           int        `json:"day"`
	Window        TimeWindow `json:"window"`
	RequiredStaff int        `json:"required_staff"`
	AssignedStaff []string   `json:"assigned_staff"`
}

// Validate checks the shift invariants the engine relies on.
func (s *Shift) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("shift %q has no id", s.Name)
	}
	if s.Kind != ShiftFixed && s.Kind != ShiftFlexible {
		return fmt.Errorf("shift %s: unknown kind %q", s.ID, s.Kind)
	}
	if s.Day < 0 || s.Day > 6 {
		return fmt.Errorf("shift %s: day %d out of range", s.ID, s.Day)
	}
	if s.RequiredStaff < 1 {
		return fmt.Errorf("shift %s: required staff must be at least 1", s.ID)
	}
	if err := s.Window.Validate(); err != nil {
		return fmt.Errorf("shift %s: %w", s.ID, err)
	}
	return nil
}

// Clone returns a copy whose assigned list is independent of the original.
func (s Shift) Clone() Shift {
	c := s
	c.AssignedStaff = append([]string(nil), s.AssignedStaff...)
	return c
}

// OverlapsWith reports whether two shifts occupy overlapping time on the
// same day.
func (s Shift) OverlapsWith(other Shift) bool {
	if s.Day != other.Day {
		return false
	}
	return s.Window.Overlaps(other.Window)
}

// ScheduleInput is the payload for a stateless scheduling request.
type ScheduleInput struct {
	Staff         []StaffMember  `json:"staff"`
	ConflictPairs []ConflictPair `json:"conflict_pairs"`
	Shifts        []Shift        `json:"shifts"`
	// Seed fixes the tie-break jitter for reproducible runs. Omitted means
	// a time-based seed.
	Seed *int64 `json:"seed,omitempty"`
}

// StaffLoad summarizes one staff member's workload after a run.
type StaffLoad struct {
	Name     string `json:"name"`
	Assigned int    `json:"assigned"`
	Cap      int    `json:"cap"`
}

// ScheduleResponse is the result of a scheduling run.
type ScheduleResponse struct {
	Shifts        []Shift              `json:"shifts"`
	Understaffed  []string             `json:"understaffed"` // shift IDs below required_staff
	Distribution  map[string]StaffLoad `json:"distribution"` // staff ID -> load
	FairnessScore float64              `json:"fairness_score"`
}

// Violation describes one constraint broken by the current assignment state.
type Violation struct {
	Kind     string   `json:"kind"` // double_booking, conflict_pair, over_cap, unavailable
	StaffID  string   `json:"staff_id"`
	ShiftIDs []string `json:"shift_ids"`
	Detail   string   `json:"detail"`
}
