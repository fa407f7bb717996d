package scheduler

import (
	"fmt"
	"math"

	"github.com/Copycatmax/autoScheduler/pkg/models"
)

// CheckAssignments audits the current assignment state and reports every
// broken constraint. Manual assignments may legitimately sit outside a
// member's availability, so violations are reported rather than rejected.
func (e *Engine) CheckAssignments(shifts []models.Shift) []models.Violation {
	var violations []models.Violation

	// Double bookings: same staff on two overlapping shifts.
	for _, id := range e.ids {
		var held []int
		for i := range shifts {
			if containsID(shifts[i].AssignedStaff, id) {
				held = append(held, i)
			}
		}
		for a := 0; a < len(held); a++ {
			for b := a + 1; b < len(held); b++ {
				s1, s2 := shifts[held[a]], shifts[held[b]]
				if s1.OverlapsWith(s2) {
					violations = append(violations, models.Violation{
						Kind:     "double_booking",
						StaffID:  id,
						ShiftIDs: []string{s1.ID, s2.ID},
						Detail: fmt.Sprintf("%s holds overlapping shifts %s and %s",
							e.memberName(id), s1.Name, s2.Name),
					})
				}
			}
		}
	}

	for i := range shifts {
		shift := &shifts[i]

		// Conflict pairs sharing a shift.
		for a := 0; a < len(shift.AssignedStaff); a++ {
			for b := a + 1; b < len(shift.AssignedStaff); b++ {
				if e.Conflicts.Conflicts(shift.AssignedStaff[a], shift.AssignedStaff[b]) {
					violations = append(violations, models.Violation{
						Kind:     "conflict_pair",
						StaffID:  shift.AssignedStaff[a],
						ShiftIDs: []string{shift.ID},
						Detail: fmt.Sprintf("%s and %s share shift %s",
							e.memberName(shift.AssignedStaff[a]),
							e.memberName(shift.AssignedStaff[b]), shift.Name),
					})
				}
			}
		}

		// Assignees outside their availability. Stale IDs are the caller's
		// cascade problem; they just read as not in the roster.
		for _, id := range shift.AssignedStaff {
			member, ok := e.Roster[id]
			if !ok {
				continue
			}
			if !member.Availability.IsAvailable(shift.Day, shift.Window) {
				violations = append(violations, models.Violation{
					Kind:     "unavailable",
					StaffID:  id,
					ShiftIDs: []string{shift.ID},
					Detail: fmt.Sprintf("%s is not available for shift %s (%s)",
						member.Name, shift.Name, shift.Window),
				})
			}
		}
	}

	// Over-cap staff.
	for _, id := range e.ids {
		member := e.Roster[id]
		count := 0
		var held []string
		for i := range shifts {
			if containsID(shifts[i].AssignedStaff, id) {
				count++
				held = append(held, shifts[i].ID)
			}
		}
		if count > member.WeeklyCap {
			violations = append(violations, models.Violation{
				Kind:     "over_cap",
				StaffID:  id,
				ShiftIDs: held,
				Detail: fmt.Sprintf("%s holds %d shifts, cap is %d",
					member.Name, count, member.WeeklyCap),
			})
		}
	}

	return violations
}

// Distribution counts assigned shifts per roster member.
func (e *Engine) Distribution(shifts []models.Shift) map[string]models.StaffLoad {
	dist := make(map[string]models.StaffLoad, len(e.Roster))
	for _, id := range e.ids {
		member := e.Roster[id]
		count := 0
		for i := range shifts {
			if containsID(shifts[i].AssignedStaff, id) {
				count++
			}
		}
		dist[id] = models.StaffLoad{Name: member.Name, Assigned: count, Cap: member.WeeklyCap}
	}
	return dist
}

// FairnessScore returns a percentage (0-100) of how evenly shifts are spread
// across the roster. 100 means every member holds the same count (standard
// deviation 0); 0 means the deviation is at least the mean.
func (e *Engine) FairnessScore(shifts []models.Shift) float64 {
	if len(e.Roster) == 0 {
		return 100.0
	}

	var sum float64
	counts := make([]float64, 0, len(e.Roster))
	for _, load := range e.Distribution(shifts) {
		counts = append(counts, float64(load.Assigned))
		sum += float64(load.Assigned)
	}

	if sum == 0 {
		return 100.0 // nobody works, which is perfectly even
	}

	mean := sum / float64(len(counts))
	var varianceSum float64
	for _, c := range counts {
		diff := c - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(counts)))

	score := (1.0 - stdDev/mean) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}
