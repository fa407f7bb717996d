package scheduler

import "github.com/Copycatmax/autoScheduler/pkg/models"

// slotStep is the granularity of the placement search: candidate starts on
// the hour and half hour.
const slotStep = 30

// FindBestSlot searches every (day, start) combination for the placement of a
// flexible shift that the most eligible staff could cover. The shift's
// duration is preserved; candidates running past midnight are skipped, as is
// any slot colliding with another shift on that day. A slot only qualifies if
// at least RequiredStaff under-cap staff are available for it; among
// qualifying slots the highest count wins, first found (day-major, then
// time-minor) on ties. Returns ok=false when no slot qualifies, in which case
// the shift keeps its current placement.
func (e *Engine) FindBestSlot(shift models.Shift, worked map[string]int, all []models.Shift) (int, models.TimeWindow, bool) {
	duration := shift.Window.Duration()
	bestScore := -1
	var bestDay int
	var bestWindow models.TimeWindow
	found := false

	for day := 0; day < 7; day++ {
		for start := 0; start+duration <= models.MinutesPerDay; start += slotStep {
			window := models.TimeWindow{StartMinute: start, EndMinute: start + duration}

			trial := shift
			trial.Day = day
			trial.Window = window
			if e.slotCollides(trial, all) {
				continue
			}

			score := 0
			for id, member := range e.Roster {
				if worked[id] >= member.WeeklyCap {
					continue
				}
				if member.Availability.IsAvailable(day, window) {
					score++
				}
			}

			if score >= shift.RequiredStaff && score > bestScore {
				bestScore = score
				bestDay = day
				bestWindow = window
				found = true
			}
		}
	}

	return bestDay, bestWindow, found
}

// slotCollides reports whether the trial placement overlaps any other shift
// on that day, regardless of staffing. Flexible shifts are never relocated
// onto a collision.
func (e *Engine) slotCollides(trial models.Shift, all []models.Shift) bool {
	for i := range all {
		if all[i].ID == trial.ID {
			continue
		}
		if trial.OverlapsWith(all[i]) {
			return true
		}
	}
	return false
}
