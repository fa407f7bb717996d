package scheduler

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/Copycatmax/autoScheduler/pkg/models"
)

// Engine assigns staff to shifts while balancing workload. One Schedule call
// processes one snapshot to completion; the engine keeps no state between
// runs and is not safe for concurrent use against the same data.
type Engine struct {
	Roster    map[string]*models.StaffMember
	Conflicts *ConflictSet

	rng *rand.Rand
	ids []string // roster IDs in sorted order, for deterministic iteration
}

// New builds an engine for the given roster and conflict pairs. A nil rng
// means a time-seeded source; tests inject a fixed seed to pin the tie-break
// jitter.
func New(roster map[string]*models.StaffMember, pairs []models.ConflictPair, rng *rand.Rand) (*Engine, error) {
	for _, m := range roster {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	conflicts, err := NewConflictSet(pairs, roster)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	ids := make([]string, 0, len(roster))
	for id := range roster {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return &Engine{
		Roster:    roster,
		Conflicts: conflicts,
		rng:       rng,
		ids:       ids,
	}, nil
}

// Schedule assigns staff to the given shifts and returns the new shift list.
// Fixed shifts are staffed first, then each flexible shift is moved to its
// best slot and staffed. The input slice is never mutated; callers can diff
// before and after. Understaffed shifts are a normal outcome, not an error —
// errors are reserved for invalid shifts caught on ingestion.
func (e *Engine) Schedule(shifts []models.Shift) ([]models.Shift, error) {
	scheduled := make([]models.Shift, len(shifts))
	for i := range shifts {
		if err := shifts[i].Validate(); err != nil {
			return nil, err
		}
		scheduled[i] = shifts[i].Clone()
	}

	// Pre-existing assignments count toward the weekly cap before any
	// validation happens.
	worked := make(map[string]int, len(e.Roster))
	for id := range e.Roster {
		worked[id] = 0
	}
	for i := range scheduled {
		for _, id := range scheduled[i].AssignedStaff {
			if _, ok := worked[id]; ok {
				worked[id]++
			}
		}
	}

	var fixed, flexible []int
	for i := range scheduled {
		if scheduled[i].Kind == models.ShiftFixed {
			fixed = append(fixed, i)
		} else {
			flexible = append(flexible, i)
		}
	}

	// Fixed shifts cannot move, so they claim staff and define the overlap
	// landscape before flexible shifts try to fit around them.
	for _, i := range fixed {
		e.assignBalanced(&scheduled[i], worked, scheduled)
	}

	for _, i := range flexible {
		if day, window, ok := e.FindBestSlot(scheduled[i], worked, scheduled); ok {
			scheduled[i].Day = day
			scheduled[i].Window = window
		}
		// No slot found: the shift stays where it is and staffing proceeds
		// there anyway.
		e.assignBalanced(&scheduled[i], worked, scheduled)
	}

	return scheduled, nil
}

// hasOverlappingAssignment reports whether the staff member already holds
// another shift overlapping this one. This is the authoritative
// no-double-booking check, used both for revalidating existing assignees and
// for vetting new candidates.
func (e *Engine) hasOverlappingAssignment(staffID string, shift *models.Shift, all []models.Shift) bool {
	for i := range all {
		if all[i].ID == shift.ID {
			continue
		}
		if !shift.OverlapsWith(all[i]) {
			continue
		}
		for _, id := range all[i].AssignedStaff {
			if id == staffID {
				return true
			}
		}
	}
	return false
}

// assignBalanced staffs a single shift: it first revalidates whoever is
// already on it, then fills the remaining spots from a candidate pool ranked
// by balance score.
func (e *Engine) assignBalanced(shift *models.Shift, worked map[string]int, all []models.Shift) {
	// Revalidate existing assignees in list order; the first listed wins when
	// a later entry would conflict with it. An assignee's own shift is
	// already counted in worked, so being exactly at cap keeps them on —
	// re-running a valid schedule must not shake anyone loose.
	valid := make([]string, 0, len(shift.AssignedStaff))
	for _, id := range shift.AssignedStaff {
		member, ok := e.Roster[id]
		if !ok {
			continue
		}
		if worked[id] > member.WeeklyCap {
			continue
		}
		if !member.Availability.IsAvailable(shift.Day, shift.Window) {
			continue
		}
		if e.hasOverlappingAssignment(id, shift, all) {
			continue
		}
		if e.Conflicts.HasConflict(valid, id) {
			continue
		}
		valid = append(valid, id)
		if len(valid) >= shift.RequiredStaff {
			break
		}
	}
	shift.AssignedStaff = valid

	needed := shift.RequiredStaff - len(shift.AssignedStaff)
	if needed <= 0 {
		return
	}

	target := e.targetPerStaff(all)

	type candidate struct {
		id    string
		score float64
	}
	var pool []candidate
	for _, id := range e.ids {
		if containsID(shift.AssignedStaff, id) {
			continue
		}
		member := e.Roster[id]
		if worked[id] >= member.WeeklyCap {
			continue
		}
		if !member.Availability.IsAvailable(shift.Day, shift.Window) {
			continue
		}
		if e.hasOverlappingAssignment(id, shift, all) {
			continue
		}
		pool = append(pool, candidate{id: id, score: e.balanceScore(member, worked[id], target)})
	}

	// Highest score first: furthest below the fair share, then most headroom.
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].score > pool[j].score
	})

	for _, c := range pool {
		if len(shift.AssignedStaff) >= shift.RequiredStaff {
			break
		}
		if e.Conflicts.HasConflict(shift.AssignedStaff, c.id) {
			continue
		}
		shift.AssignedStaff = append(shift.AssignedStaff, c.id)
		worked[c.id]++
	}
}

// balanceScore ranks a candidate for equitable distribution. The random term
// only breaks exact ties.
func (e *Engine) balanceScore(member *models.StaffMember, worked int, target float64) float64 {
	belowTarget := target - float64(worked)
	headroom := float64(member.WeeklyCap - worked)
	return belowTarget*10 + headroom + e.rng.Float64()*0.1
}

// targetPerStaff is the fair share of required slots per roster member for
// this run.
func (e *Engine) targetPerStaff(all []models.Shift) float64 {
	total := 0
	for i := range all {
		total += all[i].RequiredStaff
	}
	size := len(e.Roster)
	if size == 0 {
		size = 1
	}
	return float64(total) / float64(size)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// memberName resolves a roster ID for reporting; stale IDs fall back to the
// ID itself.
func (e *Engine) memberName(id string) string {
	if m, ok := e.Roster[id]; ok {
		return m.Name
	}
	return fmt.Sprintf("unknown(%s)", id)
}
