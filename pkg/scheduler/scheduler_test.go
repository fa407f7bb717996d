package scheduler

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/Copycatmax/autoScheduler/pkg/models"
)

func window(startHour, endHour int) models.TimeWindow {
	return models.TimeWindow{StartMinute: startHour * 60, EndMinute: endHour * 60}
}

func weekdayAvailability(days []int, w models.TimeWindow) models.Availability {
	a := make(models.Availability)
	for _, d := range days {
		a[d] = []models.TimeWindow{w}
	}
	return a
}

func testEngine(t *testing.T, staff []*models.StaffMember, pairs []models.ConflictPair) *Engine {
	t.Helper()
	roster := make(map[string]*models.StaffMember, len(staff))
	for _, m := range staff {
		if m.Availability == nil {
			m.Availability = models.DefaultAvailability()
		}
		roster[m.ID] = m
	}
	engine, err := New(roster, pairs, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return engine
}

func TestScheduleFixedShiftFullStaffing(t *testing.T) {
	monday := weekdayAvailability([]int{0}, window(9, 17))
	engine := testEngine(t, []*models.StaffMember{
		{ID: "a", Name: "A", WeeklyCap: 2, Availability: monday},
		{ID: "b", Name: "B", WeeklyCap: 2, Availability: monday},
	}, nil)

	shifts := []models.Shift{{
		ID: "s1", Name: "Morning", Kind: models.ShiftFixed,
		Day: 0, Window: window(9, 12), RequiredStaff: 2,
	}}

	scheduled, err := engine.Schedule(shifts)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(scheduled[0].AssignedStaff) != 2 {
		t.Errorf("Expected both staff assigned, got %v", scheduled[0].AssignedStaff)
	}
}

func TestScheduleConflictPairLeavesShiftUnderstaffed(t *testing.T) {
	monday := weekdayAvailability([]int{0}, window(9, 17))
	engine := testEngine(t, []*models.StaffMember{
		{ID: "a", Name: "A", WeeklyCap: 2, Availability: monday},
		{ID: "b", Name: "B", WeeklyCap: 2, Availability: monday},
	}, []models.ConflictPair{{StaffA: "a", StaffB: "b"}})

	shifts := []models.Shift{{
		ID: "s1", Name: "Morning", Kind: models.ShiftFixed,
		Day: 0, Window: window(9, 12), RequiredStaff: 2,
	}}

	scheduled, err := engine.Schedule(shifts)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(scheduled[0].AssignedStaff) > 1 {
		t.Errorf("Conflicting staff share a shift: %v", scheduled[0].AssignedStaff)
	}
}

func TestScheduleRelocatesFlexibleShift(t *testing.T) {
	engine := testEngine(t, []*models.StaffMember{
		{ID: "c", Name: "C", WeeklyCap: 2,
			Availability: weekdayAvailability([]int{1}, window(14, 16))},
	}, nil)

	// Starts on Monday morning where C can never work.
	shifts := []models.Shift{{
		ID: "flex", Name: "Stock Take", Kind: models.ShiftFlexible,
		Day: 0, Window: window(9, 11), RequiredStaff: 1,
	}}

	scheduled, err := engine.Schedule(shifts)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	got := scheduled[0]
	if got.Day != 1 {
		t.Errorf("Expected relocation to Tuesday, got day %d", got.Day)
	}
	if !window(14, 16).Contains(got.Window) {
		t.Errorf("Expected a window inside 14:00-16:00, got %s", got.Window)
	}
	if got.Window.Duration() != 120 {
		t.Errorf("Relocation changed the duration: %s", got.Window)
	}
	if !reflect.DeepEqual(got.AssignedStaff, []string{"c"}) {
		t.Errorf("Expected C assigned, got %v", got.AssignedStaff)
	}
}

func TestScheduleDoesNotMutateInput(t *testing.T) {
	engine := testEngine(t, []*models.StaffMember{
		{ID: "a", Name: "A", WeeklyCap: 2},
	}, nil)

	shifts := []models.Shift{{
		ID: "s1", Name: "Shift", Kind: models.ShiftFixed,
		Day: 0, Window: window(9, 12), RequiredStaff: 1,
	}}

	if _, err := engine.Schedule(shifts); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(shifts[0].AssignedStaff) != 0 {
		t.Errorf("Input shift was mutated: %v", shifts[0].AssignedStaff)
	}
}

func TestScheduleNoDoubleBooking(t *testing.T) {
	allDay := models.DefaultAvailability()
	engine := testEngine(t, []*models.StaffMember{
		{ID: "a", Name: "A", WeeklyCap: 5, Availability: allDay},
	}, nil)

	// Two overlapping Monday shifts; A can only take one of them.
	shifts := []models.Shift{
		{ID: "s1", Name: "First", Kind: models.ShiftFixed,
			Day: 0, Window: window(9, 13), RequiredStaff: 1},
		{ID: "s2", Name: "Second", Kind: models.ShiftFixed,
			Day: 0, Window: window(12, 16), RequiredStaff: 1},
	}

	scheduled, err := engine.Schedule(shifts)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	assigned := 0
	for i := range scheduled {
		assigned += len(scheduled[i].AssignedStaff)
	}
	if assigned != 1 {
		t.Errorf("Expected exactly 1 assignment across overlapping shifts, got %d", assigned)
	}
}

func TestScheduleRespectsWeeklyCap(t *testing.T) {
	engine := testEngine(t, []*models.StaffMember{
		{ID: "a", Name: "A", WeeklyCap: 2},
	}, nil)

	var shifts []models.Shift
	for _, s := range []struct {
		id  string
		day int
	}{{"s1", 0}, {"s2", 1}, {"s3", 2}, {"s4", 3}} {
		shifts = append(shifts, models.Shift{
			ID: s.id, Name: s.id, Kind: models.ShiftFixed,
			Day: s.day, Window: window(9, 12), RequiredStaff: 1,
		})
	}

	scheduled, err := engine.Schedule(shifts)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	count := 0
	for i := range scheduled {
		if len(scheduled[i].AssignedStaff) > 0 {
			count++
		}
	}
	if count != 2 {
		t.Errorf("Expected cap of 2 to limit assignments, got %d", count)
	}
}

func TestScheduleLoadBalancing(t *testing.T) {
	engine := testEngine(t, []*models.StaffMember{
		{ID: "a", Name: "A", WeeklyCap: 6},
		{ID: "b", Name: "B", WeeklyCap: 6},
	}, nil)

	var shifts []models.Shift
	for day := 0; day < 6; day++ {
		shifts = append(shifts, models.Shift{
			ID: string(rune('a' + day)), Name: "Shift", Kind: models.ShiftFixed,
			Day: day, Window: window(9, 12), RequiredStaff: 1,
		})
	}

	scheduled, err := engine.Schedule(shifts)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	dist := engine.Distribution(scheduled)
	if dist["a"].Assigned != 3 || dist["b"].Assigned != 3 {
		t.Errorf("Expected an even 3/3 split, got a=%d b=%d",
			dist["a"].Assigned, dist["b"].Assigned)
	}
}

func TestScheduleKeepsValidExistingAssignments(t *testing.T) {
	monday := weekdayAvailability([]int{0}, window(9, 17))
	engine := testEngine(t, []*models.StaffMember{
		{ID: "a", Name: "A", WeeklyCap: 2, Availability: monday},
		{ID: "b", Name: "B", WeeklyCap: 2, Availability: monday},
	}, nil)

	shifts := []models.Shift{{
		ID: "s1", Name: "Morning", Kind: models.ShiftFixed,
		Day: 0, Window: window(9, 12), RequiredStaff: 1,
		AssignedStaff: []string{"b"},
	}}

	scheduled, err := engine.Schedule(shifts)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if !reflect.DeepEqual(scheduled[0].AssignedStaff, []string{"b"}) {
		t.Errorf("Valid existing assignee was not kept: %v", scheduled[0].AssignedStaff)
	}
}

func TestScheduleDropsStaleAndConflictingAssignees(t *testing.T) {
	monday := weekdayAvailability([]int{0}, window(9, 17))
	engine := testEngine(t, []*models.StaffMember{
		{ID: "a", Name: "A", WeeklyCap: 2, Availability: monday},
		{ID: "b", Name: "B", WeeklyCap: 2, Availability: monday},
	}, []models.ConflictPair{{StaffA: "a", StaffB: "b"}})

	// "ghost" left the roster; a and b conflict, so the first listed wins.
	shifts := []models.Shift{{
		ID: "s1", Name: "Morning", Kind: models.ShiftFixed,
		Day: 0, Window: window(9, 12), RequiredStaff: 3,
		AssignedStaff: []string{"ghost", "a", "b"},
	}}

	scheduled, err := engine.Schedule(shifts)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if !reflect.DeepEqual(scheduled[0].AssignedStaff, []string{"a"}) {
		t.Errorf("Expected only first-listed of the conflicting pair, got %v",
			scheduled[0].AssignedStaff)
	}
}

func TestScheduleIdempotentOnValidSchedule(t *testing.T) {
	monday := weekdayAvailability([]int{0}, window(9, 17))
	engine := testEngine(t, []*models.StaffMember{
		{ID: "a", Name: "A", WeeklyCap: 1, Availability: monday},
		{ID: "b", Name: "B", WeeklyCap: 1, Availability: monday},
	}, nil)

	shifts := []models.Shift{{
		ID: "s1", Name: "Morning", Kind: models.ShiftFixed,
		Day: 0, Window: window(9, 12), RequiredStaff: 2,
	}}

	first, err := engine.Schedule(shifts)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	// Members are now exactly at cap; a second pass must not shake them off.
	second, err := engine.Schedule(first)
	if err != nil {
		t.Fatalf("Schedule (rerun): %v", err)
	}
	if !reflect.DeepEqual(first[0].AssignedStaff, second[0].AssignedStaff) {
		t.Errorf("Rerun reshuffled a valid schedule: %v then %v",
			first[0].AssignedStaff, second[0].AssignedStaff)
	}
}

func TestScheduleDeterministicWithFixedSeed(t *testing.T) {
	staff := func() []*models.StaffMember {
		return []*models.StaffMember{
			{ID: "a", Name: "A", WeeklyCap: 3},
			{ID: "b", Name: "B", WeeklyCap: 3},
			{ID: "c", Name: "C", WeeklyCap: 3},
		}
	}
	shifts := []models.Shift{
		{ID: "s1", Name: "One", Kind: models.ShiftFixed,
			Day: 0, Window: window(9, 12), RequiredStaff: 2},
		{ID: "s2", Name: "Two", Kind: models.ShiftFlexible,
			Day: 3, Window: window(13, 15), RequiredStaff: 1},
	}

	run := func() []models.Shift {
		engine := testEngine(t, staff(), nil)
		out, err := engine.Schedule(shifts)
		if err != nil {
			t.Fatalf("Schedule: %v", err)
		}
		return out
	}

	if !reflect.DeepEqual(run(), run()) {
		t.Error("Two runs with the same seed diverged")
	}
}

func TestScheduleFixedShiftsClaimStaffFirst(t *testing.T) {
	monday := weekdayAvailability([]int{0}, window(9, 17))
	engine := testEngine(t, []*models.StaffMember{
		{ID: "a", Name: "A", WeeklyCap: 1, Availability: monday},
	}, nil)

	// Flexible listed first, but the fixed shift must claim A before the
	// flexible one searches for a slot.
	shifts := []models.Shift{
		{ID: "flex", Name: "Flex", Kind: models.ShiftFlexible,
			Day: 0, Window: window(13, 15), RequiredStaff: 1},
		{ID: "fixed", Name: "Fixed", Kind: models.ShiftFixed,
			Day: 0, Window: window(9, 12), RequiredStaff: 1},
	}

	scheduled, err := engine.Schedule(shifts)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	for i := range scheduled {
		if scheduled[i].ID == "fixed" && len(scheduled[i].AssignedStaff) != 1 {
			t.Errorf("Fixed shift lost out to a flexible one: %v", scheduled[i].AssignedStaff)
		}
		if scheduled[i].ID == "flex" && len(scheduled[i].AssignedStaff) != 0 {
			t.Errorf("Flexible shift staffed past A's cap: %v", scheduled[i].AssignedStaff)
		}
	}
}

func TestScheduleRejectsInvalidShift(t *testing.T) {
	engine := testEngine(t, []*models.StaffMember{
		{ID: "a", Name: "A", WeeklyCap: 2},
	}, nil)

	cases := []models.Shift{
		{ID: "s1", Name: "Backwards", Kind: models.ShiftFixed,
			Day: 0, Window: models.TimeWindow{StartMinute: 720, EndMinute: 600}, RequiredStaff: 1},
		{ID: "s2", Name: "Zero staff", Kind: models.ShiftFixed,
			Day: 0, Window: window(9, 12), RequiredStaff: 0},
		{ID: "s3", Name: "Bad day", Kind: models.ShiftFixed,
			Day: 7, Window: window(9, 12), RequiredStaff: 1},
	}
	for _, shift := range cases {
		if _, err := engine.Schedule([]models.Shift{shift}); err == nil {
			t.Errorf("Expected ingestion error for shift %s", shift.Name)
		}
	}
}

func TestNewRejectsBadConflictPairs(t *testing.T) {
	roster := map[string]*models.StaffMember{
		"a": {ID: "a", Name: "A", WeeklyCap: 2, Availability: models.DefaultAvailability()},
	}

	if _, err := New(roster, []models.ConflictPair{{StaffA: "a", StaffB: "nobody"}}, nil); err == nil {
		t.Error("Expected error for conflict pair with unknown staff")
	}
	if _, err := New(roster, []models.ConflictPair{{StaffA: "a", StaffB: "a"}}, nil); err == nil {
		t.Error("Expected error for self conflict pair")
	}
}
