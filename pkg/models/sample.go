package models

func window(startHour, startMin, endHour, endMin int) TimeWindow {
	return TimeWindow{
		StartMinute: startHour*60 + startMin,
		EndMinute:   endHour*60 + endMin,
	}
}

// SampleStaff returns a demo roster with varied availability.
func SampleStaff() []StaffMember {
	return []StaffMember{
		{
			ID: "alice", Name: "Alice", WeeklyCap: 4, Color: "#FF6B6B",
			Availability: Availability{
				0: {}, // Monday off
				1: {window(9, 0, 17, 0)},
				2: {window(9, 0, 17, 0)},
				3: {window(9, 0, 17, 0)},
				4: {window(9, 0, 17, 0)},
				5: {window(10, 0, 14, 0)},
				6: {},
			},
		},
		{
			ID: "bob", Name: "Bob", WeeklyCap: 5, Color: "#4ECDC4",
			Availability: Availability{
				0: {window(8, 0, 20, 0)},
				1: {window(8, 0, 20, 0)},
				2: {window(8, 0, 20, 0)},
				3: {window(8, 0, 20, 0)},
				4: {window(8, 0, 20, 0)},
				5: {},
				6: {},
			},
		},
		{
			ID: "charlie", Name: "Charlie", WeeklyCap: 3, Color: "#45B7D1",
			Availability: Availability{
				0: {window(6, 0, 14, 0)},
				1: {window(6, 0, 14, 0)},
				2: {window(6, 0, 14, 0)},
				3: {window(6, 0, 14, 0)},
				4: {}, // Friday off
				5: {window(8, 0, 16, 0)},
				6: {window(8, 0, 16, 0)},
			},
		},
		{
			ID: "diana", Name: "Diana", WeeklyCap: 4, Color: "#96CEB4",
			Availability: DefaultAvailability(),
		},
		{
			ID: "eve", Name: "Eve", WeeklyCap: 5, Color: "#FFEAA7",
			Availability: Availability{
				0: {window(12, 0, 22, 0)},
				1: {window(12, 0, 22, 0)},
				2: {window(12, 0, 22, 0)},
				3: {window(12, 0, 22, 0)},
				4: {window(12, 0, 22, 0)},
				5: {window(10, 0, 22, 0)},
				6: {window(10, 0, 22, 0)},
			},
		},
	}
}

// SampleShifts returns a demo week of fixed and flexible shifts.
func SampleShifts() []Shift {
	return []Shift{
		{ID: "shift_1", Name: "Morning Reception", Kind: ShiftFixed, Day: 0,
			Window: window(9, 0, 12, 30), RequiredStaff: 2},
		{ID: "shift_2", Name: "Afternoon Support", Kind: ShiftFixed, Day: 0,
			Window: window(13, 0, 17, 0), RequiredStaff: 2},
		{ID: "shift_3", Name: "Team Meeting", Kind: ShiftFlexible, Day: 2,
			Window: window(10, 0, 12, 0), RequiredStaff: 3},
		{ID: "shift_4", Name: "Training Session", Kind: ShiftFlexible, Day: 3,
			Window: window(14, 30, 16, 30), RequiredStaff: 2},
		{ID: "shift_5", Name: "Weekly Review", Kind: ShiftFixed, Day: 4,
			Window: window(15, 0, 17, 0), RequiredStaff: 2},
		{ID: "shift_6", Name: "Evening Shift", Kind: ShiftFixed, Day: 1,
			Window: window(18, 0, 22, 0), RequiredStaff: 2},
	}
}

// SampleConflicts returns the demo conflict pairs.
func SampleConflicts() []ConflictPair {
	return []ConflictPair{{StaffA: "alice", StaffB: "bob"}}
}
