package scheduler

import (
	"testing"

	"github.com/Copycatmax/autoScheduler/pkg/models"
)

func TestConflictSetIsSymmetric(t *testing.T) {
	roster := map[string]*models.StaffMember{
		"a": {ID: "a", Name: "A", WeeklyCap: 2, Availability: models.DefaultAvailability()},
		"b": {ID: "b", Name: "B", WeeklyCap: 2, Availability: models.DefaultAvailability()},
		"c": {ID: "c", Name: "C", WeeklyCap: 2, Availability: models.DefaultAvailability()},
	}
	cs, err := NewConflictSet([]models.ConflictPair{{StaffA: "a", StaffB: "b"}}, roster)
	if err != nil {
		t.Fatalf("NewConflictSet: %v", err)
	}

	if !cs.HasConflict([]string{"a"}, "b") {
		t.Error("Expected conflict a->b")
	}
	if !cs.HasConflict([]string{"b"}, "a") {
		t.Error("Expected conflict b->a")
	}
	if cs.HasConflict([]string{"c"}, "a") {
		t.Error("Unexpected conflict c->a")
	}
	if cs.HasConflict(nil, "a") {
		t.Error("Empty assignment list cannot conflict")
	}
}

func TestConflictSetDuplicatePairsAreIdempotent(t *testing.T) {
	roster := map[string]*models.StaffMember{
		"a": {ID: "a", Name: "A", WeeklyCap: 2, Availability: models.DefaultAvailability()},
		"b": {ID: "b", Name: "B", WeeklyCap: 2, Availability: models.DefaultAvailability()},
	}
	pairs := []models.ConflictPair{
		{StaffA: "a", StaffB: "b"},
		{StaffA: "b", StaffB: "a"},
		{StaffA: "a", StaffB: "b"},
	}
	cs, err := NewConflictSet(pairs, roster)
	if err != nil {
		t.Fatalf("NewConflictSet: %v", err)
	}
	if !cs.Conflicts("a", "b") || !cs.Conflicts("b", "a") {
		t.Error("Duplicate registration broke the relation")
	}
}
