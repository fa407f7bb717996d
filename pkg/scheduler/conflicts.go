package scheduler

import (
	"fmt"

	"github.com/Copycatmax/autoScheduler/pkg/models"
)

// ConflictSet is a symmetric relation over staff IDs. Both directions of a
// pair are registered at insertion so lookups only check one.
type ConflictSet struct {
	pairs map[string]map[string]bool
}

// NewConflictSet builds the relation from the given pairs. Self-pairs and
// pairs referencing staff missing from the roster are caller contract
// violations and rejected here, on ingestion.
func NewConflictSet(pairs []models.ConflictPair, roster map[string]*models.StaffMember) (*ConflictSet, error) {
	cs := &ConflictSet{pairs: make(map[string]map[string]bool)}
	for _, p := range pairs {
		if p.StaffA == p.StaffB {
			return nil, fmt.Errorf("conflict pair: %s conflicts with itself", p.StaffA)
		}
		if _, ok := roster[p.StaffA]; !ok {
			return nil, fmt.Errorf("conflict pair: unknown staff id %s", p.StaffA)
		}
		if _, ok := roster[p.StaffB]; !ok {
			return nil, fmt.Errorf("conflict pair: unknown staff id %s", p.StaffB)
		}
		cs.add(p.StaffA, p.StaffB)
		cs.add(p.StaffB, p.StaffA)
	}
	return cs, nil
}

func (cs *ConflictSet) add(a, b string) {
	if cs.pairs[a] == nil {
		cs.pairs[a] = make(map[string]bool)
	}
	cs.pairs[a][b] = true
}

// HasConflict reports whether the candidate is paired with anyone already
// assigned.
func (cs *ConflictSet) HasConflict(assigned []string, candidate string) bool {
	for _, id := range assigned {
		if cs.pairs[id][candidate] {
			return true
		}
	}
	return false
}

// Conflicts reports whether a and b form a registered pair.
func (cs *ConflictSet) Conflicts(a, b string) bool {
	return cs.pairs[a][b]
}
