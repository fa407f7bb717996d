package database

import (
	"encoding/json"
	"fmt"

	"github.com/Copycatmax/autoScheduler/pkg/models"
)

// StaffRecord represents the staff_records table. Availability is stored as
// a JSON column so the window structure can evolve without migrations.
type StaffRecord struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	WeeklyCap    int    `gorm:"default:5" json:"weekly_cap"`
	Color        string `json:"color"`
	Availability string `gorm:"type:json" json:"availability"`
}

// ShiftRecord represents the shift_records table.
type ShiftRecord struct {
	ID            string `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"not null" json:"name"`
	Kind          string `gorm:"default:fixed" json:"kind"`
	Day           int    `json:"day"`
	StartMinute   int    `json:"start_minute"`
	EndMinute     int    `json:"end_minute"`
	RequiredStaff int    `gorm:"default:2" json:"required_staff"`
	AssignedStaff string `gorm:"type:json" json:"assigned_staff"`
}

// ConflictPairRecord represents the conflict_pair_records table.
type ConflictPairRecord struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	StaffA string `gorm:"uniqueIndex:idx_pair;not null" json:"staff_a"`
	StaffB string `gorm:"uniqueIndex:idx_pair;not null" json:"staff_b"`
}

// ToModel converts a stored staff row into the engine's type.
func (r *StaffRecord) ToModel() (models.StaffMember, error) {
	member := models.StaffMember{
		ID:        r.ID,
		Name:      r.Name,
		WeeklyCap: r.WeeklyCap,
		Color:     r.Color,
	}
	if r.Availability == "" {
		member.Availability = models.DefaultAvailability()
		return member, nil
	}
	if err := json.Unmarshal([]byte(r.Availability), &member.Availability); err != nil {
		return models.StaffMember{}, fmt.Errorf("staff %s: bad availability: %w", r.ID, err)
	}
	return member, nil
}

// NewStaffRecord converts an engine staff member into its stored form.
func NewStaffRecord(m models.StaffMember) (StaffRecord, error) {
	avail, err := json.Marshal(m.Availability)
	if err != nil {
		return StaffRecord{}, err
	}
	return StaffRecord{
		ID:           m.ID,
		Name:         m.Name,
		WeeklyCap:    m.WeeklyCap,
		Color:        m.Color,
		Availability: string(avail),
	}, nil
}

// ToModel converts a stored shift row into the engine's type.
func (r *ShiftRecord) ToModel() (models.Shift, error) {
	shift := models.Shift{
		ID:   r.ID,
		Name: r.Name,
		Kind: models.ShiftKind(r.Kind),
		Day:  r.Day,
		Window: models.TimeWindow{
			StartMinute: r.StartMinute,
			EndMinute:   r.EndMinute,
		},
		RequiredStaff: r.RequiredStaff,
	}
	if r.AssignedStaff != "" {
		if err := json.Unmarshal([]byte(r.AssignedStaff), &shift.AssignedStaff); err != nil {
			return models.Shift{}, fmt.Errorf("shift %s: bad assigned list: %w", r.ID, err)
		}
	}
	return shift, nil
}

// NewShiftRecord converts an engine shift into its stored form.
func NewShiftRecord(s models.Shift) (ShiftRecord, error) {
	assigned, err := json.Marshal(s.AssignedStaff)
	if err != nil {
		return ShiftRecord{}, err
	}
	return ShiftRecord{
		ID:            s.ID,
		Name:          s.Name,
		Kind:          string(s.Kind),
		Day:           s.Day,
		StartMinute:   s.Window.StartMinute,
		EndMinute:     s.Window.EndMinute,
		RequiredStaff: s.RequiredStaff,
		AssignedStaff: string(assigned),
	}, nil
}

// ToModel converts a stored conflict pair.
func (r *ConflictPairRecord) ToModel() models.ConflictPair {
	return models.ConflictPair{StaffA: r.StaffA, StaffB: r.StaffB}
}
