package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"github.com/Copycatmax/autoScheduler/pkg/database"
	"github.com/Copycatmax/autoScheduler/pkg/models"
	"github.com/Copycatmax/autoScheduler/pkg/scheduler"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// loadStore reads the persisted roster, conflict pairs, and shifts.
func (h *Handler) loadStore() ([]models.StaffMember, []models.ConflictPair, []models.Shift, error) {
	var staffRecords []database.StaffRecord
	if err := h.DB.Order("name").Find(&staffRecords).Error; err != nil {
		return nil, nil, nil, err
	}
	staff := make([]models.StaffMember, 0, len(staffRecords))
	for i := range staffRecords {
		m, err := staffRecords[i].ToModel()
		if err != nil {
			return nil, nil, nil, err
		}
		staff = append(staff, m)
	}

	var pairRecords []database.ConflictPairRecord
	if err := h.DB.Find(&pairRecords).Error; err != nil {
		return nil, nil, nil, err
	}
	pairs := make([]models.ConflictPair, 0, len(pairRecords))
	for i := range pairRecords {
		pairs = append(pairs, pairRecords[i].ToModel())
	}

	var shiftRecords []database.ShiftRecord
	if err := h.DB.Order("day, start_minute").Find(&shiftRecords).Error; err != nil {
		return nil, nil, nil, err
	}
	shifts := make([]models.Shift, 0, len(shiftRecords))
	for i := range shiftRecords {
		s, err := shiftRecords[i].ToModel()
		if err != nil {
			return nil, nil, nil, err
		}
		shifts = append(shifts, s)
	}

	return staff, pairs, shifts, nil
}

// ListStaff returns the stored roster
func (h *Handler) ListStaff(c *gin.Context) {
	staff, _, _, err := h.loadStore()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

// CreateStaff adds a roster member. A missing id is generated; a missing
// availability means available all week, like the original app's new users.
func (h *Handler) CreateStaff(c *gin.Context) {
	var member models.StaffMember
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if member.Availability == nil {
		member.Availability = models.DefaultAvailability()
	}
	if err := member.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := database.NewStaffRecord(member)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create staff member"})
		return
	}
	c.JSON(http.StatusCreated, member)
}

// UpdateStaff rewrites a roster member's mutable fields. The id is stable:
// renaming never changes it.
func (h *Handler) UpdateStaff(c *gin.Context) {
	id := c.Param("id")

	var existing database.StaffRecord
	if err := h.DB.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}

	var member models.StaffMember
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	member.ID = id
	if member.Availability == nil {
		member.Availability = models.DefaultAvailability()
	}
	if err := member.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := database.NewStaffRecord(member)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update staff member"})
		return
	}
	c.JSON(http.StatusOK, member)
}

// DeleteStaff removes a roster member and cascades: the id disappears from
// every shift's assigned list and from every conflict pair referencing it.
func (h *Handler) DeleteStaff(c *gin.Context) {
	id := c.Param("id")

	if err := h.DB.Delete(&database.StaffRecord{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete staff member"})
		return
	}
	h.DB.Delete(&database.ConflictPairRecord{}, "staff_a = ? OR staff_b = ?", id, id)

	var shiftRecords []database.ShiftRecord
	h.DB.Find(&shiftRecords)
	for i := range shiftRecords {
		shift, err := shiftRecords[i].ToModel()
		if err != nil {
			continue
		}
		kept := shift.AssignedStaff[:0]
		for _, assigned := range shift.AssignedStaff {
			if assigned != id {
				kept = append(kept, assigned)
			}
		}
		if len(kept) != len(shift.AssignedStaff) {
			shift.AssignedStaff = kept
			record, err := database.NewShiftRecord(shift)
			if err == nil {
				h.DB.Save(&record)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted"})
}

// ListShifts returns the stored shifts
func (h *Handler) ListShifts(c *gin.Context) {
	_, _, shifts, err := h.loadStore()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": shifts})
}

// CreateShift adds a shift to the store
func (h *Handler) CreateShift(c *gin.Context) {
	var shift models.Shift
	if err := c.ShouldBindJSON(&shift); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	if shift.Kind == "" {
		shift.Kind = models.ShiftFixed
	}
	if err := shift.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := database.NewShiftRecord(shift)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create shift"})
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// UpdateShift rewrites a stored shift
func (h *Handler) UpdateShift(c *gin.Context) {
	id := c.Param("id")

	var existing database.ShiftRecord
	if err := h.DB.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	var shift models.Shift
	if err := c.ShouldBindJSON(&shift); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	shift.ID = id
	if err := shift.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := database.NewShiftRecord(shift)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update shift"})
		return
	}
	c.JSON(http.StatusOK, shift)
}

// DeleteShift removes a stored shift
func (h *Handler) DeleteShift(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Delete(&database.ShiftRecord{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete shift"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted"})
}

// ListConflicts returns the stored conflict pairs
func (h *Handler) ListConflicts(c *gin.Context) {
	var records []database.ConflictPairRecord
	if err := h.DB.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conflicts": records})
}

// CreateConflict registers a conflict pair. Duplicates in either order are
// idempotent; self-pairs and unknown staff are rejected.
func (h *Handler) CreateConflict(c *gin.Context) {
	var pair models.ConflictPair
	if err := c.ShouldBindJSON(&pair); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if pair.StaffA == pair.StaffB {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a staff member cannot conflict with themselves"})
		return
	}
	for _, id := range []string{pair.StaffA, pair.StaffB} {
		var count int64
		h.DB.Model(&database.StaffRecord{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown staff id %s", id)})
			return
		}
	}

	var count int64
	h.DB.Model(&database.ConflictPairRecord{}).
		Where("(staff_a = ? AND staff_b = ?) OR (staff_a = ? AND staff_b = ?)",
			pair.StaffA, pair.StaffB, pair.StaffB, pair.StaffA).
		Count(&count)
	if count == 0 {
		record := database.ConflictPairRecord{StaffA: pair.StaffA, StaffB: pair.StaffB}
		if err := h.DB.Create(&record).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create conflict pair"})
			return
		}
	}
	c.JSON(http.StatusCreated, pair)
}

// DeleteConflict removes a conflict pair by record id
func (h *Handler) DeleteConflict(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Delete(&database.ConflictPairRecord{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete conflict pair"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conflict pair deleted"})
}

// storeEngine builds an engine over the persisted roster.
func (h *Handler) storeEngine(seed *int64) (*scheduler.Engine, []models.Shift, error) {
	staff, pairs, shifts, err := h.loadStore()
	if err != nil {
		return nil, nil, err
	}
	engine, err := buildEngine(staff, pairs, seed)
	if err != nil {
		return nil, nil, err
	}
	return engine, shifts, nil
}

// ScheduleStored runs the engine over the persisted roster and shifts and
// writes the resulting assignments back, the stored-data analogue of the
// original app's auto-schedule action.
func (h *Handler) ScheduleStored(c *gin.Context) {
	var req struct {
		Seed *int64 `json:"seed"`
	}
	_ = c.ShouldBindJSON(&req)

	engine, shifts, err := h.storeEngine(req.Seed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(engine.Roster) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no staff to schedule"})
		return
	}
	if len(shifts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no shifts to schedule"})
		return
	}

	scheduled, err := engine.Schedule(shifts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for i := range scheduled {
		record, err := database.NewShiftRecord(scheduled[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := h.DB.Save(&record).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not persist schedule"})
			return
		}
	}

	h.RecordUsage(c, len(scheduled), len(engine.Roster))
	c.JSON(http.StatusOK, buildScheduleResponse(engine, scheduled))
}

// SetAssignments manually rewrites a stored shift's assigned list. Unknown
// ids are rejected; constraint violations (availability, conflicts, double
// bookings) are allowed but reported back as warnings.
func (h *Handler) SetAssignments(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		AssignedStaff []string `json:"assigned_staff"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var record database.ShiftRecord
	if err := h.DB.First(&record, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	seen := make(map[string]bool, len(req.AssignedStaff))
	for _, staffID := range req.AssignedStaff {
		if seen[staffID] {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("duplicate staff id %s", staffID)})
			return
		}
		seen[staffID] = true
		var count int64
		h.DB.Model(&database.StaffRecord{}).Where("id = ?", staffID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown staff id %s", staffID)})
			return
		}
	}

	shift, err := record.ToModel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	shift.AssignedStaff = req.AssignedStaff

	updated, err := database.NewShiftRecord(shift)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.Save(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save assignments"})
		return
	}

	engine, shifts, err := h.storeEngine(nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"shift":    shift,
		"warnings": engine.CheckAssignments(shifts),
	})
}

// ClearAssignments empties every stored shift's assigned list
func (h *Handler) ClearAssignments(c *gin.Context) {
	if err := h.DB.Model(&database.ShiftRecord{}).
		Where("1 = 1").
		Update("assigned_staff", "[]").Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not clear assignments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All assignments cleared"})
}

// LoadSampleData replaces the store contents with the demo data set
func (h *Handler) LoadSampleData(c *gin.Context) {
	h.DB.Where("1 = 1").Delete(&database.StaffRecord{})
	h.DB.Where("1 = 1").Delete(&database.ShiftRecord{})
	h.DB.Where("1 = 1").Delete(&database.ConflictPairRecord{})

	for _, member := range models.SampleStaff() {
		record, err := database.NewStaffRecord(member)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		h.DB.Create(&record)
	}
	for _, shift := range models.SampleShifts() {
		record, err := database.NewShiftRecord(shift)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		h.DB.Create(&record)
	}
	for _, pair := range models.SampleConflicts() {
		h.DB.Create(&database.ConflictPairRecord{StaffA: pair.StaffA, StaffB: pair.StaffB})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sample data loaded"})
}

// ExportScheduleCSV dumps the stored assignments as CSV
func (h *Handler) ExportScheduleCSV(c *gin.Context) {
	staff, _, shifts, err := h.loadStore()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	names := make(map[string]string, len(staff))
	for i := range staff {
		names[staff[i].ID] = staff[i].Name
	}

	var out strings.Builder
	writer := csv.NewWriter(&out)
	writer.Write([]string{"shift_id", "shift_name", "day", "window", "staff_id", "staff_name"})

	for i := range shifts {
		shift := &shifts[i]
		for _, staffID := range shift.AssignedStaff {
			writer.Write([]string{
				shift.ID,
				shift.Name,
				dayNames[shift.Day],
				shift.Window.String(),
				staffID,
				names[staffID],
			})
		}
	}
	writer.Flush()

	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out.String()))
}
