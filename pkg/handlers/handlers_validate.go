package handlers

import (
	"net/http"

	"github.com/Copycatmax/autoScheduler/pkg/models"
	"github.com/gin-gonic/gin"
)

// ValidateInput handles the JSON-based validation request
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Staff) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one staff member is required",
		})
		return
	}

	if len(input.Shifts) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one shift is required",
		})
		return
	}

	staffIDs := make(map[string]bool)
	for i := range input.Staff {
		if err := input.Staff[i].Validate(); err != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
			return
		}
		if staffIDs[input.Staff[i].ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate staff ID: " + input.Staff[i].ID})
			return
		}
		staffIDs[input.Staff[i].ID] = true
	}

	shiftIDs := make(map[string]bool)
	for i := range input.Shifts {
		if err := input.Shifts[i].Validate(); err != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
			return
		}
		if shiftIDs[input.Shifts[i].ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate shift ID: " + input.Shifts[i].ID})
			return
		}
		shiftIDs[input.Shifts[i].ID] = true
	}

	for _, pair := range input.ConflictPairs {
		if pair.StaffA == pair.StaffB {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Self conflict pair: " + pair.StaffA})
			return
		}
		if !staffIDs[pair.StaffA] || !staffIDs[pair.StaffB] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Conflict pair references unknown staff"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"staff_count": len(input.Staff),
			"shift_count": len(input.Shifts),
		},
	})
}

// CheckAssignments audits the assignments in the request body and reports
// every double booking, conflict co-assignment, cap breach, and availability
// breach. An empty violation list means the schedule is clean.
func (h *Handler) CheckAssignments(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine, err := buildEngine(input.Staff, input.ConflictPairs, input.Seed)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	violations := engine.CheckAssignments(input.Shifts)
	c.JSON(http.StatusOK, gin.H{
		"clean":      len(violations) == 0,
		"violations": violations,
	})
}
