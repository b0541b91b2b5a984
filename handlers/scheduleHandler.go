package handlers

import (
	"CarePulse/models"
	"CarePulse/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	service *services.ScheduleService
}

func NewScheduleHandler(service *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// GetWeekSchedule returns a doctor's weekly grid. Query params: date
// anchors the week, offset moves whole weeks relative to it.
func (h *ScheduleHandler) GetWeekSchedule(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid week offset"})
			return
		}
		offset = parsed
	}

	schedule, err := h.service.GetWeek(c, doctorID, c.Query("date"), offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, schedule)
}

func (h *ScheduleHandler) BlockSlot(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var slot models.BlockedSlot
	if err := c.ShouldBindJSON(&slot); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if actor.Role == "Doctor" {
		slot.DoctorID = actor.ID
	}

	if err := h.service.BlockSlot(c, &slot); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(201, slot)
}

func (h *ScheduleHandler) UnblockSlot(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("slot_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid slot ID"})
		return
	}

	doctorID := c.Param("doctor_id")
	if actor.Role == "Doctor" {
		doctorID = actor.ID
	}

	if err := h.service.UnblockSlot(c, uint(id), doctorID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Slot unblocked"})
}
