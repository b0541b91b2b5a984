package handlers

import (
	"CarePulse/middlewares"
	"CarePulse/models"
	"CarePulse/services"
	"CarePulse/utils"
	"errors"

	"github.com/gin-gonic/gin"
)

// actorFromContext rebuilds the caller identity stored by the auth
// middleware. The ID is the doctor/patient profile resolved at login,
// not the raw login account.
func actorFromContext(c *gin.Context) (services.ActorContext, bool) {
	actorID, err := middlewares.ExtractActorIDFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return services.ActorContext{}, false
	}
	role, err := middlewares.ExtractUserRoleFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return services.ActorContext{}, false
	}
	if actorID == "" {
		c.JSON(403, gin.H{"error": "No doctor or patient profile is linked to this account"})
		return services.ActorContext{}, false
	}
	return services.ActorContext{ID: actorID, Role: role}, true
}

// respondServiceError maps lifecycle errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrInvoiceNotFound),
		errors.Is(err, services.ErrPrescriptionNotFound):
		c.JSON(404, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(403, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSlotTaken),
		errors.Is(err, services.ErrSlotBlocked),
		errors.Is(err, services.ErrAppointmentCancelled),
		errors.Is(err, services.ErrAppointmentTerminal),
		errors.Is(err, services.ErrInvoiceSettled):
		c.JSON(409, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPaymentReturnPending):
		c.JSON(428, gin.H{"error": err.Error()})
	default:
		c.JSON(500, gin.H{"error": err.Error()})
	}
}

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if actor.Role == "Patient" {
		appointment.PatientID = actor.ID
	}

	if err := h.service.Book(c, &appointment); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(201, appointment)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	appointment, err := h.service.GetByID(c, actor, c.Param("appointment_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, appointment)
}

// ListAppointments returns the caller's bucketed appointment view.
// Optional query params: search, from_date, to_date.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	opts := services.FilterOptions{
		Search:      c.Query("search"),
		FromDate:    c.Query("from_date"),
		ToDate:      c.Query("to_date"),
		PendingOnly: c.Query("pending") == "true",
	}
	if opts.FromDate != "" || opts.ToDate != "" {
		if err := utils.ValidateDateRange(opts.FromDate, opts.ToDate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
	}

	buckets, err := h.service.ListForActor(c, actor, opts)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, buckets)
}

func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var payload struct {
		AppointmentDate string `json:"appointment_date"`
		AppointmentTime string `json:"appointment_time"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	appointment, err := h.service.Reschedule(c, actor, c.Param("appointment_id"), payload.AppointmentDate, payload.AppointmentTime)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, appointment)
}

func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var payload struct {
		ConfirmPaymentReturn bool `json:"confirm_payment_return"`
	}
	// Body is optional: a bare cancel means no confirmation given.
	_ = c.ShouldBindJSON(&payload)

	appointment, err := h.service.Cancel(c, actor, c.Param("appointment_id"), payload.ConfirmPaymentReturn)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, appointment)
}

func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	appointment, err := h.service.Complete(c, actor, c.Param("appointment_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, appointment)
}
