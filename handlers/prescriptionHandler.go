package handlers

import (
	"CarePulse/models"
	"CarePulse/services"

	"github.com/gin-gonic/gin"
)

type PrescriptionHandler struct {
	service *services.PrescriptionService
}

func NewPrescriptionHandler(service *services.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{service: service}
}

// IssuePrescription writes a prescription and completes the consultation.
func (h *PrescriptionHandler) IssuePrescription(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var prescription models.Prescription
	if err := c.ShouldBindJSON(&prescription); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Issue(c, actor, &prescription); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(201, prescription)
}

func (h *PrescriptionHandler) GetPrescriptionByID(c *gin.Context) {
	prescription, err := h.service.GetByID(c, c.Param("prescription_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, prescription)
}

func (h *PrescriptionHandler) ListPrescriptions(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	prescriptions, err := h.service.ListForActor(c, actor)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, prescriptions)
}

func (h *PrescriptionHandler) AmendPrescription(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var prescription models.Prescription
	if err := c.ShouldBindJSON(&prescription); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	prescription.ID = c.Param("prescription_id")

	if err := h.service.Amend(c, actor, &prescription); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, prescription)
}
