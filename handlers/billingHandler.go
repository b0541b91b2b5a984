package handlers

import (
	"CarePulse/models"
	"CarePulse/repositories"
	"CarePulse/services"
	"errors"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	service *services.BillingService
}

func NewBillingHandler(service *services.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var invoice models.Invoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreateInvoice(c, &invoice); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(201, invoice)
}

func (h *BillingHandler) GetInvoiceByBillNumber(c *gin.Context) {
	invoice, err := h.service.GetByBillNumber(c, c.Param("bill_number"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, invoice)
}

func (h *BillingHandler) GetInvoiceByAppointment(c *gin.Context) {
	invoice, err := h.service.GetByAppointment(c, c.Param("appointment_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if invoice == nil {
		c.JSON(404, gin.H{"error": "No invoice for this appointment"})
		return
	}
	c.JSON(200, invoice)
}

func (h *BillingHandler) GetAllInvoices(c *gin.Context) {
	invoices, err := h.service.GetAll(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, invoices)
}

func (h *BillingHandler) UpdateInvoice(c *gin.Context) {
	var invoice models.Invoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	invoice.BillNumber = c.Param("bill_number")

	if err := h.service.UpdateInvoice(c, &invoice); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, invoice)
}

// RecordPayment reconciles one tender against an invoice. A replayed
// tender ID is reported as a conflict instead of crediting twice.
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	var payload struct {
		TenderID string  `json:"tender_id" binding:"required"`
		Amount   float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.service.RecordPayment(c, c.Param("bill_number"), payload.TenderID, payload.Amount)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateTender) {
			c.JSON(409, gin.H{"error": err.Error()})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(200, invoice)
}

func (h *BillingHandler) ListPayments(c *gin.Context) {
	payments, err := h.service.ListPayments(c, c.Param("bill_number"))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, payments)
}
