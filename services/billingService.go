package services

import (
	"CarePulse/models"
	"CarePulse/repositories"
	"CarePulse/utils"
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInvoiceSettled  = errors.New("invoice is already fully paid")
)

type BillingService struct {
	repository      *repositories.InvoiceRepository
	appointmentRepo *repositories.AppointmentRepository
}

func NewBillingService(repository *repositories.InvoiceRepository, appointmentRepo *repositories.AppointmentRepository) *BillingService {
	return &BillingService{repository: repository, appointmentRepo: appointmentRepo}
}

// CreateInvoice validates and creates an invoice, deriving the total and
// remaining amounts from the line figures. When the invoice is tied to an
// appointment the appointment must exist and not be cancelled.
func (s *BillingService) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	if invoice.Status == "" {
		invoice.Status = models.InvoiceStatusUnpaid
	}
	if err := utils.ValidateInvoiceData(*invoice); err != nil {
		return fmt.Errorf("invalid invoice data: %w", err)
	}

	if invoice.AppointmentID != "" {
		appointment, err := s.appointmentRepo.GetByID(ctx, invoice.AppointmentID)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}
		if appointment.IsCancelled() {
			return ErrAppointmentCancelled
		}
	}

	invoice.PaidAmount = 0
	invoice.RecomputeTotal()
	return s.repository.Create(ctx, invoice)
}

func (s *BillingService) GetByBillNumber(ctx context.Context, billNumber string) (*models.Invoice, error) {
	invoice, err := s.repository.GetByBillNumber(ctx, billNumber)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *BillingService) GetByAppointment(ctx context.Context, appointmentID string) (*models.Invoice, error) {
	return s.repository.GetByAppointment(ctx, appointmentID)
}

func (s *BillingService) GetAll(ctx context.Context) ([]models.Invoice, error) {
	return s.repository.GetAll(ctx)
}

// UpdateInvoice edits the billable figures of an unsettled invoice and
// re-derives the totals. Paid money stays credited across the edit.
func (s *BillingService) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	existing, err := s.GetByBillNumber(ctx, invoice.BillNumber)
	if err != nil {
		return err
	}
	invoice.PaidAmount = existing.PaidAmount
	if err := utils.ValidateInvoiceData(*invoice); err != nil {
		return fmt.Errorf("invalid invoice data: %w", err)
	}
	invoice.RecomputeTotal()
	return s.repository.Update(ctx, invoice)
}

// RecordPayment reconciles one tender against an invoice. The tender ID
// deduplicates retries: a replayed tender returns the duplicate error
// without crediting twice. Overpayment settles the invoice and is
// absorbed; no credit balance is carried.
func (s *BillingService) RecordPayment(ctx context.Context, billNumber, tenderID string, amount float64) (*models.Invoice, error) {
	if amount <= 0 {
		return nil, errors.New("tendered amount must be positive")
	}
	invoice, err := s.GetByBillNumber(ctx, billNumber)
	if err != nil {
		return nil, err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return nil, ErrInvoiceSettled
	}

	invoice.ApplyPayment(amount)
	payment := &models.Payment{
		TenderID:   tenderID,
		BillNumber: billNumber,
		Amount:     amount,
	}
	if err := s.repository.RecordPayment(ctx, invoice, payment); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *BillingService) ListPayments(ctx context.Context, billNumber string) ([]models.Payment, error) {
	return s.repository.ListPayments(ctx, billNumber)
}
