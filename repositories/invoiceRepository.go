package repositories

import (
	"CarePulse/cache"
	"CarePulse/database"
	"CarePulse/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	InvoiceCacheExpiry = 24 * time.Hour
)

// ErrDuplicateTender is returned when a payment replays a tender ID that
// was already credited against an invoice.
var ErrDuplicateTender = errors.New("tender already recorded")

type InvoiceRepository struct {
	cache *cache.Cache
}

func NewInvoiceRepository(cache *cache.Cache) *InvoiceRepository {
	return &InvoiceRepository{cache: cache}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	release, err := acquireLock(ctx, fmt.Sprintf("invoice_lock:%s:%s", invoice.PatientID, invoice.DoctorID))
	if err != nil {
		return err
	}
	defer release()

	// Check the doctor exists before numbering the invoice
	var doctor models.Doctor
	if err := database.DB.First(&doctor, "id = ?", invoice.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("doctor not found")
		}
		return fmt.Errorf("failed to find doctor: %w", err)
	}

	// Obtain the next sequence value outside the transaction
	var nextBillNumber string
	if err := database.DB.Raw("SELECT 'INV-' || LPAD(nextval('invoice_bill_seq')::TEXT, 6, '0')").Scan(&nextBillNumber).Error; err != nil {
		return fmt.Errorf("failed to obtain next invoice number: %w", err)
	}
	invoice.BillNumber = nextBillNumber

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			if rollbackErr := database.DB.Exec("SELECT setval('invoice_bill_seq', (SELECT last_value FROM invoice_bill_seq) - 1, false)").Error; rollbackErr != nil {
				return fmt.Errorf("transaction failed and sequence rollback failed: %v, rollback error: %v", err, rollbackErr)
			}
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		return r.invalidate(ctx, invoice.BillNumber)
	})
}

func (r *InvoiceRepository) GetByBillNumber(ctx context.Context, billNumber string) (*models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getInvoiceCacheKey(billNumber)
	cachedInvoice, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedInvoice != "" {
		var invoice models.Invoice
		if err := json.Unmarshal([]byte(cachedInvoice), &invoice); err == nil {
			return &invoice, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get invoice from cache: %v", err)
	}

	var invoice models.Invoice
	err = database.DB.First(&invoice, "bill_number = ?", billNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	invoiceJSON, err := json.Marshal(invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoice: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, invoiceJSON, InvoiceCacheExpiry); err != nil {
		log.Printf("Failed to set invoice in cache: %v", err)
	}

	return &invoice, nil
}

// GetByAppointment returns the invoice linked to an appointment's billing
// event, or nil when the appointment was never billed.
func (r *InvoiceRepository) GetByAppointment(ctx context.Context, appointmentID string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := database.DB.First(&invoice, "appointment_id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invoice for appointment: %w", err)
	}
	return &invoice, nil
}

func (r *InvoiceRepository) GetAll(ctx context.Context) ([]models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "invoices_cache"
	cachedInvoices, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedInvoices != "" {
		var invoices []models.Invoice
		if err := json.Unmarshal([]byte(cachedInvoices), &invoices); err == nil {
			return invoices, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get invoices from cache: %v", err)
	}

	var invoices []models.Invoice
	err = database.DB.Order("created_at DESC").Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all invoices: %w", err)
	}

	invoicesJSON, err := json.Marshal(invoices)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoices: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, invoicesJSON, InvoiceCacheExpiry); err != nil {
		log.Printf("Failed to set invoices in cache: %v", err)
	}

	return invoices, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	release, err := acquireLock(ctx, fmt.Sprintf("invoice_lock:%s", invoice.BillNumber))
	if err != nil {
		return err
	}
	defer release()

	if err := database.DB.Save(invoice).Error; err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return r.invalidate(ctx, invoice.BillNumber)
}

// RecordPayment persists a tender and the reconciled invoice in one
// transaction. The unique index on tender_id turns a replay into
// ErrDuplicateTender without crediting the invoice twice.
func (r *InvoiceRepository) RecordPayment(ctx context.Context, invoice *models.Invoice, payment *models.Payment) error {
	release, err := acquireLock(ctx, fmt.Sprintf("invoice_lock:%s", invoice.BillNumber))
	if err != nil {
		return err
	}
	defer release()

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate key") ||
				strings.Contains(err.Error(), "UNIQUE constraint") {
				return ErrDuplicateTender
			}
			return fmt.Errorf("failed to record payment: %w", err)
		}
		if err := tx.Save(invoice).Error; err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.invalidate(ctx, invoice.BillNumber)
}

func (r *InvoiceRepository) ListPayments(ctx context.Context, billNumber string) ([]models.Payment, error) {
	var payments []models.Payment
	err := database.DB.Where("bill_number = ?", billNumber).Order("created_at ASC").Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (r *InvoiceRepository) invalidate(ctx context.Context, billNumber string) error {
	if err := r.cache.Delete(ctx, r.getInvoiceCacheKey(billNumber)); err != nil {
		return fmt.Errorf("failed to delete invoice cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "invoices_cache")
}

func (r *InvoiceRepository) getInvoiceCacheKey(billNumber string) string {
	return fmt.Sprintf("invoice_cache:%s", billNumber)
}
