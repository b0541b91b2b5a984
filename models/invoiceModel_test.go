package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceTotal(t *testing.T) {
	assert.Equal(t, 1050.0, InvoiceTotal(1000, 10, 50))
	assert.Equal(t, 1000.0, InvoiceTotal(1000, 0, 0))
	assert.Equal(t, 218.45, InvoiceTotal(199.99, 10, 1.54))
}

func TestRecomputeTotal(t *testing.T) {
	inv := Invoice{Amount: 1000, Tax: 10, Discount: 50}
	inv.RecomputeTotal()

	assert.Equal(t, 1050.0, inv.TotalAmount)
	assert.Equal(t, 1050.0, inv.RemainingAmount)
	assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
}

func TestRecomputeTotalKeepsPaidCredit(t *testing.T) {
	inv := Invoice{Amount: 1000, PaidAmount: 400}
	inv.RecomputeTotal()

	assert.Equal(t, 1000.0, inv.TotalAmount)
	assert.Equal(t, 600.0, inv.RemainingAmount)
	assert.Equal(t, InvoiceStatusUnpaid, inv.Status)

	// Discount drops the total below what was already paid
	inv.Discount = 700
	inv.RecomputeTotal()
	assert.Equal(t, 300.0, inv.TotalAmount)
	assert.Equal(t, 0.0, inv.RemainingAmount)
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
}

func TestApplyPaymentPartial(t *testing.T) {
	inv := Invoice{TotalAmount: 1000, PaidAmount: 300, Status: InvoiceStatusUnpaid}
	inv.ApplyPayment(200)

	assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
	assert.Equal(t, 500.0, inv.PaidAmount)
	assert.Equal(t, 500.0, inv.RemainingAmount)
}

func TestApplyPaymentSettles(t *testing.T) {
	inv := Invoice{TotalAmount: 1000, PaidAmount: 300, Status: InvoiceStatusUnpaid}
	inv.ApplyPayment(700)

	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.Equal(t, 1000.0, inv.PaidAmount)
	assert.Equal(t, 0.0, inv.RemainingAmount)
}

func TestApplyPaymentAbsorbsOverpayment(t *testing.T) {
	inv := Invoice{TotalAmount: 1000, PaidAmount: 300, Status: InvoiceStatusUnpaid}
	inv.ApplyPayment(800)

	// Paid is clamped to the total, never above it
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.Equal(t, 1000.0, inv.PaidAmount)
	assert.Equal(t, 0.0, inv.RemainingAmount)
}

func TestApplyPaymentSequence(t *testing.T) {
	inv := Invoice{TotalAmount: 305.50, Status: InvoiceStatusUnpaid}

	inv.ApplyPayment(100.25)
	assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
	assert.Equal(t, 100.25, inv.PaidAmount)
	assert.Equal(t, 205.25, inv.RemainingAmount)

	inv.ApplyPayment(205.25)
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.Equal(t, 305.50, inv.PaidAmount)
	assert.Equal(t, 0.0, inv.RemainingAmount)
}
