package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses.
const (
	InvoiceStatusPaid   = "Paid"
	InvoiceStatusUnpaid = "Unpaid"
)

// Custom invoice field kinds.
const (
	FieldKindDropdown  = "Dropdown"
	FieldKindTextField = "TextField"
)

// InvoiceField is one ad hoc field attached to an invoice by the billing
// flow: either a dropdown with options or a plain text field.
type InvoiceField struct {
	Kind    string   `json:"kind"`
	Label   string   `json:"label"`
	Options []string `json:"options,omitempty"`
	Value   string   `json:"value,omitempty"`
}

// InvoiceFieldList stores the custom field schema as a JSON column.
type InvoiceFieldList []InvoiceField

func (l InvoiceFieldList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoice fields: %w", err)
	}
	return string(b), nil
}

func (l *InvoiceFieldList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for invoice fields", value)
	}
	return json.Unmarshal(b, l)
}

// Invoice model. Linked to an appointment's billing event; created
// explicitly by the billing flow, never automatically per appointment.
type Invoice struct {
	BillNumber       string           `gorm:"primaryKey;column:bill_number" json:"bill_number"`
	AppointmentID    string           `gorm:"column:appointment_id;index" json:"appointment_id"`
	PatientID        string           `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID         string           `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	Description      string           `gorm:"type:text;column:description" json:"description"`
	Amount           float64          `gorm:"type:decimal(10,2);column:amount;not null" json:"amount"`
	Tax              float64          `gorm:"type:decimal(10,2);column:tax" json:"tax"`
	Discount         float64          `gorm:"type:decimal(10,2);column:discount" json:"discount"`
	TotalAmount      float64          `gorm:"type:decimal(10,2);column:total_amount;not null" json:"total_amount"`
	PaidAmount       float64          `gorm:"type:decimal(10,2);column:paid_amount" json:"paid_amount"`
	RemainingAmount  float64          `gorm:"type:decimal(10,2);column:remaining_amount" json:"remaining_amount"`
	Status           string           `gorm:"column:status;check:status IN ('Paid', 'Unpaid');not null;default:'Unpaid'" json:"status"`
	PaymentType      string           `gorm:"column:payment_type" json:"payment_type"`
	InsuranceCompany string           `gorm:"column:insurance_company" json:"insurance_company"`
	InsurancePlan    string           `gorm:"column:insurance_plan" json:"insurance_plan"`
	ClaimAmount      float64          `gorm:"type:decimal(10,2);column:claim_amount" json:"claim_amount"`
	ClaimedAmount    float64          `gorm:"type:decimal(10,2);column:claimed_amount" json:"claimed_amount"`
	CustomFields     InvoiceFieldList `gorm:"type:text;column:custom_fields" json:"custom_fields"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient          Patient          `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor           Doctor           `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Invoice) TableName() string {
	return "invoice"
}

// InvoiceTotal derives the invoice total: amount plus tax percent minus
// flat discount, rounded to two decimals.
func InvoiceTotal(amount, taxPercent, discount float64) float64 {
	a := decimal.NewFromFloat(amount)
	total := a.
		Add(a.Mul(decimal.NewFromFloat(taxPercent)).Div(decimal.NewFromInt(100))).
		Sub(decimal.NewFromFloat(discount))
	f, _ := total.Round(2).Float64()
	return f
}

// RecomputeTotal refreshes TotalAmount and RemainingAmount after amount,
// tax or discount change. Already-paid money stays credited.
func (inv *Invoice) RecomputeTotal() {
	inv.TotalAmount = InvoiceTotal(inv.Amount, inv.Tax, inv.Discount)
	remaining, _ := decimal.NewFromFloat(inv.TotalAmount).
		Sub(decimal.NewFromFloat(inv.PaidAmount)).Round(2).Float64()
	if remaining < 0 {
		remaining = 0
	}
	inv.RemainingAmount = remaining
	if inv.RemainingAmount <= 0 {
		inv.Status = InvoiceStatusPaid
	} else {
		inv.Status = InvoiceStatusUnpaid
	}
}

// ApplyPayment credits a tendered amount against the invoice. When the
// tender settles the balance the invoice flips to Paid with paidAmount
// clamped to the total; overpayment is absorbed, never carried as credit.
func (inv *Invoice) ApplyPayment(tendered float64) {
	total := decimal.NewFromFloat(inv.TotalAmount)
	paid := decimal.NewFromFloat(inv.PaidAmount)
	remaining := total.Sub(paid).Sub(decimal.NewFromFloat(tendered))

	if remaining.LessThanOrEqual(decimal.Zero) {
		inv.Status = InvoiceStatusPaid
		inv.PaidAmount = inv.TotalAmount
		inv.RemainingAmount = 0
		return
	}

	inv.Status = InvoiceStatusUnpaid
	inv.PaidAmount, _ = paid.Add(decimal.NewFromFloat(tendered)).Round(2).Float64()
	inv.RemainingAmount, _ = remaining.Round(2).Float64()
}

// Payment records one tender against an invoice. The caller-supplied
// tender ID is unique so a replayed tender can never double-credit.
type Payment struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	TenderID   string    `gorm:"column:tender_id;not null;uniqueIndex" json:"tender_id"`
	BillNumber string    `gorm:"column:bill_number;not null;index" json:"bill_number"`
	Amount     float64   `gorm:"type:decimal(10,2);column:amount;not null" json:"amount"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Invoice    Invoice   `gorm:"foreignKey:BillNumber;references:BillNumber" json:"-"`
}

func (Payment) TableName() string {
	return "payment"
}
