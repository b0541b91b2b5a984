package services

import (
	"CarePulse/database"
	"CarePulse/models"
	"context"
	"fmt"
	"time"
)

// DashboardSummary is the admin landing-page roll-up.
type DashboardSummary struct {
	TotalPatients     int64   `json:"total_patients"`
	TotalDoctors      int64   `json:"total_doctors"`
	AppointmentsToday int64   `json:"appointments_today"`
	PendingBills      int64   `json:"pending_bills"`
	OutstandingAmount float64 `json:"outstanding_amount"`
}

type DashboardService struct{}

func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

// Summary computes the counts straight from the database; the numbers
// change too often to be worth caching.
func (s *DashboardService) Summary(ctx context.Context) (DashboardSummary, error) {
	var summary DashboardSummary
	db := database.DB.WithContext(ctx)

	if err := db.Model(&models.Patient{}).Count(&summary.TotalPatients).Error; err != nil {
		return summary, fmt.Errorf("failed to count patients: %w", err)
	}
	if err := db.Model(&models.Doctor{}).Count(&summary.TotalDoctors).Error; err != nil {
		return summary, fmt.Errorf("failed to count doctors: %w", err)
	}

	today := time.Now().UTC().Format(models.DateLayout)
	err := db.Model(&models.Appointment{}).
		Where("appointment_date = ? AND status <> ?", today, models.StatusCancelled).
		Count(&summary.AppointmentsToday).Error
	if err != nil {
		return summary, fmt.Errorf("failed to count today's appointments: %w", err)
	}

	err = db.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceStatusUnpaid).
		Count(&summary.PendingBills).Error
	if err != nil {
		return summary, fmt.Errorf("failed to count pending bills: %w", err)
	}

	err = db.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceStatusUnpaid).
		Select("COALESCE(SUM(remaining_amount), 0)").
		Scan(&summary.OutstandingAmount).Error
	if err != nil {
		return summary, fmt.Errorf("failed to sum outstanding amounts: %w", err)
	}

	return summary, nil
}
