package services

import (
	"CarePulse/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var classifierToday = time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)

func TestClassifyAppointments(t *testing.T) {
	appointments := []models.Appointment{
		{ID: "a1", AppointmentDate: "2026-03-15", Status: models.StatusScheduled},
		{ID: "a2", AppointmentDate: "2026-03-16", Status: models.StatusScheduled},
		{ID: "a3", AppointmentDate: "2026-03-14", Status: models.StatusCompleted},
		{ID: "a4", AppointmentDate: "2026-03-15", Status: models.StatusCancelled},
		{ID: "a5", AppointmentDate: "2027-01-01", Status: models.StatusPending},
	}

	buckets := ClassifyAppointments(appointments, classifierToday)

	assert.Len(t, buckets.Today, 1)
	assert.Equal(t, "a1", buckets.Today[0].ID)

	assert.Len(t, buckets.Upcoming, 2)
	assert.Equal(t, "a2", buckets.Upcoming[0].ID)
	assert.Equal(t, "a5", buckets.Upcoming[1].ID)

	assert.Len(t, buckets.Previous, 1)
	assert.Equal(t, "a3", buckets.Previous[0].ID)

	assert.Len(t, buckets.Cancelled, 1)
	assert.Equal(t, "a4", buckets.Cancelled[0].ID)
}

func TestClassifyAppointmentsCancelledDominatesDate(t *testing.T) {
	appointments := []models.Appointment{
		{ID: "past", AppointmentDate: "2020-01-01", Status: models.StatusCancelled},
		{ID: "today", AppointmentDate: "2026-03-15", Status: models.StatusCancelled},
		{ID: "future", AppointmentDate: "2030-01-01", Status: models.StatusCancelled},
	}

	buckets := ClassifyAppointments(appointments, classifierToday)

	assert.Empty(t, buckets.Today)
	assert.Empty(t, buckets.Upcoming)
	assert.Empty(t, buckets.Previous)
	assert.Len(t, buckets.Cancelled, 3)
}

func TestClassifyAppointmentsSkipsMalformedDates(t *testing.T) {
	appointments := []models.Appointment{
		{ID: "bad", AppointmentDate: "not-a-date", Status: models.StatusScheduled},
		{ID: "empty", AppointmentDate: "", Status: models.StatusScheduled},
		{ID: "ok", AppointmentDate: "2026-03-15", Status: models.StatusScheduled},
		// Cancelled is status-driven, so a bad date still lands there
		{ID: "bad-cancelled", AppointmentDate: "nope", Status: models.StatusCancelled},
	}

	buckets := ClassifyAppointments(appointments, classifierToday)

	assert.Len(t, buckets.Today, 1)
	assert.Equal(t, "ok", buckets.Today[0].ID)
	assert.Empty(t, buckets.Upcoming)
	assert.Empty(t, buckets.Previous)
	assert.Len(t, buckets.Cancelled, 1)
	assert.Equal(t, "bad-cancelled", buckets.Cancelled[0].ID)
}

func TestClassifyAppointmentsEmpty(t *testing.T) {
	buckets := ClassifyAppointments(nil, classifierToday)

	assert.Empty(t, buckets.Today)
	assert.Empty(t, buckets.Upcoming)
	assert.Empty(t, buckets.Previous)
	assert.Empty(t, buckets.Cancelled)
}

func TestApplyFiltersSearch(t *testing.T) {
	appointments := []models.Appointment{
		{ID: "a1", PatientName: "Jane Mwangi", DiseaseName: "Migraine"},
		{ID: "a2", PatientName: "Omar Hassan", PatientIssue: "persistent migraine headaches"},
		{ID: "a3", PatientName: "Li Wei", DiseaseName: "Asthma"},
	}

	filtered := ApplyFilters(appointments, FilterOptions{Search: "migraine"})
	assert.Len(t, filtered, 2)
	assert.Equal(t, "a1", filtered[0].ID)
	assert.Equal(t, "a2", filtered[1].ID)

	filtered = ApplyFilters(appointments, FilterOptions{Search: "JANE"})
	assert.Len(t, filtered, 1)
	assert.Equal(t, "a1", filtered[0].ID)

	filtered = ApplyFilters(appointments, FilterOptions{Search: "cardiology"})
	assert.Empty(t, filtered)
}

func TestApplyFiltersDateRange(t *testing.T) {
	appointments := []models.Appointment{
		{ID: "a1", AppointmentDate: "2026-03-10"},
		{ID: "a2", AppointmentDate: "2026-03-15"},
		{ID: "a3", AppointmentDate: "2026-03-20"},
	}

	filtered := ApplyFilters(appointments, FilterOptions{FromDate: "2026-03-12", ToDate: "2026-03-18"})
	assert.Len(t, filtered, 1)
	assert.Equal(t, "a2", filtered[0].ID)

	// Bounds are inclusive
	filtered = ApplyFilters(appointments, FilterOptions{FromDate: "2026-03-10", ToDate: "2026-03-20"})
	assert.Len(t, filtered, 3)
}

func TestApplyFiltersCompose(t *testing.T) {
	appointments := []models.Appointment{
		{ID: "a1", AppointmentDate: "2026-03-10", DiseaseName: "Migraine"},
		{ID: "a2", AppointmentDate: "2026-03-15", DiseaseName: "Migraine"},
		{ID: "a3", AppointmentDate: "2026-03-15", DiseaseName: "Asthma"},
	}

	filtered := ApplyFilters(appointments, FilterOptions{Search: "migraine", FromDate: "2026-03-12"})
	assert.Len(t, filtered, 1)
	assert.Equal(t, "a2", filtered[0].ID)
}

func TestApplyFiltersPendingOnly(t *testing.T) {
	appointments := []models.Appointment{
		{ID: "a1", Status: models.StatusPending},
		{ID: "a2", Status: models.StatusScheduled},
		{ID: "a3", Status: models.StatusPending},
	}

	filtered := ApplyFilters(appointments, FilterOptions{PendingOnly: true})
	assert.Len(t, filtered, 2)
	assert.Equal(t, "a1", filtered[0].ID)
	assert.Equal(t, "a3", filtered[1].ID)
}

func TestApplyFiltersNoOptions(t *testing.T) {
	appointments := []models.Appointment{{ID: "a1"}, {ID: "a2"}}
	assert.Equal(t, appointments, ApplyFilters(appointments, FilterOptions{}))
}

func TestActorMayAccess(t *testing.T) {
	appointment := &models.Appointment{PatientID: "p1", DoctorID: "d1"}

	assert.NoError(t, actorMayAccess(ActorContext{ID: "anyone", Role: "Admin"}, appointment))
	assert.NoError(t, actorMayAccess(ActorContext{ID: "d1", Role: "Doctor"}, appointment))
	assert.NoError(t, actorMayAccess(ActorContext{ID: "p1", Role: "Patient"}, appointment))

	assert.ErrorIs(t, actorMayAccess(ActorContext{ID: "d2", Role: "Doctor"}, appointment), ErrForbidden)
	assert.ErrorIs(t, actorMayAccess(ActorContext{ID: "p2", Role: "Patient"}, appointment), ErrForbidden)
	assert.ErrorIs(t, actorMayAccess(ActorContext{ID: "p1", Role: "Visitor"}, appointment), ErrForbidden)
}
