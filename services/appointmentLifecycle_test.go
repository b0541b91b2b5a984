package services

import (
	"CarePulse/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scheduledAppointment() models.Appointment {
	return models.Appointment{
		ID:              "apt-1",
		PatientID:       "p1",
		DoctorID:        "d1",
		PatientName:     "Jane Roe",
		PatientAge:      31,
		PatientGender:   "Female",
		DoctorName:      "John Park",
		HospitalName:    "CarePulse General",
		DiseaseName:     "Migraine",
		AppointmentDate: "2026-03-20",
		AppointmentTime: "10:00 AM",
		AppointmentType: models.TypeOnsite,
		Status:          models.StatusScheduled,
	}
}

// mutableStore serves a single appointment and applies Patch writes back
// onto it, the way the row would evolve in the database.
func mutableStore(stored *models.Appointment) *appointmentStoreMock {
	return &appointmentStoreMock{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Appointment, error) {
			if id != stored.ID {
				return nil, nil
			}
			copy := *stored
			return &copy, nil
		},
		PatchFunc: func(ctx context.Context, appointment *models.Appointment, fields map[string]interface{}) error {
			if status, ok := fields["status"].(string); ok {
				stored.Status = status
			}
			if date, ok := fields["appointment_date"].(string); ok {
				stored.AppointmentDate = date
			}
			if slot, ok := fields["appointment_time"].(string); ok {
				stored.AppointmentTime = slot
			}
			return nil
		},
	}
}

func TestRescheduleKeepsIdentityAndSnapshots(t *testing.T) {
	stored := scheduledAppointment()
	var patched map[string]interface{}
	store := mutableStore(&stored)
	basePatch := store.PatchFunc
	store.PatchFunc = func(ctx context.Context, appointment *models.Appointment, fields map[string]interface{}) error {
		patched = fields
		return basePatch(ctx, appointment, fields)
	}
	service := newMockedAppointmentService(store)

	updated, err := service.Reschedule(context.Background(), ActorContext{ID: "p1", Role: "Patient"}, "apt-1", "2026-03-22", "2:00 PM")
	assert.NoError(t, err)

	// Only the slot coordinates move
	assert.Len(t, patched, 2)
	assert.Equal(t, "2026-03-22", patched["appointment_date"])
	assert.Equal(t, "2:00 PM", patched["appointment_time"])

	assert.Equal(t, "apt-1", updated.ID)
	assert.Equal(t, "p1", updated.PatientID)
	assert.Equal(t, "d1", updated.DoctorID)
	assert.Equal(t, "Jane Roe", updated.PatientName)
	assert.Equal(t, "John Park", updated.DoctorName)
	assert.Equal(t, "CarePulse General", updated.HospitalName)
	assert.Equal(t, "Migraine", updated.DiseaseName)
	assert.Equal(t, models.StatusScheduled, updated.Status)
	assert.Equal(t, "2026-03-22", updated.AppointmentDate)
	assert.Equal(t, "2:00 PM", updated.AppointmentTime)
}

func TestRescheduleOmittedDateKeepsDay(t *testing.T) {
	stored := scheduledAppointment()
	service := newMockedAppointmentService(mutableStore(&stored))

	updated, err := service.Reschedule(context.Background(), ActorContext{ID: "d1", Role: "Doctor"}, "apt-1", "", "4:00 PM")
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-20", updated.AppointmentDate)
	assert.Equal(t, "4:00 PM", updated.AppointmentTime)
}

func TestRescheduleIntoOccupiedSlot(t *testing.T) {
	stored := scheduledAppointment()
	store := mutableStore(&stored)
	store.FindActiveBySlotFunc = func(ctx context.Context, doctorID, date, timeSlot string) (*models.Appointment, error) {
		other := scheduledAppointment()
		other.ID = "apt-2"
		return &other, nil
	}
	service := newMockedAppointmentService(store)

	_, err := service.Reschedule(context.Background(), ActorContext{ID: "d1", Role: "Doctor"}, "apt-1", "2026-03-22", "2:00 PM")
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestRescheduleOntoOwnSlot(t *testing.T) {
	stored := scheduledAppointment()
	store := mutableStore(&stored)
	store.FindActiveBySlotFunc = func(ctx context.Context, doctorID, date, timeSlot string) (*models.Appointment, error) {
		self := stored
		return &self, nil
	}
	service := newMockedAppointmentService(store)

	// Occupant is the appointment itself, so the move is allowed
	_, err := service.Reschedule(context.Background(), ActorContext{ID: "d1", Role: "Doctor"}, "apt-1", "2026-03-20", "10:00 AM")
	assert.NoError(t, err)
}

func TestRescheduleIntoBlockedSlot(t *testing.T) {
	stored := scheduledAppointment()
	store := mutableStore(&stored)
	service := NewAppointmentService(store, &doctorStoreMock{}, &patientStoreMock{}, &invoiceStoreMock{}, &blockedSlotStoreMock{
		ListForDatesFunc: func(ctx context.Context, doctorID string, dates []string) ([]models.BlockedSlot, error) {
			return []models.BlockedSlot{{DoctorID: doctorID, Date: dates[0], TimeSlot: "2:00 PM"}}, nil
		},
	})

	_, err := service.Reschedule(context.Background(), ActorContext{ID: "d1", Role: "Doctor"}, "apt-1", "2026-03-22", "2:00 PM")
	assert.ErrorIs(t, err, ErrSlotBlocked)
}

func TestCancelIsTerminal(t *testing.T) {
	stored := scheduledAppointment()
	service := newMockedAppointmentService(mutableStore(&stored))
	actor := ActorContext{ID: "p1", Role: "Patient"}

	cancelled, err := service.Cancel(context.Background(), actor, "apt-1", false)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	_, err = service.Cancel(context.Background(), actor, "apt-1", false)
	assert.ErrorIs(t, err, ErrAppointmentCancelled)

	_, err = service.Reschedule(context.Background(), actor, "apt-1", "2026-03-25", "9:00 AM")
	assert.ErrorIs(t, err, ErrAppointmentCancelled)

	_, err = service.Complete(context.Background(), actor, "apt-1")
	assert.ErrorIs(t, err, ErrAppointmentCancelled)
}

func TestCompletedAppointmentIsImmovable(t *testing.T) {
	stored := scheduledAppointment()
	stored.Status = models.StatusCompleted
	service := newMockedAppointmentService(mutableStore(&stored))
	actor := ActorContext{ID: "d1", Role: "Doctor"}

	_, err := service.Cancel(context.Background(), actor, "apt-1", false)
	assert.ErrorIs(t, err, ErrAppointmentTerminal)

	_, err = service.Reschedule(context.Background(), actor, "apt-1", "2026-03-25", "9:00 AM")
	assert.ErrorIs(t, err, ErrAppointmentTerminal)
}

func TestCancelOnlinePaidRequiresConfirmation(t *testing.T) {
	stored := scheduledAppointment()
	stored.AppointmentType = models.TypeOnline
	store := mutableStore(&stored)
	service := NewAppointmentService(store, &doctorStoreMock{}, &patientStoreMock{}, &invoiceStoreMock{
		GetByAppointmentFunc: func(ctx context.Context, appointmentID string) (*models.Invoice, error) {
			return &models.Invoice{BillNumber: "INV-000001", AppointmentID: appointmentID, Status: models.InvoiceStatusPaid}, nil
		},
	}, &blockedSlotStoreMock{})
	actor := ActorContext{ID: "p1", Role: "Patient"}

	_, err := service.Cancel(context.Background(), actor, "apt-1", false)
	assert.ErrorIs(t, err, ErrPaymentReturnPending)
	assert.Equal(t, models.StatusScheduled, stored.Status)

	cancelled, err := service.Cancel(context.Background(), actor, "apt-1", true)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
}

func TestCancelledAppointmentLeavesTodayBucket(t *testing.T) {
	stored := scheduledAppointment()
	stored.AppointmentDate = "2026-03-15"
	service := newMockedAppointmentService(mutableStore(&stored))

	before := ClassifyAppointments([]models.Appointment{stored}, classifierToday)
	assert.Len(t, before.Today, 1)

	_, err := service.Cancel(context.Background(), ActorContext{ID: "p1", Role: "Patient"}, "apt-1", false)
	assert.NoError(t, err)

	after := ClassifyAppointments([]models.Appointment{stored}, classifierToday)
	assert.Empty(t, after.Today)
	assert.Len(t, after.Cancelled, 1)
}

func TestBookSnapshotsParties(t *testing.T) {
	var created *models.Appointment
	store := &appointmentStoreMock{
		CreateFunc: func(ctx context.Context, appointment *models.Appointment) error {
			created = appointment
			return nil
		},
	}
	service := NewAppointmentService(store, &doctorStoreMock{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Doctor, error) {
			return &models.Doctor{ID: id, FirstName: "John", LastName: "Park", HospitalName: "CarePulse General"}, nil
		},
	}, &patientStoreMock{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Patient, error) {
			return &models.Patient{ID: id, FirstName: "Jane", LastName: "Roe", Age: 31, Gender: "Female"}, nil
		},
	}, &invoiceStoreMock{}, &blockedSlotStoreMock{})

	appointment := models.Appointment{
		PatientID:       "p1",
		DoctorID:        "d1",
		AppointmentDate: "2026-03-20",
		AppointmentTime: "10:00 AM",
		AppointmentType: models.TypeOnsite,
	}
	assert.NoError(t, service.Book(context.Background(), &appointment))
	assert.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusScheduled, created.Status)
	assert.Equal(t, "Jane Roe", created.PatientName)
	assert.Equal(t, 31, created.PatientAge)
	assert.Equal(t, "Female", created.PatientGender)
	assert.Equal(t, "John Park", created.DoctorName)
	assert.Equal(t, "CarePulse General", created.HospitalName)
}

func TestBookRejectsUnknownPatient(t *testing.T) {
	service := NewAppointmentService(&appointmentStoreMock{}, &doctorStoreMock{}, &patientStoreMock{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Patient, error) {
			return nil, nil
		},
	}, &invoiceStoreMock{}, &blockedSlotStoreMock{})

	appointment := models.Appointment{
		PatientID:       "ghost",
		DoctorID:        "d1",
		AppointmentDate: "2026-03-20",
		AppointmentTime: "10:00 AM",
		AppointmentType: models.TypeOnsite,
	}
	assert.EqualError(t, service.Book(context.Background(), &appointment), "patient not found")
}
