package services

import (
	"CarePulse/models"
	"context"
)

// Func-field mocks for the store interfaces. A nil func falls back to a
// benign default so each test only wires the calls it cares about.

type appointmentStoreMock struct {
	CreateFunc           func(ctx context.Context, appointment *models.Appointment) error
	GetByIDFunc          func(ctx context.Context, id string) (*models.Appointment, error)
	GetForActorFunc      func(ctx context.Context, actorID, role string) ([]models.Appointment, error)
	FindActiveBySlotFunc func(ctx context.Context, doctorID, date, timeSlot string) (*models.Appointment, error)
	PatchFunc            func(ctx context.Context, appointment *models.Appointment, fields map[string]interface{}) error
}

func (m *appointmentStoreMock) Create(ctx context.Context, appointment *models.Appointment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, appointment)
	}
	return nil
}

func (m *appointmentStoreMock) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *appointmentStoreMock) GetForActor(ctx context.Context, actorID, role string) ([]models.Appointment, error) {
	if m.GetForActorFunc != nil {
		return m.GetForActorFunc(ctx, actorID, role)
	}
	return nil, nil
}

func (m *appointmentStoreMock) FindActiveBySlot(ctx context.Context, doctorID, date, timeSlot string) (*models.Appointment, error) {
	if m.FindActiveBySlotFunc != nil {
		return m.FindActiveBySlotFunc(ctx, doctorID, date, timeSlot)
	}
	return nil, nil
}

func (m *appointmentStoreMock) Patch(ctx context.Context, appointment *models.Appointment, fields map[string]interface{}) error {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, appointment, fields)
	}
	return nil
}

type doctorStoreMock struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.Doctor, error)
}

func (m *doctorStoreMock) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &models.Doctor{ID: id}, nil
}

type patientStoreMock struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.Patient, error)
}

func (m *patientStoreMock) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &models.Patient{ID: id}, nil
}

type invoiceStoreMock struct {
	GetByAppointmentFunc func(ctx context.Context, appointmentID string) (*models.Invoice, error)
}

func (m *invoiceStoreMock) GetByAppointment(ctx context.Context, appointmentID string) (*models.Invoice, error) {
	if m.GetByAppointmentFunc != nil {
		return m.GetByAppointmentFunc(ctx, appointmentID)
	}
	return nil, nil
}

type blockedSlotStoreMock struct {
	ListForDatesFunc func(ctx context.Context, doctorID string, dates []string) ([]models.BlockedSlot, error)
}

func (m *blockedSlotStoreMock) ListForDates(ctx context.Context, doctorID string, dates []string) ([]models.BlockedSlot, error) {
	if m.ListForDatesFunc != nil {
		return m.ListForDatesFunc(ctx, doctorID, dates)
	}
	return nil, nil
}

type doctorDirectoryMock struct {
	GetByUserIDFunc func(ctx context.Context, userID int64) (*models.Doctor, error)
}

func (m *doctorDirectoryMock) GetByUserID(ctx context.Context, userID int64) (*models.Doctor, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

type patientDirectoryMock struct {
	GetByUserIDFunc func(ctx context.Context, userID int64) (*models.Patient, error)
}

func (m *patientDirectoryMock) GetByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func newMockedAppointmentService(store *appointmentStoreMock) *AppointmentService {
	return NewAppointmentService(store, &doctorStoreMock{}, &patientStoreMock{}, &invoiceStoreMock{}, &blockedSlotStoreMock{})
}
