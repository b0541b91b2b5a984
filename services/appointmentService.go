package services

import (
	"CarePulse/models"
	"CarePulse/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lifecycle errors surfaced to handlers. Handlers map these onto HTTP
// status codes; everything else is a 500.
var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentCancelled = errors.New("appointment is already cancelled")
	ErrAppointmentTerminal  = errors.New("appointment can no longer be modified")
	ErrSlotTaken            = errors.New("time slot already booked")
	ErrSlotBlocked          = errors.New("time slot is blocked by the doctor")
	ErrPaymentReturnPending = errors.New("payment return must be confirmed before cancelling")
	ErrForbidden            = errors.New("appointment does not belong to the caller")
)

// ActorContext identifies the authenticated caller for scoping reads and
// guarding writes. Role is one of the seeded role names.
type ActorContext struct {
	ID   string
	Role string
}

// Buckets groups a caller's appointments the way the scheduling screens
// present them. Cancelled dominates: a cancelled appointment appears only
// in Cancelled no matter what its date says. Records with malformed dates
// are kept out of the date-driven buckets rather than failing the request.
type Buckets struct {
	Today     []models.Appointment `json:"today"`
	Upcoming  []models.Appointment `json:"upcoming"`
	Previous  []models.Appointment `json:"previous"`
	Cancelled []models.Appointment `json:"cancelled"`
}

// ClassifyAppointments distributes appointments into lifecycle buckets
// relative to today's calendar date. It is pure: ordering within each
// bucket follows the input ordering.
func ClassifyAppointments(appointments []models.Appointment, today time.Time) Buckets {
	var buckets Buckets
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	for _, appointment := range appointments {
		if appointment.IsCancelled() {
			buckets.Cancelled = append(buckets.Cancelled, appointment)
			continue
		}
		date, ok := appointment.DateOnly()
		if !ok {
			continue
		}
		switch {
		case date.Equal(midnight):
			buckets.Today = append(buckets.Today, appointment)
		case date.After(midnight):
			buckets.Upcoming = append(buckets.Upcoming, appointment)
		default:
			buckets.Previous = append(buckets.Previous, appointment)
		}
	}
	return buckets
}

// FilterOptions narrows a bucket view. All fields are optional and
// compose: an appointment must satisfy every populated field to stay in.
type FilterOptions struct {
	Search      string
	FromDate    string
	ToDate      string
	PendingOnly bool
}

func (f FilterOptions) isZero() bool {
	return f.Search == "" && f.FromDate == "" && f.ToDate == "" && !f.PendingOnly
}

// ApplyFilters keeps the appointments matching the options. The search
// term matches case-insensitively against patient name, disease name and
// the patient's stated issue.
func ApplyFilters(appointments []models.Appointment, opts FilterOptions) []models.Appointment {
	if f := opts; f.isZero() {
		return appointments
	}

	term := strings.ToLower(strings.TrimSpace(opts.Search))
	filtered := make([]models.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		if term != "" && !matchesSearch(appointment, term) {
			continue
		}
		if opts.FromDate != "" && appointment.AppointmentDate < opts.FromDate {
			continue
		}
		if opts.ToDate != "" && appointment.AppointmentDate > opts.ToDate {
			continue
		}
		if opts.PendingOnly && appointment.Status != models.StatusPending {
			continue
		}
		filtered = append(filtered, appointment)
	}
	return filtered
}

func matchesSearch(appointment models.Appointment, term string) bool {
	for _, field := range []string{
		appointment.PatientName,
		appointment.DiseaseName,
		appointment.PatientIssue,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// AppointmentStore is the persistence surface the appointment lifecycle
// runs against. *repositories.AppointmentRepository satisfies it.
type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetForActor(ctx context.Context, actorID, role string) ([]models.Appointment, error)
	FindActiveBySlot(ctx context.Context, doctorID, date, timeSlot string) (*models.Appointment, error)
	Patch(ctx context.Context, appointment *models.Appointment, fields map[string]interface{}) error
}

// DoctorStore and PatientStore supply the party snapshots taken at
// booking time.
type DoctorStore interface {
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
}

type PatientStore interface {
	GetByID(ctx context.Context, id string) (*models.Patient, error)
}

// InvoiceStore answers whether an appointment carries a billed invoice.
type InvoiceStore interface {
	GetByAppointment(ctx context.Context, appointmentID string) (*models.Invoice, error)
}

// BlockedSlotStore lists the grid cells a doctor has taken off.
type BlockedSlotStore interface {
	ListForDates(ctx context.Context, doctorID string, dates []string) ([]models.BlockedSlot, error)
}

type AppointmentService struct {
	repository      AppointmentStore
	doctorRepo      DoctorStore
	patientRepo     PatientStore
	invoiceRepo     InvoiceStore
	blockedSlotRepo BlockedSlotStore
}

func NewAppointmentService(
	repository AppointmentStore,
	doctorRepo DoctorStore,
	patientRepo PatientStore,
	invoiceRepo InvoiceStore,
	blockedSlotRepo BlockedSlotStore,
) *AppointmentService {
	return &AppointmentService{
		repository:      repository,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		invoiceRepo:     invoiceRepo,
		blockedSlotRepo: blockedSlotRepo,
	}
}

// Book validates and creates a new appointment, snapshotting patient and
// doctor display data onto the record. A slot can hold at most one
// non-cancelled appointment per doctor, and blocked slots cannot be booked.
func (s *AppointmentService) Book(ctx context.Context, appointment *models.Appointment) error {
	if appointment.Status == "" {
		appointment.Status = models.StatusScheduled
	}
	if err := utils.ValidateAppointmentData(*appointment); err != nil {
		return fmt.Errorf("invalid appointment data: %w", err)
	}

	patient, err := s.patientRepo.GetByID(ctx, appointment.PatientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return errors.New("patient not found")
	}
	doctor, err := s.doctorRepo.GetByID(ctx, appointment.DoctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return errors.New("doctor not found")
	}

	if err := s.ensureSlotFree(ctx, appointment.DoctorID, appointment.AppointmentDate, appointment.AppointmentTime, ""); err != nil {
		return err
	}

	appointment.ID = uuid.New().String()
	appointment.PatientName = patient.DisplayName()
	appointment.PatientAge = patient.Age
	appointment.PatientGender = patient.Gender
	appointment.DoctorName = doctor.DisplayName()
	appointment.HospitalName = doctor.HospitalName

	return s.repository.Create(ctx, appointment)
}

// ListForActor returns the caller's appointments grouped into buckets,
// with the optional filters applied inside each bucket.
func (s *AppointmentService) ListForActor(ctx context.Context, actor ActorContext, opts FilterOptions) (Buckets, error) {
	appointments, err := s.repository.GetForActor(ctx, actor.ID, actor.Role)
	if err != nil {
		return Buckets{}, err
	}
	buckets := ClassifyAppointments(appointments, time.Now().UTC())
	buckets.Today = ApplyFilters(buckets.Today, opts)
	buckets.Upcoming = ApplyFilters(buckets.Upcoming, opts)
	buckets.Previous = ApplyFilters(buckets.Previous, opts)
	buckets.Cancelled = ApplyFilters(buckets.Cancelled, opts)
	return buckets, nil
}

func (s *AppointmentService) GetByID(ctx context.Context, actor ActorContext, id string) (*models.Appointment, error) {
	appointment, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if err := actorMayAccess(actor, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Reschedule moves an appointment to a new date and slot. Only the date
// and slot change; terminal appointments are immovable.
func (s *AppointmentService) Reschedule(ctx context.Context, actor ActorContext, id, newDate, newSlot string) (*models.Appointment, error) {
	appointment, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if appointment.IsCancelled() {
		return nil, ErrAppointmentCancelled
	}
	if appointment.IsTerminal() {
		return nil, ErrAppointmentTerminal
	}

	// An omitted date keeps the appointment on its current day
	if newDate == "" {
		newDate = appointment.AppointmentDate
	}
	if _, err := time.Parse(models.DateLayout, newDate); err != nil {
		return nil, fmt.Errorf("invalid appointment date %q", newDate)
	}
	if !models.IsValidTimeSlot(newSlot) {
		return nil, fmt.Errorf("invalid time slot %q", newSlot)
	}

	if err := s.ensureSlotFree(ctx, appointment.DoctorID, newDate, newSlot, appointment.ID); err != nil {
		return nil, err
	}

	err = s.repository.Patch(ctx, appointment, map[string]interface{}{
		"appointment_date": newDate,
		"appointment_time": newSlot,
	})
	if err != nil {
		return nil, err
	}
	appointment.AppointmentDate = newDate
	appointment.AppointmentTime = newSlot
	return appointment, nil
}

// Cancel moves an appointment into the terminal Cancelled state. Online
// appointments with a fully paid invoice require the caller to confirm
// the payment return first; Onsite cancellations never do.
func (s *AppointmentService) Cancel(ctx context.Context, actor ActorContext, id string, confirmPaymentReturn bool) (*models.Appointment, error) {
	appointment, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if appointment.IsCancelled() {
		return nil, ErrAppointmentCancelled
	}
	if appointment.IsTerminal() {
		return nil, ErrAppointmentTerminal
	}

	if appointment.AppointmentType == models.TypeOnline && !confirmPaymentReturn {
		invoice, err := s.invoiceRepo.GetByAppointment(ctx, appointment.ID)
		if err != nil {
			return nil, err
		}
		if invoice != nil && invoice.Status == models.InvoiceStatusPaid {
			return nil, ErrPaymentReturnPending
		}
	}

	err = s.repository.Patch(ctx, appointment, map[string]interface{}{
		"status": models.StatusCancelled,
	})
	if err != nil {
		return nil, err
	}
	appointment.Status = models.StatusCancelled
	return appointment, nil
}

// Complete marks an appointment as done. Doctors call this after the
// consultation, usually via prescription issuance.
func (s *AppointmentService) Complete(ctx context.Context, actor ActorContext, id string) (*models.Appointment, error) {
	appointment, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if appointment.IsCancelled() {
		return nil, ErrAppointmentCancelled
	}
	if appointment.IsTerminal() {
		return nil, ErrAppointmentTerminal
	}

	err = s.repository.Patch(ctx, appointment, map[string]interface{}{
		"status": models.StatusCompleted,
	})
	if err != nil {
		return nil, err
	}
	appointment.Status = models.StatusCompleted
	return appointment, nil
}

// ensureSlotFree rejects a (doctor, date, slot) cell that already holds a
// non-cancelled appointment or that the doctor has blocked. excludeID
// lets a reschedule keep its own current slot.
func (s *AppointmentService) ensureSlotFree(ctx context.Context, doctorID, date, timeSlot, excludeID string) error {
	existing, err := s.repository.FindActiveBySlot(ctx, doctorID, date, timeSlot)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != excludeID {
		return ErrSlotTaken
	}

	blocked, err := s.blockedSlotRepo.ListForDates(ctx, doctorID, []string{date})
	if err != nil {
		return err
	}
	for _, slot := range blocked {
		if slot.TimeSlot == timeSlot {
			return ErrSlotBlocked
		}
	}
	return nil
}

func actorMayAccess(actor ActorContext, appointment *models.Appointment) error {
	switch actor.Role {
	case "Admin":
		return nil
	case "Doctor":
		if appointment.DoctorID == actor.ID {
			return nil
		}
	case "Patient":
		if appointment.PatientID == actor.ID {
			return nil
		}
	}
	return ErrForbidden
}
