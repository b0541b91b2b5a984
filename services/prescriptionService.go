package services

import (
	"CarePulse/models"
	"CarePulse/repositories"
	"context"
	"errors"
	"fmt"
)

var ErrPrescriptionNotFound = errors.New("prescription not found")

type PrescriptionService struct {
	repository      *repositories.PrescriptionRepository
	appointmentRepo *repositories.AppointmentRepository
}

func NewPrescriptionService(repository *repositories.PrescriptionRepository, appointmentRepo *repositories.AppointmentRepository) *PrescriptionService {
	return &PrescriptionService{repository: repository, appointmentRepo: appointmentRepo}
}

// Issue writes a prescription for an appointment and completes the
// appointment in the same flow, matching how a consultation ends.
func (s *PrescriptionService) Issue(ctx context.Context, actor ActorContext, prescription *models.Prescription) error {
	if len(prescription.Medicines) == 0 {
		return errors.New("prescription needs at least one medicine")
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, prescription.AppointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if err := actorMayAccess(actor, appointment); err != nil {
		return err
	}
	if appointment.IsCancelled() {
		return ErrAppointmentCancelled
	}

	existing, err := s.repository.GetByAppointment(ctx, prescription.AppointmentID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("appointment %s already has a prescription", prescription.AppointmentID)
	}

	prescription.PatientID = appointment.PatientID
	prescription.DoctorID = appointment.DoctorID
	if err := s.repository.Create(ctx, prescription); err != nil {
		return err
	}

	if !appointment.IsTerminal() {
		err = s.appointmentRepo.Patch(ctx, appointment, map[string]interface{}{
			"status": models.StatusCompleted,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *PrescriptionService) GetByID(ctx context.Context, id string) (*models.Prescription, error) {
	prescription, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	return prescription, nil
}

func (s *PrescriptionService) ListForActor(ctx context.Context, actor ActorContext) ([]models.Prescription, error) {
	return s.repository.GetForActor(ctx, actor.ID, actor.Role)
}

// Amend lets the issuing doctor revise medicines or the note.
func (s *PrescriptionService) Amend(ctx context.Context, actor ActorContext, prescription *models.Prescription) error {
	existing, err := s.GetByID(ctx, prescription.ID)
	if err != nil {
		return err
	}
	if actor.Role != "Admin" && existing.DoctorID != actor.ID {
		return ErrForbidden
	}
	if len(prescription.Medicines) == 0 {
		return errors.New("prescription needs at least one medicine")
	}

	existing.Medicines = prescription.Medicines
	existing.AdditionalNote = prescription.AdditionalNote
	return s.repository.Update(ctx, existing)
}
