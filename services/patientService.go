package services

import (
	"CarePulse/models"
	"CarePulse/repositories"
	"context"
	"time"
)

type PatientService struct {
	repository *repositories.PatientRepository
}

func NewPatientService(repository *repositories.PatientRepository) *PatientService {
	return &PatientService{repository: repository}
}

func (s *PatientService) Create(ctx context.Context, patient *models.Patient) error {
	patient.Age = ageFromDOB(patient.DateOfBirth, time.Now().UTC())
	return s.repository.Create(ctx, patient)
}

func (s *PatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	return s.repository.GetAll(ctx)
}

func (s *PatientService) Update(ctx context.Context, patient *models.Patient) error {
	patient.Age = ageFromDOB(patient.DateOfBirth, time.Now().UTC())
	return s.repository.Update(ctx, patient)
}

func (s *PatientService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}

func (s *PatientService) AddRecord(ctx context.Context, record *models.MedicalRecord) error {
	return s.repository.CreateRecord(ctx, record)
}

func (s *PatientService) ListRecords(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	return s.repository.ListRecords(ctx, patientID)
}

// ageFromDOB derives whole years from the stored date of birth. A
// missing or malformed date yields zero rather than an error.
func ageFromDOB(dob string, now time.Time) int {
	born, err := time.Parse(models.DateLayout, dob)
	if err != nil {
		return 0
	}
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
