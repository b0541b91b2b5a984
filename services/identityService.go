package services

import (
	"CarePulse/models"
	"context"
	"strconv"
)

// DoctorDirectory resolves doctor profiles by their linked login account.
// *repositories.DoctorRepository satisfies it.
type DoctorDirectory interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Doctor, error)
}

// PatientDirectory resolves patient profiles by their linked login account.
// *repositories.PatientRepository satisfies it.
type PatientDirectory interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Patient, error)
}

// IdentityService maps login accounts onto the domain actors they act as.
type IdentityService struct {
	doctors  DoctorDirectory
	patients PatientDirectory
}

func NewIdentityService(doctors DoctorDirectory, patients PatientDirectory) *IdentityService {
	return &IdentityService{doctors: doctors, patients: patients}
}

// ResolveProfileID returns the domain actor ID for an authenticated
// account. Admins act as themselves; doctors and patients act as the
// profile row linked to their account via user_id. An empty result with
// no error means no profile has been linked yet.
func (s *IdentityService) ResolveProfileID(ctx context.Context, userID int64, role string) (string, error) {
	switch role {
	case "Doctor":
		doctor, err := s.doctors.GetByUserID(ctx, userID)
		if err != nil {
			return "", err
		}
		if doctor == nil {
			return "", nil
		}
		return doctor.ID, nil
	case "Patient":
		patient, err := s.patients.GetByUserID(ctx, userID)
		if err != nil {
			return "", err
		}
		if patient == nil {
			return "", nil
		}
		return patient.ID, nil
	default:
		return strconv.FormatInt(userID, 10), nil
	}
}
