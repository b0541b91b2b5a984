package repositories

import (
	"CarePulse/cache"
	"CarePulse/database"
	"CarePulse/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	PatientCacheExpiry = 7 * 24 * time.Hour
)

type PatientRepository struct {
	cache *cache.Cache
}

func NewPatientRepository(cache *cache.Cache) *PatientRepository {
	return &PatientRepository{cache: cache}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	release, err := acquireLock(ctx, fmt.Sprintf("patient_lock:%s", patient.ID))
	if err != nil {
		return err
	}
	defer release()

	if err := database.DB.Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return r.invalidate(ctx, patient.ID)
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getPatientCacheKey(id)
	cachedPatient, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedPatient != "" {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cachedPatient), &patient); err == nil {
			return &patient, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err = database.DB.First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	patientJSON, err := json.Marshal(patient)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patient: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, patientJSON, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patient in cache: %v", err)
	}

	return &patient, nil
}

// GetByUserID finds the patient profile linked to a login account.
// Returns nil when the account has no patient profile.
func (r *PatientRepository) GetByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	var patient models.Patient
	err := database.DB.First(&patient, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient by user: %w", err)
	}
	return &patient, nil
}

func (r *PatientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "patients_cache"
	cachedPatients, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedPatients != "" {
		var patients []models.Patient
		if err := json.Unmarshal([]byte(cachedPatients), &patients); err == nil {
			return patients, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get patients from cache: %v", err)
	}

	var patients []models.Patient
	err = database.DB.Order("last_name ASC").Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all patients: %w", err)
	}

	patientsJSON, err := json.Marshal(patients)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patients: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, patientsJSON, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patients in cache: %v", err)
	}

	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	release, err := acquireLock(ctx, fmt.Sprintf("patient_lock:%s", patient.ID))
	if err != nil {
		return err
	}
	defer release()

	if err := database.DB.Save(patient).Error; err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return r.invalidate(ctx, patient.ID)
}

func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	release, err := acquireLock(ctx, fmt.Sprintf("patient_lock:%s", id))
	if err != nil {
		return err
	}
	defer release()

	if err := database.DB.Delete(&models.Patient{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return r.invalidate(ctx, id)
}

// CreateRecord attaches a medical record entry to a patient.
func (r *PatientRepository) CreateRecord(ctx context.Context, record *models.MedicalRecord) error {
	if err := database.DB.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}
	return r.cache.Delete(ctx, r.getRecordsCacheKey(record.PatientID))
}

// ListRecords returns a patient's medical history, newest first.
func (r *PatientRepository) ListRecords(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	cacheKey := r.getRecordsCacheKey(patientID)
	cachedRecords, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedRecords != "" {
		var records []models.MedicalRecord
		if err := json.Unmarshal([]byte(cachedRecords), &records); err == nil {
			return records, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get medical records from cache: %v", err)
	}

	var records []models.MedicalRecord
	err = database.DB.Where("patient_id = ?", patientID).Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}

	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal medical records: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, recordsJSON, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set medical records in cache: %v", err)
	}

	return records, nil
}

func (r *PatientRepository) invalidate(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete patient cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "patients_cache")
}

func (r *PatientRepository) getPatientCacheKey(id string) string {
	return fmt.Sprintf("patient_cache:%s", id)
}

func (r *PatientRepository) getRecordsCacheKey(patientID string) string {
	return fmt.Sprintf("medical_records_cache:%s", patientID)
}
