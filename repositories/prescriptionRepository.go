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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PrescriptionCacheExpiry = 7 * 24 * time.Hour
)

type PrescriptionRepository struct {
	cache *cache.Cache
}

func NewPrescriptionRepository(cache *cache.Cache) *PrescriptionRepository {
	return &PrescriptionRepository{cache: cache}
}

func (r *PrescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	if prescription.ID == "" {
		prescription.ID = uuid.New().String()
	}

	release, err := acquireLock(ctx, fmt.Sprintf("prescription_lock:%s", prescription.ID))
	if err != nil {
		return err
	}
	defer release()

	if err := database.DB.Create(prescription).Error; err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return r.invalidate(ctx, prescription)
}

func (r *PrescriptionRepository) GetByID(ctx context.Context, id string) (*models.Prescription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf("prescription_cache:%s", id)
	cachedPrescription, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedPrescription != "" {
		var prescription models.Prescription
		if err := json.Unmarshal([]byte(cachedPrescription), &prescription); err == nil {
			return &prescription, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get prescription from cache: %v", err)
	}

	var prescription models.Prescription
	err = database.DB.First(&prescription, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}

	prescriptionJSON, err := json.Marshal(prescription)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prescription: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, prescriptionJSON, PrescriptionCacheExpiry); err != nil {
		log.Printf("Failed to set prescription in cache: %v", err)
	}

	return &prescription, nil
}

// GetByAppointment returns the prescription written for an appointment,
// or nil when none has been issued yet.
func (r *PrescriptionRepository) GetByAppointment(ctx context.Context, appointmentID string) (*models.Prescription, error) {
	var prescription models.Prescription
	err := database.DB.First(&prescription, "appointment_id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prescription by appointment: %w", err)
	}
	return &prescription, nil
}

// GetForActor lists prescriptions scoped to the caller: doctors see what
// they wrote, patients see what they received, admins see everything.
func (r *PrescriptionRepository) GetForActor(ctx context.Context, actorID, role string) ([]models.Prescription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getActorCacheKey(actorID, role)
	cachedPrescriptions, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedPrescriptions != "" {
		var prescriptions []models.Prescription
		if err := json.Unmarshal([]byte(cachedPrescriptions), &prescriptions); err == nil {
			return prescriptions, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get prescriptions from cache: %v", err)
	}

	query := database.DB.Order("created_at DESC")
	switch role {
	case "Doctor":
		query = query.Where("doctor_id = ?", actorID)
	case "Patient":
		query = query.Where("patient_id = ?", actorID)
	}

	var prescriptions []models.Prescription
	if err := query.Find(&prescriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}

	prescriptionsJSON, err := json.Marshal(prescriptions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prescriptions: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, prescriptionsJSON, PrescriptionCacheExpiry); err != nil {
		log.Printf("Failed to set prescriptions in cache: %v", err)
	}

	return prescriptions, nil
}

func (r *PrescriptionRepository) Update(ctx context.Context, prescription *models.Prescription) error {
	release, err := acquireLock(ctx, fmt.Sprintf("prescription_lock:%s", prescription.ID))
	if err != nil {
		return err
	}
	defer release()

	if err := database.DB.Save(prescription).Error; err != nil {
		return fmt.Errorf("failed to update prescription: %w", err)
	}
	return r.invalidate(ctx, prescription)
}

func (r *PrescriptionRepository) invalidate(ctx context.Context, prescription *models.Prescription) error {
	keys := []string{
		fmt.Sprintf("prescription_cache:%s", prescription.ID),
		r.getActorCacheKey(prescription.DoctorID, "Doctor"),
		r.getActorCacheKey(prescription.PatientID, "Patient"),
		"prescriptions_cache:all",
	}
	if err := r.cache.DeleteBatch(ctx, keys...); err != nil {
		return fmt.Errorf("failed to delete prescription cache: %w", err)
	}
	return nil
}

func (r *PrescriptionRepository) getActorCacheKey(actorID, role string) string {
	if role == "Admin" {
		return "prescriptions_cache:all"
	}
	return fmt.Sprintf("prescriptions_cache:%s:%s", role, actorID)
}
