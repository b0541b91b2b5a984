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
	DoctorCacheExpiry = 7 * 24 * time.Hour
)

type DoctorRepository struct {
	cache *cache.Cache
}

func NewDoctorRepository(cache *cache.Cache) *DoctorRepository {
	return &DoctorRepository{cache: cache}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	release, err := acquireLock(ctx, fmt.Sprintf("doctor_lock:%s", doctor.ID))
	if err != nil {
		return err
	}
	defer release()

	if err := database.DB.Create(doctor).Error; err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return r.invalidate(ctx, doctor.ID)
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getDoctorCacheKey(id)
	cachedDoctor, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedDoctor != "" {
		var doctor models.Doctor
		if err := json.Unmarshal([]byte(cachedDoctor), &doctor); err == nil {
			return &doctor, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get doctor from cache: %v", err)
	}

	var doctor models.Doctor
	err = database.DB.First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	doctorJSON, err := json.Marshal(doctor)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal doctor: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, doctorJSON, DoctorCacheExpiry); err != nil {
		log.Printf("Failed to set doctor in cache: %v", err)
	}

	return &doctor, nil
}

// GetByUserID finds the doctor profile linked to a login account.
// Returns nil when the account has no doctor profile.
func (r *DoctorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Doctor, error) {
	var doctor models.Doctor
	err := database.DB.First(&doctor, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor by user: %w", err)
	}
	return &doctor, nil
}

func (r *DoctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "doctors_cache"
	cachedDoctors, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedDoctors != "" {
		var doctors []models.Doctor
		if err := json.Unmarshal([]byte(cachedDoctors), &doctors); err == nil {
			return doctors, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get doctors from cache: %v", err)
	}

	var doctors []models.Doctor
	err = database.DB.Order("last_name ASC").Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all doctors: %w", err)
	}

	doctorsJSON, err := json.Marshal(doctors)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal doctors: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, doctorsJSON, DoctorCacheExpiry); err != nil {
		log.Printf("Failed to set doctors in cache: %v", err)
	}

	return doctors, nil
}

func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	release, err := acquireLock(ctx, fmt.Sprintf("doctor_lock:%s", doctor.ID))
	if err != nil {
		return err
	}
	defer release()

	if err := database.DB.Save(doctor).Error; err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return r.invalidate(ctx, doctor.ID)
}

func (r *DoctorRepository) Delete(ctx context.Context, id string) error {
	release, err := acquireLock(ctx, fmt.Sprintf("doctor_lock:%s", id))
	if err != nil {
		return err
	}
	defer release()

	if err := database.DB.Delete(&models.Doctor{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return r.invalidate(ctx, id)
}

func (r *DoctorRepository) invalidate(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, r.getDoctorCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete doctor cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "doctors_cache")
}

func (r *DoctorRepository) getDoctorCacheKey(id string) string {
	return fmt.Sprintf("doctor_cache:%s", id)
}
