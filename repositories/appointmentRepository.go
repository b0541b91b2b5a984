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
	AppointmentCacheExpiry = 24 * time.Hour
)

type AppointmentRepository struct {
	cache *cache.Cache
}

func NewAppointmentRepository(cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{cache: cache}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	if appointment.Status == "" {
		appointment.Status = models.StatusScheduled
	}

	release, err := acquireLock(ctx, fmt.Sprintf("appointment_lock:%s", appointment.ID))
	if err != nil {
		return err
	}
	defer release()

	if err := database.DB.Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return r.invalidate(ctx, appointment)
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getAppointmentCacheKey(id)
	cachedAppointment, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedAppointment != "" {
		var appointment models.Appointment
		if err := json.Unmarshal([]byte(cachedAppointment), &appointment); err == nil {
			return &appointment, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get appointment from cache: %v", err)
	}

	var appointment models.Appointment
	err = database.DB.First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	appointmentJSON, err := json.Marshal(appointment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointment: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, appointmentJSON, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointment in cache: %v", err)
	}

	return &appointment, nil
}

// GetForActor returns the appointment set visible to an actor: a doctor
// or patient sees their own rows, an admin sees everything.
func (r *AppointmentRepository) GetForActor(ctx context.Context, actorID, role string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getActorCacheKey(actorID, role)
	cachedAppointments, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedAppointments != "" {
		var appointments []models.Appointment
		if err := json.Unmarshal([]byte(cachedAppointments), &appointments); err == nil {
			return appointments, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get appointments from cache: %v", err)
	}

	query := database.DB.Order("appointment_date ASC, appointment_time ASC")
	switch role {
	case "Doctor":
		query = query.Where("doctor_id = ?", actorID)
	case "Patient":
		query = query.Where("patient_id = ?", actorID)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to get appointments: %w", err)
	}

	appointmentsJSON, err := json.Marshal(appointments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointments: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, appointmentsJSON, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointments in cache: %v", err)
	}

	return appointments, nil
}

// FindActiveBySlot looks for a non-cancelled appointment occupying the
// given (doctor, date, slot) cell. Returns nil when the cell is free.
func (r *AppointmentRepository) FindActiveBySlot(ctx context.Context, doctorID, date, timeSlot string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := database.DB.
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status <> ?",
			doctorID, date, timeSlot, models.StatusCancelled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check slot occupancy: %w", err)
	}
	return &appointment, nil
}

// Patch applies a partial update to the appointment row and refreshes the
// caches. Only the provided columns are written.
func (r *AppointmentRepository) Patch(ctx context.Context, appointment *models.Appointment, fields map[string]interface{}) error {
	release, err := acquireLock(ctx, fmt.Sprintf("appointment_lock:%s", appointment.ID))
	if err != nil {
		return err
	}
	defer release()

	result := database.DB.Model(&models.Appointment{}).
		Where("id = ?", appointment.ID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update appointment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("appointment not found")
	}
	return r.invalidate(ctx, appointment)
}

func (r *AppointmentRepository) invalidate(ctx context.Context, appointment *models.Appointment) error {
	if err := r.cache.Delete(ctx, r.getAppointmentCacheKey(appointment.ID)); err != nil {
		return fmt.Errorf("failed to delete appointment cache: %w", err)
	}
	return r.cache.DeleteBatch(ctx,
		r.getActorCacheKey(appointment.DoctorID, "Doctor"),
		r.getActorCacheKey(appointment.PatientID, "Patient"),
		r.getActorCacheKey("", "Admin"),
	)
}

func (r *AppointmentRepository) getAppointmentCacheKey(id string) string {
	return fmt.Sprintf("appointment_cache:%s", id)
}

func (r *AppointmentRepository) getActorCacheKey(actorID, role string) string {
	if role == "Admin" {
		return "appointments_cache:all"
	}
	return fmt.Sprintf("appointments_cache:%s:%s", role, actorID)
}
