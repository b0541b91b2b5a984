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
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	BlockedSlotCacheExpiry = 24 * time.Hour
)

// ErrSlotAlreadyBlocked is returned when a doctor blocks the same slot twice.
var ErrSlotAlreadyBlocked = errors.New("slot already blocked")

type BlockedSlotRepository struct {
	cache *cache.Cache
}

func NewBlockedSlotRepository(cache *cache.Cache) *BlockedSlotRepository {
	return &BlockedSlotRepository{cache: cache}
}

func (r *BlockedSlotRepository) Create(ctx context.Context, slot *models.BlockedSlot) error {
	release, err := acquireLock(ctx, fmt.Sprintf("blocked_slot_lock:%s:%s", slot.DoctorID, slot.Date))
	if err != nil {
		return err
	}
	defer release()

	if err := database.DB.Create(slot).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return ErrSlotAlreadyBlocked
		}
		return fmt.Errorf("failed to create blocked slot: %w", err)
	}
	return r.invalidate(ctx, slot.DoctorID)
}

// ListForDates returns a doctor's blocked slots on the given dates.
func (r *BlockedSlotRepository) ListForDates(ctx context.Context, doctorID string, dates []string) ([]models.BlockedSlot, error) {
	var slots []models.BlockedSlot
	err := database.DB.Where("doctor_id = ? AND date IN ?", doctorID, dates).Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked slots: %w", err)
	}
	return slots, nil
}

func (r *BlockedSlotRepository) ListForDoctor(ctx context.Context, doctorID string) ([]models.BlockedSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getCacheKey(doctorID)
	cachedSlots, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedSlots != "" {
		var slots []models.BlockedSlot
		if err := json.Unmarshal([]byte(cachedSlots), &slots); err == nil {
			return slots, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get blocked slots from cache: %v", err)
	}

	var slots []models.BlockedSlot
	err = database.DB.Where("doctor_id = ?", doctorID).Order("date ASC").Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked slots: %w", err)
	}

	slotsJSON, err := json.Marshal(slots)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal blocked slots: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, slotsJSON, BlockedSlotCacheExpiry); err != nil {
		log.Printf("Failed to set blocked slots in cache: %v", err)
	}

	return slots, nil
}

func (r *BlockedSlotRepository) Delete(ctx context.Context, id uint, doctorID string) error {
	result := database.DB.Delete(&models.BlockedSlot{}, "id = ? AND doctor_id = ?", id, doctorID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete blocked slot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.invalidate(ctx, doctorID)
}

func (r *BlockedSlotRepository) invalidate(ctx context.Context, doctorID string) error {
	return r.cache.Delete(ctx, r.getCacheKey(doctorID))
}

func (r *BlockedSlotRepository) getCacheKey(doctorID string) string {
	return fmt.Sprintf("blocked_slots_cache:%s", doctorID)
}
