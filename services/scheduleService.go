package services

import (
	"CarePulse/models"
	"CarePulse/repositories"
	"CarePulse/utils"
	"context"
	"fmt"
	"time"
)

// Cell states in the weekly grid.
const (
	CellAvailable = "Available"
	CellBooked    = "Booked"
	CellBlocked   = "Blocked"
)

// ScheduleCell is one (slot, day) position in a doctor's weekly grid.
type ScheduleCell struct {
	State         string `json:"state"`
	AppointmentID string `json:"appointment_id,omitempty"`
	PatientName   string `json:"patient_name,omitempty"`
	DiseaseName   string `json:"disease_name,omitempty"`
	Note          string `json:"note,omitempty"`
}

// WeekSchedule is the fixed weekly grid: one row per time slot, one
// column per day starting at WeekStart. Rows follow the canonical slot
// order, 8 AM through 8 PM.
type WeekSchedule struct {
	WeekStart string                              `json:"week_start"`
	Dates     []string                            `json:"dates"`
	Slots     []string                            `json:"slots"`
	Cells     [models.SlotCount][models.DaysPerWeek]ScheduleCell `json:"cells"`
}

// WeekDates enumerates the seven calendar dates beginning at weekStart.
func WeekDates(weekStart time.Time) []string {
	dates := make([]string, 0, models.DaysPerWeek)
	for day := 0; day < models.DaysPerWeek; day++ {
		dates = append(dates, weekStart.AddDate(0, 0, day).Format(models.DateLayout))
	}
	return dates
}

// BuildWeekGrid assembles the grid from a doctor's appointments and
// blocked slots. It is pure: cancelled appointments never occupy a cell,
// and an appointment outside the week or the slot enumeration is ignored.
func BuildWeekGrid(weekStart time.Time, appointments []models.Appointment, blocked []models.BlockedSlot) WeekSchedule {
	dates := WeekDates(weekStart)
	schedule := WeekSchedule{
		WeekStart: weekStart.Format(models.DateLayout),
		Dates:     dates,
		Slots:     models.TimeSlots(),
	}

	dayIndex := make(map[string]int, len(dates))
	for i, date := range dates {
		dayIndex[date] = i
	}
	slotIndex := make(map[string]int, len(schedule.Slots))
	for i, slot := range schedule.Slots {
		slotIndex[slot] = i
	}

	for row := range schedule.Cells {
		for col := range schedule.Cells[row] {
			schedule.Cells[row][col] = ScheduleCell{State: CellAvailable}
		}
	}

	for _, slot := range blocked {
		row, okRow := slotIndex[slot.TimeSlot]
		col, okCol := dayIndex[slot.Date]
		if !okRow || !okCol {
			continue
		}
		schedule.Cells[row][col] = ScheduleCell{State: CellBlocked, Note: slot.Note}
	}

	for _, appointment := range appointments {
		if appointment.IsCancelled() {
			continue
		}
		row, okRow := slotIndex[appointment.AppointmentTime]
		col, okCol := dayIndex[appointment.AppointmentDate]
		if !okRow || !okCol {
			continue
		}
		schedule.Cells[row][col] = ScheduleCell{
			State:         CellBooked,
			AppointmentID: appointment.ID,
			PatientName:   appointment.PatientName,
			DiseaseName:   appointment.DiseaseName,
		}
	}

	return schedule
}

type ScheduleService struct {
	appointmentRepo *repositories.AppointmentRepository
	blockedSlotRepo *repositories.BlockedSlotRepository
	doctorRepo      *repositories.DoctorRepository
}

func NewScheduleService(
	appointmentRepo *repositories.AppointmentRepository,
	blockedSlotRepo *repositories.BlockedSlotRepository,
	doctorRepo *repositories.DoctorRepository,
) *ScheduleService {
	return &ScheduleService{
		appointmentRepo: appointmentRepo,
		blockedSlotRepo: blockedSlotRepo,
		doctorRepo:      doctorRepo,
	}
}

// GetWeek returns a doctor's grid for the week containing, or offset
// from, the reference date. offset moves whole weeks, so -1 is the
// previous week and +1 the next.
func (s *ScheduleService) GetWeek(ctx context.Context, doctorID, referenceDate string, offset int) (WeekSchedule, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return WeekSchedule{}, err
	}
	if doctor == nil {
		return WeekSchedule{}, fmt.Errorf("doctor %s not found", doctorID)
	}

	reference := time.Now().UTC()
	if referenceDate != "" {
		reference, err = time.Parse(models.DateLayout, referenceDate)
		if err != nil {
			return WeekSchedule{}, fmt.Errorf("invalid reference date %q", referenceDate)
		}
	}
	weekStart := StartOfWeek(reference).AddDate(0, 0, offset*models.DaysPerWeek)
	dates := WeekDates(weekStart)

	appointments, err := s.appointmentRepo.GetForActor(ctx, doctorID, "Doctor")
	if err != nil {
		return WeekSchedule{}, err
	}
	blocked, err := s.blockedSlotRepo.ListForDates(ctx, doctorID, dates)
	if err != nil {
		return WeekSchedule{}, err
	}

	return BuildWeekGrid(weekStart, appointments, blocked), nil
}

// BlockSlot marks one grid cell unavailable for booking.
func (s *ScheduleService) BlockSlot(ctx context.Context, slot *models.BlockedSlot) error {
	if err := utils.ValidateBlockedSlotData(*slot); err != nil {
		return fmt.Errorf("invalid blocked slot: %w", err)
	}
	existing, err := s.appointmentRepo.FindActiveBySlot(ctx, slot.DoctorID, slot.Date, slot.TimeSlot)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrSlotTaken
	}
	return s.blockedSlotRepo.Create(ctx, slot)
}

// UnblockSlot removes a block, returning the cell to Available.
func (s *ScheduleService) UnblockSlot(ctx context.Context, id uint, doctorID string) error {
	return s.blockedSlotRepo.Delete(ctx, id, doctorID)
}

// StartOfWeek truncates a date to the Monday of its week.
func StartOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(midnight.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return midnight.AddDate(0, 0, 1-weekday)
}
