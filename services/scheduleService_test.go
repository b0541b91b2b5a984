package services

import (
	"CarePulse/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Monday
var gridWeekStart = time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)

func TestWeekDates(t *testing.T) {
	dates := WeekDates(gridWeekStart)

	assert.Len(t, dates, models.DaysPerWeek)
	assert.Equal(t, "2026-03-16", dates[0])
	assert.Equal(t, "2026-03-22", dates[6])
}

func TestStartOfWeek(t *testing.T) {
	// Wednesday resolves back to Monday
	wednesday := time.Date(2026, time.March, 18, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, gridWeekStart, StartOfWeek(wednesday))

	// Monday stays put
	assert.Equal(t, gridWeekStart, StartOfWeek(gridWeekStart))

	// Sunday belongs to the week that started the previous Monday
	sunday := time.Date(2026, time.March, 22, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, gridWeekStart, StartOfWeek(sunday))
}

func TestBuildWeekGridShape(t *testing.T) {
	schedule := BuildWeekGrid(gridWeekStart, nil, nil)

	assert.Equal(t, "2026-03-16", schedule.WeekStart)
	assert.Len(t, schedule.Slots, models.SlotCount)
	assert.Len(t, schedule.Dates, models.DaysPerWeek)
	assert.Equal(t, "12:00 PM", schedule.Slots[4])

	for row := range schedule.Cells {
		for col := range schedule.Cells[row] {
			assert.Equal(t, CellAvailable, schedule.Cells[row][col].State)
		}
	}
}

func TestBuildWeekGridPlacesAppointments(t *testing.T) {
	appointments := []models.Appointment{
		{
			ID:              "a1",
			AppointmentDate: "2026-03-17",
			AppointmentTime: "12:00 PM",
			Status:          models.StatusScheduled,
			PatientName:     "Jane Mwangi",
			DiseaseName:     "Migraine",
		},
	}

	schedule := BuildWeekGrid(gridWeekStart, appointments, nil)

	// Row 4 is the noon slot, column 1 is Tuesday
	cell := schedule.Cells[4][1]
	assert.Equal(t, CellBooked, cell.State)
	assert.Equal(t, "a1", cell.AppointmentID)
	assert.Equal(t, "Jane Mwangi", cell.PatientName)
	assert.Equal(t, "Migraine", cell.DiseaseName)
}

func TestBuildWeekGridSkipsCancelled(t *testing.T) {
	appointments := []models.Appointment{
		{ID: "a1", AppointmentDate: "2026-03-17", AppointmentTime: "9:00 AM", Status: models.StatusCancelled},
	}

	schedule := BuildWeekGrid(gridWeekStart, appointments, nil)
	assert.Equal(t, CellAvailable, schedule.Cells[1][1].State)
}

func TestBuildWeekGridIgnoresOutOfRange(t *testing.T) {
	appointments := []models.Appointment{
		// Outside the week
		{ID: "a1", AppointmentDate: "2026-03-25", AppointmentTime: "9:00 AM", Status: models.StatusScheduled},
		// Not a canonical slot label
		{ID: "a2", AppointmentDate: "2026-03-17", AppointmentTime: "9:30 AM", Status: models.StatusScheduled},
	}

	schedule := BuildWeekGrid(gridWeekStart, appointments, nil)
	for row := range schedule.Cells {
		for col := range schedule.Cells[row] {
			assert.Equal(t, CellAvailable, schedule.Cells[row][col].State)
		}
	}
}

func TestBuildWeekGridBlockedSlots(t *testing.T) {
	blocked := []models.BlockedSlot{
		{DoctorID: "d1", Date: "2026-03-16", TimeSlot: "8:00 AM", Note: "Ward rounds"},
	}
	appointments := []models.Appointment{
		{ID: "a1", AppointmentDate: "2026-03-16", AppointmentTime: "8:00 AM", Status: models.StatusScheduled},
	}

	schedule := BuildWeekGrid(gridWeekStart, appointments, blocked)

	// An appointment that slipped into a blocked cell wins the display
	cell := schedule.Cells[0][0]
	assert.Equal(t, CellBooked, cell.State)

	scheduleBlockedOnly := BuildWeekGrid(gridWeekStart, nil, blocked)
	cell = scheduleBlockedOnly.Cells[0][0]
	assert.Equal(t, CellBlocked, cell.State)
	assert.Equal(t, "Ward rounds", cell.Note)
}
