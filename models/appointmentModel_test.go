package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()

	assert.Len(t, slots, SlotCount)
	assert.Equal(t, "8:00 AM", slots[0])
	assert.Equal(t, "11:00 AM", slots[3])
	assert.Equal(t, "12:00 PM", slots[4])
	assert.Equal(t, "1:00 PM", slots[5])
	assert.Equal(t, "8:00 PM", slots[len(slots)-1])
}

func TestSlotLabelNoonBoundary(t *testing.T) {
	assert.Equal(t, "11:00 AM", SlotLabel(11))
	assert.Equal(t, "12:00 PM", SlotLabel(12))
	assert.Equal(t, "1:00 PM", SlotLabel(13))
}

func TestIsValidTimeSlot(t *testing.T) {
	assert.True(t, IsValidTimeSlot("8:00 AM"))
	assert.True(t, IsValidTimeSlot("12:00 PM"))
	assert.True(t, IsValidTimeSlot("8:00 PM"))

	assert.False(t, IsValidTimeSlot("7:00 AM"))
	assert.False(t, IsValidTimeSlot("9:00 PM"))
	assert.False(t, IsValidTimeSlot("0:00 PM"))
	assert.False(t, IsValidTimeSlot("12:00 AM"))
	assert.False(t, IsValidTimeSlot(""))
}

func TestDateOnly(t *testing.T) {
	appointment := Appointment{AppointmentDate: "2026-03-15"}
	date, ok := appointment.DateOnly()
	assert.True(t, ok)
	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, 15, date.Day())

	for _, malformed := range []string{"", "15-03-2026", "2026-13-40", "soon"} {
		_, ok := Appointment{AppointmentDate: malformed}.DateOnly()
		assert.False(t, ok, "expected %q to be rejected", malformed)
	}
}

func TestLifecycleStates(t *testing.T) {
	assert.False(t, Appointment{Status: StatusScheduled}.IsTerminal())
	assert.False(t, Appointment{Status: StatusPending}.IsTerminal())
	assert.True(t, Appointment{Status: StatusCompleted}.IsTerminal())
	assert.True(t, Appointment{Status: StatusCancelled}.IsTerminal())

	assert.True(t, Appointment{Status: StatusCancelled}.IsCancelled())
	assert.False(t, Appointment{Status: StatusCompleted}.IsCancelled())
	assert.False(t, Appointment{}.IsCancelled())
}
