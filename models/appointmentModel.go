package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used everywhere an appointment
// date is stored or compared. Appointments carry date semantics only;
// time of day lives in the slot label.
const DateLayout = "2006-01-02"

// Appointment statuses. An empty status column is treated as Scheduled;
// Cancelled and Completed are terminal.
const (
	StatusPending   = "Pending"
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Appointment types.
const (
	TypeOnline = "Online"
	TypeOnsite = "Onsite"
)

// Appointment model. Patient and doctor display fields are snapshots
// copied at booking time; consumers must tolerate them going stale.
type Appointment struct {
	ID              string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID       string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID        string    `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	AppointmentDate string    `gorm:"column:appointment_date;not null;index" json:"appointment_date"`
	AppointmentTime string    `gorm:"column:appointment_time;not null" json:"appointment_time"`
	AppointmentType string    `gorm:"column:appointment_type;check:appointment_type IN ('Online', 'Onsite');not null" json:"appointment_type"`
	Status          string    `gorm:"column:status;check:status IN ('Pending', 'Scheduled', 'Completed', 'Cancelled');not null;default:'Scheduled'" json:"status"`
	DiseaseName     string    `gorm:"column:disease_name" json:"disease_name"`
	PatientIssue    string    `gorm:"type:text;column:patient_issue" json:"patient_issue"`
	PatientName     string    `gorm:"column:patient_name" json:"patient_name"`
	DoctorName      string    `gorm:"column:doctor_name" json:"doctor_name"`
	HospitalName    string    `gorm:"column:hospital_name" json:"hospital_name"`
	PatientAge      int       `gorm:"column:patient_age" json:"patient_age"`
	PatientGender   string    `gorm:"column:patient_gender" json:"patient_gender"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient         Patient   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor          Doctor    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// IsCancelled reports whether the appointment sits in the terminal
// Cancelled state. An empty status counts as active.
func (a Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsTerminal reports whether no further lifecycle transition is permitted.
func (a Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// DateOnly parses the appointment's calendar date. The boolean is false
// when the stored date is missing or malformed; such records are kept out
// of date-based views without raising an error.
func (a Appointment) DateOnly() (time.Time, bool) {
	t, err := time.Parse(DateLayout, a.AppointmentDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Slot grid bounds: hourly slots from 08:00 through 20:00 inclusive.
const (
	SlotFirstHour = 8
	SlotLastHour  = 20
	SlotCount     = SlotLastHour - SlotFirstHour + 1
	DaysPerWeek   = 7
)

// SlotLabel formats an hour (24h clock) as the 12-hour display label used
// to key slots, e.g. 8 -> "8:00 AM", 12 -> "12:00 PM", 14 -> "2:00 PM".
func SlotLabel(hour int) string {
	switch {
	case hour < 12:
		return fmt.Sprintf("%d:00 AM", hour)
	case hour == 12:
		return "12:00 PM"
	default:
		return fmt.Sprintf("%d:00 PM", hour-12)
	}
}

// TimeSlots returns the fixed 13-slot enumeration in grid order.
func TimeSlots() []string {
	slots := make([]string, 0, SlotCount)
	for hour := SlotFirstHour; hour <= SlotLastHour; hour++ {
		slots = append(slots, SlotLabel(hour))
	}
	return slots
}

// IsValidTimeSlot reports whether label is one of the canonical slot labels.
func IsValidTimeSlot(label string) bool {
	for hour := SlotFirstHour; hour <= SlotLastHour; hour++ {
		if SlotLabel(hour) == label {
			return true
		}
	}
	return false
}

// BlockedSlot marks a (date, slot) cell a doctor has made unavailable,
// with a note. Blocked slots are independent of appointments.
type BlockedSlot struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	DoctorID  string    `gorm:"column:doctor_id;not null;index;uniqueIndex:idx_doctor_date_slot" json:"doctor_id"`
	Date      string    `gorm:"column:date;not null;uniqueIndex:idx_doctor_date_slot" json:"date"`
	TimeSlot  string    `gorm:"column:time_slot;not null;uniqueIndex:idx_doctor_date_slot" json:"time_slot"`
	Note      string    `gorm:"type:text;column:note" json:"note"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Doctor    Doctor    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (BlockedSlot) TableName() string {
	return "blocked_slot"
}
