package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MedicineLine is one prescribed medicine on a prescription.
type MedicineLine struct {
	Name       string `json:"name"`
	Strength   string `json:"strength"`
	Dose       string `json:"dose"`
	Duration   string `json:"duration"`
	WhenToTake string `json:"when_to_take"`
}

// MedicineLineList stores prescription lines as a JSON column.
type MedicineLineList []MedicineLine

func (l MedicineLineList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal medicine lines: %w", err)
	}
	return string(b), nil
}

func (l *MedicineLineList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for medicine lines", value)
	}
	return json.Unmarshal(b, l)
}

// Prescription model. Writing a prescription is what completes the
// consulted appointment.
type Prescription struct {
	ID             string           `gorm:"primaryKey;column:id" json:"id"`
	AppointmentID  string           `gorm:"column:appointment_id;not null;index" json:"appointment_id"`
	PatientID      string           `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID       string           `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	Medicines      MedicineLineList `gorm:"type:text;column:medicines" json:"medicines"`
	AdditionalNote string           `gorm:"type:text;column:additional_note" json:"additional_note"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient        Patient          `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor         Doctor           `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Prescription) TableName() string {
	return "prescription"
}
