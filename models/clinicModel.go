package models

import (
	"time"
)

// Doctor model. UserID links the profile to the login account that acts
// as this doctor; zero means no account has been linked yet.
type Doctor struct {
	ID            string         `gorm:"primaryKey;column:id" json:"id"`
	UserID        int64          `gorm:"column:user_id;index" json:"user_id"`
	FirstName     string         `gorm:"column:first_name;not null" json:"first_name"`
	LastName      string         `gorm:"column:last_name;not null;index" json:"last_name"`
	Specialty     string         `gorm:"column:specialty" json:"specialty"`
	Qualification string         `gorm:"column:qualification" json:"qualification"`
	HospitalName  string         `gorm:"column:hospital_name" json:"hospital_name"`
	Phone         string         `gorm:"column:phone" json:"phone"`
	Email         string         `gorm:"column:email" json:"email"`
	WorkingTime   string         `gorm:"column:working_time" json:"working_time"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointments  []Appointment  `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	Invoices      []Invoice      `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	BlockedSlots  []BlockedSlot  `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	Prescriptions []Prescription `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// DisplayName is the denormalized name copied onto appointments at booking time.
func (d Doctor) DisplayName() string {
	return d.FirstName + " " + d.LastName
}

// Patient model. UserID links the profile to the login account that acts
// as this patient; zero means no account has been linked yet.
type Patient struct {
	ID               string         `gorm:"primaryKey;column:id" json:"id"`
	UserID           int64          `gorm:"column:user_id;index" json:"user_id"`
	FirstName        string         `gorm:"column:first_name;not null" json:"first_name"`
	MiddleName       string         `gorm:"column:middle_name" json:"middle_name"`
	LastName         string         `gorm:"column:last_name;not null;index" json:"last_name"`
	Gender           string         `gorm:"column:gender;check:gender IN ('Male', 'Female', 'Other');not null" json:"gender"`
	DateOfBirth      string         `gorm:"column:date_of_birth;not null;index" json:"date_of_birth"`
	Age              int            `gorm:"column:age" json:"age"`
	BloodGroup       string         `gorm:"column:blood_group" json:"blood_group"`
	Phone            string         `gorm:"column:phone" json:"phone"`
	Email            string         `gorm:"column:email" json:"email"`
	Address          string         `gorm:"column:address" json:"address"`
	EmergencyName    string         `gorm:"column:emergency_name" json:"emergency_name"`
	EmergencyPhone   string         `gorm:"column:emergency_phone" json:"emergency_phone"`
	InsuranceCompany string         `gorm:"column:insurance_company" json:"insurance_company"`
	InsurancePlan    string         `gorm:"column:insurance_plan" json:"insurance_plan"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointments     []Appointment  `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Invoices         []Invoice      `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Prescriptions    []Prescription `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	MedicalRecords   []MedicalRecord `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// DisplayName is the denormalized name copied onto appointments at booking time.
func (p Patient) DisplayName() string {
	return p.FirstName + " " + p.LastName
}

// MedicalRecord model holds a free-form record entry attached to a patient,
// written by doctors during or after a consultation.
type MedicalRecord struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	PatientID   string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID    string    `gorm:"column:doctor_id;index" json:"doctor_id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient     Patient   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (MedicalRecord) TableName() string {
	return "medical_record"
}
