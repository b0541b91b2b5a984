package utils

import (
	"CarePulse/models"
	"errors"
	"log"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
	ErrInvalidResetCode   = errors.New("invalid reset code")
)

// ValidateUserData validates user data using ozzo-validation.
func ValidateUserData(user models.User) error {
	err := validation.ValidateStruct(&user,
		validation.Field(&user.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(resetCode, newPassword string) error {
	err := validation.Errors{
		"resetCode": validation.Validate(resetCode, validation.Required.Error("invalid reset code")),
		"password":  validation.Validate(newPassword, validation.Required, validation.By(validatePassword)),
	}.Filter()
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateAppointmentData validates a booking request before it reaches
// the store: both parties present, a well-formed calendar date, a
// canonical slot label and a known appointment type. A booking can only
// start out Pending or Scheduled; the terminal states are reached
// through cancel and complete, never set directly.
func ValidateAppointmentData(appointment models.Appointment) error {
	return validation.ValidateStruct(&appointment,
		validation.Field(&appointment.PatientID, validation.Required),
		validation.Field(&appointment.DoctorID, validation.Required),
		validation.Field(&appointment.AppointmentDate, validation.Required, validation.Date(models.DateLayout)),
		validation.Field(&appointment.AppointmentTime, validation.Required, validation.By(validateTimeSlot)),
		validation.Field(&appointment.AppointmentType, validation.Required, validation.In(models.TypeOnline, models.TypeOnsite)),
		validation.Field(&appointment.Status, validation.In(models.StatusPending, models.StatusScheduled)),
	)
}

// ValidateInvoiceData validates invoice fields before totals are derived.
func ValidateInvoiceData(invoice models.Invoice) error {
	return validation.ValidateStruct(&invoice,
		validation.Field(&invoice.PatientID, validation.Required),
		validation.Field(&invoice.DoctorID, validation.Required),
		validation.Field(&invoice.Amount, validation.Required, validation.Min(0.01)),
		validation.Field(&invoice.Tax, validation.Min(0.0)),
		validation.Field(&invoice.Discount, validation.Min(0.0)),
		validation.Field(&invoice.Status, validation.In(models.InvoiceStatusPaid, models.InvoiceStatusUnpaid)),
	)
}

// ValidateBlockedSlotData validates a blocked-slot request.
func ValidateBlockedSlotData(slot models.BlockedSlot) error {
	return validation.ValidateStruct(&slot,
		validation.Field(&slot.DoctorID, validation.Required),
		validation.Field(&slot.Date, validation.Required, validation.Date(models.DateLayout)),
		validation.Field(&slot.TimeSlot, validation.Required, validation.By(validateTimeSlot)),
		validation.Field(&slot.Note, validation.Required),
	)
}

func validateTimeSlot(value interface{}) error {
	label, _ := value.(string)
	if !models.IsValidTimeSlot(label) {
		return errors.New("must be one of the hourly slots between 8:00 AM and 8:00 PM")
	}
	return nil
}

// ValidateDateRange checks an optional from/to filter pair. Each bound
// may be supplied on its own; a provided bound must parse, and when both
// are present from must not sit after to.
func ValidateDateRange(fromDate, toDate string) error {
	var from, to time.Time
	if fromDate != "" {
		parsed, err := time.Parse(models.DateLayout, fromDate)
		if err != nil {
			return errors.New("fromDate must be formatted as YYYY-MM-DD")
		}
		from = parsed
	}
	if toDate != "" {
		parsed, err := time.Parse(models.DateLayout, toDate)
		if err != nil {
			return errors.New("toDate must be formatted as YYYY-MM-DD")
		}
		to = parsed
	}
	if fromDate != "" && toDate != "" && from.After(to) {
		return errors.New("fromDate must not be after toDate")
	}
	return nil
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}
	return nil
}

// HashPassword hashes a plain-text password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a bcrypt hash against a plain-text candidate.
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
