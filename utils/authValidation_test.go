package utils

import (
	"CarePulse/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validAppointment() models.Appointment {
	return models.Appointment{
		PatientID:       "p1",
		DoctorID:        "d1",
		AppointmentDate: "2026-09-01",
		AppointmentTime: "12:00 PM",
		AppointmentType: models.TypeOnsite,
		Status:          models.StatusScheduled,
	}
}

func TestValidateAppointmentData(t *testing.T) {
	assert.NoError(t, ValidateAppointmentData(validAppointment()))

	missingPatient := validAppointment()
	missingPatient.PatientID = ""
	assert.Error(t, ValidateAppointmentData(missingPatient))

	badDate := validAppointment()
	badDate.AppointmentDate = "01-09-2026"
	assert.Error(t, ValidateAppointmentData(badDate))

	badSlot := validAppointment()
	badSlot.AppointmentTime = "12:30 PM"
	assert.Error(t, ValidateAppointmentData(badSlot))

	badType := validAppointment()
	badType.AppointmentType = "Telepathy"
	assert.Error(t, ValidateAppointmentData(badType))

	// A booking cannot start out in a terminal state
	preCompleted := validAppointment()
	preCompleted.Status = models.StatusCompleted
	assert.Error(t, ValidateAppointmentData(preCompleted))

	preCancelled := validAppointment()
	preCancelled.Status = models.StatusCancelled
	assert.Error(t, ValidateAppointmentData(preCancelled))

	pending := validAppointment()
	pending.Status = models.StatusPending
	assert.NoError(t, ValidateAppointmentData(pending))
}

func TestValidateInvoiceData(t *testing.T) {
	invoice := models.Invoice{
		PatientID: "p1",
		DoctorID:  "d1",
		Amount:    1000,
		Tax:       10,
		Discount:  50,
		Status:    models.InvoiceStatusUnpaid,
	}
	assert.NoError(t, ValidateInvoiceData(invoice))

	invoice.Amount = 0
	assert.Error(t, ValidateInvoiceData(invoice))

	invoice.Amount = 1000
	invoice.Discount = -1
	assert.Error(t, ValidateInvoiceData(invoice))
}

func TestValidateDateRange(t *testing.T) {
	assert.NoError(t, ValidateDateRange("", ""))
	assert.NoError(t, ValidateDateRange("2026-03-01", "2026-03-31"))
	assert.NoError(t, ValidateDateRange("2026-03-15", "2026-03-15"))

	// One-sided bounds are valid filters
	assert.NoError(t, ValidateDateRange("2026-03-01", ""))
	assert.NoError(t, ValidateDateRange("", "2026-03-31"))

	assert.Error(t, ValidateDateRange("2026-03-31", "2026-03-01"))
	assert.Error(t, ValidateDateRange("03/01/2026", "2026-03-31"))
	assert.Error(t, ValidateDateRange("03/01/2026", ""))
	assert.Error(t, ValidateDateRange("", "03/31/2026"))
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("Str0ng!Pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "Str0ng!Pass", hashed)

	assert.True(t, CheckPassword(hashed, "Str0ng!Pass"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}

func TestValidatePasswordComplexity(t *testing.T) {
	user := models.User{Username: "jdoe", Email: "jdoe@example.com", Password: "Str0ng!Pass"}
	assert.NoError(t, ValidateUserData(user))

	user.Password = "short"
	assert.Error(t, ValidateUserData(user))

	user.Password = "alllowercase1!"
	assert.Error(t, ValidateUserData(user))
}
