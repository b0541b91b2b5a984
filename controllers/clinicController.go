package controllers

import (
	"CarePulse/handlers"
	"CarePulse/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupClinicRoutes wires the clinic-facing routes. All routes require a
// valid access token; write access is narrowed per role group.
func SetupClinicRoutes(
	router *gin.Engine,
	appointmentHandler *handlers.AppointmentHandler,
	scheduleHandler *handlers.ScheduleHandler,
	billingHandler *handlers.BillingHandler,
	doctorHandler *handlers.DoctorHandler,
	patientHandler *handlers.PatientHandler,
	prescriptionHandler *handlers.PrescriptionHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	authed := router.Group("/").Use(middlewares.TokenAuthMiddleware())
	{
		authed.GET("/doctors", doctorHandler.GetAllDoctors)
		authed.GET("/doctors/:doctor_id", doctorHandler.GetDoctorByID)
		authed.GET("/doctors/:doctor_id/schedule", scheduleHandler.GetWeekSchedule)

		authed.POST("/appointments", appointmentHandler.BookAppointment)
		authed.GET("/appointments", appointmentHandler.ListAppointments)
		authed.GET("/appointments/:appointment_id", appointmentHandler.GetAppointmentByID)
		authed.PUT("/appointments/:appointment_id/reschedule", appointmentHandler.RescheduleAppointment)
		authed.PUT("/appointments/:appointment_id/cancel", appointmentHandler.CancelAppointment)

		authed.GET("/prescriptions", prescriptionHandler.ListPrescriptions)
		authed.GET("/prescriptions/:prescription_id", prescriptionHandler.GetPrescriptionByID)
	}

	staff := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware("Admin", "Doctor"),
	)
	{
		staff.GET("/patients", patientHandler.GetAllPatients)
		staff.GET("/patients/:patient_id", patientHandler.GetPatientByID)
		staff.POST("/patients/:patient_id/records", patientHandler.AddMedicalRecord)
		staff.GET("/patients/:patient_id/records", patientHandler.ListMedicalRecords)

		staff.PUT("/appointments/:appointment_id/complete", appointmentHandler.CompleteAppointment)

		staff.POST("/schedule/blocked", scheduleHandler.BlockSlot)
		staff.DELETE("/schedule/blocked/:slot_id", scheduleHandler.UnblockSlot)

		staff.POST("/prescriptions", prescriptionHandler.IssuePrescription)
		staff.PUT("/prescriptions/:prescription_id", prescriptionHandler.AmendPrescription)
	}

	admin := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware("Admin"),
	)
	{
		admin.POST("/doctors", doctorHandler.CreateDoctor)
		admin.PUT("/doctors/:doctor_id", doctorHandler.UpdateDoctor)
		admin.DELETE("/doctors/:doctor_id", doctorHandler.DeleteDoctor)

		admin.POST("/patients", patientHandler.CreatePatient)
		admin.PUT("/patients/:patient_id", patientHandler.UpdatePatient)
		admin.DELETE("/patients/:patient_id", patientHandler.DeletePatient)

		admin.POST("/invoices", billingHandler.CreateInvoice)
		admin.GET("/invoices", billingHandler.GetAllInvoices)
		admin.GET("/invoices/:bill_number", billingHandler.GetInvoiceByBillNumber)
		admin.PUT("/invoices/:bill_number", billingHandler.UpdateInvoice)
		admin.POST("/invoices/:bill_number/payments", billingHandler.RecordPayment)
		admin.GET("/invoices/:bill_number/payments", billingHandler.ListPayments)
		admin.GET("/appointments/:appointment_id/invoice", billingHandler.GetInvoiceByAppointment)

		admin.GET("/dashboard/summary", dashboardHandler.GetSummary)
	}
}
