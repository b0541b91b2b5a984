package routes

import (
	"CarePulse/cache"
	"CarePulse/config"
	"CarePulse/controllers"
	"CarePulse/handlers"
	"CarePulse/middlewares"
	"CarePulse/repositories"
	"CarePulse/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://carepulse.example.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	// Repositories
	doctorRepo := repositories.NewDoctorRepository(cache)
	patientRepo := repositories.NewPatientRepository(cache)
	invoiceRepo := repositories.NewInvoiceRepository(cache)
	blockedSlotRepo := repositories.NewBlockedSlotRepository(cache)
	appointmentRepo := repositories.NewAppointmentRepository(cache)
	prescriptionRepo := repositories.NewPrescriptionRepository(cache)
	userRepo := repositories.NewUserRepository(db, cache)

	// Services
	appointmentService := services.NewAppointmentService(appointmentRepo, doctorRepo, patientRepo, invoiceRepo, blockedSlotRepo)
	scheduleService := services.NewScheduleService(appointmentRepo, blockedSlotRepo, doctorRepo)
	billingService := services.NewBillingService(invoiceRepo, appointmentRepo)
	prescriptionService := services.NewPrescriptionService(prescriptionRepo, appointmentRepo)
	patientService := services.NewPatientService(patientRepo)
	identityService := services.NewIdentityService(doctorRepo, patientRepo)
	userService := services.NewUserService(userRepo)

	// Handlers
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	billingHandler := handlers.NewBillingHandler(billingService)
	doctorHandler := handlers.NewDoctorHandler(services.NewDoctorService(doctorRepo))
	patientHandler := handlers.NewPatientHandler(patientService)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionService)
	dashboardHandler := handlers.NewDashboardHandler(services.NewDashboardService())
	authHandler := handlers.NewAuthHandler(userService, identityService, patientService)

	// Register routes
	controllers.SetupClinicRoutes(
		router,
		appointmentHandler,
		scheduleHandler,
		billingHandler,
		doctorHandler,
		patientHandler,
		prescriptionHandler,
		dashboardHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
