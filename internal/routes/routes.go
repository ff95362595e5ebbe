package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davifernandodias/dsin-assessment-tech/internal/audit"
	"github.com/davifernandodias/dsin-assessment-tech/internal/cache"
	"github.com/davifernandodias/dsin-assessment-tech/internal/config"
	"github.com/davifernandodias/dsin-assessment-tech/internal/handlers"
	infraRepo "github.com/davifernandodias/dsin-assessment-tech/internal/infra/repository"
	"github.com/davifernandodias/dsin-assessment-tech/internal/media"
	"github.com/davifernandodias/dsin-assessment-tech/internal/middleware"
	ucAppointment "github.com/davifernandodias/dsin-assessment-tech/internal/usecase/appointment"
	ucService "github.com/davifernandodias/dsin-assessment-tech/internal/usecase/service"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	serviceRepo := infraRepo.NewServiceGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	catalog := cache.NewCatalog(cfg.RedisURL)
	mediaStore := media.NewS3Store(cfg)

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(appointmentRepo, auditDispatcher)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, auditDispatcher)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	createServiceUC := ucService.NewCreateService(serviceRepo, auditDispatcher)
	updateServiceUC := ucService.NewUpdateService(serviceRepo, auditDispatcher)
	deleteServiceUC := ucService.NewDeleteService(serviceRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	userHandler := handlers.NewUserHandler(db)

	serviceHandler := handlers.NewServiceHandler(
		db,
		catalog,
		mediaStore,
		createServiceUC,
		updateServiceUC,
		deleteServiceUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// USERS
			// ------------------------------
			secured.POST("/users", userHandler.Create)
			secured.GET("/users", userHandler.List)
			secured.GET("/users/:id", userHandler.Get)
			secured.PUT("/users/:id", userHandler.Update)
			secured.DELETE("/users/:id", userHandler.Delete)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services", serviceHandler.List)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)
			secured.POST("/services/:id/image", serviceHandler.UploadImage)

			secured.GET("/service-types", serviceHandler.ListTypes)
			secured.GET("/service-types/:id", serviceHandler.GetType)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
