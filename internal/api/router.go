package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medicore/hospital-system/internal/api/handler"
	"github.com/medicore/hospital-system/internal/api/middleware"
	"github.com/medicore/hospital-system/internal/core/auth"
	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/service"
	mongodb "github.com/medicore/hospital-system/internal/infrastructure/db/mongo"
	redisdb "github.com/medicore/hospital-system/internal/infrastructure/db/redis"
	"github.com/medicore/hospital-system/internal/infrastructure/queue"
	"github.com/medicore/hospital-system/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered and returns it
// together with the reminder dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher, error) {
	e := echo.New()
	e.HideBanner = true

	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return nil, nil, err
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: "hospital",
	}))
	e.Use(middleware.RouteClassifier(middleware.BearerIdentity(issuer), log))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	patients := mongodb.NewPatientRepository(db)
	doctors := mongodb.NewDoctorRepository(db)
	appointments := mongodb.NewAppointmentRepository(db)
	invoices := mongodb.NewInvoiceRepository(db)
	sessions := redisdb.NewSessionStore(rdb)

	var authOpts []service.AuthServiceOption
	if cfg.RefreshFlowEnabled {
		authOpts = append(authOpts, service.WithRefreshFlow())
	}
	authService := service.NewAuthService(users, patients, doctors, issuer, sessions, log, authOpts...)
	patientService := service.NewPatientService(patients, log)
	doctorService := service.NewDoctorService(doctors, log)
	notificationService := service.NewNotificationService(patients, log)
	dispatcher := queue.NewDispatcher(cfg.ReminderWorkers, notificationService, log)
	appointmentService := service.NewAppointmentService(appointments, patients, doctors, dispatcher, log)
	billingService := service.NewBillingService(invoices, appointments, log)

	authHandler := handler.NewAuthHandler(authService)
	patientHandler := handler.NewPatientHandler(patientService, authService)
	doctorHandler := handler.NewDoctorHandler(doctorService, authService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	billingHandler := handler.NewBillingHandler(billingService)

	authRequired := middleware.Auth(issuer, sessions)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated routes ---
	e.GET("/auth/me", authHandler.Me, authRequired)
	e.POST("/auth/logout", authHandler.Logout, authRequired)

	v1 := e.Group("/v1", authRequired)

	staff := middleware.RBAC(domain.RoleAdmin, domain.RoleReceptionist)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor, domain.RolePatient, domain.RoleReceptionist)

	pg := v1.Group("/patients")
	pg.GET("", patientHandler.List, anyRole)
	pg.POST("", patientHandler.Create, staff)
	pg.GET("/:id", patientHandler.Get, anyRole)
	pg.PUT("/:id", patientHandler.Update, middleware.RBAC(domain.RoleAdmin, domain.RoleReceptionist, domain.RolePatient))

	dg := v1.Group("/doctors")
	dg.GET("", doctorHandler.List, anyRole)
	dg.POST("", doctorHandler.Create, middleware.RBAC(domain.RoleAdmin))
	dg.GET("/:id", doctorHandler.Get, anyRole)
	dg.GET("/:id/availability", doctorHandler.GetAvailability, anyRole)
	dg.PUT("/:id/availability", doctorHandler.UpdateAvailability, middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor))

	ag := v1.Group("/appointments")
	ag.GET("", appointmentHandler.List, anyRole)
	ag.POST("", appointmentHandler.Create, middleware.RBAC(domain.RoleAdmin, domain.RoleReceptionist, domain.RolePatient))
	ag.GET("/:id", appointmentHandler.Get, anyRole)
	ag.PATCH("/:id/status", appointmentHandler.UpdateStatus, anyRole)

	bg := v1.Group("/billing")
	bg.GET("", billingHandler.List, middleware.RBAC(domain.RoleAdmin, domain.RoleReceptionist, domain.RolePatient))
	bg.POST("", billingHandler.Create, staff)
	bg.GET("/:id", billingHandler.Get, middleware.RBAC(domain.RoleAdmin, domain.RoleReceptionist, domain.RolePatient))
	bg.PATCH("/:id/status", billingHandler.UpdateStatus, staff)

	return e, dispatcher, nil
}
