package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskhive/platform-api/docs"
	"github.com/taskhive/platform-api/internal/api/handler"
	"github.com/taskhive/platform-api/internal/api/middleware"
	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
	"github.com/taskhive/platform-api/internal/core/service"
	"github.com/taskhive/platform-api/internal/infrastructure/config"
	mongorepo "github.com/taskhive/platform-api/internal/infrastructure/db/mongo"
	redisstore "github.com/taskhive/platform-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, notifier ports.Notifier, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskhive"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	inviteRepo := mongorepo.NewInviteRepository(db)
	projectRepo := mongorepo.NewProjectRepository(db)
	taskRepo := mongorepo.NewTaskRepository(db)
	contactRepo := mongorepo.NewContactRepository(db)
	resetStore := redisstore.NewResetTokenStore(rdb)

	authService := service.NewAuthService(userRepo, inviteRepo, resetStore, notifier, cfg.JWTSecret, 24*time.Hour, log)
	inviteService := service.NewInviteService(inviteRepo, log)
	approvalService := service.NewApprovalService(userRepo, notifier, log)
	projectService := service.NewProjectService(projectRepo, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, log)
	contactService := service.NewContactService(contactRepo, notifier, cfg.Mail.ContactInbox, log)

	authHandler := handler.NewAuthHandler(authService, inviteService)
	adminHandler := handler.NewAdminHandler(approvalService)
	inviteHandler := handler.NewInviteHandler(inviteService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	contactHandler := handler.NewContactHandler(contactService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Public auth routes ---
	auth := api.Group("/auth")
	auth.POST("/verify-invite", authHandler.VerifyInvite)
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.GET("/me", authHandler.Me, authRequired)

	// --- Public contact form ---
	api.POST("/contact", contactHandler.Submit)

	// --- Admin surface ---
	admin := api.Group("/admin", authRequired, adminOnly)
	admin.GET("/users/pending", adminHandler.PendingUsers)
	admin.PATCH("/users/:id/approve", adminHandler.Approve)
	admin.DELETE("/users/:id", adminHandler.Reject)
	admin.GET("/invite-codes", inviteHandler.List)
	admin.POST("/invite-codes", inviteHandler.Create)
	admin.PATCH("/invite-codes/:id", inviteHandler.Update)
	admin.DELETE("/invite-codes/:id", inviteHandler.Delete)
	admin.GET("/contact-messages", contactHandler.List)
	admin.PATCH("/contact-messages/:id/read", contactHandler.MarkRead)
	admin.DELETE("/contact-messages/:id", contactHandler.Delete)

	// --- Projects and tasks (role checks live in the services) ---
	projects := api.Group("/projects", authRequired)
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.PATCH("/:id/status", projectHandler.UpdateStatus)
	projects.POST("/:id/tasks", taskHandler.Create)
	projects.GET("/:id/tasks", taskHandler.ListByProject)

	tasks := api.Group("/tasks", authRequired)
	tasks.GET("/assigned", taskHandler.ListAssigned)
	tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
	tasks.PATCH("/:id/assign", taskHandler.Assign)

	return e
}
