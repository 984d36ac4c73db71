package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/projecthub/api/docs"
	"github.com/projecthub/api/internal/api/handler"
	"github.com/projecthub/api/internal/api/middleware"
	"github.com/projecthub/api/internal/core/domain"
	"github.com/projecthub/api/internal/core/ports"
)

// Deps is everything the router needs to serve requests. Mongo and Redis
// are only used by the readiness probe and may be nil in tests.
type Deps struct {
	Auth     ports.AuthService
	Projects ports.ProjectService
	Tasks    ports.TaskService
	Activity ports.ActivityService
	Admin    ports.AdminService
	Tokens   middleware.TokenParser

	Mongo *mongo.Database
	Redis *redis.Client

	CORSOrigins []string
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.Secure())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	projectHandler := handler.NewProjectHandler(deps.Projects)
	taskHandler := handler.NewTaskHandler(deps.Tasks)
	activityHandler := handler.NewActivityHandler(deps.Activity)
	adminHandler := handler.NewAdminHandler(deps.Admin)
	healthHandler := handler.NewHealthHandler(deps.Mongo, deps.Redis)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", middleware.Auth(deps.Tokens))
	authed.GET("/auth/me", authHandler.Me)
	authed.PUT("/auth/profile", authHandler.UpdateProfile)

	// --- Projects ---
	authed.GET("/projects", projectHandler.List)
	authed.GET("/projects/:id", projectHandler.Get)
	authed.POST("/projects", projectHandler.Create)
	authed.PUT("/projects/:id", projectHandler.Update)
	authed.POST("/projects/:id/add-member", projectHandler.AddMember)
	authed.DELETE("/projects/:id", projectHandler.Delete)

	// --- Tasks ---
	authed.GET("/tasks", taskHandler.ListAll)
	authed.GET("/tasks/my-tasks", taskHandler.ListMine)
	authed.GET("/tasks/project/:projectId", taskHandler.ListByProject)
	authed.POST("/tasks/project/:projectId", taskHandler.Create)
	authed.PUT("/tasks/:id", taskHandler.Update)
	authed.DELETE("/tasks/:id", taskHandler.Delete)

	// --- Activity ---
	authed.GET("/activity", activityHandler.List)

	// --- Admin ---
	admin := authed.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.GET("/projects", projectHandler.ListAll)
	admin.GET("/activity", activityHandler.ListAll)
	admin.PUT("/assign-role", adminHandler.AssignRole)
	admin.POST("/assign-task", taskHandler.Assign)

	return e
}
