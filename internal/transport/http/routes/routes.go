package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jvfernandez09/jfc-app/internal/infra/config"
	"github.com/jvfernandez09/jfc-app/internal/transport/http/handlers"
	"github.com/jvfernandez09/jfc-app/internal/transport/http/middleware"
	"github.com/jvfernandez09/jfc-app/internal/transport/http/session"
	"github.com/jvfernandez09/jfc-app/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth         *usecase.AuthService
	Registration *usecase.RegistrationService
	Users        *usecase.UserService
	Contacts     *usecase.ContactService
	Businesses   *usecase.BusinessService
	Categories   *usecase.CategoryService
	Tags         *usecase.TagService
	Tasks        *usecase.TaskService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	Sessions    *session.Manager
	RateLimiter *middleware.RateLimiter
	Services    ServiceSet
	Database    DatabaseChecker
	Cache       CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))

	if metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{}); err == nil {
		r.Use(metrics.Handler())
	} else {
		deps.Logger.Warn("http metrics unavailable", zap.Error(err))
	}

	healthOptions := make([]handlers.HealthOption, 0, 2)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireSession := middleware.RequireSession(deps.Sessions)

	api := r.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(deps.Services.Auth, deps.Services.Registration, deps.Sessions)
		authHandler.RegisterRoutes(
			api.Group("/auth"),
			limitMiddlewares(deps, "auth_login_ip", deps.Config.RateLimit.LoginMaxAttempts),
			limitMiddlewares(deps, "auth_register_ip", deps.Config.RateLimit.RegisterMaxAttempts),
		)

		api.GET("/me", authHandler.Me)

		profileGroup := api.Group("/profile")
		profileGroup.Use(requireSession)
		handlers.NewProfileHandler(deps.Services.Users, deps.Sessions).RegisterRoutes(profileGroup)

		contactGroup := api.Group("/contacts")
		contactGroup.Use(requireSession)
		handlers.NewContactHandler(deps.Services.Contacts, deps.Services.Tasks).RegisterRoutes(contactGroup)

		businessGroup := api.Group("/businesses")
		businessGroup.Use(requireSession)
		handlers.NewBusinessHandler(deps.Services.Businesses, deps.Services.Tasks).RegisterRoutes(businessGroup)

		categoryGroup := api.Group("/categories")
		categoryGroup.Use(requireSession)
		handlers.NewCategoryHandler(deps.Services.Categories).RegisterRoutes(categoryGroup)

		tagGroup := api.Group("/tags")
		tagGroup.Use(requireSession)
		handlers.NewTagHandler(deps.Services.Tags).RegisterRoutes(tagGroup)

		taskGroup := api.Group("/tasks")
		taskGroup.Use(requireSession)
		handlers.NewTaskHandler(deps.Services.Tasks).RegisterRoutes(taskGroup)
	}

	return r
}

func limitMiddlewares(deps Dependencies, name string, limit int) []gin.HandlerFunc {
	if deps.RateLimiter == nil || deps.Config == nil || limit <= 0 {
		return nil
	}

	window := deps.Config.RateLimit.WindowDuration
	if window <= 0 {
		window = time.Minute
	}

	return []gin.HandlerFunc{deps.RateLimiter.Limit(middleware.RateLimitRule{
		Name:   name,
		Limit:  limit,
		Window: window,
	})}
}
