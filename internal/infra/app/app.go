package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jvfernandez09/jfc-app/internal/infra/config"
	"github.com/jvfernandez09/jfc-app/internal/infra/database"
	"github.com/jvfernandez09/jfc-app/internal/infra/logger"
	redisinfra "github.com/jvfernandez09/jfc-app/internal/infra/redis"
	"github.com/jvfernandez09/jfc-app/internal/infra/security"
	"github.com/jvfernandez09/jfc-app/internal/infra/telemetry"
	postgresrepo "github.com/jvfernandez09/jfc-app/internal/repository/postgres"
	redisrepo "github.com/jvfernandez09/jfc-app/internal/repository/redis"
	"github.com/jvfernandez09/jfc-app/internal/transport/http/middleware"
	"github.com/jvfernandez09/jfc-app/internal/transport/http/routes"
	"github.com/jvfernandez09/jfc-app/internal/transport/http/session"
	"github.com/jvfernandez09/jfc-app/internal/usecase"
)

// Application owns the wired service graph and the HTTP server lifecycle.
type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redisinfra.Client
}

// New wires configuration into a runnable application: logger, telemetry,
// postgres (with migrations), optional redis, the session codec, and the
// HTTP routes.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if _, err := telemetry.Attach(cfg); err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	if err := database.Migrate(ctx, cfg.Postgres.DSN()); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	if err := security.ConfigureArgon2(security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}); err != nil {
		pool.Close()
		return nil, fmt.Errorf("configure argon2: %w", err)
	}

	codec, err := security.NewSessionCodec([]byte(cfg.Session.Secret), cfg.App.Name, cfg.Session.TTL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init session codec: %w", err)
	}
	sessions := session.NewManager(codec, cfg.App.IsProduction())

	var (
		redisClient *redisinfra.Client
		rateLimiter *middleware.RateLimiter
		cache       routes.CacheChecker
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redisinfra.NewClient(cfg.Redis, log)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init redis: %w", err)
		}

		rateLimitTTL := cfg.Redis.RateLimitTTL
		if rateLimitTTL <= 0 {
			rateLimitTTL = 2 * cfg.RateLimit.WindowDuration
		}
		store := redisrepo.NewRateLimitStore(redisClient.Client(), cfg.Redis.RateLimitPrefix, rateLimitTTL)
		rateLimiter = middleware.NewRateLimiter(store, log)
		cache = redisClient
	} else {
		log.Info("redis not configured, rate limiting disabled")
	}

	repos := postgresrepo.NewRepositories(pool)

	engine := routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		Sessions:    sessions,
		RateLimiter: rateLimiter,
		Database:    pool,
		Cache:       cache,
		Services: routes.ServiceSet{
			Auth:         usecase.NewAuthService(repos.Users, codec),
			Registration: usecase.NewRegistrationService(repos.Users),
			Users:        usecase.NewUserService(repos.Users, codec),
			Contacts:     usecase.NewContactService(repos.Contacts),
			Businesses:   usecase.NewBusinessService(repos.Businesses),
			Categories:   usecase.NewCategoryService(repos.Categories),
			Tags:         usecase.NewTagService(repos.Tags),
			Tasks:        usecase.NewTaskService(repos.Tasks),
		},
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
		pool:   pool,
		redis:  redisClient,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting CRM API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
