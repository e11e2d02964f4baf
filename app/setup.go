package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sahilchouksey/career-compass-api/api"
	"github.com/sahilchouksey/career-compass-api/config"
	"github.com/sahilchouksey/career-compass-api/database"
	"github.com/sahilchouksey/career-compass-api/router"
	"github.com/sahilchouksey/career-compass-api/services"
	"github.com/sahilchouksey/career-compass-api/services/advisor"
	"github.com/sahilchouksey/career-compass-api/services/cron"
	"github.com/sahilchouksey/career-compass-api/services/report"
	"github.com/sahilchouksey/career-compass-api/services/storage"
	"github.com/sahilchouksey/career-compass-api/utils"
	"github.com/sahilchouksey/career-compass-api/utils/auth"
	"github.com/sahilchouksey/career-compass-api/utils/cache"
	"go.uber.org/zap"
)

// Token lifetimes
const (
	accessTokenTTL  = 24 * time.Hour     // Access token expires in 24 hours
	refreshTokenTTL = 7 * 24 * time.Hour // Refresh token expires in 7 days
)

// Runtime holds the services shared by the HTTP server and the CLI
type Runtime struct {
	Env   *config.EnviornmentVariable
	Store *database.GORMStore
	Deps  *router.Dependencies
	Log   *zap.Logger

	closers []func()
}

// Close releases the cache connection and the database
func (r *Runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// LoadConfig loads .env and builds the logger
func LoadConfig() (*config.EnviornmentVariable, *zap.Logger, error) {
	// A missing .env is fine, variables may come from the environment
	_ = config.LoadENV()

	env, err := config.Get()
	if err != nil {
		return nil, nil, err
	}

	log, err := utils.NewLogger(env.LOG_JSON, env.LOG_DEBUG)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return env, log, nil
}

// NewRuntime connects the database and wires every service. Redis, report storage and the
// Gemini narrator are optional and are skipped with a warning when not configured.
func NewRuntime(ctx context.Context, env *config.EnviornmentVariable, log *zap.Logger) (*Runtime, error) {
	store, err := database.StartGORM(log)
	if err != nil {
		log.Error("failed to connect to database; check that PostgreSQL is running or set DB_DRIVER=sqlite",
			zap.String("driver", env.DB_DRIVER), zap.Error(err))
		return nil, err
	}

	rt := &Runtime{Env: env, Store: store, Log: log}
	rt.closers = append(rt.closers, func() { _ = store.Close() })

	if err := store.Init(); err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db := store.DB()

	var fitCache services.FitCache
	deps := &router.Dependencies{Log: log}

	if env.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(env.REDIS_URL)
		if err != nil {
			log.Warn("redis unavailable, caching and brute force protection disabled", zap.Error(err))
		} else {
			fitCache = redisCache
			deps.Lockouts = redisCache
			rt.closers = append(rt.closers, func() { _ = redisCache.Close() })
		}
	}

	deps.Assessments = services.NewAssessmentService(db, fitCache, log)
	deps.CareerFit = services.NewCareerFitService(db, deps.Assessments, fitCache, env.FIT_WEIGHTS, env.FIT_TOP_N, log)
	deps.Analytics = services.NewAnalyticsService(db)

	var narrator advisor.Narrator
	if env.GEMINI_API_KEY != "" {
		gemini, err := advisor.NewGeminiNarrator(ctx, env.GEMINI_API_KEY, env.GEMINI_MODEL, log)
		if err != nil {
			log.Warn("gemini narrator unavailable, using template narrative", zap.Error(err))
		} else {
			narrator = gemini
		}
	}

	var reportStore report.Store
	spaces, err := storage.FromEnv()
	switch {
	case err == nil:
		reportStore = spaces
	case errors.Is(err, storage.ErrNotConfigured):
		log.Info("report storage not configured, reports are streamed only")
	default:
		log.Warn("report storage unavailable", zap.Error(err))
	}
	deps.Reports = report.NewBuilder(deps.CareerFit, narrator, reportStore, log)

	if env.JWT_SECRET != "" {
		issuer := env.JWT_ISSUER
		if issuer == "" {
			issuer = "career-compass-api"
		}
		deps.JWT = auth.NewJWTManager(auth.JWTConfig{
			Secret:        env.JWT_SECRET,
			Expiry:        accessTokenTTL,
			RefreshExpiry: refreshTokenTTL,
			Issuer:        issuer,
		})
	}

	deps.Security = router.DefaultSecurity(env.ALLOWED_ORIGINS)
	rt.Deps = deps
	return rt, nil
}

func SetupAndRunServer() error {
	env, log, err := LoadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if env.JWT_SECRET == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := NewRuntime(ctx, env, log)
	if err != nil {
		return err
	}
	defer rt.Close()

	// Initialize Cron Manager (only if enabled via environment variable)
	if env.CRON_ENABLED {
		cronManager := cron.NewCronManager(rt.Store.DB(), rt.Deps.Assessments, rt.Deps.CareerFit,
			cron.Options{AbandonAfter: time.Duration(env.ATTEMPT_ABANDON_AFTER_HOURS) * time.Hour}, log)
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.Warn("failed to start cron jobs", zap.Error(err))
		} else {
			defer cronManager.Stop()
		}
	}

	server := api.NewAPIServer(fmt.Sprintf(":%d", env.PORT), log)
	router.SetupRoutes(server.GetEngine(), rt.Store, rt.Deps)

	return server.Run(ctx)
}
