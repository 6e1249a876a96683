package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/adapters/database/pgsql"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/adapters/memstore"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/adapters/ratefeed"
	portsrepo "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/repositories"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/services"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/handlers"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/middleware"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/platform/config"
	"github.com/hrushi18-lang/finance-trackerin-sub007/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, dbPool := buildRepositories(ctx, cfg, logger)
	if dbPool != nil {
		defer dbPool.Close()
	}

	provider := ratefeed.NewClient(cfg.RateProviderURL, cfg.FetchTimeout)
	connectivity := ratefeed.NewProbeConnectivity(cfg.RateProviderURL, 3*time.Second)

	container := services.NewServiceContainer(ctx, services.RateStoreOptions{
		BaseCurrency:        cfg.BaseCurrency,
		RefreshInterval:     cfg.RefreshInterval,
		StaleThreshold:      cfg.StaleThreshold,
		FetchTimeout:        cfg.FetchTimeout,
		OnlineCheckInterval: cfg.OnlineCheckInterval,
	}, repos, provider, connectivity, logger)

	// Rate store background loops: auto-refresh while online with an immediate
	// refresh on reconnect, plus the staleness watch.
	rateStore, ok := container.RateStore.(*services.RateStoreService)
	if ok {
		go rateStore.RunAutoRefresh(ctx)
		go rateStore.RunStalenessMonitor(ctx, time.Hour)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, buildLimiter(cfg, logger))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", slog.String("error", err.Error()))
	}
}

// buildRepositories connects to Postgres and runs migrations when a database
// is configured; otherwise it falls back to in-memory stores (the registry
// then serves its hardcoded set).
func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, *pgxpool.Pool) {
	if cfg.DatabaseURL == "" {
		logger.Warn("No database configured; rate history and audit log are in-memory")
		return portsrepo.RepositoryProvider{
			RateHistoryRepo: memstore.NewRateHistoryStore(),
			AuditRepo:       memstore.NewAuditStore(),
		}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Database connection pool established.")

	runMigrations(cfg, logger)
	return pgsql.NewRepositoryProvider(dbPool), dbPool
}

func runMigrations(cfg *config.Config, logger *slog.Logger) {
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
}

func buildLimiter(cfg *config.Config, logger *slog.Logger) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Warn("Invalid RATE_LIMIT value, rate limiting disabled", slog.String("value", cfg.RateLimit))
		return nil
	}
	return limiter.New(limitermem.NewStore(), rate)
}
