package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/movierental/rental/internal/api"
	"github.com/movierental/rental/internal/audit"
	"github.com/movierental/rental/internal/config"
	"github.com/movierental/rental/internal/database"
	"github.com/movierental/rental/internal/movies"
	"github.com/movierental/rental/internal/observability"
	"github.com/movierental/rental/internal/rentals"
	"github.com/movierental/rental/internal/users"
)

// AppState holds all application services
type AppState struct {
	RentalService rentals.RentalManager
	AuditRecorder audit.Recorder
	HealthChecks  []api.HealthChecker
	Logger        *zap.Logger

	closer io.Closer
}

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	logger, err := observability.NewLogger(config.Logger().Level, config.Logger().Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Configuration loaded", zap.String("storage_driver", config.Storage().Driver))

	ctx := context.Background()
	as, err := newAppState(ctx, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application state", zap.Error(err))
	}

	router := api.NewRouter(api.Deps{
		Rentals: as.RentalService,
		Audit:   as.AuditRecorder,
		Health:  as.HealthChecks,
		Logger:  logger,
	})

	addr := config.Http().Addr()
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Setup graceful shutdown
	done := setupSignalHandler(as, server, logger)

	logger.Info("Starting rental server", zap.String("address", addr))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newAppState builds the stores for the configured driver and wires the services
func newAppState(ctx context.Context, logger *zap.Logger) (*AppState, error) {
	var (
		rentalStore rentals.RentalStore
		userStore   users.UserStore
		movieStore  movies.MovieStore
		auditStore  audit.Store
		userSeed    database.UserCreator
		movieSeed   database.MovieCreator
		as          = &AppState{Logger: logger}
	)

	switch config.Storage().Driver {
	case config.StorageDriverMemory:
		memUsers := users.NewInMemoryStore()
		memMovies := movies.NewInMemoryStore()

		userStore, userSeed = memUsers, memUsers
		movieStore, movieSeed = memMovies, memMovies
		rentalStore = rentals.NewInMemoryStore(memMovies)
		auditStore = audit.NewInMemoryStore()

		logger.Warn("Using in-memory storage, data is lost on restart")

	case config.StorageDriverPostgres:
		pgConfig := config.Postgres()
		logger.Info("Database configuration",
			zap.String("host", pgConfig.Host),
			zap.Int("port", pgConfig.Port),
			zap.String("database", pgConfig.Database),
			zap.String("user", pgConfig.User))

		db, err := database.Open(ctx, pgConfig.DSN(), pgConfig.MaxOpenConnections)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		pgUsers := users.NewUserStore(db)
		pgMovies := movies.NewPostgresStore(db)

		userStore, userSeed = pgUsers, pgUsers
		movieStore, movieSeed = pgMovies, pgMovies
		rentalStore = rentals.NewPostgresStore(db)
		auditStore = audit.NewPostgresStore(db)

		as.HealthChecks = append(as.HealthChecks, database.NewHealthChecker(db))
		as.closer = db

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", config.Storage().Driver)
	}

	if config.Storage().Seed {
		if err := database.Seed(ctx, userSeed, movieSeed); err != nil {
			// seed rows are not idempotent against an existing database
			logger.Warn("Failed to seed demo data", zap.Error(err))
		} else {
			logger.Info("Demo data seeded")
		}
	}

	as.RentalService = rentals.NewService(rentalStore, userStore, movieStore,
		rentals.WithLogger(logger),
		rentals.WithRentalPeriod(config.Rental().Period()),
		rentals.WithRecorder(observability.NewRecorder()),
	)
	as.AuditRecorder = audit.NewRecorder(auditStore)

	return as, nil
}

func setupSignalHandler(as *AppState, server *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), config.Http().ShutdownTimeout())
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		if as.closer != nil {
			if err := as.closer.Close(); err != nil {
				logger.Error("Error closing database", zap.Error(err))
			}
		}

		done <- struct{}{}
	}()

	return done
}
