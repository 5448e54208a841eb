// Package app wires the configured store, repositories and services together
// for the server and the operator CLI.
package app

import (
	"alcyxob/gympumped/internal/config"
	"alcyxob/gympumped/internal/docstore"
	"alcyxob/gympumped/internal/docstore/sqlite"
	"alcyxob/gympumped/internal/repository"
	"alcyxob/gympumped/internal/repository/mongo"
	"alcyxob/gympumped/internal/service"
	"alcyxob/gympumped/internal/session"
	"alcyxob/gympumped/internal/storage"
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// App holds the application's services.
type App struct {
	Store    docstore.Store
	Splits   *service.SplitController
	Workouts service.WorkoutLogService
	Sessions *session.Manager

	// EnsureIndexes is set for the Mongo driver only.
	EnsureIndexes func(ctx context.Context)

	closers []func()
}

// Close releases the store connection.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// New opens the configured document store and builds every service on top
// of it. withIndexes also makes sure the Mongo indexes exist.
func New(cfg config.Config, withIndexes bool) (*App, error) {
	a := &App{}

	switch cfg.Database.Driver {
	case config.DriverMongo, "":
		client, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		a.closers = append(a.closers, func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(client); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		})
		db := client.Database(cfg.Database.Name)
		a.EnsureIndexes = func(ctx context.Context) { mongo.EnsureIndexes(ctx, db) }
		if withIndexes {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			mongo.EnsureIndexes(ctx, db)
			cancel()
		}
		a.Store = mongo.NewStore(db)
		log.Printf("Using MongoDB database %s", cfg.Database.Name)

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open SQLite store: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := store.Close(); err != nil {
				log.Printf("ERROR: Failed to close SQLite store: %v", err)
			}
		})
		a.Store = store
		log.Printf("Using SQLite store at %s", cfg.Database.Path)

	case config.DriverMemory:
		a.Store = docstore.NewMemory()
		log.Println("WARN: Using in-memory store, nothing will be persisted")

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		if !errors.Is(err, storage.ErrNotConfigured) {
			a.Close()
			return nil, fmt.Errorf("initialize S3 storage: %w", err)
		}
		log.Println("INFO: No S3 bucket configured, history exports are disabled")
		fileStorage = nil
	}

	a.build(cfg, fileStorage)
	return a, nil
}

// build creates repositories and services over a.Store.
func (a *App) build(cfg config.Config, fileStorage storage.FileStorage) {
	splitRepo := repository.NewSplitRepository(a.Store, nil)
	userRepo := repository.NewUserRepository(a.Store, nil)
	workoutRepo := repository.NewCompletedWorkoutRepository(a.Store, nil)
	historyRepo := repository.NewWorkoutHistoryRepository(a.Store)
	sessionRepo := repository.NewSessionRepository(a.Store)

	policy := service.SuppressErrors
	if cfg.Splits.SurfaceErrors {
		policy = service.SurfaceErrors
	}
	a.Splits = service.NewSplitController(splitRepo, service.SplitControllerOptions{
		ErrorPolicy:  policy,
		SingleActive: cfg.Splits.SingleActive,
	})
	a.Workouts = service.NewWorkoutLogService(a.Splits, workoutRepo, historyRepo, fileStorage)

	// The CLI never issues tokens, so it may run without a secret.
	if cfg.JWT.Secret != "" {
		authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
		a.Sessions = session.NewManager(authService, sessionRepo)
	}
}
