package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"lifecycle-backend/internal/accounts"
	"lifecycle-backend/internal/activity"
	"lifecycle-backend/internal/artifacts"
	"lifecycle-backend/internal/lifecycle"
	"lifecycle-backend/internal/notify"
	"lifecycle-backend/internal/shared/config"
	"lifecycle-backend/internal/shared/server"
	"lifecycle-backend/internal/shared/storage/db"
	"lifecycle-backend/internal/transitions"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	AccountsRepo     accounts.Repo
	ActivityRepo     activity.Repo
	ArtifactsRepo    artifacts.Repo
	TransitionsRepo  transitions.Repo
	LifecycleService *lifecycle.Service
	LifecycleHandler *lifecycle.Handler
	Registry         *notify.Registry
}

// Build prepares shared dependencies and wires the router. Callers with
// different pool needs (the sweeper) pass their db.Options preset; the
// server preset is the default. Env vars still override either preset.
func Build(cfg config.Config, dbOpts ...db.Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg, dbOptions(dbOpts))
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    app.Config,
		Lifecycle: app.LifecycleHandler,
	})
	return app, nil
}

func dbOptions(presets []db.Options) db.Options {
	base := db.DefaultServerOptions()
	if len(presets) > 0 {
		base = presets[0]
	}
	return db.OptionsFromEnv(base)
}

func buildDB(ctx context.Context, cfg config.Config, opts db.Options) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errDatabaseRequired
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func buildServices(app *App) {
	if app.DB != nil {
		app.AccountsRepo = &accounts.PGRepo{DB: app.DB}
		app.ActivityRepo = &activity.PGRepo{DB: app.DB}
		app.ArtifactsRepo = &artifacts.PGRepo{DB: app.DB}
		app.TransitionsRepo = &transitions.PGRepo{DB: app.DB}
	} else {
		app.AccountsRepo = accounts.NewMemoryRepo()
		app.ActivityRepo = activity.NewMemoryRepo()
		app.ArtifactsRepo = artifacts.NewMemoryRepo()
		app.TransitionsRepo = transitions.NewMemoryRepo()
	}

	app.Registry = notify.NewRegistry()
	var notifier lifecycle.Notifier
	if app.Config.NotifyDispatch != "none" {
		notifier = &notify.Trigger{
			Registry:   app.Registry,
			Dispatcher: notify.LogDispatcher{},
			Activity:   app.ActivityRepo,
		}
	}

	app.LifecycleService = &lifecycle.Service{
		Accounts:    app.AccountsRepo,
		Artifacts:   app.ArtifactsRepo,
		Transitions: app.TransitionsRepo,
		Churn:       &lifecycle.Evaluator{Activity: app.ActivityRepo},
		Notifier:    notifier,
	}
	app.LifecycleHandler = &lifecycle.Handler{
		Svc:         app.LifecycleService,
		Transitions: app.TransitionsRepo,
		Accounts:    app.AccountsRepo,
		Artifacts:   app.ArtifactsRepo,
		Activity:    app.ActivityRepo,
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

var errDatabaseRequired = databaseRequiredError{}

type databaseRequiredError struct{}

func (databaseRequiredError) Error() string { return "DATABASE_URL is required" }
