package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/degreeplan/internal/cache"
	"github.com/alexanderramin/degreeplan/internal/cli"
	"github.com/alexanderramin/degreeplan/internal/config"
	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/httpapi"
	"github.com/alexanderramin/degreeplan/internal/logger"
	"github.com/alexanderramin/degreeplan/internal/repository"
	"github.com/alexanderramin/degreeplan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprint(os.Stderr, cli.RenderError(err))
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store, closeCache, err := openCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()
	loader := cache.NewLoader(store, log)

	// Wire repositories
	students := repository.NewSQLiteStudentRepo(database)
	attempts := repository.NewSQLiteAttemptRepo(database)
	semesters := repository.NewSQLiteAcademicSemesterRepo(database)
	catalogRepo := repository.NewSQLiteCatalogRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(log)

	// Wire services
	catalog := service.NewCatalogProvider(catalogRepo, loader, cfg.CatalogTTL)
	profiles := service.NewStudentProfiles(students, loader, cfg.ProfileTTL)
	engine := service.Engine{
		PlanningService: service.NewPlanningService(catalog, profiles, attempts, semesters, uow, cfg.Policy(), log, observer),
		ProfileService:  service.NewProfileService(students, profiles, observer),
	}

	app := &cli.App{
		Engine:  engine,
		Imports: service.NewImportService(uow, catalog, profiles, observer),
		Serve: func(ctx context.Context) error {
			router := httpapi.NewRouter(engine, httpapi.Options{
				Mode:           cfg.GinMode,
				RequestTimeout: cfg.RequestTimeout,
			}, log)
			return httpapi.Serve(ctx, cfg.HTTPAddr, router, log)
		},
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// openCache selects the reference-data cache backend. A redis outage at
// startup falls back to the in-process cache.
func openCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (cache.Cache, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheNone:
		return cache.NoopCache{}, func() {}, nil
	case config.CacheRedis:
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, using in-memory cache")
			return cache.NewMemoryCache(), func() {}, nil
		}
		return cache.NewRedisCache(rdb, "degreeplan:"), func() { _ = rdb.Close() }, nil
	case config.CacheMemory, "":
		return cache.NewMemoryCache(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q (want memory, redis or none)", cfg.CacheBackend)
	}
}
