package app

import (
	"context"
	"errors"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-club/internal/config"
	"github.com/riskibarqy/football-club/internal/domain/feeoverride"
	"github.com/riskibarqy/football-club/internal/domain/match"
	"github.com/riskibarqy/football-club/internal/domain/matchevent"
	"github.com/riskibarqy/football-club/internal/domain/participation"
	"github.com/riskibarqy/football-club/internal/domain/player"
	cacherepo "github.com/riskibarqy/football-club/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-club/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-club/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-club/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/football-club/internal/platform/cache"
	idgen "github.com/riskibarqy/football-club/internal/platform/id"
	"github.com/riskibarqy/football-club/internal/platform/logging"
	"github.com/riskibarqy/football-club/internal/platform/resilience"
	"github.com/riskibarqy/football-club/internal/scheduler"
	"github.com/riskibarqy/football-club/internal/usecase"
)

// App holds the HTTP server and the background jobs that share its stores.
type App struct {
	Server    *http.Server
	Scheduler *scheduler.AuditScheduler

	db     *sqlx.DB
	logger *logging.Logger
}

type repositories struct {
	matches        match.Repository
	players        player.Repository
	participations participation.Repository
	overrides      feeoverride.Repository
	events         matchevent.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, crerr.New("http server addr cannot be empty")
	}

	a := &App{logger: logger}

	repos, err := a.buildRepositories(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if cfg.CacheEnabled {
		repos = withCache(cfg, repos, logger)
	}

	ids := idgen.NewUUIDGenerator()
	playerSvc := usecase.NewPlayerService(repos.players, ids)
	matchSvc := usecase.NewMatchService(repos.matches, ids)
	attendanceSvc := usecase.NewAttendanceService(repos.matches, repos.players, repos.participations, logger)
	feeSvc := usecase.NewFeeService(repos.matches, repos.participations, repos.overrides, logger, cfg.OverrideWorkerCount)
	importSvc := usecase.NewImportService(repos.matches, repos.players, repos.participations, logger, cfg.ImportMatchThreshold)
	leaderboardSvc := usecase.NewLeaderboardService(repos.matches, repos.players, repos.events, ids)

	handler := httpapi.NewHandler(playerSvc, matchSvc, attendanceSvc, importSvc, feeSvc, leaderboardSvc, logger)
	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if cfg.AuditEnabled {
		auditSvc := usecase.NewAuditService(repos.matches, feeSvc, logger.Named("audit"))
		a.Scheduler, err = scheduler.New(auditSvc, cfg.AuditInterval, logger.Named("scheduler"))
		if err != nil {
			_ = a.Close()
			return nil, crerr.Wrap(err, "build audit scheduler")
		}
	}

	return a, nil
}

// Close stops the scheduler and releases the database pool.
func (a *App) Close() error {
	var errs []error
	if a.Scheduler != nil {
		if err := a.Scheduler.Stop(); err != nil {
			errs = append(errs, crerr.Wrap(err, "stop scheduler"))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, crerr.Wrap(err, "close database"))
		}
		a.db = nil
	}
	return errors.Join(errs...)
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	if cfg.StorageDriver != config.StoragePostgres {
		a.logger.Info("using in-memory storage")
		participations := memory.NewParticipationRepository()
		return repositories{
			matches:        memory.NewMatchRepository(memory.SeedMatches()),
			players:        memory.NewPlayerRepository(memory.SeedPlayers()),
			participations: participations,
			overrides:      memory.NewFeeOverrideRepository(participations),
			events:         memory.NewMatchEventRepository(),
		}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	a.db = db
	a.logger.Info("connected to postgres", "db_name", databaseName(cfg.DBURL))

	return repositories{
		matches:        postgres.NewMatchRepository(db),
		players:        postgres.NewPlayerRepository(db),
		participations: postgres.NewParticipationRepository(db),
		overrides:      postgres.NewFeeOverrideRepository(db),
		events:         postgres.NewMatchEventRepository(db),
	}, nil
}

// withCache puts read-through caches in front of the match and player stores.
// Their writes share one breaker.
func withCache(cfg config.Config, repos repositories, logger *logging.Logger) repositories {
	breaker := resilience.NewBreaker("storage", resilience.BreakerConfig{
		Enabled:          cfg.DBCircuitEnabled,
		FailureThreshold: cfg.DBCircuitThreshold,
		OpenTimeout:      cfg.DBCircuitOpenTimeout,
	})
	breaker.OnStateChange(func(name string, from, to resilience.State) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
	})

	store := basecache.NewStore(cfg.CacheTTL)
	repos.matches = cacherepo.NewMatchRepository(repos.matches, store, breaker)
	repos.players = cacherepo.NewPlayerRepository(repos.players, store, breaker)
	return repos
}
