package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/riskibarqy/football-club/internal/platform/logging"
	"github.com/riskibarqy/football-club/internal/usecase"
)

const auditJobName = "fee-anomaly-audit"

var (
	ErrNilAuditor      = errors.New("auditor is required")
	ErrInvalidInterval = errors.New("audit interval must be positive")
)

// Auditor runs one pass of the fee audit.
type Auditor interface {
	RunOnce(ctx context.Context) (usecase.AuditReport, error)
}

// AuditScheduler runs the fee audit on a fixed interval.
type AuditScheduler struct {
	scheduler gocron.Scheduler
	auditor   Auditor
	interval  time.Duration
	logger    *logging.Logger

	stopOnce sync.Once
	stopErr  error
}

// New registers the audit job. The first run happens immediately after Start.
func New(auditor Auditor, interval time.Duration, logger *logging.Logger) (*AuditScheduler, error) {
	if auditor == nil {
		return nil, ErrNilAuditor
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.With("job_name", auditJobName, "interval", interval.String())

	sched, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					logger.Error("scheduler job panicked",
						"job_id", jobID.String(),
						"panic", recoverData,
					)
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}

	s := &AuditScheduler{
		scheduler: sched,
		auditor:   auditor,
		interval:  interval,
		logger:    logger,
	}

	if _, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.runAudit),
		gocron.WithName(auditJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	); err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	return s, nil
}

func (s *AuditScheduler) Start() {
	s.logger.Info("scheduler starting")
	s.scheduler.Start()
}

// Stop waits for a running audit to finish. Calling it more than once is safe.
func (s *AuditScheduler) Stop() error {
	s.stopOnce.Do(func() {
		s.logger.Info("scheduler stopping")
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}

func (s *AuditScheduler) runAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	report, err := s.auditor.RunOnce(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "fee audit failed",
			"matches_checked", report.MatchesChecked,
			"error", err,
		)
		return
	}

	s.logger.DebugContext(ctx, "fee audit job completed",
		"started_at", report.StartedAt,
		"anomalies", len(report.Anomalies),
	)
}
