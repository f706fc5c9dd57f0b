package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-club/internal/domain/feeoverride"
	"github.com/riskibarqy/football-club/internal/domain/match"
	"github.com/riskibarqy/football-club/internal/platform/logging"
)

// AuditService scans completed matches for stored fees that drifted from
// their recomputation.
type AuditService struct {
	matchRepo  match.Repository
	feeService *FeeService
	logger     *logging.Logger
	now        func() time.Time
}

type AuditReport struct {
	StartedAt      time.Time
	MatchesChecked int
	MatchesFailed  int
	Anomalies      []feeoverride.Anomaly
}

func NewAuditService(matchRepo match.Repository, feeService *FeeService, logger *logging.Logger) *AuditService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuditService{
		matchRepo:  matchRepo,
		feeService: feeService,
		logger:     logger,
		now:        time.Now,
	}
}

// RunOnce audits every completed match. A match that fails to load is logged
// and skipped.
func (s *AuditService) RunOnce(ctx context.Context) (AuditReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuditService.RunOnce")
	defer span.End()

	report := AuditReport{StartedAt: s.now().UTC()}

	matches, err := s.matchRepo.List(ctx, match.ListFilter{Status: match.StatusCompleted})
	if err != nil {
		recordSpanError(span, err)
		return report, fmt.Errorf("list completed matches: %w", err)
	}

	for _, item := range matches {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		anomalies, err := s.feeService.ListAnomalies(ctx, item.ID)
		if err != nil {
			report.MatchesFailed++
			s.logger.WarnContext(ctx, "fee audit skipped match", "match_id", item.ID, "error", err)
			continue
		}
		report.MatchesChecked++

		for _, a := range anomalies {
			s.logger.WarnContext(ctx, "fee anomaly detected",
				"match_id", a.MatchID,
				"player_id", a.PlayerID,
				"stored_total", a.StoredTotal.StringFixed(2),
				"recomputed_total", a.RecomputedTotal.StringFixed(2),
				"difference", a.Difference.StringFixed(2),
			)
		}
		report.Anomalies = append(report.Anomalies, anomalies...)
	}

	s.logger.InfoContext(ctx, "fee audit finished",
		"matches_checked", report.MatchesChecked,
		"matches_failed", report.MatchesFailed,
		"anomalies", len(report.Anomalies),
	)

	return report, nil
}
