package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-club/internal/domain/attendance"
	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/riskibarqy/football-club/internal/domain/match"
	"github.com/riskibarqy/football-club/internal/domain/participation"
	"github.com/riskibarqy/football-club/internal/domain/player"
	"github.com/riskibarqy/football-club/internal/platform/logging"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

type AttendanceService struct {
	matchRepo         match.Repository
	playerRepo        player.Repository
	participationRepo participation.Repository
	logger            *logging.Logger
	now               func() time.Time
}

type AttendanceEntry struct {
	PlayerID      string
	Grid          attendance.Grid
	IsLateArrival bool
}

type SaveAttendanceResult struct {
	MatchID        string
	FeeCoefficient decimal.Decimal
	// Billable is false when nobody had normal play time yet; every field fee
	// is then zero.
	Billable       bool
	Participations []participation.Participation
}

func NewAttendanceService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	participationRepo participation.Repository,
	logger *logging.Logger,
) *AttendanceService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AttendanceService{
		matchRepo:         matchRepo,
		playerRepo:        playerRepo,
		participationRepo: participationRepo,
		logger:            logger,
		now:               time.Now,
	}
}

// SaveMatchAttendance validates the grids, calculates every player's fees once
// and replaces the match's participation rows. Overrides are not touched.
func (s *AttendanceService) SaveMatchAttendance(ctx context.Context, matchID string, entries []AttendanceEntry) (SaveAttendanceResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.SaveMatchAttendance",
		attribute.String("match.id", matchID),
		attribute.Int("attendance.entries", len(entries)),
	)
	defer span.End()

	item, err := loadMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return SaveAttendanceResult{}, err
	}

	if err := s.validateEntries(ctx, entries); err != nil {
		return SaveAttendanceResult{}, err
	}

	grids := make([]attendance.Grid, 0, len(entries))
	for _, entry := range entries {
		grids = append(grids, entry.Grid)
	}
	coefficient, billable := fee.ResolveCoefficient(item.Rates, item.CoefficientMode, grids)

	now := s.now().UTC()
	rows := make([]participation.Participation, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, participation.Participation{
			MatchID:        item.ID,
			PlayerID:       strings.TrimSpace(entry.PlayerID),
			Grid:           entry.Grid,
			IsLateArrival:  entry.IsLateArrival,
			Fees:           fee.CalculateForParticipant(entry.Grid, entry.IsLateArrival, coefficient, item.Rates),
			FeeCoefficient: coefficient,
			LateFeeRate:    item.Rates.LateFeeRate,
			VideoFeeRate:   item.Rates.VideoFeeRate,
			CalculatedAt:   now,
		})
	}

	if err := s.participationRepo.ReplaceForMatch(ctx, item.ID, rows); err != nil {
		recordSpanError(span, err)
		return SaveAttendanceResult{}, fmt.Errorf("replace participations: %w", err)
	}

	if !billable && len(rows) > 0 {
		s.logger.InfoContext(ctx, "attendance saved without billable play time", "match_id", item.ID, "participants", len(rows))
	}

	return SaveAttendanceResult{
		MatchID:        item.ID,
		FeeCoefficient: coefficient,
		Billable:       billable,
		Participations: rows,
	}, nil
}

func (s *AttendanceService) validateEntries(ctx context.Context, entries []AttendanceEntry) error {
	var details []FieldViolation
	seen := make(map[string]int, len(entries))
	playerIDs := make([]string, 0, len(entries))
	grids := make(map[string]attendance.Grid, len(entries))

	for i, entry := range entries {
		playerID := strings.TrimSpace(entry.PlayerID)
		if playerID == "" {
			details = append(details, FieldViolation{Field: indexedField("entries", i, "playerId"), Message: "player id is required"})
			continue
		}
		if first, dup := seen[playerID]; dup {
			details = append(details, FieldViolation{
				Field:   indexedField("entries", i, "playerId"),
				Value:   playerID,
				Message: fmt.Sprintf("duplicate of entries[%d]", first),
			})
			continue
		}
		seen[playerID] = i
		playerIDs = append(playerIDs, playerID)
		grids[playerID] = entry.Grid

		if err := entry.Grid.Validate(); err != nil {
			details = append(details, FieldViolation{Field: indexedField("entries", i, "attendance"), Message: err.Error()})
		}
	}
	if len(details) > 0 {
		return newValidationError("invalid attendance", details)
	}

	if len(playerIDs) > 0 {
		players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
		if err != nil {
			return fmt.Errorf("get players: %w", err)
		}
		known := make(map[string]struct{}, len(players))
		for _, p := range players {
			known[p.ID] = struct{}{}
		}
		for _, playerID := range playerIDs {
			if _, ok := known[playerID]; !ok {
				details = append(details, FieldViolation{
					Field:   indexedField("entries", seen[playerID], "playerId"),
					Value:   playerID,
					Message: "unknown player",
				})
			}
		}
		if len(details) > 0 {
			return newValidationError("invalid attendance", details)
		}
	}

	conflicts := attendance.GoalkeeperConflicts(grids)
	if len(conflicts) == 0 {
		return nil
	}
	for _, c := range conflicts {
		details = append(details, FieldViolation{
			Field:   fmt.Sprintf("goalkeeper.%d.%d", c.Slot.Section, c.Slot.Part),
			Value:   strings.Join(c.PlayerIDs, ","),
			Message: attendance.ErrGoalkeeperConflict.Error(),
		})
	}
	return &ValidationError{
		Message: "invalid attendance",
		Details: details,
		Cause:   attendance.ErrGoalkeeperConflict,
	}
}
