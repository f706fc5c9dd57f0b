package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/riskibarqy/football-club/internal/domain/attendance"
	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/riskibarqy/football-club/internal/domain/match"
	"github.com/riskibarqy/football-club/internal/domain/participation"
	"github.com/riskibarqy/football-club/internal/domain/player"
	"github.com/riskibarqy/football-club/internal/platform/logging"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

const defaultImportMatchThreshold = 0.7

// ImportService loads historical attendance sheets that were already parsed
// into rows. Historical fees always use the fixed play-time denominator.
type ImportService struct {
	matchRepo         match.Repository
	playerRepo        player.Repository
	participationRepo participation.Repository
	logger            *logging.Logger
	threshold         float64
	now               func() time.Time
}

type ImportRow struct {
	PlayerName    string
	Grid          attendance.Grid
	IsLateArrival bool
}

type ImportedRow struct {
	Row           int
	PlayerName    string
	Player        player.Player
	Similarity    float64
	Participation participation.Participation
}

type ImportRowError struct {
	Row        int
	PlayerName string
	Message    string
}

type ImportResult struct {
	MatchID        string
	FeeCoefficient decimal.Decimal
	Imported       []ImportedRow
	Errors         []ImportRowError
}

func NewImportService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	participationRepo participation.Repository,
	logger *logging.Logger,
	threshold float64,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	if threshold <= 0 || threshold > 1 {
		threshold = defaultImportMatchThreshold
	}

	return &ImportService{
		matchRepo:         matchRepo,
		playerRepo:        playerRepo,
		participationRepo: participationRepo,
		logger:            logger,
		threshold:         threshold,
		now:               time.Now,
	}
}

// ImportMatchFees resolves each row to a roster player and replaces the
// match's participations with the resolved rows. Unresolved rows are reported
// and skipped; when no row resolves nothing is written.
func (s *ImportService) ImportMatchFees(ctx context.Context, matchID string, rows []ImportRow) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportMatchFees",
		attribute.String("match.id", matchID),
		attribute.Int("import.rows", len(rows)),
	)
	defer span.End()

	item, err := loadMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return ImportResult{}, err
	}
	if len(rows) == 0 {
		return ImportResult{}, fmt.Errorf("%w: import has no rows", ErrInvalidInput)
	}

	roster, err := s.playerRepo.List(ctx, true)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list players: %w", err)
	}

	coefficient, _ := fee.ResolveCoefficient(item.Rates, fee.CoefficientFixed, nil)
	result := ImportResult{
		MatchID:        item.ID,
		FeeCoefficient: coefficient,
	}

	now := s.now().UTC()
	claimed := make(map[string]int, len(rows))
	participations := make([]participation.Participation, 0, len(rows))
	for i, row := range rows {
		rowNumber := i + 1
		name := strings.TrimSpace(row.PlayerName)
		if name == "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNumber, Message: "player name is required"})
			continue
		}
		if err := row.Grid.Validate(); err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNumber, PlayerName: name, Message: err.Error()})
			continue
		}

		matched, similarity, ok := matchPlayerName(name, roster, s.threshold)
		if !ok {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNumber, PlayerName: name, Message: "no roster player matches this name"})
			continue
		}
		if first, dup := claimed[matched.ID]; dup {
			result.Errors = append(result.Errors, ImportRowError{
				Row:        rowNumber,
				PlayerName: name,
				Message:    fmt.Sprintf("player %s already imported from row %d", matched.Name, first),
			})
			continue
		}
		claimed[matched.ID] = rowNumber

		p := participation.Participation{
			MatchID:        item.ID,
			PlayerID:       matched.ID,
			Grid:           row.Grid,
			IsLateArrival:  row.IsLateArrival,
			Fees:           fee.CalculateForParticipant(row.Grid, row.IsLateArrival, coefficient, item.Rates),
			FeeCoefficient: coefficient,
			LateFeeRate:    item.Rates.LateFeeRate,
			VideoFeeRate:   item.Rates.VideoFeeRate,
			CalculatedAt:   now,
		}
		participations = append(participations, p)
		result.Imported = append(result.Imported, ImportedRow{
			Row:           rowNumber,
			PlayerName:    name,
			Player:        matched,
			Similarity:    similarity,
			Participation: p,
		})
	}

	if len(participations) == 0 {
		s.logger.WarnContext(ctx, "import resolved no rows", "match_id", item.ID, "rows", len(rows))
		return result, nil
	}

	if err := s.participationRepo.ReplaceForMatch(ctx, item.ID, participations); err != nil {
		recordSpanError(span, err)
		return ImportResult{}, fmt.Errorf("replace participations: %w", err)
	}

	if len(result.Errors) > 0 {
		s.logger.WarnContext(ctx, "import finished with skipped rows",
			"match_id", item.ID,
			"imported", len(result.Imported),
			"skipped", len(result.Errors),
		)
	}

	return result, nil
}

// matchPlayerName prefers a case-insensitive exact match and otherwise takes
// the closest name whose similarity is above threshold.
func matchPlayerName(name string, roster []player.Player, threshold float64) (player.Player, float64, bool) {
	target := strings.ToLower(name)
	for _, candidate := range roster {
		if strings.ToLower(strings.TrimSpace(candidate.Name)) == target {
			return candidate, 1, true
		}
	}

	var (
		best      player.Player
		bestScore = -1.0
	)
	for _, candidate := range roster {
		candidateName := strings.ToLower(strings.TrimSpace(candidate.Name))
		distance := fuzzy.LevenshteinDistance(target, candidateName)
		maxLen := float64(max(utf8.RuneCountInString(target), utf8.RuneCountInString(candidateName)))
		if maxLen == 0 {
			continue
		}
		similarity := 1 - float64(distance)/maxLen

		if similarity > threshold && similarity > bestScore {
			bestScore = similarity
			best = candidate
		}
	}
	if bestScore < 0 {
		return player.Player{}, 0, false
	}
	return best, bestScore, true
}
