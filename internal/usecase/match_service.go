package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/riskibarqy/football-club/internal/domain/match"
	idgen "github.com/riskibarqy/football-club/internal/platform/id"
	"go.opentelemetry.io/otel/attribute"
)

const defaultMatchListLimit = 50

type MatchService struct {
	matchRepo match.Repository
	idGen     idgen.Generator
	now       func() time.Time
}

type CreateMatchInput struct {
	Title           string
	Opponent        string
	Venue           string
	KickoffAt       time.Time
	Status          string
	Rates           fee.RateInput
	CoefficientMode string
}

type ListMatchesInput struct {
	Status string
	Limit  int
}

type UpdateFeeRatesInput struct {
	Rates           fee.RateInput
	CoefficientMode *string
}

func NewMatchService(matchRepo match.Repository, idGen idgen.Generator) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		idGen:     idGen,
		now:       time.Now,
	}
}

func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CreateMatch")
	defer span.End()

	var details []FieldViolation
	title := strings.TrimSpace(input.Title)
	if title == "" {
		details = append(details, FieldViolation{Field: "title", Message: "title is required"})
	}
	if input.KickoffAt.IsZero() {
		details = append(details, FieldViolation{Field: "kickoffAt", Message: "kickoff time is required"})
	}
	status, err := match.ParseStatus(input.Status)
	if err != nil {
		details = append(details, FieldViolation{Field: "status", Value: input.Status, Message: err.Error()})
	}
	mode, err := fee.ParseCoefficientMode(input.CoefficientMode)
	if err != nil {
		details = append(details, FieldViolation{Field: "coefficientMode", Value: input.CoefficientMode, Message: err.Error()})
	}
	rates := input.Rates.Resolve()
	details = append(details, rateViolations(rates, "rates.")...)
	if len(details) > 0 {
		return match.Match{}, newValidationError("invalid match", details)
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.now().UTC()
	item := match.Match{
		ID:              matchID,
		Title:           title,
		Opponent:        strings.TrimSpace(input.Opponent),
		Venue:           strings.TrimSpace(input.Venue),
		KickoffAt:       input.KickoffAt.UTC(),
		Status:          status,
		Rates:           rates,
		CoefficientMode: mode,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	return item, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch", attribute.String("match.id", matchID))
	defer span.End()

	return loadMatch(ctx, s.matchRepo, matchID)
}

func (s *MatchService) ListMatches(ctx context.Context, input ListMatchesInput) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	filter := match.ListFilter{Limit: input.Limit}
	if strings.TrimSpace(input.Status) != "" {
		status, err := match.ParseStatus(input.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = status
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultMatchListLimit
	}

	items, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return items, nil
}

// UpdateFeeRates changes the rates used by future saves. Fees already stored
// on participation rows are left as they are.
func (s *MatchService) UpdateFeeRates(ctx context.Context, matchID string, input UpdateFeeRatesInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateFeeRates", attribute.String("match.id", matchID))
	defer span.End()

	rates := input.Rates.Resolve()
	details := rateViolations(rates, "rates.")
	var mode fee.CoefficientMode
	if input.CoefficientMode != nil {
		parsed, err := fee.ParseCoefficientMode(*input.CoefficientMode)
		if err != nil {
			details = append(details, FieldViolation{Field: "coefficientMode", Value: *input.CoefficientMode, Message: err.Error()})
		}
		mode = parsed
	}
	if len(details) > 0 {
		return match.Match{}, newValidationError("invalid fee rates", details)
	}

	item, err := loadMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return match.Match{}, err
	}

	item.Rates = rates
	if mode != "" {
		item.CoefficientMode = mode
	}
	item.UpdatedAt = s.now().UTC()

	if err := s.matchRepo.Update(ctx, item); err != nil {
		recordSpanError(span, err)
		return match.Match{}, fmt.Errorf("update match fee rates: %w", err)
	}

	return item, nil
}

func loadMatch(ctx context.Context, repo match.Repository, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return item, nil
}
