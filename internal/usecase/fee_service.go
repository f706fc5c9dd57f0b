package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/riskibarqy/football-club/internal/domain/feeoverride"
	"github.com/riskibarqy/football-club/internal/domain/match"
	"github.com/riskibarqy/football-club/internal/domain/participation"
	"github.com/riskibarqy/football-club/internal/platform/logging"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultOverrideWorkerCount = 4
	maxOverrideNotesLength     = 500
)

type FeeService struct {
	matchRepo         match.Repository
	participationRepo participation.Repository
	overrideRepo      feeoverride.Repository
	logger            *logging.Logger
	workerCount       int
	now               func() time.Time
}

// OverrideInput holds the admin's corrections. Nil amounts keep the
// calculated value.
type OverrideInput struct {
	FieldFee *decimal.Decimal
	VideoFee *decimal.Decimal
	LateFee  *decimal.Decimal
	Notes    string
}

type BulkOverrideItem struct {
	PlayerID string
	Override OverrideInput
}

type BulkOverrideError struct {
	PlayerID string
	Message  string
}

type BulkOverrideResult struct {
	Results []feeoverride.PlayerFeeView
	Errors  []BulkOverrideError
}

type OverrideStatistics struct {
	MatchID              string
	PlayersWithOverrides []string
	OverridePercentage   decimal.Decimal
	FeeDifference        decimal.Decimal
	Summary              feeoverride.Summary
}

type FeeBreakdownView struct {
	MatchID             string
	Players             []feeoverride.PlayerFeeView
	TotalParticipants   int
	TotalCalculatedFees decimal.Decimal
	TotalFinalFees      decimal.Decimal
	// FeeCoefficient is the coefficient stored with the participations, zero
	// when nobody took part yet.
	FeeCoefficient decimal.Decimal
	Summary        feeoverride.Summary
}

func NewFeeService(
	matchRepo match.Repository,
	participationRepo participation.Repository,
	overrideRepo feeoverride.Repository,
	logger *logging.Logger,
	workerCount int,
) *FeeService {
	if logger == nil {
		logger = logging.Default()
	}
	if workerCount <= 0 {
		workerCount = defaultOverrideWorkerCount
	}

	return &FeeService{
		matchRepo:         matchRepo,
		participationRepo: participationRepo,
		overrideRepo:      overrideRepo,
		logger:            logger,
		workerCount:       workerCount,
		now:               time.Now,
	}
}

func (s *FeeService) ApplyOverride(ctx context.Context, matchID, playerID string, input OverrideInput) (feeoverride.PlayerFeeView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeeService.ApplyOverride",
		attribute.String("match.id", matchID),
		attribute.String("player.id", playerID),
	)
	defer span.End()

	item, err := loadMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return feeoverride.PlayerFeeView{}, err
	}

	view, err := s.applyOverride(ctx, item.ID, playerID, input)
	if err != nil {
		recordSpanError(span, err)
		return feeoverride.PlayerFeeView{}, err
	}

	return view, nil
}

// ApplyBulkOverrides applies every item on its own. A failing item is reported
// in Errors and never rolls back or blocks the others.
func (s *FeeService) ApplyBulkOverrides(ctx context.Context, matchID string, items []BulkOverrideItem) (BulkOverrideResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeeService.ApplyBulkOverrides",
		attribute.String("match.id", matchID),
		attribute.Int("override.items", len(items)),
	)
	defer span.End()

	item, err := loadMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return BulkOverrideResult{}, err
	}

	result := BulkOverrideResult{
		Results: make([]feeoverride.PlayerFeeView, 0, len(items)),
	}
	if len(items) == 0 {
		return result, nil
	}

	workerCount := s.workerCount
	if workerCount > len(items) {
		workerCount = len(items)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return BulkOverrideResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	unique := make([]BulkOverrideItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, entry := range items {
		entry.PlayerID = strings.TrimSpace(entry.PlayerID)
		if _, dup := seen[entry.PlayerID]; dup && entry.PlayerID != "" {
			result.Errors = append(result.Errors, BulkOverrideError{PlayerID: entry.PlayerID, Message: "duplicate player in request"})
			continue
		}
		seen[entry.PlayerID] = struct{}{}
		unique = append(unique, entry)
	}

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for _, entry := range unique {
		entry := entry
		playerID := entry.PlayerID

		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			view, err := s.applyOverride(ctx, item.ID, playerID, entry.Override)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, BulkOverrideError{PlayerID: playerID, Message: err.Error()})
				return
			}
			result.Results = append(result.Results, view)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return BulkOverrideResult{}, fmt.Errorf("submit override to worker pool: %w", err)
		}
	}

	workers.Wait()

	sort.SliceStable(result.Results, func(i, j int) bool {
		return result.Results[i].PlayerID < result.Results[j].PlayerID
	})
	sort.SliceStable(result.Errors, func(i, j int) bool {
		return result.Errors[i].PlayerID < result.Errors[j].PlayerID
	})

	if len(result.Errors) > 0 {
		s.logger.WarnContext(ctx, "bulk override finished with failures",
			"match_id", item.ID,
			"applied", len(result.Results),
			"failed", len(result.Errors),
		)
	}

	return result, nil
}

// ClearOverride deletes the override so the calculated fees apply again.
func (s *FeeService) ClearOverride(ctx context.Context, matchID, playerID string) (feeoverride.PlayerFeeView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeeService.ClearOverride",
		attribute.String("match.id", matchID),
		attribute.String("player.id", playerID),
	)
	defer span.End()

	item, err := loadMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return feeoverride.PlayerFeeView{}, err
	}

	row, err := s.loadParticipation(ctx, item.ID, playerID)
	if err != nil {
		return feeoverride.PlayerFeeView{}, err
	}

	if _, err := s.overrideRepo.Delete(ctx, item.ID, row.PlayerID); err != nil {
		recordSpanError(span, err)
		return feeoverride.PlayerFeeView{}, fmt.Errorf("delete fee override: %w", err)
	}

	return feeoverride.NewPlayerFeeView(row.PlayerID, row.Fees, nil), nil
}

func (s *FeeService) GetFeeBreakdown(ctx context.Context, matchID string) (FeeBreakdownView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeeService.GetFeeBreakdown", attribute.String("match.id", matchID))
	defer span.End()

	item, rows, overrides, err := s.loadMatchFees(ctx, matchID)
	if err != nil {
		recordSpanError(span, err)
		return FeeBreakdownView{}, err
	}

	views := joinFeeViews(rows, overrides)
	summary := feeoverride.Summarize(views)
	coefficient := decimal.Zero
	if len(rows) > 0 {
		coefficient = rows[0].FeeCoefficient
	}

	return FeeBreakdownView{
		MatchID:             item.ID,
		Players:             views,
		TotalParticipants:   summary.TotalParticipants,
		TotalCalculatedFees: summary.TotalCalculatedFees,
		TotalFinalFees:      summary.TotalFinalFees,
		FeeCoefficient:      coefficient,
		Summary:             summary,
	}, nil
}

func (s *FeeService) GetOverrideStatistics(ctx context.Context, matchID string) (OverrideStatistics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeeService.GetOverrideStatistics", attribute.String("match.id", matchID))
	defer span.End()

	item, rows, overrides, err := s.loadMatchFees(ctx, matchID)
	if err != nil {
		recordSpanError(span, err)
		return OverrideStatistics{}, err
	}

	views := joinFeeViews(rows, overrides)
	summary := feeoverride.Summarize(views)
	withOverrides := make([]string, 0, summary.OverrideCount)
	for _, v := range views {
		if v.HasOverride() {
			withOverrides = append(withOverrides, v.PlayerID)
		}
	}

	return OverrideStatistics{
		MatchID:              item.ID,
		PlayersWithOverrides: withOverrides,
		OverridePercentage:   summary.OverridePercentage,
		FeeDifference:        summary.FeeDifference,
		Summary:              summary,
	}, nil
}

// ListAnomalies recomputes every stored breakdown from its grid and the
// coefficient and rates stored with it, and reports totals that drifted
// without an override to explain them. A later rate change is not drift.
func (s *FeeService) ListAnomalies(ctx context.Context, matchID string) ([]feeoverride.Anomaly, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeeService.ListAnomalies", attribute.String("match.id", matchID))
	defer span.End()

	item, rows, overrides, err := s.loadMatchFees(ctx, matchID)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	overridden := make(map[string]struct{}, len(overrides))
	for _, o := range overrides {
		overridden[o.PlayerID] = struct{}{}
	}

	out := make([]feeoverride.Anomaly, 0)
	for _, row := range rows {
		recomputed := fee.CalculateForParticipant(row.Grid, row.IsLateArrival, row.FeeCoefficient, row.CalculationRates())
		_, hasOverride := overridden[row.PlayerID]
		if anomaly, ok := feeoverride.DetectAnomaly(item.ID, row.PlayerID, row.Fees, recomputed, hasOverride); ok {
			out = append(out, anomaly)
		}
	}

	return out, nil
}

func (s *FeeService) applyOverride(ctx context.Context, matchID, playerID string, input OverrideInput) (feeoverride.PlayerFeeView, error) {
	playerID = strings.TrimSpace(playerID)
	if err := validateOverrideInput(playerID, input); err != nil {
		return feeoverride.PlayerFeeView{}, err
	}

	saved, err := s.overrideRepo.Upsert(ctx, feeoverride.Override{
		MatchID:   matchID,
		PlayerID:  playerID,
		FieldFee:  input.FieldFee,
		VideoFee:  input.VideoFee,
		LateFee:   input.LateFee,
		Notes:     strings.TrimSpace(input.Notes),
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, feeoverride.ErrParticipantNotFound) {
			return feeoverride.PlayerFeeView{}, fmt.Errorf("%w: player=%s is not part of match=%s", ErrNotFound, playerID, matchID)
		}
		return feeoverride.PlayerFeeView{}, fmt.Errorf("upsert fee override: %w", err)
	}

	row, err := s.loadParticipation(ctx, matchID, playerID)
	if err != nil {
		return feeoverride.PlayerFeeView{}, err
	}

	return feeoverride.NewPlayerFeeView(playerID, row.Fees, &saved), nil
}

func validateOverrideInput(playerID string, input OverrideInput) error {
	var details []FieldViolation
	if playerID == "" {
		details = append(details, FieldViolation{Field: "playerId", Message: "player id is required"})
	}
	if input.FieldFee == nil && input.VideoFee == nil && input.LateFee == nil {
		details = append(details, FieldViolation{Field: "override", Message: "at least one fee override is required"})
	}
	for _, candidate := range []struct {
		field string
		value *decimal.Decimal
	}{
		{field: "fieldFeeOverride", value: input.FieldFee},
		{field: "videoFeeOverride", value: input.VideoFee},
		{field: "lateFeeOverride", value: input.LateFee},
	} {
		if v, bad := amountViolation(candidate.field, candidate.value); bad {
			details = append(details, v)
		}
	}
	if len(input.Notes) > maxOverrideNotesLength {
		details = append(details, FieldViolation{
			Field:   "notes",
			Message: fmt.Sprintf("notes must be at most %d characters", maxOverrideNotesLength),
		})
	}
	if len(details) > 0 {
		return newValidationError("invalid fee override", details)
	}
	return nil
}

func (s *FeeService) loadParticipation(ctx context.Context, matchID, playerID string) (participation.Participation, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return participation.Participation{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	row, exists, err := s.participationRepo.Get(ctx, matchID, playerID)
	if err != nil {
		return participation.Participation{}, fmt.Errorf("get participation: %w", err)
	}
	if !exists {
		return participation.Participation{}, fmt.Errorf("%w: player=%s is not part of match=%s", ErrNotFound, playerID, matchID)
	}

	return row, nil
}

// loadMatchFees reads the match, its participations and its overrides
// concurrently.
func (s *FeeService) loadMatchFees(ctx context.Context, matchID string) (match.Match, []participation.Participation, []feeoverride.Override, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, nil, nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	var (
		item      match.Match
		rows      []participation.Participation
		overrides []feeoverride.Override
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		item, err = loadMatch(ctx, s.matchRepo, matchID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		rows, err = s.participationRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return fmt.Errorf("list participations: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		overrides, err = s.overrideRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return fmt.Errorf("list fee overrides: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return match.Match{}, nil, nil, err
	}

	return item, rows, overrides, nil
}

// joinFeeViews pairs participations with overrides. Overrides without a
// participation row are ignored.
func joinFeeViews(rows []participation.Participation, overrides []feeoverride.Override) []feeoverride.PlayerFeeView {
	byPlayer := make(map[string]feeoverride.Override, len(overrides))
	for _, o := range overrides {
		byPlayer[o.PlayerID] = o
	}

	views := make([]feeoverride.PlayerFeeView, 0, len(rows))
	for _, row := range rows {
		var current *feeoverride.Override
		if o, ok := byPlayer[row.PlayerID]; ok {
			o := o
			current = &o
		}
		views = append(views, feeoverride.NewPlayerFeeView(row.PlayerID, row.Fees, current))
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].PlayerID < views[j].PlayerID
	})
	return views
}
