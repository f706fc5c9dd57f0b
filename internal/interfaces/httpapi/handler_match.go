package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/riskibarqy/football-club/internal/usecase"
	"github.com/shopspring/decimal"
)

// rateConfigRequest leaves omitted late and video rates nil so they take
// their defaults, while an explicit 0 is kept.
type rateConfigRequest struct {
	FieldFeeTotal decimal.Decimal  `json:"fieldFeeTotal"`
	WaterFeeTotal decimal.Decimal  `json:"waterFeeTotal"`
	LateFeeRate   *decimal.Decimal `json:"lateFeeRate"`
	VideoFeeRate  *decimal.Decimal `json:"videoFeeRate"`
}

func (r rateConfigRequest) toDomain() fee.RateInput {
	return fee.RateInput{
		FieldFeeTotal: r.FieldFeeTotal,
		WaterFeeTotal: r.WaterFeeTotal,
		LateFeeRate:   r.LateFeeRate,
		VideoFeeRate:  r.VideoFeeRate,
	}
}

type createMatchRequest struct {
	Title           string            `json:"title" validate:"max=200"`
	Opponent        string            `json:"opponent" validate:"max=200"`
	Venue           string            `json:"venue" validate:"max=200"`
	KickoffAt       time.Time         `json:"kickoffAt"`
	Status          string            `json:"status"`
	CoefficientMode string            `json:"coefficientMode"`
	Rates           rateConfigRequest `json:"rates"`
}

type updateFeeRatesRequest struct {
	Rates           rateConfigRequest `json:"rates"`
	CoefficientMode *string           `json:"coefficientMode"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListMatches")
	defer span.End()

	limit, err := queryLimit(r, defaultListLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.matchService.ListMatches(ctx, usecase.ListMatchesInput{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchService.CreateMatch(ctx, usecase.CreateMatchInput{
		Title:           req.Title,
		Opponent:        req.Opponent,
		Venue:           req.Venue,
		KickoffAt:       req.KickoffAt,
		Status:          req.Status,
		Rates:           req.Rates.toDomain(),
		CoefficientMode: req.CoefficientMode,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) UpdateFeeRates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "UpdateFeeRates")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req updateFeeRatesRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.matchService.UpdateFeeRates(ctx, matchID, usecase.UpdateFeeRatesInput{
		Rates:           req.Rates.toDomain(),
		CoefficientMode: req.CoefficientMode,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update fee rates failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}
