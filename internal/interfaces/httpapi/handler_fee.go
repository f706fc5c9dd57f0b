package httpapi

import (
	"net/http"
	"sort"

	"github.com/riskibarqy/football-club/internal/usecase"
	"github.com/shopspring/decimal"
)

// overrideRequest mirrors one entry of the override payload. A null or
// missing amount keeps the calculated component.
type overrideRequest struct {
	FieldFeeOverride *decimal.Decimal `json:"fieldFeeOverride"`
	VideoFeeOverride *decimal.Decimal `json:"videoFeeOverride"`
	LateFeeOverride  *decimal.Decimal `json:"lateFeeOverride"`
	Notes            string           `json:"notes" validate:"max=500"`
}

func (r overrideRequest) toInput() usecase.OverrideInput {
	return usecase.OverrideInput{
		FieldFee: r.FieldFeeOverride,
		VideoFee: r.VideoFeeOverride,
		LateFee:  r.LateFeeOverride,
		Notes:    r.Notes,
	}
}

type bulkOverrideRequest struct {
	ManualOverrides map[string]overrideRequest `json:"manualOverrides" validate:"required,min=1,dive"`
}

func (h *Handler) GetFeeBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetFeeBreakdown")
	defer span.End()

	matchID := r.PathValue("matchID")
	view, err := h.feeService.GetFeeBreakdown(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get fee breakdown failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, feeBreakdownViewToDTO(view))
}

func (h *Handler) GetOverrideStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetOverrideStatistics")
	defer span.End()

	matchID := r.PathValue("matchID")
	stats, err := h.feeService.GetOverrideStatistics(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get override statistics failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overrideStatisticsToDTO(stats))
}

func (h *Handler) ListFeeAnomalies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListFeeAnomalies")
	defer span.End()

	matchID := r.PathValue("matchID")
	anomalies, err := h.feeService.ListAnomalies(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fee anomalies failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, anomaliesToDTO(anomalies))
}

func (h *Handler) ApplyBulkOverrides(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ApplyBulkOverrides")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req bulkOverrideRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	playerIDs := make([]string, 0, len(req.ManualOverrides))
	for playerID := range req.ManualOverrides {
		playerIDs = append(playerIDs, playerID)
	}
	sort.Strings(playerIDs)

	items := make([]usecase.BulkOverrideItem, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		items = append(items, usecase.BulkOverrideItem{
			PlayerID: playerID,
			Override: req.ManualOverrides[playerID].toInput(),
		})
	}

	result, err := h.feeService.ApplyBulkOverrides(ctx, matchID, items)
	if err != nil {
		h.logger.WarnContext(ctx, "apply bulk overrides failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if len(result.Errors) > 0 {
		h.logger.InfoContext(ctx, "bulk overrides partially applied",
			"match_id", matchID,
			"applied", len(result.Results),
			"failed", len(result.Errors),
		)
	}

	writeSuccess(ctx, w, http.StatusOK, bulkOverrideResultToDTO(result))
}

func (h *Handler) ApplyOverride(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ApplyOverride")
	defer span.End()

	matchID := r.PathValue("matchID")
	playerID := r.PathValue("playerID")
	var req overrideRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.feeService.ApplyOverride(ctx, matchID, playerID, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "apply override failed", "match_id", matchID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerFeeToDTO(view))
}

func (h *Handler) ClearOverride(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ClearOverride")
	defer span.End()

	matchID := r.PathValue("matchID")
	playerID := r.PathValue("playerID")
	view, err := h.feeService.ClearOverride(ctx, matchID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "clear override failed", "match_id", matchID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerFeeToDTO(view))
}
