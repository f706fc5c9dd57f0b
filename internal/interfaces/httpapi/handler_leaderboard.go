package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-club/internal/usecase"
)

type recordEventRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	Type     string `json:"type" validate:"required"`
	Minute   int    `json:"minute"`
}

func (h *Handler) RecordMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RecordMatchEvent")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req recordEventRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	event, err := h.leaderboardService.RecordEvent(ctx, matchID, usecase.RecordEventInput{
		PlayerID: req.PlayerID,
		Type:     req.Type,
		Minute:   req.Minute,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record match event failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchEventToDTO(event))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetLeaderboard")
	defer span.End()

	limit, err := queryLimit(r, 10)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.leaderboardService.Leaderboard(ctx, r.URL.Query().Get("category"), limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}
