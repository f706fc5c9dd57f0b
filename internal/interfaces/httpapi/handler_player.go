package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-club/internal/usecase"
)

type createPlayerRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	JerseyNumber int    `json:"jerseyNumber" validate:"min=0,max=99"`
	Position     string `json:"position" validate:"required"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListPlayers")
	defer span.End()

	activeOnly := false
	if raw := strings.TrimSpace(r.URL.Query().Get("active")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, &usecase.ValidationError{
				Message: "invalid query",
				Details: []usecase.FieldViolation{{Field: "active", Value: raw, Message: "must be true or false"}},
			})
			return
		}
		activeOnly = parsed
	}

	players, err := h.playerService.ListPlayers(ctx, activeOnly)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.playerService.CreatePlayer(ctx, usecase.CreatePlayerInput{
		Name:         req.Name,
		JerseyNumber: req.JerseyNumber,
		Position:     req.Position,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(created))
}
