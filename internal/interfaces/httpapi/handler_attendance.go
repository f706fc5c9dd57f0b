package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-club/internal/domain/attendance"
	"github.com/riskibarqy/football-club/internal/usecase"
)

// attendanceGridRequest is the per-player grid in its wire shape.
type attendanceGridRequest struct {
	Attendance    map[string]map[string]float64 `json:"attendance"`
	Goalkeeper    map[string]map[string]bool    `json:"goalkeeper"`
	IsLateArrival bool                          `json:"isLateArrival"`
}

func (r attendanceGridRequest) grid() attendance.Grid {
	return attendance.FromDocument(r.Attendance, r.Goalkeeper)
}

type attendanceEntryRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	attendanceGridRequest
}

type saveAttendanceRequest struct {
	Entries []attendanceEntryRequest `json:"entries" validate:"dive"`
}

type importRowRequest struct {
	PlayerName string `json:"playerName"`
	attendanceGridRequest
}

type importMatchFeesRequest struct {
	Rows []importRowRequest `json:"rows" validate:"required,min=1,max=200"`
}

func (h *Handler) SaveMatchAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SaveMatchAttendance")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req saveAttendanceRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries := make([]usecase.AttendanceEntry, 0, len(req.Entries))
	for _, p := range req.Entries {
		entries = append(entries, usecase.AttendanceEntry{
			PlayerID:      p.PlayerID,
			Grid:          p.grid(),
			IsLateArrival: p.IsLateArrival,
		})
	}

	result, err := h.attendanceService.SaveMatchAttendance(ctx, matchID, entries)
	if err != nil {
		h.logger.WarnContext(ctx, "save match attendance failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saveAttendanceToDTO(result))
}

func (h *Handler) ImportMatchFees(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ImportMatchFees")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req importMatchFeesRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rows := make([]usecase.ImportRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, usecase.ImportRow{
			PlayerName:    row.PlayerName,
			Grid:          row.grid(),
			IsLateArrival: row.IsLateArrival,
		})
	}

	result, err := h.importService.ImportMatchFees(ctx, matchID, rows)
	if err != nil {
		h.logger.WarnContext(ctx, "import match fees failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importResultToDTO(result))
}
