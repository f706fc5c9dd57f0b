package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-club/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-club/internal/platform/logging"
	"github.com/riskibarqy/football-club/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sequenceIDGenerator struct {
	prefix string
	next   atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.next.Add(1)), nil
}

type envelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       json.RawMessage  `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	matches := memory.NewMatchRepository(memory.SeedMatches())
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	participations := memory.NewParticipationRepository()
	overrides := memory.NewFeeOverrideRepository(participations)
	events := memory.NewMatchEventRepository()

	feeService := usecase.NewFeeService(matches, participations, overrides, logger, 2)
	handler := NewHandler(
		usecase.NewPlayerService(players, &sequenceIDGenerator{prefix: "player"}),
		usecase.NewMatchService(matches, &sequenceIDGenerator{prefix: "match"}),
		usecase.NewAttendanceService(matches, players, participations, logger),
		usecase.NewImportService(matches, players, participations, logger, 0.7),
		feeService,
		usecase.NewLeaderboardService(matches, players, events, &sequenceIDGenerator{prefix: "event"}),
		logger,
	)
	return NewRouter(handler, logger, nil)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.Equal(t, googleAPIVersion, env.APIVersion)
	return rec, env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NoError(t, sonic.Unmarshal([]byte(env.Data), out))
}

const flatMatchBody = `{
	"title": "Saturday league",
	"kickoffAt": "2025-04-05T15:00:00Z",
	"status": "completed",
	"coefficientMode": "fixed",
	"rates": {"fieldFeeTotal": 900, "waterFeeTotal": 0}
}`

const flatAttendanceBody = `{
	"entries": [
		{"playerId": "player-mid-01", "attendance": {"1": {"1": 1, "2": 1, "3": 1}}, "isLateArrival": true},
		{"playerId": "player-mid-02", "attendance": {"2": {"1": 1, "2": 1, "3": 1}}}
	]
}`

func TestRouter_MatchFeeFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/v1/matches", flatMatchBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID    string `json:"id"`
		Rates struct {
			LateFeeRate  float64 `json:"lateFeeRate"`
			VideoFeeRate float64 `json:"videoFeeRate"`
		} `json:"rates"`
	}
	decodeData(t, env, &created)
	assert.Equal(t, "match-1", created.ID)
	assert.Equal(t, 10.0, created.Rates.LateFeeRate)
	assert.Equal(t, 2.0, created.Rates.VideoFeeRate)
	assert.Contains(t, rec.Body.String(), `"lateFeeRate":10.00`)

	rec, env = doRequest(t, router, http.MethodPut, "/v1/matches/match-1/attendance", flatAttendanceBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var saved struct {
		Billable       bool `json:"billable"`
		Participations []struct {
			PlayerID string `json:"playerId"`
		} `json:"participations"`
	}
	decodeData(t, env, &saved)
	assert.True(t, saved.Billable)
	require.Len(t, saved.Participations, 2)

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/matches/match-1/fees", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"totalFee":42.00`)
	assert.Contains(t, body, `"totalFee":32.00`)
	assert.Contains(t, body, `"totalFinalFees":74.00`)

	rec, env = doRequest(t, router, http.MethodPut, "/v1/matches/match-1/fees/overrides/player-mid-01", `{"fieldFeeOverride": 20, "notes": "paid cash"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view struct {
		HasOverride bool `json:"hasOverride"`
		Effective   struct {
			TotalFee float64 `json:"totalFee"`
		} `json:"effective"`
	}
	decodeData(t, env, &view)
	assert.True(t, view.HasOverride)
	assert.Equal(t, 32.0, view.Effective.TotalFee)

	rec, env = doRequest(t, router, http.MethodGet, "/v1/matches/match-1/fees/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		PlayersWithOverrides []string `json:"playersWithOverrides"`
		OverridePercentage   float64  `json:"overridePercentage"`
		FeeDifference        float64  `json:"feeDifference"`
	}
	decodeData(t, env, &stats)
	assert.Equal(t, []string{"player-mid-01"}, stats.PlayersWithOverrides)
	assert.Equal(t, 50.0, stats.OverridePercentage)
	assert.Equal(t, -10.0, stats.FeeDifference)

	rec, env = doRequest(t, router, http.MethodDelete, "/v1/matches/match-1/fees/overrides/player-mid-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, env, &view)
	assert.False(t, view.HasOverride)
	assert.Equal(t, 42.0, view.Effective.TotalFee)
}

func TestRouter_CreateMatchKeepsExplicitZeroRates(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, _ := doRequest(t, router, http.MethodPost, "/v1/matches", `{
		"title": "Training game",
		"kickoffAt": "2025-04-05T15:00:00Z",
		"coefficientMode": "fixed",
		"rates": {"fieldFeeTotal": 900, "lateFeeRate": 0, "videoFeeRate": 0}
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"lateFeeRate":0.00`)
	assert.Contains(t, rec.Body.String(), `"videoFeeRate":0.00`)

	rec, _ = doRequest(t, router, http.MethodPut, "/v1/matches/match-1/attendance", flatAttendanceBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env := doRequest(t, router, http.MethodGet, "/v1/matches/match-1/fees", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var breakdown struct {
		Summary struct {
			TotalFinalFees float64 `json:"totalFinalFees"`
		} `json:"summary"`
	}
	decodeData(t, env, &breakdown)
	assert.Equal(t, 60.0, breakdown.Summary.TotalFinalFees)
}

func TestRouter_BulkOverridesPartialSuccess(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, _ := doRequest(t, router, http.MethodPost, "/v1/matches", flatMatchBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = doRequest(t, router, http.MethodPut, "/v1/matches/match-1/attendance", flatAttendanceBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := doRequest(t, router, http.MethodPut, "/v1/matches/match-1/fees/overrides", `{
		"manualOverrides": {
			"player-mid-01": {"fieldFeeOverride": 20},
			"player-gk-01": {"lateFeeOverride": 0},
			"player-mid-02": {"videoFeeOverride": 0, "lateFeeOverride": null, "notes": "brought the ball"}
		}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var decoded struct {
		Results []struct {
			PlayerID  string `json:"playerId"`
			Effective struct {
				TotalFee float64 `json:"totalFee"`
			} `json:"effective"`
		} `json:"results"`
		Errors []bulkOverrideErrorDTO `json:"errors"`
	}
	decodeData(t, env, &decoded)
	require.Len(t, decoded.Results, 2)
	require.Len(t, decoded.Errors, 1)
	assert.Equal(t, "player-gk-01", decoded.Errors[0].PlayerID)
	assert.Equal(t, "player-mid-01", decoded.Results[0].PlayerID)
	assert.Equal(t, 32.0, decoded.Results[0].Effective.TotalFee)
	assert.Equal(t, "player-mid-02", decoded.Results[1].PlayerID)
	assert.Equal(t, 30.0, decoded.Results[1].Effective.TotalFee)

	rec, env = doRequest(t, router, http.MethodGet, "/v1/matches/match-1/fees", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var breakdown struct {
		Summary struct {
			OverrideCount int `json:"overrideCount"`
		} `json:"summary"`
	}
	decodeData(t, env, &breakdown)
	assert.Equal(t, 2, breakdown.Summary.OverrideCount)
}

func TestRouter_ValidationDetails(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	tests := []struct {
		name          string
		method        string
		path          string
		body          string
		wantLocations []string
	}{
		{
			name:          "use case violations",
			method:        http.MethodPost,
			path:          "/v1/matches",
			body:          `{"rates": {"fieldFeeTotal": -1}}`,
			wantLocations: []string{"title", "kickoffAt", "rates.fieldFeeTotal"},
		},
		{
			name:          "request validator violations",
			method:        http.MethodPost,
			path:          "/v1/players",
			body:          `{"jerseyNumber": 120}`,
			wantLocations: []string{"name", "jerseyNumber", "position"},
		},
		{
			name:          "invalid attendance fraction",
			method:        http.MethodPut,
			path:          "/v1/matches/" + memory.MatchIDSeasonOpener + "/attendance",
			body:          `{"entries": [{"playerId": "player-mid-01", "attendance": {"1": {"1": 0.3}}}]}`,
			wantLocations: []string{"entries[0].attendance"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRequest(t, router, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			require.NotNil(t, env.Error)
			assert.Equal(t, "INVALID_ARGUMENT", env.Error.Status)

			locations := make([]string, 0, len(env.Error.Errors))
			for _, item := range env.Error.Errors {
				locations = append(locations, item.Location)
			}
			for _, want := range tt.wantLocations {
				assert.Contains(t, locations, want)
			}
		})
	}
}

func TestRouter_ErrorMapping(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/v1/matches/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Status)

	rec, env = doRequest(t, router, http.MethodPost, "/v1/players", `{"name": "Wu Di", "position": "MID", "nickname": "wd"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/leaderboard?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_EventsAndLeaderboard(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	path := "/v1/matches/" + memory.MatchIDSeasonOpener + "/events"

	rec, _ := doRequest(t, router, http.MethodPost, path, `{"playerId": "player-fwd-01", "type": "goal", "minute": 12}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec, _ = doRequest(t, router, http.MethodPost, path, `{"playerId": "player-mid-01", "type": "ASSIST", "minute": 12}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = doRequest(t, router, http.MethodPost, path, `{"playerId": "player-mid-01", "type": "OFFSIDE", "minute": 20}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := doRequest(t, router, http.MethodGet, "/v1/leaderboard?category=points", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var board leaderboardDTO
	decodeData(t, env, &board)
	assert.Equal(t, "points", board.Category)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "player-fwd-01", board.Entries[0].PlayerID)
	assert.Equal(t, 3, board.Entries[0].Value)
	assert.Equal(t, 1, board.Entries[1].Assists)
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	rec, env := doRequest(t, newTestRouter(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
}
