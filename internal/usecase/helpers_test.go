package usecase

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/football-club/internal/domain/attendance"
	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/riskibarqy/football-club/internal/domain/match"
	"github.com/riskibarqy/football-club/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-club/internal/platform/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

type sequenceIDGenerator struct {
	prefix string
	next   atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.next.Add(1)), nil
}

type testEnv struct {
	matches        *memory.MatchRepository
	players        *memory.PlayerRepository
	participations *memory.ParticipationRepository
	overrides      *memory.FeeOverrideRepository
	events         *memory.MatchEventRepository

	matchService       *MatchService
	attendanceService  *AttendanceService
	feeService         *FeeService
	importService      *ImportService
	leaderboardService *LeaderboardService
	auditService       *AuditService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logging.NewNop()
	env := &testEnv{
		matches:        memory.NewMatchRepository(memory.SeedMatches()),
		players:        memory.NewPlayerRepository(memory.SeedPlayers()),
		participations: memory.NewParticipationRepository(),
		events:         memory.NewMatchEventRepository(),
	}
	env.overrides = memory.NewFeeOverrideRepository(env.participations)

	env.matchService = NewMatchService(env.matches, &sequenceIDGenerator{prefix: "match"})
	env.matchService.now = func() time.Time { return fixedNow }
	env.attendanceService = NewAttendanceService(env.matches, env.players, env.participations, logger)
	env.attendanceService.now = func() time.Time { return fixedNow }
	env.feeService = NewFeeService(env.matches, env.participations, env.overrides, logger, 2)
	env.feeService.now = func() time.Time { return fixedNow }
	env.importService = NewImportService(env.matches, env.players, env.participations, logger, 0.7)
	env.importService.now = func() time.Time { return fixedNow }
	env.leaderboardService = NewLeaderboardService(env.matches, env.players, env.events, &sequenceIDGenerator{prefix: "event"})
	env.leaderboardService.now = func() time.Time { return fixedNow }
	env.auditService = NewAuditService(env.matches, env.feeService, logger)

	return env
}

// addFlatRateMatch stores a fixed-mode match whose coefficient is exactly 10.
func (env *testEnv) addFlatRateMatch(t *testing.T, matchID string) match.Match {
	t.Helper()

	item := match.Match{
		ID:              matchID,
		Title:           "Flat rate match",
		KickoffAt:       fixedNow.Add(-24 * time.Hour),
		Status:          match.StatusCompleted,
		Rates:           fee.DefaultRates(decimal.NewFromInt(900), decimal.Zero),
		CoefficientMode: fee.CoefficientFixed,
		CreatedAt:       fixedNow,
		UpdatedAt:       fixedNow,
	}
	require.NoError(t, env.matches.Create(t.Context(), item))
	return item
}

// gridWithParts fills cells in order with full parts, ending with a half part
// when parts has a .5 remainder.
func gridWithParts(t *testing.T, parts float64) attendance.Grid {
	t.Helper()

	var g attendance.Grid
	remaining := parts
	for s := 1; s <= attendance.Sections && remaining > 0; s++ {
		for p := 1; p <= attendance.Parts && remaining > 0; p++ {
			fraction := 1.0
			if remaining < 1 {
				fraction = remaining
			}
			require.NoError(t, g.Set(s, p, fraction, false))
			remaining -= fraction
		}
	}
	return g
}

func keeperGrid(t *testing.T, slots ...attendance.Slot) attendance.Grid {
	t.Helper()

	var g attendance.Grid
	for _, slot := range slots {
		require.NoError(t, g.Set(slot.Section, slot.Part, 1, true))
	}
	return g
}

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}
