package usecase

import (
	"testing"

	"github.com/riskibarqy/football-club/internal/domain/participation"
	"github.com/riskibarqy/football-club/internal/infrastructure/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_RunOnce(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	seedFlatRateAttendance(t, env, "flat")

	rows, err := env.participations.ListByMatch(t.Context(), "flat")
	require.NoError(t, err)
	drifted := make([]participation.Participation, 0, len(rows))
	for _, row := range rows {
		if row.PlayerID == "player-mid-01" {
			row.Fees.TotalFee = decimal.NewFromInt(40)
		}
		drifted = append(drifted, row)
	}
	require.NoError(t, env.participations.ReplaceForMatch(t.Context(), "flat", drifted))

	_, err = env.attendanceService.SaveMatchAttendance(t.Context(), memory.MatchIDSeasonOpener, []AttendanceEntry{
		{PlayerID: "player-fwd-01", Grid: gridWithParts(t, 9)},
	})
	require.NoError(t, err)

	report, err := env.auditService.RunOnce(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, report.MatchesChecked)
	assert.Zero(t, report.MatchesFailed)
	require.Len(t, report.Anomalies, 1)
	assert.Equal(t, "flat", report.Anomalies[0].MatchID)
	assert.Equal(t, "player-mid-01", report.Anomalies[0].PlayerID)
	requireDecimal(t, "-2", report.Anomalies[0].Difference, "difference")
}
