package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/football-club/internal/domain/player"
	"github.com/riskibarqy/football-club/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportService_ImportMatchFees(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	result, err := env.importService.ImportMatchFees(t.Context(), memory.MatchIDSeasonOpener, []ImportRow{
		{PlayerName: "zhang wei", Grid: gridWithParts(t, 3), IsLateArrival: true},
		{PlayerName: "Li Mingg", Grid: gridWithParts(t, 1.5)},
		{PlayerName: "Unknown Person", Grid: gridWithParts(t, 2)},
		{PlayerName: "Zhang Wei", Grid: gridWithParts(t, 1)},
		{PlayerName: "Sun Jie", Grid: gridWithParts(t, 1)},
		{PlayerName: "", Grid: gridWithParts(t, 1)},
	})
	require.NoError(t, err)

	require.Len(t, result.Imported, 2)
	assert.Equal(t, "player-mid-01", result.Imported[0].Player.ID)
	assert.Equal(t, 1.0, result.Imported[0].Similarity)
	assert.Equal(t, "player-mid-02", result.Imported[1].Player.ID)
	assert.Greater(t, result.Imported[1].Similarity, 0.7)

	require.Len(t, result.Errors, 4)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Message, "row 1")
	assert.Equal(t, 5, result.Errors[2].Row)
	assert.Equal(t, 6, result.Errors[3].Row)

	// 1150 over the fixed 90 units, whatever the real play time was.
	requireDecimal(t, "12.78", result.FeeCoefficient.Round(2), "coefficient")
	first := result.Imported[0].Participation.Fees
	requireDecimal(t, "38.33", first.FieldFee, "field fee")
	requireDecimal(t, "2", first.VideoFee, "video fee")
	requireDecimal(t, "10", first.LateFee, "late fee")
	requireDecimal(t, "50.33", first.TotalFee, "total fee")

	rows, err := env.participations.ListByMatch(t.Context(), memory.MatchIDSeasonOpener)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestImportService_NothingResolvedWritesNothing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.attendanceService.SaveMatchAttendance(t.Context(), memory.MatchIDSeasonOpener, []AttendanceEntry{
		{PlayerID: "player-mid-01", Grid: gridWithParts(t, 3)},
	})
	require.NoError(t, err)

	result, err := env.importService.ImportMatchFees(t.Context(), memory.MatchIDSeasonOpener, []ImportRow{
		{PlayerName: "Nobody Here", Grid: gridWithParts(t, 1)},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	require.Len(t, result.Errors, 1)

	rows, err := env.participations.ListByMatch(t.Context(), memory.MatchIDSeasonOpener)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestImportService_RejectsEmptyImport(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.importService.ImportMatchFees(t.Context(), memory.MatchIDSeasonOpener, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestMatchPlayerName(t *testing.T) {
	t.Parallel()

	roster := []player.Player{
		{ID: "a", Name: "Zhang Wei"},
		{ID: "b", Name: "Zhang Wen"},
		{ID: "c", Name: "Li Ming"},
	}

	tests := []struct {
		name   string
		input  string
		wantID string
		wantOK bool
	}{
		{name: "exact wins over near match", input: "ZHANG WEN", wantID: "b", wantOK: true},
		{name: "typo resolves", input: "Li Minh", wantID: "c", wantOK: true},
		{name: "too far", input: "Wu", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := matchPlayerName(tt.input, roster, 0.7)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}
