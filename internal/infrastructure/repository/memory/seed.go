package memory

import (
	"time"

	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/riskibarqy/football-club/internal/domain/match"
	"github.com/riskibarqy/football-club/internal/domain/player"
	"github.com/shopspring/decimal"
)

const (
	MatchIDSeasonOpener = "match-season-opener"
	MatchIDFriendly     = "match-friendly"
)

func SeedPlayers() []player.Player {
	joined := time.Date(2025, 1, 4, 9, 0, 0, 0, time.UTC)
	return []player.Player{
		{ID: "player-gk-01", Name: "Wang Lei", JerseyNumber: 1, Position: player.PositionGoalkeeper, Active: true, CreatedAt: joined},
		{ID: "player-def-01", Name: "Chen Hao", JerseyNumber: 4, Position: player.PositionDefender, Active: true, CreatedAt: joined},
		{ID: "player-def-02", Name: "Liu Yang", JerseyNumber: 5, Position: player.PositionDefender, Active: true, CreatedAt: joined},
		{ID: "player-mid-01", Name: "Zhang Wei", JerseyNumber: 8, Position: player.PositionMidfielder, Active: true, CreatedAt: joined},
		{ID: "player-mid-02", Name: "Li Ming", JerseyNumber: 10, Position: player.PositionMidfielder, Active: true, CreatedAt: joined},
		{ID: "player-fwd-01", Name: "Zhao Gang", JerseyNumber: 9, Position: player.PositionForward, Active: true, CreatedAt: joined},
		{ID: "player-fwd-02", Name: "Sun Jie", JerseyNumber: 11, Position: player.PositionForward, Active: false, CreatedAt: joined},
	}
}

func SeedMatches() []match.Match {
	created := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	return []match.Match{
		{
			ID:              MatchIDSeasonOpener,
			Title:           "Season opener",
			Opponent:        "Riverside FC",
			Venue:           "North Park pitch 2",
			KickoffAt:       time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC),
			Status:          match.StatusCompleted,
			Rates:           fee.DefaultRates(decimal.NewFromInt(1100), decimal.NewFromInt(50)),
			CoefficientMode: fee.CoefficientDynamic,
			CreatedAt:       created,
			UpdatedAt:       created,
		},
		{
			ID:              MatchIDFriendly,
			Title:           "Midweek friendly",
			Opponent:        "Harbour United",
			Venue:           "North Park pitch 1",
			KickoffAt:       time.Date(2025, 3, 12, 19, 30, 0, 0, time.UTC),
			Status:          match.StatusScheduled,
			Rates:           fee.DefaultRates(decimal.NewFromInt(800), decimal.NewFromInt(30)),
			CoefficientMode: fee.CoefficientFixed,
			CreatedAt:       created,
			UpdatedAt:       created,
		},
	}
}
