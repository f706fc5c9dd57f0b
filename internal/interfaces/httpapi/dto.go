package httpapi

import (
	"time"

	"github.com/riskibarqy/football-club/internal/domain/attendance"
	"github.com/riskibarqy/football-club/internal/domain/fee"
	"github.com/riskibarqy/football-club/internal/domain/feeoverride"
	"github.com/riskibarqy/football-club/internal/domain/match"
	"github.com/riskibarqy/football-club/internal/domain/matchevent"
	"github.com/riskibarqy/football-club/internal/domain/participation"
	"github.com/riskibarqy/football-club/internal/domain/player"
	"github.com/riskibarqy/football-club/internal/usecase"
	"github.com/shopspring/decimal"
)

// money renders an amount as a JSON number with exactly two decimals.
type money decimal.Decimal

func (m money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

// number renders a decimal as an unquoted JSON number at full precision.
type number decimal.Decimal

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

func moneyPtr(v *decimal.Decimal) *money {
	if v == nil {
		return nil
	}
	m := money(*v)
	return &m
}

type playerDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	JerseyNumber int       `json:"jerseyNumber"`
	Position     string    `json:"position"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:           p.ID,
		Name:         p.Name,
		JerseyNumber: p.JerseyNumber,
		Position:     string(p.Position),
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
	}
}

type rateConfigDTO struct {
	FieldFeeTotal money `json:"fieldFeeTotal"`
	WaterFeeTotal money `json:"waterFeeTotal"`
	LateFeeRate   money `json:"lateFeeRate"`
	VideoFeeRate  money `json:"videoFeeRate"`
}

type matchDTO struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Opponent        string        `json:"opponent,omitempty"`
	Venue           string        `json:"venue,omitempty"`
	KickoffAt       time.Time     `json:"kickoffAt"`
	Status          string        `json:"status"`
	CoefficientMode string        `json:"coefficientMode"`
	Rates           rateConfigDTO `json:"rates"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:              m.ID,
		Title:           m.Title,
		Opponent:        m.Opponent,
		Venue:           m.Venue,
		KickoffAt:       m.KickoffAt,
		Status:          string(m.Status),
		CoefficientMode: string(m.CoefficientMode),
		Rates: rateConfigDTO{
			FieldFeeTotal: money(m.Rates.FieldFeeTotal),
			WaterFeeTotal: money(m.Rates.WaterFeeTotal),
			LateFeeRate:   money(m.Rates.LateFeeRate),
			VideoFeeRate:  money(m.Rates.VideoFeeRate),
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type feeBreakdownDTO struct {
	NormalPlayerParts      number `json:"normalPlayerParts"`
	SectionsWithNormalPlay int    `json:"sectionsWithNormalPlay"`
	FieldFee               money  `json:"fieldFee"`
	VideoFee               money  `json:"videoFee"`
	LateFee                money  `json:"lateFee"`
	TotalFee               money  `json:"totalFee"`
}

func breakdownToDTO(b fee.Breakdown) feeBreakdownDTO {
	return feeBreakdownDTO{
		NormalPlayerParts:      number(b.NormalPlayerParts),
		SectionsWithNormalPlay: b.SectionsWithNormalPlay,
		FieldFee:               money(b.FieldFee),
		VideoFee:               money(b.VideoFee),
		LateFee:                money(b.LateFee),
		TotalFee:               money(b.TotalFee),
	}
}

type participationDTO struct {
	PlayerID       string          `json:"playerId"`
	Grid           attendance.Grid `json:"grid"`
	IsLateArrival  bool            `json:"isLateArrival"`
	Fees           feeBreakdownDTO `json:"fees"`
	FeeCoefficient number          `json:"feeCoefficient"`
	CalculatedAt   time.Time       `json:"calculatedAt"`
}

func participationToDTO(p participation.Participation) participationDTO {
	return participationDTO{
		PlayerID:       p.PlayerID,
		Grid:           p.Grid,
		IsLateArrival:  p.IsLateArrival,
		Fees:           breakdownToDTO(p.Fees),
		FeeCoefficient: number(p.FeeCoefficient),
		CalculatedAt:   p.CalculatedAt,
	}
}

type saveAttendanceDTO struct {
	MatchID        string             `json:"matchId"`
	FeeCoefficient number             `json:"feeCoefficient"`
	Billable       bool               `json:"billable"`
	Participations []participationDTO `json:"participations"`
}

func saveAttendanceToDTO(result usecase.SaveAttendanceResult) saveAttendanceDTO {
	items := make([]participationDTO, 0, len(result.Participations))
	for _, p := range result.Participations {
		items = append(items, participationToDTO(p))
	}
	return saveAttendanceDTO{
		MatchID:        result.MatchID,
		FeeCoefficient: number(result.FeeCoefficient),
		Billable:       result.Billable,
		Participations: items,
	}
}

type overrideDTO struct {
	FieldFeeOverride *money    `json:"fieldFeeOverride"`
	VideoFeeOverride *money    `json:"videoFeeOverride"`
	LateFeeOverride  *money    `json:"lateFeeOverride"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type feesDTO struct {
	FieldFee money `json:"fieldFee"`
	VideoFee money `json:"videoFee"`
	LateFee  money `json:"lateFee"`
	TotalFee money `json:"totalFee"`
}

type playerFeeDTO struct {
	PlayerID    string          `json:"playerId"`
	Calculated  feeBreakdownDTO `json:"calculated"`
	Effective   feesDTO         `json:"effective"`
	HasOverride bool            `json:"hasOverride"`
	Override    *overrideDTO    `json:"override,omitempty"`
}

func playerFeeToDTO(v feeoverride.PlayerFeeView) playerFeeDTO {
	out := playerFeeDTO{
		PlayerID:   v.PlayerID,
		Calculated: breakdownToDTO(v.Calculated),
		Effective: feesDTO{
			FieldFee: money(v.Effective.FieldFee),
			VideoFee: money(v.Effective.VideoFee),
			LateFee:  money(v.Effective.LateFee),
			TotalFee: money(v.Effective.TotalFee),
		},
		HasOverride: v.HasOverride(),
	}
	if v.Override != nil {
		out.Override = &overrideDTO{
			FieldFeeOverride: moneyPtr(v.Override.FieldFee),
			VideoFeeOverride: moneyPtr(v.Override.VideoFee),
			LateFeeOverride:  moneyPtr(v.Override.LateFee),
			Notes:            v.Override.Notes,
			CreatedAt:        v.Override.CreatedAt,
			UpdatedAt:        v.Override.UpdatedAt,
		}
	}
	return out
}

func playerFeesToDTO(views []feeoverride.PlayerFeeView) []playerFeeDTO {
	items := make([]playerFeeDTO, 0, len(views))
	for _, v := range views {
		items = append(items, playerFeeToDTO(v))
	}
	return items
}

type summaryDTO struct {
	TotalParticipants   int   `json:"totalParticipants"`
	TotalCalculatedFees money `json:"totalCalculatedFees"`
	TotalFinalFees      money `json:"totalFinalFees"`
	FeeDifference       money `json:"feeDifference"`
	OverrideCount       int   `json:"overrideCount"`
	OverridePercentage  money `json:"overridePercentage"`
}

func summaryToDTO(s feeoverride.Summary) summaryDTO {
	return summaryDTO{
		TotalParticipants:   s.TotalParticipants,
		TotalCalculatedFees: money(s.TotalCalculatedFees),
		TotalFinalFees:      money(s.TotalFinalFees),
		FeeDifference:       money(s.FeeDifference),
		OverrideCount:       s.OverrideCount,
		OverridePercentage:  money(s.OverridePercentage),
	}
}

type feeBreakdownViewDTO struct {
	MatchID        string         `json:"matchId"`
	FeeCoefficient number         `json:"feeCoefficient"`
	Players        []playerFeeDTO `json:"players"`
	Summary        summaryDTO     `json:"summary"`
}

func feeBreakdownViewToDTO(v usecase.FeeBreakdownView) feeBreakdownViewDTO {
	return feeBreakdownViewDTO{
		MatchID:        v.MatchID,
		FeeCoefficient: number(v.FeeCoefficient),
		Players:        playerFeesToDTO(v.Players),
		Summary:        summaryToDTO(v.Summary),
	}
}

type overrideStatisticsDTO struct {
	MatchID              string     `json:"matchId"`
	PlayersWithOverrides []string   `json:"playersWithOverrides"`
	OverridePercentage   money      `json:"overridePercentage"`
	FeeDifference        money      `json:"feeDifference"`
	Summary              summaryDTO `json:"summary"`
}

func overrideStatisticsToDTO(s usecase.OverrideStatistics) overrideStatisticsDTO {
	players := s.PlayersWithOverrides
	if players == nil {
		players = []string{}
	}
	return overrideStatisticsDTO{
		MatchID:              s.MatchID,
		PlayersWithOverrides: players,
		OverridePercentage:   money(s.OverridePercentage),
		FeeDifference:        money(s.FeeDifference),
		Summary:              summaryToDTO(s.Summary),
	}
}

type anomalyDTO struct {
	MatchID         string `json:"matchId"`
	PlayerID        string `json:"playerId"`
	StoredTotal     money  `json:"storedTotal"`
	RecomputedTotal money  `json:"recomputedTotal"`
	Difference      money  `json:"difference"`
}

func anomaliesToDTO(items []feeoverride.Anomaly) []anomalyDTO {
	out := make([]anomalyDTO, 0, len(items))
	for _, a := range items {
		out = append(out, anomalyDTO{
			MatchID:         a.MatchID,
			PlayerID:        a.PlayerID,
			StoredTotal:     money(a.StoredTotal),
			RecomputedTotal: money(a.RecomputedTotal),
			Difference:      money(a.Difference),
		})
	}
	return out
}

type bulkOverrideErrorDTO struct {
	PlayerID string `json:"playerId"`
	Message  string `json:"message"`
}

type bulkOverrideResultDTO struct {
	Results []playerFeeDTO         `json:"results"`
	Errors  []bulkOverrideErrorDTO `json:"errors"`
}

func bulkOverrideResultToDTO(result usecase.BulkOverrideResult) bulkOverrideResultDTO {
	errs := make([]bulkOverrideErrorDTO, 0, len(result.Errors))
	for _, e := range result.Errors {
		errs = append(errs, bulkOverrideErrorDTO{PlayerID: e.PlayerID, Message: e.Message})
	}
	return bulkOverrideResultDTO{
		Results: playerFeesToDTO(result.Results),
		Errors:  errs,
	}
}

type importedRowDTO struct {
	Row        int             `json:"row"`
	PlayerName string          `json:"playerName"`
	PlayerID   string          `json:"playerId"`
	Similarity float64         `json:"similarity"`
	Fees       feeBreakdownDTO `json:"fees"`
}

type importRowErrorDTO struct {
	Row        int    `json:"row"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
}

type importResultDTO struct {
	MatchID        string              `json:"matchId"`
	FeeCoefficient number              `json:"feeCoefficient"`
	Imported       []importedRowDTO    `json:"imported"`
	Errors         []importRowErrorDTO `json:"errors"`
}

func importResultToDTO(result usecase.ImportResult) importResultDTO {
	imported := make([]importedRowDTO, 0, len(result.Imported))
	for _, row := range result.Imported {
		imported = append(imported, importedRowDTO{
			Row:        row.Row,
			PlayerName: row.PlayerName,
			PlayerID:   row.Player.ID,
			Similarity: row.Similarity,
			Fees:       breakdownToDTO(row.Participation.Fees),
		})
	}
	errs := make([]importRowErrorDTO, 0, len(result.Errors))
	for _, e := range result.Errors {
		errs = append(errs, importRowErrorDTO{Row: e.Row, PlayerName: e.PlayerName, Message: e.Message})
	}
	return importResultDTO{
		MatchID:        result.MatchID,
		FeeCoefficient: number(result.FeeCoefficient),
		Imported:       imported,
		Errors:         errs,
	}
}

type matchEventDTO struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"matchId"`
	PlayerID  string    `json:"playerId"`
	Type      string    `json:"type"`
	Minute    int       `json:"minute"`
	CreatedAt time.Time `json:"createdAt"`
}

func matchEventToDTO(e matchevent.Event) matchEventDTO {
	return matchEventDTO{
		ID:        e.ID,
		MatchID:   e.MatchID,
		PlayerID:  e.PlayerID,
		Type:      string(e.Type),
		Minute:    e.Minute,
		CreatedAt: e.CreatedAt,
	}
}

type leaderboardEntryDTO struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName"`
	Value       int    `json:"value"`
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
	OwnGoals    int    `json:"ownGoals"`
	YellowCards int    `json:"yellowCards"`
	RedCards    int    `json:"redCards"`
	CleanSheets int    `json:"cleanSheets"`
	Points      int    `json:"points"`
	Matches     int    `json:"matches"`
}

type leaderboardDTO struct {
	Category string                `json:"category"`
	Entries  []leaderboardEntryDTO `json:"entries"`
}

func leaderboardToDTO(board usecase.Leaderboard) leaderboardDTO {
	entries := make([]leaderboardEntryDTO, 0, len(board.Entries))
	for _, e := range board.Entries {
		entries = append(entries, leaderboardEntryDTO{
			Rank:        e.Rank,
			PlayerID:    e.Player.ID,
			PlayerName:  e.Player.Name,
			Value:       e.Value,
			Goals:       e.Tally.Goals,
			Assists:     e.Tally.Assists,
			OwnGoals:    e.Tally.OwnGoals,
			YellowCards: e.Tally.YellowCards,
			RedCards:    e.Tally.RedCards,
			CleanSheets: e.Tally.CleanSheets,
			Points:      e.Tally.Points,
			Matches:     e.Tally.Matches,
		})
	}
	return leaderboardDTO{Category: string(board.Category), Entries: entries}
}
