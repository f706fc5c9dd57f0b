package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-club/internal/domain/match"
	"github.com/riskibarqy/football-club/internal/domain/matchevent"
	"github.com/riskibarqy/football-club/internal/domain/player"
	idgen "github.com/riskibarqy/football-club/internal/platform/id"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type LeaderboardService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	eventRepo  matchevent.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

type RecordEventInput struct {
	PlayerID string
	Type     string
	Minute   int
}

type LeaderboardEntry struct {
	Rank   int
	Player player.Player
	Value  int
	Tally  matchevent.Tally
}

type Leaderboard struct {
	Category matchevent.Category
	Entries  []LeaderboardEntry
}

func NewLeaderboardService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	eventRepo matchevent.Repository,
	idGen idgen.Generator,
) *LeaderboardService {
	return &LeaderboardService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		eventRepo:  eventRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *LeaderboardService) RecordEvent(ctx context.Context, matchID string, input RecordEventInput) (matchevent.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.RecordEvent", attribute.String("match.id", matchID))
	defer span.End()

	var details []FieldViolation
	eventType, err := matchevent.ParseType(input.Type)
	if err != nil {
		details = append(details, FieldViolation{Field: "type", Value: input.Type, Message: err.Error()})
	}
	playerID := strings.TrimSpace(input.PlayerID)
	if playerID == "" {
		details = append(details, FieldViolation{Field: "playerId", Message: "player id is required"})
	}
	if len(details) > 0 {
		return matchevent.Event{}, &ValidationError{Message: "invalid match event", Details: details, Cause: err}
	}

	item, err := loadMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return matchevent.Event{}, err
	}

	players, err := s.playerRepo.GetByIDs(ctx, []string{playerID})
	if err != nil {
		return matchevent.Event{}, fmt.Errorf("get player: %w", err)
	}
	if len(players) == 0 {
		return matchevent.Event{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	eventID, err := s.idGen.NewID()
	if err != nil {
		return matchevent.Event{}, fmt.Errorf("generate event id: %w", err)
	}

	event := matchevent.Event{
		ID:        eventID,
		MatchID:   item.ID,
		PlayerID:  playerID,
		Type:      eventType,
		Minute:    input.Minute,
		CreatedAt: s.now().UTC(),
	}
	if err := event.Validate(); err != nil {
		return matchevent.Event{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		recordSpanError(span, err)
		return matchevent.Event{}, fmt.Errorf("create match event: %w", err)
	}

	return event, nil
}

// Leaderboard ranks players by category across every recorded event.
func (s *LeaderboardService) Leaderboard(ctx context.Context, category string, limit int) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard", attribute.String("leaderboard.category", category))
	defer span.End()

	parsed, err := matchevent.ParseCategory(category)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return Leaderboard{}, fmt.Errorf("list match events: %w", err)
	}

	ranked := matchevent.Rank(matchevent.TallyEvents(events), parsed, limit)
	out := Leaderboard{
		Category: parsed,
		Entries:  make([]LeaderboardEntry, 0, len(ranked)),
	}
	if len(ranked) == 0 {
		return out, nil
	}

	playerIDs := make([]string, 0, len(ranked))
	for _, t := range ranked {
		playerIDs = append(playerIDs, t.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("get players: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	rank := 0
	previous := 0
	for i, t := range ranked {
		value := parsed.Value(t)
		if i == 0 || value != previous {
			rank = i + 1
		}
		previous = value

		p, ok := byID[t.PlayerID]
		if !ok {
			p = player.Player{ID: t.PlayerID}
		}
		out.Entries = append(out.Entries, LeaderboardEntry{
			Rank:   rank,
			Player: p,
			Value:  value,
			Tally:  t,
		})
	}

	return out, nil
}
