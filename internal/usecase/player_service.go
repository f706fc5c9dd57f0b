package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-club/internal/domain/player"
	idgen "github.com/riskibarqy/football-club/internal/platform/id"
)

type PlayerService struct {
	playerRepo player.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

type CreatePlayerInput struct {
	Name         string
	JerseyNumber int
	Position     string
}

func NewPlayerService(playerRepo player.Repository, idGen idgen.Generator) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context, activeOnly bool) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}

func (s *PlayerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	item := player.Player{
		ID:           playerID,
		Name:         strings.TrimSpace(input.Name),
		JerseyNumber: input.JerseyNumber,
		Position:     player.Position(strings.ToUpper(strings.TrimSpace(input.Position))),
		Active:       true,
		CreatedAt:    s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	return item, nil
}
