package player

import (
	"fmt"
	"strings"
	"time"
)

// Position represents the football position a club member usually plays.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Player is a club member on the roster.
type Player struct {
	ID           string
	Name         string
	JerseyNumber int
	Position     Position
	Active       bool
	CreatedAt    time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.JerseyNumber < 0 || p.JerseyNumber > 99 {
		return fmt.Errorf("jersey number must be between 0 and 99")
	}

	return nil
}
