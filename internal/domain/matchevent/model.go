package matchevent

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrUnknownType     = errors.New("unknown match event type")
	ErrUnknownCategory = errors.New("unknown leaderboard category")
)

// Type is the closed set of events recorded during a match.
type Type string

const (
	TypeGoal        Type = "GOAL"
	TypePenaltyGoal Type = "PENALTY_GOAL"
	TypeOwnGoal     Type = "OWN_GOAL"
	TypeAssist      Type = "ASSIST"
	TypeYellowCard  Type = "YELLOW_CARD"
	TypeRedCard     Type = "RED_CARD"
	TypeCleanSheet  Type = "CLEAN_SHEET"
)

// Effect is what one event adds to a player's tally.
type Effect struct {
	Goals       int
	Assists     int
	OwnGoals    int
	YellowCards int
	RedCards    int
	CleanSheets int
	Points      int
}

// Effects is the single scoring table. Every Type has exactly one entry.
var Effects = map[Type]Effect{
	TypeGoal:        {Goals: 1, Points: 3},
	TypePenaltyGoal: {Goals: 1, Points: 3},
	TypeOwnGoal:     {OwnGoals: 1, Points: -1},
	TypeAssist:      {Assists: 1, Points: 2},
	TypeYellowCard:  {YellowCards: 1, Points: -1},
	TypeRedCard:     {RedCards: 1, Points: -3},
	TypeCleanSheet:  {CleanSheets: 1, Points: 2},
}

func ParseType(raw string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := Effects[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
	return t, nil
}

// Event is one recorded occurrence for a player in a match.
type Event struct {
	ID        string
	MatchID   string
	PlayerID  string
	Type      Type
	Minute    int
	CreatedAt time.Time
}

func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if e.MatchID == "" {
		return fmt.Errorf("event match id is required")
	}
	if e.PlayerID == "" {
		return fmt.Errorf("event player id is required")
	}
	if _, ok := Effects[e.Type]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, e.Type)
	}
	if e.Minute < 0 || e.Minute > 130 {
		return fmt.Errorf("event minute must be between 0 and 130")
	}
	return nil
}

// Tally is a player's accumulated effects.
type Tally struct {
	PlayerID string
	Effect
	Matches int
}

func (t Tally) Cards() int {
	return t.YellowCards + t.RedCards
}

func (t *Tally) add(e Effect) {
	t.Goals += e.Goals
	t.Assists += e.Assists
	t.OwnGoals += e.OwnGoals
	t.YellowCards += e.YellowCards
	t.RedCards += e.RedCards
	t.CleanSheets += e.CleanSheets
	t.Points += e.Points
}

// Category is a leaderboard ranking key.
type Category string

const (
	CategoryPoints  Category = "points"
	CategoryGoals   Category = "goals"
	CategoryAssists Category = "assists"
	CategoryCards   Category = "cards"
)

var categoryValue = map[Category]func(Tally) int{
	CategoryPoints:  func(t Tally) int { return t.Points },
	CategoryGoals:   func(t Tally) int { return t.Goals },
	CategoryAssists: func(t Tally) int { return t.Assists },
	CategoryCards:   Tally.Cards,
}

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return CategoryPoints, nil
	}
	if _, ok := categoryValue[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return c, nil
}

// Value returns the tally's figure for the category.
func (c Category) Value(t Tally) int {
	fn, ok := categoryValue[c]
	if !ok {
		return 0
	}
	return fn(t)
}

// TallyEvents folds events through Effects into one tally per player.
func TallyEvents(events []Event) []Tally {
	byPlayer := make(map[string]*Tally)
	matches := make(map[string]map[string]struct{})
	for _, ev := range events {
		effect, ok := Effects[ev.Type]
		if !ok {
			continue
		}
		t, exists := byPlayer[ev.PlayerID]
		if !exists {
			t = &Tally{PlayerID: ev.PlayerID}
			byPlayer[ev.PlayerID] = t
			matches[ev.PlayerID] = make(map[string]struct{})
		}
		t.add(effect)
		matches[ev.PlayerID][ev.MatchID] = struct{}{}
	}

	out := make([]Tally, 0, len(byPlayer))
	for playerID, t := range byPlayer {
		t.Matches = len(matches[playerID])
		out = append(out, *t)
	}
	return out
}

// Rank orders tallies by the category value, then points, then player id.
// Players with nothing in the category are dropped.
func Rank(tallies []Tally, category Category, limit int) []Tally {
	out := make([]Tally, 0, len(tallies))
	for _, t := range tallies {
		if category.Value(t) != 0 {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		vi, vj := category.Value(out[i]), category.Value(out[j])
		if vi != vj {
			return vi > vj
		}
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
