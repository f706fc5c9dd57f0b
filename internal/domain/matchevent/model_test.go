package matchevent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffects_CoverEveryType(t *testing.T) {
	t.Parallel()

	types := []Type{TypeGoal, TypePenaltyGoal, TypeOwnGoal, TypeAssist, TypeYellowCard, TypeRedCard, TypeCleanSheet}
	require.Len(t, Effects, len(types))
	for _, typ := range types {
		_, ok := Effects[typ]
		assert.Truef(t, ok, "missing effect for %s", typ)
	}
}

func TestParseType(t *testing.T) {
	t.Parallel()

	typ, err := ParseType(" penalty_goal ")
	require.NoError(t, err)
	assert.Equal(t, TypePenaltyGoal, typ)

	_, err = ParseType("OFFSIDE")
	assert.True(t, errors.Is(err, ErrUnknownType))
}

func TestTallyAndRank(t *testing.T) {
	t.Parallel()

	events := []Event{
		{MatchID: "m1", PlayerID: "p1", Type: TypeGoal},
		{MatchID: "m1", PlayerID: "p1", Type: TypeAssist},
		{MatchID: "m2", PlayerID: "p1", Type: TypeYellowCard},
		{MatchID: "m1", PlayerID: "p2", Type: TypePenaltyGoal},
		{MatchID: "m1", PlayerID: "p2", Type: TypeGoal},
		{MatchID: "m2", PlayerID: "p2", Type: TypeRedCard},
		{MatchID: "m1", PlayerID: "p3", Type: TypeCleanSheet},
		{MatchID: "m1", PlayerID: "p4", Type: TypeOwnGoal},
	}

	tallies := TallyEvents(events)
	require.Len(t, tallies, 4)

	goals := Rank(tallies, CategoryGoals, 0)
	require.Len(t, goals, 2)
	assert.Equal(t, "p2", goals[0].PlayerID)
	assert.Equal(t, 2, goals[0].Goals)
	assert.Equal(t, 2, goals[0].Matches)

	points := Rank(tallies, CategoryPoints, 2)
	require.Len(t, points, 2)
	assert.Equal(t, "p1", points[0].PlayerID)
	assert.Equal(t, 4, points[0].Points)
	assert.Equal(t, "p2", points[1].PlayerID)
	assert.Equal(t, 3, points[1].Points)

	// equal card counts fall back to points
	cards := Rank(tallies, CategoryCards, 0)
	require.Len(t, cards, 2)
	assert.Equal(t, "p1", cards[0].PlayerID)
	assert.Equal(t, "p2", cards[1].PlayerID)
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	c, err := ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryPoints, c)

	_, err = ParseCategory("saves")
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}
