package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUserStats(t *testing.T) {
	matches := []*Match{
		{Id: 1, HomeTeam: "Alpha", AwayTeam: "Beta", HomeScore: intPtr(2), AwayScore: intPtr(1)},
		{Id: 2, HomeTeam: "Gamma", AwayTeam: "Alpha", HomeScore: intPtr(0), AwayScore: intPtr(0)},
		{Id: 3, HomeTeam: "Beta", AwayTeam: "Gamma", HomeScore: intPtr(1), AwayScore: intPtr(3)},
		{Id: 4, HomeTeam: "Alpha", AwayTeam: "Gamma"},
	}
	predictions := []*Prediction{
		tip(1, 1, 2, 1),
		tip(1, 2, 1, 1),
		tip(1, 3, 2, 1),
		tip(1, 4, 5, 0),
		{UserId: 1, MatchId: 99, PredHome: intPtr(1), PredAway: intPtr(0)},
	}

	stats := BuildUserStats(matches, predictions)

	assert.Equal(t, TipCounts{Home: 2, Draw: 1, Away: 0}, stats.Tips)
	assert.Equal(t, 3, stats.Tips.Total())
	assert.Equal(t, map[Outcome]int{
		OutcomeExact:          1,
		OutcomeGoalDifference: 1,
		OutcomeTendency:       0,
		OutcomeMiss:           1,
	}, stats.Hits)
	assert.Equal(t, []Scoreline{{Scoreline: "2:1", Count: 2}, {Scoreline: "1:1", Count: 1}}, stats.TopScorelines)

	assert.Equal(t, TeamPoints{Team: "Alpha", Points: 7}, stats.TopTeams[0])
	assert.Equal(t, TeamPoints{Team: "Beta", Points: 4}, stats.TopTeams[1])
	assert.Equal(t, TeamPoints{Team: "Gamma", Points: 3}, stats.FlopTeams[0])

	require.Len(t, stats.Table, 3)
	alpha := stats.Table[0]
	assert.Equal(t, "Alpha", alpha.Team)
	assert.Equal(t, 1, alpha.Position)
	assert.Equal(t, 4, alpha.Points)
	assert.Equal(t, 2, alpha.Played)
	assert.Equal(t, 1, alpha.Wins)
	assert.Equal(t, 1, alpha.Draws)
	assert.Equal(t, 1, alpha.GoalDifference)
	assert.Equal(t, "Beta", stats.Table[1].Team)
	assert.Equal(t, 3, stats.Table[1].Points)
	assert.Equal(t, 0, stats.Table[1].GoalDifference)
	assert.Equal(t, "Gamma", stats.Table[2].Team)
	assert.Equal(t, 3, stats.Table[2].Position)
}
