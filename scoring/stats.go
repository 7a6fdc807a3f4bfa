package scoring

import (
	"fmt"
	"sort"
	"strings"
)

type TipCounts struct {
	Home int
	Draw int
	Away int
}

func (t TipCounts) Total() int {
	return t.Home + t.Draw + t.Away
}

type Scoreline struct {
	Scoreline string
	Count     int
}

type TeamPoints struct {
	Team   string
	Points int
}

type PredictedStanding struct {
	Position       int
	Team           string
	Played         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

type UserStats struct {
	Tips          TipCounts
	Hits          map[Outcome]int
	TopScorelines []Scoreline
	TopTeams      []TeamPoints
	FlopTeams     []TeamPoints
	Table         []*PredictedStanding
}

const (
	topScorelineCount = 3
	teamListCount     = 10
)

func (s *PredictedStanding) add(goalsFor, goalsAgainst int) {
	s.Played++
	s.GoalsFor += goalsFor
	s.GoalsAgainst += goalsAgainst
	switch tendency(goalsFor, goalsAgainst) {
	case 1:
		s.Wins++
		s.Points += 3
	case 0:
		s.Draws++
		s.Points++
	default:
		s.Losses++
	}
	s.GoalDifference = s.GoalsFor - s.GoalsAgainst
}

// BuildUserStats evaluates one user's predictions over finished matches only.
func BuildUserStats(matches []*Match, predictions []*Prediction) *UserStats {
	stats := &UserStats{
		Hits: map[Outcome]int{
			OutcomeMiss:           0,
			OutcomeTendency:       0,
			OutcomeGoalDifference: 0,
			OutcomeExact:          0,
		},
	}
	matchesById := make(map[int]*Match, len(matches))
	for _, match := range matches {
		matchesById[match.Id] = match
	}
	scorelines := make(map[string]int)
	teamPoints := make(map[string]int)
	standings := make(map[string]*PredictedStanding)
	standing := func(team string) *PredictedStanding {
		if _, ok := standings[team]; !ok {
			standings[team] = &PredictedStanding{Team: team}
		}
		return standings[team]
	}

	for _, prediction := range predictions {
		match := matchesById[prediction.MatchId]
		outcome, ok := ClassifyPrediction(match, prediction)
		if !ok {
			continue
		}
		home, away := *prediction.PredHome, *prediction.PredAway
		switch tendency(home, away) {
		case 1:
			stats.Tips.Home++
		case 0:
			stats.Tips.Draw++
		default:
			stats.Tips.Away++
		}
		stats.Hits[outcome]++
		scorelines[fmt.Sprintf("%d:%d", home, away)]++
		teamPoints[match.HomeTeam] += outcome.Points()
		teamPoints[match.AwayTeam] += outcome.Points()
		standing(match.HomeTeam).add(home, away)
		standing(match.AwayTeam).add(away, home)
	}

	stats.TopScorelines = topScorelines(scorelines)
	stats.TopTeams, stats.FlopTeams = topAndFlopTeams(teamPoints)
	stats.Table = predictedTable(standings)
	return stats
}

func topScorelines(counts map[string]int) []Scoreline {
	scorelines := make([]Scoreline, 0, len(counts))
	for scoreline, count := range counts {
		scorelines = append(scorelines, Scoreline{Scoreline: scoreline, Count: count})
	}
	sort.Slice(scorelines, func(i, j int) bool {
		if scorelines[i].Count != scorelines[j].Count {
			return scorelines[i].Count > scorelines[j].Count
		}
		return scorelines[i].Scoreline < scorelines[j].Scoreline
	})
	return scorelines[:min(topScorelineCount, len(scorelines))]
}

func topAndFlopTeams(points map[string]int) ([]TeamPoints, []TeamPoints) {
	teams := make([]TeamPoints, 0, len(points))
	for team, p := range points {
		teams = append(teams, TeamPoints{Team: team, Points: p})
	}
	top := make([]TeamPoints, len(teams))
	copy(top, teams)
	sort.Slice(top, func(i, j int) bool {
		if top[i].Points != top[j].Points {
			return top[i].Points > top[j].Points
		}
		return strings.ToLower(top[i].Team) < strings.ToLower(top[j].Team)
	})
	flop := make([]TeamPoints, len(teams))
	copy(flop, teams)
	sort.Slice(flop, func(i, j int) bool {
		if flop[i].Points != flop[j].Points {
			return flop[i].Points < flop[j].Points
		}
		return strings.ToLower(flop[i].Team) < strings.ToLower(flop[j].Team)
	})
	return top[:min(teamListCount, len(top))], flop[:min(teamListCount, len(flop))]
}

func predictedTable(standings map[string]*PredictedStanding) []*PredictedStanding {
	table := make([]*PredictedStanding, 0, len(standings))
	for _, standing := range standings {
		table = append(table, standing)
	}
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return strings.ToLower(a.Team) < strings.ToLower(b.Team)
	})
	for i, standing := range table {
		standing.Position = i + 1
	}
	return table
}
