package scoring

import (
	"sort"
	"strings"
	"time"
)

type MatchdayCell struct {
	MatchId  int
	Revealed bool
	// Prediction is only set once the match is revealed or for the viewer's own row.
	Prediction *Prediction
	// Points stays nil until the match is revealed.
	Points *int
}

type MatchdayRow struct {
	User           *User
	Cells          []*MatchdayCell
	Points         int
	Bonus          int
	TotalWithBonus int
}

type MatchdayTable struct {
	Matchday      *int
	Matches       []*Match
	Prev          *int
	Next          *int
	BonusRevealed bool
	Rows          []*MatchdayRow
}

// BuildMatchdayTable builds the prediction grid of one matchday for the viewer.
func BuildMatchdayTable(snapshot *Snapshot, viewerId int, requested *int, now time.Time) *MatchdayTable {
	table := &MatchdayTable{
		BonusRevealed: IsBonusRevealed(snapshot.Tournament, now),
		Rows:          []*MatchdayRow{},
	}
	table.Matchday = SelectMatchday(snapshot.Matches, requested, now)
	if table.Matchday == nil {
		table.Matches = []*Match{}
		return table
	}
	table.Matches = MatchesOfMatchday(snapshot.Matches, *table.Matchday)
	table.Prev, table.Next = AdjacentMatchdays(snapshot.Matches, *table.Matchday)

	predictions := NewPredictionIndex(snapshot.Predictions)
	bonus := BonusPoints(snapshot, now)
	for _, user := range snapshot.Users {
		row := &MatchdayRow{User: user, Cells: make([]*MatchdayCell, 0, len(table.Matches))}
		for _, match := range table.Matches {
			cell := &MatchdayCell{MatchId: match.Id, Revealed: match.IsRevealed(now)}
			prediction := predictions.Get(user.Id, match.Id)
			if cell.Revealed || user.Id == viewerId {
				cell.Prediction = prediction
			}
			if cell.Revealed {
				cell.Points = intPtr(ScoreMatch(match, prediction))
				row.Points += *cell.Points
			}
			row.Cells = append(row.Cells, cell)
		}
		row.Bonus = bonus[user.Id]
		row.TotalWithBonus = row.Points + row.Bonus
		table.Rows = append(table.Rows, row)
	}

	sort.SliceStable(table.Rows, func(i, j int) bool {
		a, b := table.Rows[i], table.Rows[j]
		if a.TotalWithBonus != b.TotalWithBonus {
			return a.TotalWithBonus > b.TotalWithBonus
		}
		return strings.ToLower(a.User.Username) < strings.ToLower(b.User.Username)
	})
	return table
}

type BonusRow struct {
	User   *User
	Picks  map[BonusType]string
	Points int
}

type BonusTable struct {
	Revealed bool
	// Own holds the viewer's picks, visible before and after the reveal.
	Own  map[BonusType]string
	Rows []*BonusRow
}

func picksOf(predictions []*BonusPrediction) map[BonusType]string {
	picks := make(map[BonusType]string, len(BonusTypes))
	for _, bonusType := range BonusTypes {
		picks[bonusType] = ""
	}
	for _, prediction := range predictions {
		picks[prediction.BonusType] = prediction.Value
	}
	return picks
}

// BuildBonusTable hides other users' picks and all bonus points until the reveal.
func BuildBonusTable(snapshot *Snapshot, viewerId int, now time.Time) *BonusTable {
	byUser := snapshot.bonusByUser()
	table := &BonusTable{
		Revealed: IsBonusRevealed(snapshot.Tournament, now),
		Own:      picksOf(byUser[viewerId]),
		Rows:     []*BonusRow{},
	}
	if !table.Revealed {
		return table
	}
	for _, user := range snapshot.Users {
		table.Rows = append(table.Rows, &BonusRow{
			User:   user,
			Picks:  picksOf(byUser[user.Id]),
			Points: ScoreBonus(snapshot.Tournament, byUser[user.Id]),
		})
	}
	sort.SliceStable(table.Rows, func(i, j int) bool {
		a, b := table.Rows[i], table.Rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return strings.ToLower(a.User.Username) < strings.ToLower(b.User.Username)
	})
	return table
}
