package scoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ViewMode string

const (
	ViewMatchdayPoints ViewMode = "mdpoints"
	ViewRanks          ViewMode = "ranks"
	ViewRankDiff       ViewMode = "rankdiff"
)

// ParseViewMode falls back to ViewMatchdayPoints for unknown input.
func ParseViewMode(s string) ViewMode {
	switch mode := ViewMode(s); mode {
	case ViewMatchdayPoints, ViewRanks, ViewRankDiff:
		return mode
	}
	return ViewMatchdayPoints
}

const (
	MinWindowCount     = 4
	MaxWindowCount     = 15
	DefaultWindowCount = 8
)

// Window selects a contiguous slice of the sorted matchdays.
type Window struct {
	From  int
	Count int
}

func (w Window) Clamp(total int) Window {
	count := max(MinWindowCount, min(w.Count, MaxWindowCount))
	from := w.From
	if from < 0 {
		from = 0
	}
	if from >= total {
		from = max(0, total-count)
	}
	return Window{From: from, Count: count}
}

func (w Window) slice(matchdays []int) []int {
	end := min(w.From+w.Count, len(matchdays))
	if w.From >= end {
		return []int{}
	}
	return matchdays[w.From:end]
}

func (w Window) PrevFrom() *int {
	if w.From-w.Count < 0 {
		return nil
	}
	return intPtr(w.From - w.Count)
}

func (w Window) NextFrom(total int) *int {
	if w.From+w.Count >= total {
		return nil
	}
	return intPtr(w.From + w.Count)
}

type TableRow struct {
	User           *User
	Rank           int
	MatchdayPoints []*int
	MatchdayRanks  []*int
	RankDeltas     []*int
	// Bonus is nil until the bonus picks are revealed.
	Bonus *int
	Total int
}

// Cells returns the column values for the given view.
func (r *TableRow) Cells(view ViewMode) []*int {
	switch view {
	case ViewRanks:
		return r.MatchdayRanks
	case ViewRankDiff:
		return r.RankDeltas
	default:
		return r.MatchdayPoints
	}
}

type Table struct {
	View           ViewMode
	Matchdays      []int
	ShownMatchdays []int
	Window         Window
	PrevFrom       *int
	NextFrom       *int
	BonusRevealed  bool
	Rows           []*TableRow
}

var leaderboardBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "leaderboard_build_duration_s",
	Help: "Duration of building a season table",
	Buckets: []float64{
		0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1,
	},
})

// SeasonPoints sums the points of every finished match, independent of matchdays.
func SeasonPoints(snapshot *Snapshot) map[int]int {
	predictions := NewPredictionIndex(snapshot.Predictions)
	totals := make(map[int]int, len(snapshot.Users))
	for _, user := range snapshot.Users {
		totals[user.Id] = 0
		for _, match := range snapshot.Matches {
			if match.HasResult() {
				totals[user.Id] += ScoreMatch(match, predictions.Get(user.Id, match.Id))
			}
		}
	}
	return totals
}

// BonusPoints returns nil if the bonus picks are not revealed yet.
func BonusPoints(snapshot *Snapshot, now time.Time) map[int]int {
	if !IsBonusRevealed(snapshot.Tournament, now) {
		return nil
	}
	byUser := snapshot.bonusByUser()
	points := make(map[int]int, len(snapshot.Users))
	for _, user := range snapshot.Users {
		points[user.Id] = ScoreBonus(snapshot.Tournament, byUser[user.Id])
	}
	return points
}

func matchdayRanks(points map[int]*int, users []*User) map[int]*int {
	ranks := make(map[int]*int, len(users))
	entries := make([]RankEntry, 0, len(users))
	scored := false
	for _, user := range users {
		p := points[user.Id]
		if p != nil {
			scored = true
		}
		entries = append(entries, RankEntry{UserId: user.Id, Points: valueOrZero(p), Username: user.Username})
	}
	if !scored {
		for _, user := range users {
			ranks[user.Id] = nil
		}
		return ranks
	}
	for userId, rank := range RankEntries(entries) {
		ranks[userId] = intPtr(rank)
	}
	return ranks
}

func valueOrZero(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func BuildLeaderboard(snapshot *Snapshot, view ViewMode, now time.Time, window Window) *Table {
	timer := prometheus.NewTimer(leaderboardBuildDuration)
	defer timer.ObserveDuration()

	matchdays := Matchdays(snapshot.Matches)
	window = window.Clamp(len(matchdays))
	shown := window.slice(matchdays)
	table := &Table{
		View:           view,
		Matchdays:      matchdays,
		ShownMatchdays: shown,
		Window:         window,
		PrevFrom:       window.PrevFrom(),
		NextFrom:       window.NextFrom(len(matchdays)),
		BonusRevealed:  IsBonusRevealed(snapshot.Tournament, now),
	}

	predictions := NewPredictionIndex(snapshot.Predictions)
	userIds := snapshot.userIds()
	points := make([]map[int]*int, len(shown))
	ranks := make([]map[int]*int, len(shown))
	for i, md := range shown {
		points[i] = AggregateMatchday(md, snapshot.Matches, predictions, userIds)
		ranks[i] = matchdayRanks(points[i], snapshot.Users)
	}

	totals := SeasonPoints(snapshot)
	bonus := BonusPoints(snapshot, now)
	rowsByUser := make(map[int]*TableRow, len(snapshot.Users))
	entries := make([]RankEntry, 0, len(snapshot.Users))
	for _, user := range snapshot.Users {
		row := &TableRow{
			User:           user,
			MatchdayPoints: make([]*int, len(shown)),
			MatchdayRanks:  make([]*int, len(shown)),
			RankDeltas:     make([]*int, len(shown)),
			Total:          totals[user.Id],
		}
		for i := range shown {
			row.MatchdayPoints[i] = points[i][user.Id]
			row.MatchdayRanks[i] = ranks[i][user.Id]
			if i > 0 {
				row.RankDeltas[i] = RankDelta(ranks[i-1][user.Id], ranks[i][user.Id])
			}
		}
		if bonus != nil {
			row.Bonus = intPtr(bonus[user.Id])
			row.Total += bonus[user.Id]
		}
		rowsByUser[user.Id] = row
		entries = append(entries, RankEntry{UserId: user.Id, Points: row.Total, Username: user.Username})
	}

	table.Rows = make([]*TableRow, 0, len(entries))
	for _, entry := range SortEntries(entries) {
		row := rowsByUser[entry.UserId]
		row.Rank = entry.Rank
		table.Rows = append(table.Rows, row)
	}
	return table
}
