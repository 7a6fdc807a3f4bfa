package scoring

import (
	"sort"
	"strings"
)

type RankEntry struct {
	UserId   int
	Points   int
	Username string
}

type RankedEntry struct {
	RankEntry
	Rank int
}

func rankLess(a, b RankEntry) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	return strings.ToLower(a.Username) < strings.ToLower(b.Username)
}

// SortEntries orders by points descending, then case-insensitive username and
// assigns competition ranks (1,2,2,4): tied entries share the position of the
// first of them.
func SortEntries(entries []RankEntry) []RankedEntry {
	sorted := make([]RankEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return rankLess(sorted[i], sorted[j]) })

	ranked := make([]RankedEntry, len(sorted))
	rank := 0
	for i, entry := range sorted {
		if i == 0 || entry.Points != sorted[i-1].Points {
			rank = i + 1
		}
		ranked[i] = RankedEntry{RankEntry: entry, Rank: rank}
	}
	return ranked
}

func RankEntries(entries []RankEntry) map[int]int {
	ranks := make(map[int]int, len(entries))
	for _, entry := range SortEntries(entries) {
		ranks[entry.UserId] = entry.Rank
	}
	return ranks
}

// RankDelta is positive when the user moved up. It is nil if either rank is missing.
func RankDelta(previous, current *int) *int {
	if previous == nil || current == nil {
		return nil
	}
	return intPtr(*previous - *current)
}
