package scoring

import (
	"slices"
	"sort"
	"time"
)

// AggregateMatchday sums the points of every user over the matches of a matchday.
// As long as no match of the matchday has a result, every user maps to nil. Once
// one match has a result, unfinished matches count as zero.
func AggregateMatchday(matchday int, matches []*Match, predictions PredictionIndex, userIds []int) map[int]*int {
	dayMatches := MatchesOfMatchday(matches, matchday)
	points := make(map[int]*int, len(userIds))
	if !anyResult(dayMatches) {
		for _, userId := range userIds {
			points[userId] = nil
		}
		return points
	}
	for _, userId := range userIds {
		total := 0
		for _, match := range dayMatches {
			total += ScoreMatch(match, predictions.Get(userId, match.Id))
		}
		points[userId] = intPtr(total)
	}
	return points
}

func anyResult(matches []*Match) bool {
	for _, match := range matches {
		if match.HasResult() {
			return true
		}
	}
	return false
}

func MatchesOfMatchday(matches []*Match, matchday int) []*Match {
	dayMatches := make([]*Match, 0)
	for _, match := range matches {
		if match.Matchday != nil && *match.Matchday == matchday {
			dayMatches = append(dayMatches, match)
		}
	}
	sortByKickoff(dayMatches)
	return dayMatches
}

func sortByKickoff(matches []*Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Kickoff.Equal(matches[j].Kickoff) {
			return matches[i].HomeTeam < matches[j].HomeTeam
		}
		return matches[i].Kickoff.Before(matches[j].Kickoff)
	})
}

// Matchdays returns the distinct assigned matchdays in ascending order.
func Matchdays(matches []*Match) []int {
	seen := make(map[int]bool)
	matchdays := make([]int, 0)
	for _, match := range matches {
		if match.Matchday == nil || seen[*match.Matchday] {
			continue
		}
		seen[*match.Matchday] = true
		matchdays = append(matchdays, *match.Matchday)
	}
	slices.Sort(matchdays)
	return matchdays
}

// SelectMatchday picks the requested matchday if it exists, otherwise the matchday
// of the next match to kick off, otherwise the last matchday.
func SelectMatchday(matches []*Match, requested *int, now time.Time) *int {
	matchdays := Matchdays(matches)
	if len(matchdays) == 0 {
		return nil
	}
	if requested != nil && slices.Contains(matchdays, *requested) {
		return intPtr(*requested)
	}
	var next *Match
	for _, match := range matches {
		if match.Matchday == nil || match.Kickoff.Before(now) {
			continue
		}
		if next == nil || match.Kickoff.Before(next.Kickoff) {
			next = match
		}
	}
	if next != nil {
		return intPtr(*next.Matchday)
	}
	return intPtr(matchdays[len(matchdays)-1])
}

// AdjacentMatchdays returns the closest existing matchdays before and after md.
func AdjacentMatchdays(matches []*Match, md int) (prev *int, next *int) {
	for _, matchday := range Matchdays(matches) {
		if matchday < md {
			prev = intPtr(matchday)
		}
		if matchday > md && next == nil {
			next = intPtr(matchday)
		}
	}
	return prev, next
}
