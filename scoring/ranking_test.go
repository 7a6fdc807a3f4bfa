package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankEntriesCompetitionRanking(t *testing.T) {
	entries := []RankEntry{
		{UserId: 1, Points: 5, Username: "eve"},
		{UserId: 2, Points: 10, Username: "bob"},
		{UserId: 3, Points: 7, Username: "cid"},
		{UserId: 4, Points: 10, Username: "Ana"},
		{UserId: 5, Points: 5, Username: "dan"},
	}

	ranks := RankEntries(entries)

	assert.Equal(t, map[int]int{4: 1, 2: 1, 3: 3, 5: 4, 1: 4}, ranks)
}

func TestSortEntriesTieBreak(t *testing.T) {
	entries := []RankEntry{
		{UserId: 1, Points: 3, Username: "zoe"},
		{UserId: 2, Points: 3, Username: "Bob"},
		{UserId: 3, Points: 3, Username: "anna"},
	}

	sorted := SortEntries(entries)

	assert.Equal(t, []int{3, 2, 1}, []int{sorted[0].UserId, sorted[1].UserId, sorted[2].UserId})
	for _, entry := range sorted {
		assert.Equal(t, 1, entry.Rank)
	}
}

func TestRankEntriesEmpty(t *testing.T) {
	assert.Empty(t, RankEntries(nil))
}

func TestRankDelta(t *testing.T) {
	assert.Equal(t, 3, *RankDelta(intPtr(5), intPtr(2)))
	assert.Equal(t, -1, *RankDelta(intPtr(1), intPtr(2)))
	assert.Equal(t, 0, *RankDelta(intPtr(1), intPtr(1)))
	assert.Nil(t, RankDelta(nil, intPtr(2)))
	assert.Nil(t, RankDelta(intPtr(2), nil))
}
