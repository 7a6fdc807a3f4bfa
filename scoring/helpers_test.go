package scoring

import "time"

var kickoffBase = time.Date(2025, 8, 22, 18, 30, 0, 0, time.UTC)

func finishedMatch(id int, matchday int, home, away int) *Match {
	return &Match{
		Id:        id,
		HomeTeam:  "home" + string(rune('A'+id%26)),
		AwayTeam:  "away" + string(rune('A'+id%26)),
		Kickoff:   kickoffBase.Add(time.Duration(id) * time.Hour),
		Matchday:  intPtr(matchday),
		HomeScore: intPtr(home),
		AwayScore: intPtr(away),
	}
}

func openMatch(id int, matchday int) *Match {
	return &Match{
		Id:       id,
		HomeTeam: "home" + string(rune('A'+id%26)),
		AwayTeam: "away" + string(rune('A'+id%26)),
		Kickoff:  kickoffBase.Add(time.Duration(id) * time.Hour),
		Matchday: intPtr(matchday),
	}
}

func tip(userId int, matchId int, home, away int) *Prediction {
	return &Prediction{UserId: userId, MatchId: matchId, PredHome: intPtr(home), PredAway: intPtr(away)}
}
