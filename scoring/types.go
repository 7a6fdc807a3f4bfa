package scoring

import "time"

type User struct {
	Id       int
	Username string
}

type Tournament struct {
	Id               int
	Name             string
	SeasonStart      *time.Time
	AutumnChampion   string
	Champion         string
	FirstCoachSacked string
	TopScorer        string
	// comma separated list
	RelegatedTeams string
}

type Match struct {
	Id        int
	HomeTeam  string
	AwayTeam  string
	Kickoff   time.Time
	Matchday  *int
	HomeScore *int
	AwayScore *int
}

func (m *Match) HasResult() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

type Prediction struct {
	UserId   int
	MatchId  int
	PredHome *int
	PredAway *int
}

func (p *Prediction) IsComplete() bool {
	return p != nil && p.PredHome != nil && p.PredAway != nil
}

type BonusPrediction struct {
	UserId    int
	BonusType BonusType
	Value     string
}

type predictionKey struct {
	UserId  int
	MatchId int
}

// PredictionIndex looks up the prediction of a user for a match.
type PredictionIndex map[predictionKey]*Prediction

func NewPredictionIndex(predictions []*Prediction) PredictionIndex {
	index := make(PredictionIndex, len(predictions))
	for _, prediction := range predictions {
		index[predictionKey{UserId: prediction.UserId, MatchId: prediction.MatchId}] = prediction
	}
	return index
}

func (p PredictionIndex) Get(userId int, matchId int) *Prediction {
	return p[predictionKey{UserId: userId, MatchId: matchId}]
}

// Snapshot is the read-only state of one group a leaderboard is computed from.
type Snapshot struct {
	Tournament       *Tournament
	Users            []*User
	Matches          []*Match
	Predictions      []*Prediction
	BonusPredictions []*BonusPrediction
}

func (s *Snapshot) userIds() []int {
	ids := make([]int, len(s.Users))
	for i, user := range s.Users {
		ids[i] = user.Id
	}
	return ids
}

func (s *Snapshot) bonusByUser() map[int][]*BonusPrediction {
	byUser := make(map[int][]*BonusPrediction)
	for _, bonus := range s.BonusPredictions {
		byUser[bonus.UserId] = append(byUser[bonus.UserId], bonus)
	}
	return byUser
}

func intPtr(i int) *int {
	return &i
}
