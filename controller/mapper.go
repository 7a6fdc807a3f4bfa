package controller

import (
	"time"

	"tippspiel/repository"
	"tippspiel/scoring"
)

type UserResponse struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
}

type MatchResponse struct {
	Id        int       `json:"id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	Kickoff   time.Time `json:"kickoff"`
	Matchday  *int      `json:"matchday"`
	HomeScore *int      `json:"home_score"`
	AwayScore *int      `json:"away_score"`
}

type PredictionResponse struct {
	MatchId  int  `json:"match_id"`
	PredHome *int `json:"pred_home"`
	PredAway *int `json:"pred_away"`
}

func toUserResponse(user *scoring.User) *UserResponse {
	return &UserResponse{Id: user.Id, Username: user.Username}
}

func toRepositoryUserResponse(user *repository.User) *UserResponse {
	return &UserResponse{Id: user.Id, Username: user.Username}
}

func toMatchResponse(match *scoring.Match) *MatchResponse {
	return &MatchResponse{
		Id:        match.Id,
		HomeTeam:  match.HomeTeam,
		AwayTeam:  match.AwayTeam,
		Kickoff:   match.Kickoff,
		Matchday:  match.Matchday,
		HomeScore: match.HomeScore,
		AwayScore: match.AwayScore,
	}
}

func toPredictionResponse(prediction *scoring.Prediction) *PredictionResponse {
	if prediction == nil {
		return nil
	}
	return &PredictionResponse{
		MatchId:  prediction.MatchId,
		PredHome: prediction.PredHome,
		PredAway: prediction.PredAway,
	}
}

// toPicksResponse keys the picks by their wire name.
func toPicksResponse(picks map[scoring.BonusType]string) map[string]string {
	response := make(map[string]string, len(picks))
	for bonusType, value := range picks {
		response[string(bonusType)] = value
	}
	return response
}
