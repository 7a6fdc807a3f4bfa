package service

import (
	"tippspiel/repository"
	"tippspiel/scoring"
	"tippspiel/utils"

	"gorm.io/gorm"
)

// SnapshotService loads everything the scoring engine needs for one group.
type SnapshotService struct {
	groupRepository           *repository.GroupRepository
	matchRepository           *repository.MatchRepository
	predictionRepository      *repository.PredictionRepository
	bonusPredictionRepository *repository.BonusPredictionRepository
}

func NewSnapshotService(db *gorm.DB) *SnapshotService {
	return &SnapshotService{
		groupRepository:           repository.NewGroupRepository(db),
		matchRepository:           repository.NewMatchRepository(db),
		predictionRepository:      repository.NewPredictionRepository(db),
		bonusPredictionRepository: repository.NewBonusPredictionRepository(db),
	}
}

func (s *SnapshotService) GetSnapshot(groupId int) (*scoring.Snapshot, error) {
	group, err := s.groupRepository.GetGroupById(groupId)
	if err != nil {
		return nil, err
	}
	users, err := s.groupRepository.GetMembersOfGroup(groupId)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepository.GetMatchesForTournament(group.TournamentId)
	if err != nil {
		return nil, err
	}
	predictions, err := s.predictionRepository.GetPredictionsForGroup(groupId)
	if err != nil {
		return nil, err
	}
	bonusPredictions, err := s.bonusPredictionRepository.GetBonusPredictionsForGroup(groupId, group.TournamentId)
	if err != nil {
		return nil, err
	}
	return &scoring.Snapshot{
		Tournament:       toScoringTournament(group.Tournament),
		Users:            utils.Map(users, toScoringUser),
		Matches:          utils.Map(matches, toScoringMatch),
		Predictions:      utils.Map(predictions, toScoringPrediction),
		BonusPredictions: utils.Map(utils.Filter(bonusPredictions, hasKnownBonusType), toScoringBonusPrediction),
	}, nil
}

func toScoringTournament(tournament *repository.Tournament) *scoring.Tournament {
	if tournament == nil {
		return nil
	}
	return &scoring.Tournament{
		Id:               tournament.Id,
		Name:             tournament.Name,
		SeasonStart:      tournament.SeasonStart,
		AutumnChampion:   tournament.AutumnChampion,
		Champion:         tournament.Champion,
		FirstCoachSacked: tournament.FirstCoachSacked,
		TopScorer:        tournament.TopScorer,
		RelegatedTeams:   tournament.RelegatedTeams,
	}
}

func toScoringUser(user *repository.User) *scoring.User {
	return &scoring.User{Id: user.Id, Username: user.Username}
}

func toScoringMatch(match *repository.Match) *scoring.Match {
	return &scoring.Match{
		Id:        match.Id,
		HomeTeam:  match.HomeTeam,
		AwayTeam:  match.AwayTeam,
		Kickoff:   match.Kickoff,
		Matchday:  match.Matchday,
		HomeScore: match.HomeScore,
		AwayScore: match.AwayScore,
	}
}

func toScoringPrediction(prediction *repository.Prediction) *scoring.Prediction {
	return &scoring.Prediction{
		UserId:   prediction.UserId,
		MatchId:  prediction.MatchId,
		PredHome: prediction.PredHome,
		PredAway: prediction.PredAway,
	}
}

// Stored rows with an unknown type never reach the engine.
func hasKnownBonusType(prediction *repository.BonusPrediction) bool {
	return scoring.BonusType(prediction.BonusType).Valid()
}

func toScoringBonusPrediction(prediction *repository.BonusPrediction) *scoring.BonusPrediction {
	return &scoring.BonusPrediction{
		UserId:    prediction.UserId,
		BonusType: scoring.BonusType(prediction.BonusType),
		Value:     prediction.Value,
	}
}
