package service

import (
	"errors"

	"tippspiel/app_error"
	"tippspiel/repository"
	"tippspiel/scoring"
	"tippspiel/utils"

	"gorm.io/gorm"
)

type UserStatsResult struct {
	User  *repository.User
	Stats *scoring.UserStats
}

type StatsService struct {
	groupRepository      *repository.GroupRepository
	userRepository       *repository.UserRepository
	matchRepository      *repository.MatchRepository
	predictionRepository *repository.PredictionRepository
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		groupRepository:      repository.NewGroupRepository(db),
		userRepository:       repository.NewUserRepository(db),
		matchRepository:      repository.NewMatchRepository(db),
		predictionRepository: repository.NewPredictionRepository(db),
	}
}

// GetUserStats computes the statistics of a member of the given group.
// Only finished matches are taken into account.
func (s *StatsService) GetUserStats(groupId int, targetUserId int) (*UserStatsResult, error) {
	membership, err := s.groupRepository.GetMembership(targetUserId, groupId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_error.ErrNotMember
	}
	if err != nil {
		return nil, err
	}
	user, err := s.userRepository.GetUserById(targetUserId)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepository.GetMatchesForTournament(membership.Group.TournamentId)
	if err != nil {
		return nil, err
	}
	predictions, err := s.predictionRepository.GetPredictionsForUser(targetUserId, groupId)
	if err != nil {
		return nil, err
	}
	return &UserStatsResult{
		User: user,
		Stats: scoring.BuildUserStats(
			utils.Map(matches, toScoringMatch),
			utils.Map(predictions, toScoringPrediction),
		),
	}, nil
}
