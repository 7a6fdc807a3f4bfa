package service

import (
	"net/http"
	"strings"
	"time"

	"tippspiel/app_error"
	"tippspiel/config"
	"tippspiel/metrics"
	"tippspiel/repository"
	"tippspiel/scoring"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDuplicateRelegation = app_error.New(http.StatusBadRequest, "both relegation picks name the same team")

type BonusService struct {
	groupRepository           *repository.GroupRepository
	bonusPredictionRepository *repository.BonusPredictionRepository
}

func NewBonusService(db *gorm.DB) *BonusService {
	return &BonusService{
		groupRepository:           repository.NewGroupRepository(db),
		bonusPredictionRepository: repository.NewBonusPredictionRepository(db),
	}
}

// GetBonusPredictions returns the user's own picks, which are always visible to them.
func (s *BonusService) GetBonusPredictions(userId int, groupId int) (map[scoring.BonusType]string, error) {
	predictions, err := s.bonusPredictionRepository.GetBonusPredictionsForUser(userId, groupId)
	if err != nil {
		return nil, err
	}
	picks := make(map[scoring.BonusType]string, len(predictions))
	for _, prediction := range predictions {
		bonusType := scoring.BonusType(prediction.BonusType)
		if bonusType.Valid() {
			picks[bonusType] = prediction.Value
		}
	}
	return picks, nil
}

// IsLocked reports whether bonus picks of the group can no longer be changed.
func (s *BonusService) IsLocked(groupId int, now time.Time) (bool, error) {
	group, err := s.groupRepository.GetGroupById(groupId)
	if err != nil {
		return false, err
	}
	return scoring.IsBonusRevealed(toScoringTournament(group.Tournament), now), nil
}

// IsRevealDue reports whether the bonus picks of the group are revealed within the given duration.
func (s *BonusService) IsRevealDue(groupId int, now time.Time, within time.Duration) (bool, error) {
	group, err := s.groupRepository.GetGroupById(groupId)
	if err != nil {
		return false, err
	}
	return scoring.IsBonusRevealDue(toScoringTournament(group.Tournament), now, within), nil
}

// SubmitBonusPredictions upserts the given picks. An empty value clears a pick.
func (s *BonusService) SubmitBonusPredictions(userId int, groupId int, picks map[string]string, now time.Time) (map[scoring.BonusType]string, error) {
	group, err := s.groupRepository.GetGroupById(groupId)
	if err != nil {
		return nil, err
	}
	if scoring.IsBonusRevealed(toScoringTournament(group.Tournament), now) {
		return nil, app_error.ErrBonusLocked
	}

	merged, err := s.GetBonusPredictions(userId, groupId)
	if err != nil {
		return nil, err
	}
	predictions := make([]*repository.BonusPrediction, 0, len(picks))
	for rawType, value := range picks {
		bonusType, err := scoring.ParseBonusType(rawType)
		if err != nil {
			return nil, app_error.Wrap(err, http.StatusBadRequest)
		}
		value = strings.TrimSpace(value)
		merged[bonusType] = value
		predictions = append(predictions, &repository.BonusPrediction{
			UserId:       userId,
			GroupId:      groupId,
			TournamentId: group.TournamentId,
			BonusType:    string(bonusType),
			Value:        value,
		})
	}
	first := scoring.NormalizeValue(merged[scoring.BonusRelegation1])
	if first != "" && first == scoring.NormalizeValue(merged[scoring.BonusRelegation2]) {
		return nil, ErrDuplicateRelegation
	}

	err = s.bonusPredictionRepository.UpsertBonusPredictions(predictions)
	if err != nil {
		return nil, err
	}
	metrics.BonusPredictionsSavedCounter.Add(float64(len(predictions)))
	config.Logger().WithFields(logrus.Fields{
		"user_id":  userId,
		"group_id": groupId,
		"picks":    len(predictions),
	}).Debug("bonus predictions submitted")
	return merged, nil
}
