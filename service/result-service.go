package service

import (
	"net/http"

	"tippspiel/app_error"
	"tippspiel/config"
	"tippspiel/metrics"
	"tippspiel/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPartialResult = app_error.New(http.StatusBadRequest, "home and away score must be set together")
var ErrNegativeScore = app_error.New(http.StatusBadRequest, "scores must not be negative")

type ResultService struct {
	matchRepository *repository.MatchRepository
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{
		matchRepository: repository.NewMatchRepository(db),
	}
}

// ApplyResult sets the final score of a match. Passing nil for both scores clears it.
func (s *ResultService) ApplyResult(matchId int, homeScore *int, awayScore *int, source string) error {
	if (homeScore == nil) != (awayScore == nil) {
		return ErrPartialResult
	}
	if homeScore != nil && (*homeScore < 0 || *awayScore < 0) {
		return ErrNegativeScore
	}
	match, err := s.matchRepository.GetMatchById(matchId)
	if err != nil {
		return err
	}
	err = s.matchRepository.SaveResult(match.Id, homeScore, awayScore)
	if err != nil {
		return err
	}
	metrics.MatchResultsAppliedCounter.WithLabelValues(source).Inc()
	entry := config.Logger().WithFields(logrus.Fields{
		"match_id": match.Id,
		"match":    match.HomeTeam + " - " + match.AwayTeam,
		"source":   source,
	})
	if homeScore == nil {
		entry.Info("match result cleared")
	} else {
		entry.WithField("score", []int{*homeScore, *awayScore}).Info("match result applied")
	}
	return nil
}
