package service

import (
	"time"

	"tippspiel/config"
	"tippspiel/metrics"
	"tippspiel/repository"
	"tippspiel/scoring"
	"tippspiel/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PredictionInput struct {
	MatchId  int
	PredHome *int
	PredAway *int
}

func (p PredictionInput) isValid() bool {
	return p.PredHome != nil && p.PredAway != nil && *p.PredHome >= 0 && *p.PredAway >= 0
}

type SubmitResult struct {
	Saved         int
	SkippedLocked int
	// Ignored counts partial, negative or unknown-match inputs.
	Ignored int
}

type PredictionSheetEntry struct {
	Match      *scoring.Match
	Prediction *scoring.Prediction
	Locked     bool
}

type PredictionSheet struct {
	Matchday *int
	Prev     *int
	Next     *int
	Entries  []*PredictionSheetEntry
}

type PredictionService struct {
	groupRepository      *repository.GroupRepository
	matchRepository      *repository.MatchRepository
	predictionRepository *repository.PredictionRepository
}

func NewPredictionService(db *gorm.DB) *PredictionService {
	return &PredictionService{
		groupRepository:      repository.NewGroupRepository(db),
		matchRepository:      repository.NewMatchRepository(db),
		predictionRepository: repository.NewPredictionRepository(db),
	}
}

func (s *PredictionService) getMatches(groupId int) ([]*scoring.Match, error) {
	group, err := s.groupRepository.GetGroupById(groupId)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepository.GetMatchesForTournament(group.TournamentId)
	if err != nil {
		return nil, err
	}
	return utils.Map(matches, toScoringMatch), nil
}

// GetPredictionSheet returns the user's own predictions for one matchday.
func (s *PredictionService) GetPredictionSheet(userId int, groupId int, requested *int, now time.Time) (*PredictionSheet, error) {
	matches, err := s.getMatches(groupId)
	if err != nil {
		return nil, err
	}
	sheet := &PredictionSheet{
		Matchday: scoring.SelectMatchday(matches, requested, now),
		Entries:  []*PredictionSheetEntry{},
	}
	if sheet.Matchday == nil {
		return sheet, nil
	}
	sheet.Prev, sheet.Next = scoring.AdjacentMatchdays(matches, *sheet.Matchday)

	predictions, err := s.predictionRepository.GetPredictionsForUser(userId, groupId)
	if err != nil {
		return nil, err
	}
	index := scoring.NewPredictionIndex(utils.Map(predictions, toScoringPrediction))
	for _, match := range scoring.MatchesOfMatchday(matches, *sheet.Matchday) {
		sheet.Entries = append(sheet.Entries, &PredictionSheetEntry{
			Match:      match,
			Prediction: index.Get(userId, match.Id),
			Locked:     scoring.IsMatchLocked(match, now),
		})
	}
	return sheet, nil
}

// SubmitPredictions saves every valid input for a match that has not kicked off yet.
// Locked matches are skipped silently and reported in the result.
func (s *PredictionService) SubmitPredictions(userId int, groupId int, inputs []PredictionInput, now time.Time) (*SubmitResult, error) {
	matches, err := s.getMatches(groupId)
	if err != nil {
		return nil, err
	}
	matchMap := make(map[int]*scoring.Match, len(matches))
	for _, match := range matches {
		matchMap[match.Id] = match
	}

	result := &SubmitResult{}
	// a match may only appear once per upsert statement, the last input wins
	latest := make(map[int]*repository.Prediction)
	order := make([]int, 0, len(inputs))
	for _, input := range inputs {
		match, ok := matchMap[input.MatchId]
		if !ok {
			result.Ignored++
			continue
		}
		if scoring.IsMatchLocked(match, now) {
			result.SkippedLocked++
			continue
		}
		if !input.isValid() {
			result.Ignored++
			continue
		}
		if _, seen := latest[match.Id]; !seen {
			order = append(order, match.Id)
		}
		latest[match.Id] = &repository.Prediction{
			UserId:   userId,
			GroupId:  groupId,
			MatchId:  match.Id,
			PredHome: input.PredHome,
			PredAway: input.PredAway,
		}
	}

	predictions := utils.Map(order, func(matchId int) *repository.Prediction { return latest[matchId] })
	err = s.predictionRepository.UpsertPredictions(predictions)
	if err != nil {
		return nil, err
	}
	result.Saved = len(predictions)
	metrics.PredictionsSavedCounter.Add(float64(result.Saved))
	metrics.PredictionsLockedCounter.Add(float64(result.SkippedLocked))
	config.Logger().WithFields(logrus.Fields{
		"user_id":        userId,
		"group_id":       groupId,
		"saved":          result.Saved,
		"skipped_locked": result.SkippedLocked,
		"ignored":        result.Ignored,
	}).Debug("predictions submitted")
	return result, nil
}
