package service

import (
	"net/http"
	"strings"
	"time"

	"tippspiel/app_error"
	"tippspiel/config"
	"tippspiel/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TournamentOutcomes struct {
	SeasonStart      *time.Time
	AutumnChampion   string
	Champion         string
	FirstCoachSacked string
	TopScorer        string
	RelegatedTeams   []string
}

type MatchCreate struct {
	HomeTeam string
	AwayTeam string
	Kickoff  time.Time
	Matchday *int
}

type TournamentService struct {
	tournamentRepository *repository.TournamentRepository
	matchRepository      *repository.MatchRepository
}

func NewTournamentService(db *gorm.DB) *TournamentService {
	return &TournamentService{
		tournamentRepository: repository.NewTournamentRepository(db),
		matchRepository:      repository.NewMatchRepository(db),
	}
}

func (s *TournamentService) CreateTournament(name string) (*repository.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, app_error.New(http.StatusBadRequest, "tournament name must not be empty")
	}
	return s.tournamentRepository.SaveTournament(&repository.Tournament{Name: name})
}

// SetOutcomes stores the authoritative bonus outcomes and the season start.
func (s *TournamentService) SetOutcomes(tournamentId int, outcomes TournamentOutcomes) (*repository.Tournament, error) {
	tournament, err := s.tournamentRepository.GetTournamentById(tournamentId)
	if err != nil {
		return nil, err
	}
	relegated := make([]string, 0, len(outcomes.RelegatedTeams))
	for _, team := range outcomes.RelegatedTeams {
		if team = strings.TrimSpace(team); team != "" {
			relegated = append(relegated, team)
		}
	}
	tournament.SeasonStart = outcomes.SeasonStart
	tournament.AutumnChampion = strings.TrimSpace(outcomes.AutumnChampion)
	tournament.Champion = strings.TrimSpace(outcomes.Champion)
	tournament.FirstCoachSacked = strings.TrimSpace(outcomes.FirstCoachSacked)
	tournament.TopScorer = strings.TrimSpace(outcomes.TopScorer)
	tournament.RelegatedTeams = strings.Join(relegated, ", ")
	tournament, err = s.tournamentRepository.SaveTournament(tournament)
	if err != nil {
		return nil, err
	}
	config.Logger().WithField("tournament_id", tournamentId).Info("tournament outcomes updated")
	return tournament, nil
}

func (s *TournamentService) AddMatch(tournamentId int, create MatchCreate) (*repository.Match, error) {
	homeTeam := strings.TrimSpace(create.HomeTeam)
	awayTeam := strings.TrimSpace(create.AwayTeam)
	if homeTeam == "" || awayTeam == "" {
		return nil, app_error.New(http.StatusBadRequest, "home and away team are required")
	}
	if create.Matchday != nil && *create.Matchday < 1 {
		return nil, app_error.New(http.StatusBadRequest, "matchday must be positive")
	}
	tournament, err := s.tournamentRepository.GetTournamentById(tournamentId)
	if err != nil {
		return nil, err
	}
	match, err := s.matchRepository.SaveMatch(&repository.Match{
		TournamentId: tournament.Id,
		HomeTeam:     homeTeam,
		AwayTeam:     awayTeam,
		Kickoff:      create.Kickoff,
		Matchday:     create.Matchday,
	})
	if err != nil {
		return nil, err
	}
	config.Logger().WithFields(logrus.Fields{
		"tournament_id": tournamentId,
		"match_id":      match.Id,
	}).Debug("match added")
	return match, nil
}
