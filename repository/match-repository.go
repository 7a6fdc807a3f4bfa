package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Match struct {
	Id           int       `gorm:"primaryKey"`
	TournamentId int       `gorm:"index;not null"`
	HomeTeam     string    `gorm:"not null"`
	AwayTeam     string    `gorm:"not null"`
	Kickoff      time.Time `gorm:"not null"`
	Matchday     *int      `gorm:"index;null"`
	HomeScore    *int      `gorm:"null"`
	AwayScore    *int      `gorm:"null"`
}

type MatchRepository struct {
	DB *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{DB: db}
}

func (r *MatchRepository) GetMatchesForTournament(tournamentId int) ([]*Match, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetMatchesForTournament"))
	defer timer.ObserveDuration()
	matches := make([]*Match, 0)
	result := r.DB.Where(&Match{TournamentId: tournamentId}).Order("kickoff, home_team").Find(&matches)
	if result.Error != nil {
		return nil, result.Error
	}
	return matches, nil
}

func (r *MatchRepository) GetMatchById(matchId int) (*Match, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetMatchById"))
	defer timer.ObserveDuration()
	var match Match
	result := r.DB.First(&match, matchId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &match, nil
}

func (r *MatchRepository) SaveMatch(match *Match) (*Match, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("SaveMatch"))
	defer timer.ObserveDuration()
	result := r.DB.Save(match)
	if result.Error != nil {
		return nil, result.Error
	}
	return match, nil
}

// SaveResult sets both scores at once; nil clears the result.
func (r *MatchRepository) SaveResult(matchId int, homeScore *int, awayScore *int) error {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("SaveResult"))
	defer timer.ObserveDuration()
	result := r.DB.Model(&Match{}).Where("id = ?", matchId).Updates(map[string]interface{}{
		"home_score": homeScore,
		"away_score": awayScore,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
