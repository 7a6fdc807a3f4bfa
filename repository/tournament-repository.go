package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Tournament struct {
	Id   int    `gorm:"primaryKey"`
	Name string `gorm:"not null"`
	// bonus predictions lock at season start
	SeasonStart      *time.Time `gorm:"null"`
	AutumnChampion   string     `gorm:"not null;default:''"`
	Champion         string     `gorm:"not null;default:''"`
	FirstCoachSacked string     `gorm:"not null;default:''"`
	TopScorer        string     `gorm:"not null;default:''"`
	// comma separated list of team names
	RelegatedTeams string   `gorm:"not null;default:''"`
	Matches        []*Match `gorm:"foreignKey:TournamentId;constraint:OnDelete:CASCADE"`
	Groups         []*Group `gorm:"foreignKey:TournamentId;constraint:OnDelete:CASCADE"`
}

type TournamentRepository struct {
	DB *gorm.DB
}

func NewTournamentRepository(db *gorm.DB) *TournamentRepository {
	return &TournamentRepository{DB: db}
}

func (r *TournamentRepository) GetTournamentById(tournamentId int) (*Tournament, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetTournamentById"))
	defer timer.ObserveDuration()
	var tournament Tournament
	result := r.DB.First(&tournament, tournamentId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &tournament, nil
}

func (r *TournamentRepository) SaveTournament(tournament *Tournament) (*Tournament, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("SaveTournament"))
	defer timer.ObserveDuration()
	result := r.DB.Save(tournament)
	if result.Error != nil {
		return nil, result.Error
	}
	return tournament, nil
}
