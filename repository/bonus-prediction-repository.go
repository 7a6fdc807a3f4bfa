package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BonusPrediction struct {
	Id           int       `gorm:"primaryKey"`
	UserId       int       `gorm:"uniqueIndex:idx_bonus_predictions_user_group_type;not null"`
	GroupId      int       `gorm:"uniqueIndex:idx_bonus_predictions_user_group_type;index;not null"`
	TournamentId int       `gorm:"index;not null"`
	BonusType    string    `gorm:"uniqueIndex:idx_bonus_predictions_user_group_type;size:50;not null"`
	Value        string    `gorm:"size:120;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

type BonusPredictionRepository struct {
	DB *gorm.DB
}

func NewBonusPredictionRepository(db *gorm.DB) *BonusPredictionRepository {
	return &BonusPredictionRepository{DB: db}
}

func (r *BonusPredictionRepository) GetBonusPredictionsForGroup(groupId int, tournamentId int) ([]*BonusPrediction, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetBonusPredictionsForGroup"))
	defer timer.ObserveDuration()
	predictions := make([]*BonusPrediction, 0)
	result := r.DB.Where(&BonusPrediction{GroupId: groupId, TournamentId: tournamentId}).Find(&predictions)
	if result.Error != nil {
		return nil, result.Error
	}
	return predictions, nil
}

func (r *BonusPredictionRepository) GetBonusPredictionsForUser(userId int, groupId int) ([]*BonusPrediction, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetBonusPredictionsForUser"))
	defer timer.ObserveDuration()
	predictions := make([]*BonusPrediction, 0)
	result := r.DB.Where(&BonusPrediction{UserId: userId, GroupId: groupId}).Find(&predictions)
	if result.Error != nil {
		return nil, result.Error
	}
	return predictions, nil
}

func (r *BonusPredictionRepository) UpsertBonusPredictions(predictions []*BonusPrediction) error {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("UpsertBonusPredictions"))
	defer timer.ObserveDuration()
	if len(predictions) == 0 {
		return nil
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "group_id"}, {Name: "bonus_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(predictions).Error
}
