package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Prediction struct {
	Id        int       `gorm:"primaryKey"`
	UserId    int       `gorm:"uniqueIndex:idx_predictions_user_group_match;not null"`
	GroupId   int       `gorm:"uniqueIndex:idx_predictions_user_group_match;index;not null"`
	MatchId   int       `gorm:"uniqueIndex:idx_predictions_user_group_match;not null"`
	User      *User     `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	Group     *Group    `gorm:"foreignKey:GroupId;constraint:OnDelete:CASCADE"`
	Match     *Match    `gorm:"foreignKey:MatchId;constraint:OnDelete:CASCADE"`
	PredHome  *int      `gorm:"null"`
	PredAway  *int      `gorm:"null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type PredictionRepository struct {
	DB *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{DB: db}
}

func (r *PredictionRepository) GetPredictionsForGroup(groupId int) ([]*Prediction, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetPredictionsForGroup"))
	defer timer.ObserveDuration()
	predictions := make([]*Prediction, 0)
	result := r.DB.Where(&Prediction{GroupId: groupId}).Find(&predictions)
	if result.Error != nil {
		return nil, result.Error
	}
	return predictions, nil
}

func (r *PredictionRepository) GetPredictionsForUser(userId int, groupId int) ([]*Prediction, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetPredictionsForUser"))
	defer timer.ObserveDuration()
	predictions := make([]*Prediction, 0)
	result := r.DB.Where(&Prediction{UserId: userId, GroupId: groupId}).Find(&predictions)
	if result.Error != nil {
		return nil, result.Error
	}
	return predictions, nil
}

// UpsertPredictions relies on the unique (user, group, match) index.
func (r *PredictionRepository) UpsertPredictions(predictions []*Prediction) error {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("UpsertPredictions"))
	defer timer.ObserveDuration()
	if len(predictions) == 0 {
		return nil
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "group_id"}, {Name: "match_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"pred_home", "pred_away", "updated_at"}),
	}).CreateInBatches(predictions, 500).Error
}
