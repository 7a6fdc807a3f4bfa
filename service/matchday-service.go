package service

import (
	"time"

	"tippspiel/scoring"

	"gorm.io/gorm"
)

type MatchdayService struct {
	snapshotService *SnapshotService
}

func NewMatchdayService(db *gorm.DB) *MatchdayService {
	return &MatchdayService{
		snapshotService: NewSnapshotService(db),
	}
}

func (s *MatchdayService) GetMatchdayTable(groupId int, viewerId int, requested *int, now time.Time) (*scoring.MatchdayTable, error) {
	snapshot, err := s.snapshotService.GetSnapshot(groupId)
	if err != nil {
		return nil, err
	}
	return scoring.BuildMatchdayTable(snapshot, viewerId, requested, now), nil
}

func (s *MatchdayService) GetBonusTable(groupId int, viewerId int, now time.Time) (*scoring.BonusTable, error) {
	snapshot, err := s.snapshotService.GetSnapshot(groupId)
	if err != nil {
		return nil, err
	}
	return scoring.BuildBonusTable(snapshot, viewerId, now), nil
}
