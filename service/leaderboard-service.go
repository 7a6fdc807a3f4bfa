package service

import (
	"time"

	"tippspiel/scoring"

	"gorm.io/gorm"
)

type LeaderboardService struct {
	snapshotService *SnapshotService
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{
		snapshotService: NewSnapshotService(db),
	}
}

func (s *LeaderboardService) GetTable(groupId int, view scoring.ViewMode, window scoring.Window, now time.Time) (*scoring.Table, error) {
	snapshot, err := s.snapshotService.GetSnapshot(groupId)
	if err != nil {
		return nil, err
	}
	return scoring.BuildLeaderboard(snapshot, view, now, window), nil
}
