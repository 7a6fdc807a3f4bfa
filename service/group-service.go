package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"tippspiel/app_error"
	"tippspiel/config"
	"tippspiel/metrics"
	"tippspiel/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// no 0/O and 1/I
	joinCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	joinCodeLength   = 8
	joinCodeAttempts = 10
)

type GroupService struct {
	groupRepository      *repository.GroupRepository
	tournamentRepository *repository.TournamentRepository
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{
		groupRepository:      repository.NewGroupRepository(db),
		tournamentRepository: repository.NewTournamentRepository(db),
	}
}

func GenerateJoinCode() (string, error) {
	var sb strings.Builder
	alphabetSize := big.NewInt(int64(len(joinCodeAlphabet)))
	for i := 0; i < joinCodeLength; i++ {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		sb.WriteByte(joinCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

func (s *GroupService) uniqueJoinCode() (string, error) {
	for i := 0; i < joinCodeAttempts; i++ {
		code, err := GenerateJoinCode()
		if err != nil {
			return "", err
		}
		exists, err := s.groupRepository.JoinCodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("no free join code after %d attempts", joinCodeAttempts)
}

// CreateGroup creates the group and makes the user its first member.
func (s *GroupService) CreateGroup(userId int, name string, tournamentId int) (*repository.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, app_error.New(http.StatusBadRequest, "group name must not be empty")
	}
	tournament, err := s.tournamentRepository.GetTournamentById(tournamentId)
	if err != nil {
		return nil, err
	}
	code, err := s.uniqueJoinCode()
	if err != nil {
		return nil, err
	}
	group, err := s.groupRepository.CreateGroupWithCreator(&repository.Group{
		TournamentId: tournament.Id,
		Name:         name,
		OwnerId:      &userId,
		JoinCode:     code,
	}, userId)
	if err != nil {
		return nil, err
	}
	group.Tournament = tournament
	metrics.GroupsCreatedCounter.Inc()
	config.Logger().WithFields(logrus.Fields{
		"group_id": group.Id,
		"user_id":  userId,
	}).Info("group created")
	return group, nil
}

// JoinGroup adds the user to the group with the given join code. Joining twice is a no-op.
func (s *GroupService) JoinGroup(userId int, code string) (*repository.Group, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, app_error.ErrJoinCodeNotFound
	}
	group, err := s.groupRepository.GetGroupByJoinCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_error.ErrJoinCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	err = s.groupRepository.AddMembership(userId, group.Id)
	if err != nil {
		return nil, err
	}
	metrics.GroupJoinsCounter.Inc()
	config.Logger().WithFields(logrus.Fields{
		"group_id": group.Id,
		"user_id":  userId,
	}).Info("user joined group")
	return group, nil
}

func (s *GroupService) ListMemberships(userId int) ([]*repository.GroupMembership, error) {
	return s.groupRepository.GetMembershipsForUser(userId)
}

// ResolveActiveGroup picks the requested group if the user is a member of it and
// falls back to the user's oldest membership otherwise. It reports false if the
// user belongs to no group at all.
func (s *GroupService) ResolveActiveGroup(userId int, requestedGroupId *int) (*repository.GroupMembership, bool, error) {
	if requestedGroupId != nil {
		membership, err := s.groupRepository.GetMembership(userId, *requestedGroupId)
		if err == nil {
			return membership, true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	}
	memberships, err := s.groupRepository.GetMembershipsForUser(userId)
	if err != nil {
		return nil, false, err
	}
	if len(memberships) == 0 {
		return nil, false, nil
	}
	return memberships[0], true, nil
}
