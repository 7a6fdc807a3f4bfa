package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Group struct {
	Id           int         `gorm:"primaryKey"`
	TournamentId int         `gorm:"index;not null"`
	Tournament   *Tournament `gorm:"foreignKey:TournamentId"`
	Name         string      `gorm:"not null"`
	OwnerId      *int        `gorm:"null"`
	JoinCode     string      `gorm:"uniqueIndex:idx_groups_join_code;size:12;not null"`
}

type GroupMembership struct {
	Id        int       `gorm:"primaryKey"`
	UserId    int       `gorm:"uniqueIndex:idx_group_memberships_user_group;not null"`
	GroupId   int       `gorm:"uniqueIndex:idx_group_memberships_user_group;index;not null"`
	Group     *Group    `gorm:"foreignKey:GroupId;constraint:OnDelete:CASCADE"`
	User      *User     `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	IsCreator bool      `gorm:"not null;default:false"`
	JoinedAt  time.Time `gorm:"autoCreateTime"`
}

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

func (r *GroupRepository) CreateGroupWithCreator(group *Group, creatorId int) (*Group, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("CreateGroupWithCreator"))
	defer timer.ObserveDuration()
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		return tx.Create(&GroupMembership{UserId: creatorId, GroupId: group.Id, IsCreator: true}).Error
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (r *GroupRepository) GetGroupById(groupId int) (*Group, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetGroupById"))
	defer timer.ObserveDuration()
	var group Group
	result := r.DB.Preload("Tournament").First(&group, groupId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &group, nil
}

func (r *GroupRepository) GetGroupByJoinCode(code string) (*Group, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetGroupByJoinCode"))
	defer timer.ObserveDuration()
	var group Group
	result := r.DB.Preload("Tournament").Where(&Group{JoinCode: code}).First(&group)
	if result.Error != nil {
		return nil, result.Error
	}
	return &group, nil
}

func (r *GroupRepository) JoinCodeExists(code string) (bool, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("JoinCodeExists"))
	defer timer.ObserveDuration()
	var count int64
	result := r.DB.Model(&Group{}).Where(&Group{JoinCode: code}).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// GetMembershipsForUser returns the memberships in the order they were created.
func (r *GroupRepository) GetMembershipsForUser(userId int) ([]*GroupMembership, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetMembershipsForUser"))
	defer timer.ObserveDuration()
	memberships := make([]*GroupMembership, 0)
	result := r.DB.Preload("Group.Tournament").Where(&GroupMembership{UserId: userId}).Order("id").Find(&memberships)
	if result.Error != nil {
		return nil, result.Error
	}
	return memberships, nil
}

func (r *GroupRepository) GetMembership(userId int, groupId int) (*GroupMembership, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetMembership"))
	defer timer.ObserveDuration()
	var membership GroupMembership
	result := r.DB.Preload("Group.Tournament").Where(&GroupMembership{UserId: userId, GroupId: groupId}).First(&membership)
	if result.Error != nil {
		return nil, result.Error
	}
	return &membership, nil
}

func (r *GroupRepository) GetMembersOfGroup(groupId int) ([]*User, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetMembersOfGroup"))
	defer timer.ObserveDuration()
	users := make([]*User, 0)
	result := r.DB.Model(&User{}).
		Joins("JOIN group_memberships ON group_memberships.user_id = users.id").
		Where("group_memberships.group_id = ?", groupId).
		Order("users.username").
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// AddMembership is a no-op if the user already belongs to the group.
func (r *GroupRepository) AddMembership(userId int, groupId int) error {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("AddMembership"))
	defer timer.ObserveDuration()
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&GroupMembership{UserId: userId, GroupId: groupId}).Error
}
