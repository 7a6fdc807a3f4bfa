package repository

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Permission string

const (
	PermissionAdmin Permission = "admin"
)

type User struct {
	Id       int    `gorm:"primaryKey;autoIncrement"`
	Username string `gorm:"uniqueIndex:idx_users_username;not null"`
	IsAdmin  bool   `gorm:"not null;default:false"`
}

func (u *User) Permissions() []Permission {
	if u.IsAdmin {
		return []Permission{PermissionAdmin}
	}
	return []Permission{}
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetUserById(userId int) (*User, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetUserById"))
	defer timer.ObserveDuration()
	var user User
	result := r.DB.First(&user, userId)
	if result.Error != nil {
		return nil, fmt.Errorf("user with id %d not found: %w", userId, result.Error)
	}
	return &user, nil
}

func (r *UserRepository) SaveUser(user *User) (*User, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("SaveUser"))
	defer timer.ObserveDuration()
	result := r.DB.Save(user)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to save user: %w", result.Error)
	}
	return user, nil
}
