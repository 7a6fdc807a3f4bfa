package service

import (
	"net/http"
	"strings"

	"tippspiel/app_error"
	"tippspiel/repository"

	"gorm.io/gorm"
)

type UserService struct {
	userRepository *repository.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		userRepository: repository.NewUserRepository(db),
	}
}

func (s *UserService) GetUserById(id int) (*repository.User, error) {
	return s.userRepository.GetUserById(id)
}

func (s *UserService) CreateUser(username string, isAdmin bool) (*repository.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, app_error.New(http.StatusBadRequest, "username must not be empty")
	}
	return s.userRepository.SaveUser(&repository.User{Username: username, IsAdmin: isAdmin})
}
