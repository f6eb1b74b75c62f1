package service

import (
	"errors"
	"time"

	"github.com/Bange254/Bttshoes/internal/domain/user/model"
	"github.com/Bange254/Bttshoes/internal/domain/user/repository"
	"github.com/Bange254/Bttshoes/pkg/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type UserService interface {
	Register(name, email, password, phone string) (*model.User, string, error)
	Login(email, password string) (*model.User, string, error)
	GetUser(id string) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	jwtSecret string
	jwtExpire time.Duration
}

func NewUserService(repo repository.UserRepository, jwtSecret string, jwtExpireHours int64) UserService {
	return &userService{
		repo:      repo,
		jwtSecret: jwtSecret,
		jwtExpire: time.Duration(jwtExpireHours) * time.Hour,
	}
}

func (s *userService) Register(name, email, password, phone string) (*model.User, string, error) {
	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Phone:    phone,
		Role:     model.RoleUser,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, "", err
	}

	token, _, err := utils.GenerateToken(s.jwtSecret, user.ID, user.Role, s.jwtExpire)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) Login(email, password string) (*model.User, string, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := utils.GenerateToken(s.jwtSecret, user.ID, user.Role, s.jwtExpire)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) GetUser(id string) (*model.User, error) {
	return s.repo.GetByID(id)
}
