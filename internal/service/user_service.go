package service

import (
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
	"github.com/Sammyduzit/movieweb-app/internal/domain/repository"
	apperrors "github.com/Sammyduzit/movieweb-app/internal/pkg/errors"
)

const (
	maxUserNameLength  = 100
	maxUserEmailLength = 120
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser создает пользователя. Email нормализуется к нижнему регистру,
// дубликат email отклоняется как ошибка валидации.
func (s *UserService) CreateUser(name, email string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	if len(name) > maxUserNameLength {
		return nil, apperrors.NewValidationError("name", "name must be at most 100 characters")
	}
	if email == "" {
		return nil, apperrors.NewValidationError("email", "email is required")
	}
	if len(email) > maxUserEmailLength {
		return nil, apperrors.NewValidationError("email", "email must be at most 120 characters")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.NewValidationError("email", "invalid email format")
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewDatabaseError("check user email", err)
	}
	if existing != nil {
		return nil, apperrors.NewValidationError("email", "email is already registered")
	}

	user := &entity.User{Name: name, Email: email}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.NewDatabaseError("create user", err)
	}

	log.Printf("[UserService] создан пользователь %d (%s)", user.ID, user.Email)
	return user, nil
}

// GetUser возвращает пользователя по ID
func (s *UserService) GetUser(userID uint) (*entity.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.UserNotFoundError{UserID: userID}
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	return user, nil
}

// ListUsers возвращает всех пользователей
func (s *UserService) ListUsers() ([]entity.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, apperrors.NewDatabaseError("list users", err)
	}
	return users, nil
}
