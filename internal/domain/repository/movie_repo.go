package repository

import (
	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

// MovieRepository определяет методы для работы с фильмами
type MovieRepository interface {
	Create(movie *entity.Movie) error
	GetByID(id uint) (*entity.Movie, error)
	GetByUserAndID(userID, movieID uint) (*entity.Movie, error)
	ListByUser(userID uint) ([]entity.Movie, error)
	CountByUser(userID uint) (int64, error)
	// FindDuplicate ищет у пользователя фильм с той же парой (title, year),
	// сравнение названия регистронезависимое. excludeID исключает сам фильм
	// при обновлении (0 — не исключать ничего).
	FindDuplicate(userID uint, title string, year *int, excludeID uint) (*entity.Movie, error)
	Update(movie *entity.Movie) error
	Delete(id uint) error
}
