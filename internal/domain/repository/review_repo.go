package repository

import (
	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

// ReviewRepository определяет методы для работы с рецензиями
type ReviewRepository interface {
	Create(review *entity.Review) error
	GetByID(id uint) (*entity.Review, error)
	ListByMovie(movieID uint) ([]entity.Review, error)
	Update(review *entity.Review) error
	Delete(id uint) error
	// IncrementLikes атомарно увеличивает счетчик лайков на 1
	IncrementLikes(id uint) (*entity.Review, error)
}
