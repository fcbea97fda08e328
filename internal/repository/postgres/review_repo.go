package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
	apperrors "github.com/Sammyduzit/movieweb-app/internal/pkg/errors"
)

// ReviewRepo реализует repository.ReviewRepository
type ReviewRepo struct {
	db *gorm.DB
}

// NewReviewRepo создает новый репозиторий рецензий
func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create создает новую рецензию
func (r *ReviewRepo) Create(review *entity.Review) error {
	return r.db.Create(review).Error
}

// GetByID возвращает рецензию по ID
func (r *ReviewRepo) GetByID(id uint) (*entity.Review, error) {
	var review entity.Review
	err := r.db.First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// ListByMovie возвращает рецензии фильма, новые первыми
func (r *ReviewRepo) ListByMovie(movieID uint) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.db.Where("movie_id = ?", movieID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// Update обновляет рецензию; gorm обновит updated_at
func (r *ReviewRepo) Update(review *entity.Review) error {
	return r.db.Save(review).Error
}

// Delete удаляет рецензию
func (r *ReviewRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// IncrementLikes атомарно увеличивает счетчик лайков и возвращает
// обновленную рецензию
func (r *ReviewRepo) IncrementLikes(id uint) (*entity.Review, error) {
	result := r.db.Model(&entity.Review{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.GetByID(id)
}
