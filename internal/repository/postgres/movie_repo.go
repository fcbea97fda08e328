package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
	apperrors "github.com/Sammyduzit/movieweb-app/internal/pkg/errors"
)

// MovieRepo реализует repository.MovieRepository
type MovieRepo struct {
	db *gorm.DB
}

// NewMovieRepo создает новый репозиторий фильмов
func NewMovieRepo(db *gorm.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create создает новый фильм
func (r *MovieRepo) Create(movie *entity.Movie) error {
	return r.db.Create(movie).Error
}

// GetByID возвращает фильм по ID независимо от владельца
func (r *MovieRepo) GetByID(id uint) (*entity.Movie, error) {
	var movie entity.Movie
	err := r.db.First(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

// GetByUserAndID возвращает фильм, только если он принадлежит пользователю
func (r *MovieRepo) GetByUserAndID(userID, movieID uint) (*entity.Movie, error) {
	var movie entity.Movie
	err := r.db.Where("user_id = ? AND id = ?", userID, movieID).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

// ListByUser возвращает все фильмы пользователя
func (r *MovieRepo) ListByUser(userID uint) ([]entity.Movie, error) {
	var movies []entity.Movie
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&movies).Error
	return movies, err
}

// CountByUser возвращает количество фильмов пользователя
func (r *MovieRepo) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Movie{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// FindDuplicate ищет у пользователя фильм с той же парой (title, year).
// Название сравнивается регистронезависимо. Возвращает apperrors.ErrNotFound,
// если дубликата нет.
func (r *MovieRepo) FindDuplicate(userID uint, title string, year *int, excludeID uint) (*entity.Movie, error) {
	query := r.db.Where("user_id = ? AND LOWER(title) = LOWER(?)", userID, title)
	if year != nil {
		query = query.Where("year = ?", *year)
	} else {
		query = query.Where("year IS NULL")
	}
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var movie entity.Movie
	err := query.First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

// Update обновляет фильм
func (r *MovieRepo) Update(movie *entity.Movie) error {
	return r.db.Save(movie).Error
}

// Delete удаляет фильм; рецензии удаляются каскадно по FK
func (r *MovieRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Movie{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
