package service

import (
	"errors"
	"strings"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
	"github.com/Sammyduzit/movieweb-app/internal/domain/repository"
	apperrors "github.com/Sammyduzit/movieweb-app/internal/pkg/errors"
)

const maxReviewContentLength = 2000

// ReviewInput — входные данные создания/обновления рецензии
type ReviewInput struct {
	Content        string
	ReviewerRating *int
}

// ReviewService предоставляет методы для работы с рецензиями
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	movieRepo  repository.MovieRepository
}

// NewReviewService создает новый сервис рецензий
func NewReviewService(reviewRepo repository.ReviewRepository, movieRepo repository.MovieRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		movieRepo:  movieRepo,
	}
}

func validateReviewInput(input *ReviewInput) error {
	input.Content = strings.TrimSpace(input.Content)
	if input.Content == "" {
		return apperrors.NewValidationError("content", "review content is required")
	}
	if len(input.Content) > maxReviewContentLength {
		return apperrors.NewValidationError("content", "review content must be at most 2000 characters")
	}
	if input.ReviewerRating != nil && (*input.ReviewerRating < 1 || *input.ReviewerRating > 10) {
		return apperrors.NewValidationError("rating", "rating must be an integer between 1 and 10")
	}
	return nil
}

// CreateReview добавляет рецензию к фильму
func (s *ReviewService) CreateReview(movieID uint, input ReviewInput) (*entity.Review, error) {
	if _, err := s.movieRepo.GetByID(movieID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.MovieNotFoundError{MovieID: movieID}
		}
		return nil, apperrors.NewDatabaseError("get movie", err)
	}

	if err := validateReviewInput(&input); err != nil {
		return nil, err
	}

	review := &entity.Review{
		MovieID:        movieID,
		Content:        input.Content,
		ReviewerRating: input.ReviewerRating,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, apperrors.NewDatabaseError("create review", err)
	}
	return review, nil
}

// ListMovieReviews возвращает рецензии фильма, новые первыми
func (s *ReviewService) ListMovieReviews(movieID uint) ([]entity.Review, error) {
	if _, err := s.movieRepo.GetByID(movieID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.MovieNotFoundError{MovieID: movieID}
		}
		return nil, apperrors.NewDatabaseError("get movie", err)
	}

	reviews, err := s.reviewRepo.ListByMovie(movieID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list movie reviews", err)
	}
	return reviews, nil
}

// UpdateReview обновляет текст и оценку рецензии; счетчик лайков не трогается
func (s *ReviewService) UpdateReview(reviewID uint, input ReviewInput) (*entity.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.ReviewNotFoundError{ReviewID: reviewID}
		}
		return nil, apperrors.NewDatabaseError("get review", err)
	}

	if err := validateReviewInput(&input); err != nil {
		return nil, err
	}

	review.Content = input.Content
	review.ReviewerRating = input.ReviewerRating
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, apperrors.NewDatabaseError("update review", err)
	}
	return review, nil
}

// DeleteReview удаляет рецензию
func (s *ReviewService) DeleteReview(reviewID uint) error {
	if err := s.reviewRepo.Delete(reviewID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &apperrors.ReviewNotFoundError{ReviewID: reviewID}
		}
		return apperrors.NewDatabaseError("delete review", err)
	}
	return nil
}

// LikeReview увеличивает счетчик лайков на 1 и возвращает обновленную рецензию
func (s *ReviewService) LikeReview(reviewID uint) (*entity.Review, error) {
	review, err := s.reviewRepo.IncrementLikes(reviewID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.ReviewNotFoundError{ReviewID: reviewID}
		}
		return nil, apperrors.NewDatabaseError("like review", err)
	}
	return review, nil
}
