package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
	"github.com/Sammyduzit/movieweb-app/internal/domain/repository"
	apperrors "github.com/Sammyduzit/movieweb-app/internal/pkg/errors"
)

const (
	maxMovieTitleLength    = 200
	maxMovieDirectorLength = 100
	maxMovieGenreLength    = 100
	minMovieYear           = 1800
	maxMovieYear           = 2050
	minMovieRating         = 1.0
	maxMovieRating         = 10.0
)

// MovieInput — входные данные создания/обновления фильма.
// Незаполненные указатели означают "не задано".
type MovieInput struct {
	Title    string
	Director *string
	Year     *int
	Genre    *string
	Rating   *float64
}

// MovieService предоставляет методы для работы с фильмами коллекции
type MovieService struct {
	movieRepo repository.MovieRepository
	userRepo  repository.UserRepository
	omdb      *OMDbService
}

// NewMovieService создает новый сервис фильмов
func NewMovieService(movieRepo repository.MovieRepository, userRepo repository.UserRepository, omdb *OMDbService) *MovieService {
	return &MovieService{
		movieRepo: movieRepo,
		userRepo:  userRepo,
		omdb:      omdb,
	}
}

// validateInput проверяет поля фильма по контракту API
func (s *MovieService) validateInput(input *MovieInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return apperrors.NewValidationError("title", "title is required")
	}
	if len(input.Title) > maxMovieTitleLength {
		return apperrors.NewValidationError("title", "title must be at most 200 characters")
	}
	if input.Director != nil && len(*input.Director) > maxMovieDirectorLength {
		return apperrors.NewValidationError("director", "director must be at most 100 characters")
	}
	if input.Genre != nil && len(*input.Genre) > maxMovieGenreLength {
		return apperrors.NewValidationError("genre", "genre must be at most 100 characters")
	}
	if input.Year != nil && (*input.Year < minMovieYear || *input.Year > maxMovieYear) {
		return apperrors.NewValidationError("year", "year must be between 1800 and 2050")
	}
	if input.Rating != nil && (*input.Rating < minMovieRating || *input.Rating > maxMovieRating) {
		return apperrors.NewValidationError("rating", "rating must be between 1 and 10")
	}
	return nil
}

// checkDuplicate проверяет уникальность пары (title, year) в коллекции
// пользователя до вставки. Уникальный индекс в БД остается страховкой
// от гонки между проверкой и вставкой.
func (s *MovieService) checkDuplicate(userID uint, title string, year *int, excludeID uint) error {
	dup, err := s.movieRepo.FindDuplicate(userID, title, year, excludeID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewDatabaseError("check duplicate movie", err)
	}
	if dup != nil {
		return &apperrors.DuplicateMovieError{UserID: userID, Title: title, Year: year}
	}
	return nil
}

// CreateMovie добавляет фильм в коллекцию пользователя с best-effort
// обогащением из OMDb
func (s *MovieService) CreateMovie(ctx context.Context, userID uint, input MovieInput) (*entity.Movie, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.UserNotFoundError{UserID: userID}
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}

	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(userID, input.Title, input.Year, 0); err != nil {
		return nil, err
	}

	movie := &entity.Movie{
		UserID:   userID,
		Title:    input.Title,
		Director: input.Director,
		Year:     input.Year,
		Genre:    input.Genre,
		Rating:   input.Rating,
	}

	if s.omdb != nil {
		s.omdb.Enrich(ctx, movie)
	}

	if err := s.movieRepo.Create(movie); err != nil {
		return nil, apperrors.NewDatabaseError("create movie", err)
	}

	log.Printf("[MovieService] пользователь %d добавил фильм %d '%s'", userID, movie.ID, movie.Title)
	return movie, nil
}

// GetMovie возвращает фильм по ID
func (s *MovieService) GetMovie(movieID uint) (*entity.Movie, error) {
	movie, err := s.movieRepo.GetByID(movieID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.MovieNotFoundError{MovieID: movieID}
		}
		return nil, apperrors.NewDatabaseError("get movie", err)
	}
	return movie, nil
}

// ListUserMovies возвращает коллекцию пользователя
func (s *MovieService) ListUserMovies(userID uint) ([]entity.Movie, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.UserNotFoundError{UserID: userID}
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}

	movies, err := s.movieRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list user movies", err)
	}
	return movies, nil
}

// UpdateMovie обновляет фильм. Проверка дубликата исключает сам фильм,
// чтобы обновление без смены названия не конфликтовало с собой.
func (s *MovieService) UpdateMovie(movieID uint, input MovieInput) (*entity.Movie, error) {
	movie, err := s.GetMovie(movieID)
	if err != nil {
		return nil, err
	}

	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(movie.UserID, input.Title, input.Year, movie.ID); err != nil {
		return nil, err
	}

	movie.Title = input.Title
	movie.Director = input.Director
	movie.Year = input.Year
	movie.Genre = input.Genre
	movie.Rating = input.Rating

	if err := s.movieRepo.Update(movie); err != nil {
		return nil, apperrors.NewDatabaseError("update movie", err)
	}
	return movie, nil
}

// DeleteMovie удаляет фильм; его рецензии и результаты каскадируются в БД
func (s *MovieService) DeleteMovie(movieID uint) error {
	if err := s.movieRepo.Delete(movieID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &apperrors.MovieNotFoundError{MovieID: movieID}
		}
		return apperrors.NewDatabaseError("delete movie", err)
	}
	log.Printf("[MovieService] фильм %d удален", movieID)
	return nil
}
