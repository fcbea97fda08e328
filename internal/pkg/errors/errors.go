package errors

import (
	"errors"
	"fmt"
)

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, дубликат фильма у пользователя).
	ErrConflict = errors.New("resource state conflict")

	// ErrTriviaGeneration используется, когда все провайдеры вопросов исчерпаны.
	ErrTriviaGeneration = errors.New("trivia generation failed")

	// ErrNoActiveSession используется, когда для сессии браузера нет активной викторины.
	ErrNoActiveSession = errors.New("no active trivia session")

	// ErrQuotaExhausted используется, когда месячный лимит вызовов внешнего
	// API исчерпан и запуск викторины блокируется еще до генерации.
	ErrQuotaExhausted = errors.New("monthly API quota exhausted")
)

// UserNotFoundError возникает, когда пользователь не найден
type UserNotFoundError struct {
	UserID uint
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user with ID %d not found", e.UserID)
}

func (e *UserNotFoundError) Unwrap() error { return ErrNotFound }

// MovieNotFoundError возникает, когда фильм не найден
type MovieNotFoundError struct {
	MovieID uint
}

func (e *MovieNotFoundError) Error() string {
	return fmt.Sprintf("movie with ID %d not found", e.MovieID)
}

func (e *MovieNotFoundError) Unwrap() error { return ErrNotFound }

// ReviewNotFoundError возникает, когда рецензия не найдена
type ReviewNotFoundError struct {
	ReviewID uint
}

func (e *ReviewNotFoundError) Error() string {
	return fmt.Sprintf("review with ID %d not found", e.ReviewID)
}

func (e *ReviewNotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError возникает при ошибке валидации входных данных.
// Field содержит имя поля, вызвавшего ошибку.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError создает ошибку валидации для поля
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DuplicateMovieError возникает, когда у пользователя уже есть фильм
// с той же парой (title, year)
type DuplicateMovieError struct {
	UserID uint
	Title  string
	Year   *int
}

func (e *DuplicateMovieError) Error() string {
	if e.Year != nil {
		return fmt.Sprintf("user %d already has movie %q (%d)", e.UserID, e.Title, *e.Year)
	}
	return fmt.Sprintf("user %d already has movie %q", e.UserID, e.Title)
}

func (e *DuplicateMovieError) Unwrap() error { return ErrConflict }

// InsufficientMoviesError возникает, когда у пользователя недостаточно фильмов
// для викторины по коллекции
type InsufficientMoviesError struct {
	UserID        uint
	MovieCount    int
	RequiredCount int
}

func (e *InsufficientMoviesError) Error() string {
	return fmt.Sprintf("user %d has only %d movies, but %d required for collection trivia",
		e.UserID, e.MovieCount, e.RequiredCount)
}

func (e *InsufficientMoviesError) Unwrap() error { return ErrValidation }

// TriviaGenerationError возникает, когда оба провайдера не смогли сгенерировать вопросы.
// TriviaType содержит тип викторины ("movie" или "collection").
type TriviaGenerationError struct {
	TriviaType string
}

func (e *TriviaGenerationError) Error() string {
	return fmt.Sprintf("all providers failed to generate %s trivia questions", e.TriviaType)
}

func (e *TriviaGenerationError) Unwrap() error { return ErrTriviaGeneration }

// QuotaExhaustedError возникает при попытке запустить викторину с полностью
// исчерпанным месячным лимитом вызовов внешнего API
type QuotaExhaustedError struct {
	CallsMade int
	Limit     int
}

func (e *QuotaExhaustedError) Error() string {
	return fmt.Sprintf("monthly API limit reached (%d/%d), trivia resets next month", e.CallsMade, e.Limit)
}

func (e *QuotaExhaustedError) Unwrap() error { return ErrQuotaExhausted }

// DatabaseError оборачивает ошибку хранилища с именем выполнявшейся операции
type DatabaseError struct {
	Operation string
	Err       error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error during %s: %v", e.Operation, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// NewDatabaseError создает обернутую ошибку хранилища
func NewDatabaseError(operation string, err error) *DatabaseError {
	return &DatabaseError{Operation: operation, Err: err}
}
