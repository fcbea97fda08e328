package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
	"github.com/Sammyduzit/movieweb-app/internal/domain/repository"
	apperrors "github.com/Sammyduzit/movieweb-app/internal/pkg/errors"
)

// Моки репозиториев для тестов сервисного слоя

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) List() ([]entity.User, error) {
	args := m.Called()
	if users, ok := args.Get(0).([]entity.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMovieRepo struct {
	mock.Mock
}

func (m *MockMovieRepo) Create(movie *entity.Movie) error {
	args := m.Called(movie)
	return args.Error(0)
}

func (m *MockMovieRepo) GetByID(id uint) (*entity.Movie, error) {
	args := m.Called(id)
	if movie, ok := args.Get(0).(*entity.Movie); ok {
		return movie, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepo) GetByUserAndID(userID, movieID uint) (*entity.Movie, error) {
	args := m.Called(userID, movieID)
	if movie, ok := args.Get(0).(*entity.Movie); ok {
		return movie, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepo) ListByUser(userID uint) ([]entity.Movie, error) {
	args := m.Called(userID)
	if movies, ok := args.Get(0).([]entity.Movie); ok {
		return movies, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepo) CountByUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovieRepo) FindDuplicate(userID uint, title string, year *int, excludeID uint) (*entity.Movie, error) {
	args := m.Called(userID, title, year, excludeID)
	if movie, ok := args.Get(0).(*entity.Movie); ok {
		return movie, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepo) Update(movie *entity.Movie) error {
	args := m.Called(movie)
	return args.Error(0)
}

func (m *MockMovieRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(review *entity.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepo) GetByID(id uint) (*entity.Review, error) {
	args := m.Called(id)
	if review, ok := args.Get(0).(*entity.Review); ok {
		return review, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReviewRepo) ListByMovie(movieID uint) ([]entity.Review, error) {
	args := m.Called(movieID)
	if reviews, ok := args.Get(0).([]entity.Review); ok {
		return reviews, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReviewRepo) Update(review *entity.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockReviewRepo) IncrementLikes(id uint) (*entity.Review, error) {
	args := m.Called(id)
	if review, ok := args.Get(0).(*entity.Review); ok {
		return review, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockScoreRepo struct {
	mock.Mock
}

func (m *MockScoreRepo) Save(score *entity.TriviaScore) error {
	args := m.Called(score)
	return args.Error(0)
}

func (m *MockScoreRepo) GlobalLeaderboard(limit int) ([]repository.LeaderboardEntry, error) {
	args := m.Called(limit)
	if entries, ok := args.Get(0).([]repository.LeaderboardEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockScoreRepo) CollectionLeaderboard(limit int) ([]repository.LeaderboardEntry, error) {
	args := m.Called(limit)
	if entries, ok := args.Get(0).([]repository.LeaderboardEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockScoreRepo) MovieLeaderboard(movieID uint, limit int) ([]repository.LeaderboardEntry, error) {
	args := m.Called(movieID, limit)
	if entries, ok := args.Get(0).([]repository.LeaderboardEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockScoreRepo) UserScores(userID uint, limit int) ([]entity.TriviaScore, error) {
	args := m.Called(userID, limit)
	if scores, ok := args.Get(0).([]entity.TriviaScore); ok {
		return scores, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockScoreRepo) UserAggregate(userID uint) (*repository.UserScoreAggregate, error) {
	args := m.Called(userID)
	if agg, ok := args.Get(0).(*repository.UserScoreAggregate); ok {
		return agg, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockSessionRepo хранит сессии в памяти: для тестов хода игры важнее
// реальное поведение save/get, чем проверка вызовов
type MockSessionRepo struct {
	sessions map[string]*entity.TriviaSession
	saveErr  error
}

func NewMockSessionRepo() *MockSessionRepo {
	return &MockSessionRepo{sessions: make(map[string]*entity.TriviaSession)}
}

func (m *MockSessionRepo) Save(browserSessionID string, session *entity.TriviaSession) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *session
	m.sessions[browserSessionID] = &copied
	return nil
}

func (m *MockSessionRepo) Get(browserSessionID string) (*entity.TriviaSession, error) {
	session, ok := m.sessions[browserSessionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (m *MockSessionRepo) Delete(browserSessionID string) error {
	delete(m.sessions, browserSessionID)
	return nil
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateMovieTrivia(ctx context.Context, movie *entity.Movie) (*entity.QuestionSet, string, error) {
	args := m.Called(ctx, movie)
	if set, ok := args.Get(0).(*entity.QuestionSet); ok {
		return set, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *MockGenerator) GenerateCollectionTrivia(ctx context.Context, movies []entity.Movie) (*entity.QuestionSet, string, error) {
	args := m.Called(ctx, movies)
	if set, ok := args.Get(0).(*entity.QuestionSet); ok {
		return set, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}
