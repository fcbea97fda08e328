package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sammyduzit/movieweb-app/internal/config"
	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
	"github.com/Sammyduzit/movieweb-app/internal/domain/repository"
	apperrors "github.com/Sammyduzit/movieweb-app/internal/pkg/errors"
	"github.com/Sammyduzit/movieweb-app/internal/service/triviagen"
)

const browserID = "browser-1"

func testTriviaConfig() config.TriviaConfig {
	return config.TriviaConfig{
		MovieQuestions:         7,
		CollectionQuestions:    21,
		MinMoviesForCollection: 3,
		MasterThreshold:        90,
		ExpertThreshold:        75,
		BuffThreshold:          60,
		LearningThreshold:      40,
	}
}

func testLeaderboardConfig() config.LeaderboardConfig {
	return config.LeaderboardConfig{
		GlobalLimit:      20,
		CollectionLimit:  20,
		MovieLimit:       15,
		UserRecentScores: 5,
	}
}

func questionSet(n int) *entity.QuestionSet {
	set := &entity.QuestionSet{}
	for i := 0; i < n; i++ {
		set.Questions = append(set.Questions, entity.Question{
			Text:       "Q?",
			Options:    []string{"A", "B", "C", "D"},
			Correct:    0,
			Difficulty: entity.DifficultyEasy,
		})
	}
	return set
}

type triviaFixture struct {
	svc         *TriviaService
	userRepo    *MockUserRepo
	movieRepo   *MockMovieRepo
	scoreRepo   *MockScoreRepo
	sessionRepo *MockSessionRepo
	generator   *MockGenerator
}

func newTriviaFixture() *triviaFixture {
	f := &triviaFixture{
		userRepo:    new(MockUserRepo),
		movieRepo:   new(MockMovieRepo),
		scoreRepo:   new(MockScoreRepo),
		sessionRepo: NewMockSessionRepo(),
		generator:   new(MockGenerator),
	}
	f.svc = NewTriviaService(
		testTriviaConfig(), testLeaderboardConfig(),
		f.generator, nil, nil,
		f.userRepo, f.movieRepo, f.scoreRepo, f.sessionRepo,
	)
	return f
}

func TestStartMovieTrivia_Success(t *testing.T) {
	f := newTriviaFixture()
	movie := &entity.Movie{ID: 5, UserID: 1, Title: "Alien"}
	f.userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	f.movieRepo.On("GetByUserAndID", uint(1), uint(5)).Return(movie, nil)
	f.generator.On("GenerateMovieTrivia", mock.Anything, movie).
		Return(questionSet(7), triviagen.ProviderRapidAPI, nil)

	session, err := f.svc.StartMovieTrivia(context.Background(), browserID, 1, 5)

	require.NoError(t, err)
	assert.Equal(t, entity.TriviaTypeMovie, session.Type)
	assert.Equal(t, triviagen.ProviderRapidAPI, session.APIUsed)
	assert.Len(t, session.Questions, 7)
	assert.NotEmpty(t, session.SessionKey)

	saved, err := f.sessionRepo.Get(browserID)
	require.NoError(t, err)
	assert.Equal(t, session.SessionKey, saved.SessionKey)
}

func TestStartMovieTrivia_TruncatesOversizedSet(t *testing.T) {
	f := newTriviaFixture()
	movie := &entity.Movie{ID: 5, UserID: 1, Title: "Alien"}
	f.userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	f.movieRepo.On("GetByUserAndID", uint(1), uint(5)).Return(movie, nil)
	f.generator.On("GenerateMovieTrivia", mock.Anything, movie).
		Return(questionSet(12), triviagen.ProviderOpenAI, nil)

	session, err := f.svc.StartMovieTrivia(context.Background(), browserID, 1, 5)

	require.NoError(t, err)
	assert.Len(t, session.Questions, 7)
	assert.Equal(t, triviagen.ProviderOpenAI, session.APIUsed, "поле api_used отражает реально сработавший провайдер")
}

func TestStartMovieTrivia_AllProvidersFailed(t *testing.T) {
	f := newTriviaFixture()
	movie := &entity.Movie{ID: 5, UserID: 1, Title: "Alien"}
	f.userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	f.movieRepo.On("GetByUserAndID", uint(1), uint(5)).Return(movie, nil)
	f.generator.On("GenerateMovieTrivia", mock.Anything, movie).
		Return(nil, "", triviagen.ErrExhausted)

	_, err := f.svc.StartMovieTrivia(context.Background(), browserID, 1, 5)

	assert.ErrorIs(t, err, apperrors.ErrTriviaGeneration)
	_, getErr := f.sessionRepo.Get(browserID)
	assert.Error(t, getErr, "после провала генерации сессия не создается")
}

func TestStartCollectionTrivia_InsufficientMovies(t *testing.T) {
	for _, count := range []int{1, 2} {
		f := newTriviaFixture()
		f.userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
		movies := make([]entity.Movie, count)
		f.movieRepo.On("ListByUser", uint(1)).Return(movies, nil)

		_, err := f.svc.StartCollectionTrivia(context.Background(), browserID, 1)

		var insufficient *apperrors.InsufficientMoviesError
		require.ErrorAs(t, err, &insufficient, "count=%d", count)
		assert.Equal(t, count, insufficient.MovieCount)
		assert.Equal(t, 3, insufficient.RequiredCount)
	}
}

func TestStartCollectionTrivia_ExactMinimumPasses(t *testing.T) {
	f := newTriviaFixture()
	f.userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	movies := make([]entity.Movie, 3)
	f.movieRepo.On("ListByUser", uint(1)).Return(movies, nil)
	f.generator.On("GenerateCollectionTrivia", mock.Anything, movies).
		Return(questionSet(21), triviagen.ProviderRapidAPI, nil)

	session, err := f.svc.StartCollectionTrivia(context.Background(), browserID, 1)

	require.NoError(t, err)
	assert.Equal(t, entity.TriviaTypeCollection, session.Type)
	assert.Len(t, session.Questions, 21)
	assert.Nil(t, session.MovieID)
}

func startedMovieSession(t *testing.T, f *triviaFixture, questions int) {
	t.Helper()
	movie := &entity.Movie{ID: 5, UserID: 1, Title: "Alien"}
	f.userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	f.movieRepo.On("GetByUserAndID", uint(1), uint(5)).Return(movie, nil)
	f.generator.On("GenerateMovieTrivia", mock.Anything, movie).
		Return(questionSet(questions), triviagen.ProviderRapidAPI, nil)
	_, err := f.svc.StartMovieTrivia(context.Background(), browserID, 1, 5)
	require.NoError(t, err)
}

func TestCurrentQuestion_Progress(t *testing.T) {
	f := newTriviaFixture()
	startedMovieSession(t, f, 7)

	question, progress, ok, err := f.svc.CurrentQuestion(browserID)

	require.NoError(t, err)
	require.True(t, ok)
	assert.NotNil(t, question)
	assert.Equal(t, 1, progress.Current)
	assert.Equal(t, 7, progress.Total)
	assert.Equal(t, 14, progress.Percentage) // round(1/7*100)
}

func TestCurrentQuestion_NoActiveSession(t *testing.T) {
	f := newTriviaFixture()

	_, _, _, err := f.svc.CurrentQuestion(browserID)

	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)
}

func TestSubmitAnswer_ScoresAndAdvances(t *testing.T) {
	f := newTriviaFixture()
	startedMovieSession(t, f, 7)

	correct, err := f.svc.SubmitAnswer(browserID, 0)
	require.NoError(t, err)
	assert.True(t, correct.IsCorrect)
	assert.False(t, correct.Completed)

	wrong, err := f.svc.SubmitAnswer(browserID, 3)
	require.NoError(t, err)
	assert.False(t, wrong.IsCorrect)
	assert.Equal(t, 0, wrong.CorrectAnswer)

	session, err := f.sessionRepo.Get(browserID)
	require.NoError(t, err)
	assert.Equal(t, 1, session.Score)
	assert.Equal(t, 2, session.CurrentQuestion)
}

func TestSubmitAnswer_NoOpAfterCompletion(t *testing.T) {
	f := newTriviaFixture()
	startedMovieSession(t, f, 2)

	_, err := f.svc.SubmitAnswer(browserID, 0)
	require.NoError(t, err)
	feedback, err := f.svc.SubmitAnswer(browserID, 0)
	require.NoError(t, err)
	require.True(t, feedback.Completed)

	// лишний ответ после завершения не меняет счет
	extra, err := f.svc.SubmitAnswer(browserID, 0)
	require.NoError(t, err)
	assert.True(t, extra.Completed)

	session, err := f.sessionRepo.Get(browserID)
	require.NoError(t, err)
	assert.Equal(t, 2, session.Score)
	assert.Len(t, session.Answers, 2)
}

func TestResults_ComputesBadgeAndSavesScore(t *testing.T) {
	f := newTriviaFixture()
	startedMovieSession(t, f, 10)
	f.scoreRepo.On("Save", mock.AnythingOfType("*entity.TriviaScore")).Return(nil)

	// 7 из 10 — 70%, бейдж Movie Buff
	for i := 0; i < 7; i++ {
		_, err := f.svc.SubmitAnswer(browserID, 0)
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		_, err := f.svc.SubmitAnswer(browserID, 1)
		require.NoError(t, err)
	}

	results, err := f.svc.Results(browserID)

	require.NoError(t, err)
	assert.Equal(t, 7, results.Score)
	assert.Equal(t, 10, results.Total)
	assert.Equal(t, 70, results.Percentage)
	assert.Equal(t, "Movie Buff", results.Badge.Text)
	assert.Equal(t, triviagen.ProviderRapidAPI, results.APIUsed)

	saved := f.scoreRepo.Calls[0].Arguments.Get(0).(*entity.TriviaScore)
	assert.Equal(t, 70, saved.Percentage)
	assert.NotEmpty(t, saved.SessionKey)

	_, getErr := f.sessionRepo.Get(browserID)
	assert.Error(t, getErr, "сессия закрывается после выдачи результатов")
}

func TestResults_IncompleteSessionRejected(t *testing.T) {
	f := newTriviaFixture()
	startedMovieSession(t, f, 7)

	_, err := f.svc.Results(browserID)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResults_ScoreSaveFailureIsNotFatal(t *testing.T) {
	f := newTriviaFixture()
	startedMovieSession(t, f, 1)
	f.scoreRepo.On("Save", mock.Anything).Return(assert.AnError)

	_, err := f.svc.SubmitAnswer(browserID, 0)
	require.NoError(t, err)

	results, err := f.svc.Results(browserID)

	require.NoError(t, err, "игрок видит итог даже при отказе БД")
	assert.Equal(t, 100, results.Percentage)
}

func TestBadgeThresholds(t *testing.T) {
	f := newTriviaFixture()

	cases := []struct {
		percentage int
		badge      string
	}{
		{100, "Movie Master"},
		{90, "Movie Master"},
		{89, "Cinema Expert"},
		{75, "Cinema Expert"},
		{70, "Movie Buff"},
		{60, "Movie Buff"},
		{40, "Getting There"},
		{39, "Study More"},
		{0, "Study More"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.badge, f.svc.badgeFor(tc.percentage).Text, "percentage=%d", tc.percentage)
	}
}

func TestQuit_RemovesSession(t *testing.T) {
	f := newTriviaFixture()
	startedMovieSession(t, f, 7)

	require.NoError(t, f.svc.Quit(browserID))

	assert.ErrorIs(t, f.svc.Quit(browserID), apperrors.ErrNoActiveSession)
}

func TestUserStats_ZeroDefaultsForNewUser(t *testing.T) {
	f := newTriviaFixture()
	f.userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	f.scoreRepo.On("UserAggregate", uint(1)).Return(&repository.UserScoreAggregate{}, nil)
	f.scoreRepo.On("UserScores", uint(1), 5).Return([]entity.TriviaScore{}, nil)

	stats, err := f.svc.UserStats(1)

	require.NoError(t, err)
	assert.Zero(t, stats.TotalAttempts)
	assert.Zero(t, stats.BestScore)
	assert.Zero(t, stats.AverageScore)
	assert.Empty(t, stats.RecentScores)
}

func TestUserStats_RoundsAverageToOneDecimal(t *testing.T) {
	f := newTriviaFixture()
	f.userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	f.scoreRepo.On("UserAggregate", uint(1)).Return(&repository.UserScoreAggregate{
		TotalAttempts:     3,
		BestPercentage:    86,
		AveragePercentage: 71.428571,
		MovieAttempts:     2,
	}, nil)
	f.scoreRepo.On("UserScores", uint(1), 5).Return([]entity.TriviaScore{}, nil)

	stats, err := f.svc.UserStats(1)

	require.NoError(t, err)
	assert.Equal(t, 71.4, stats.AverageScore)
	assert.Equal(t, 86, stats.BestScore)
}

func TestLeaderboards_UseConfiguredLimits(t *testing.T) {
	f := newTriviaFixture()
	f.scoreRepo.On("GlobalLeaderboard", 20).Return([]repository.LeaderboardEntry{}, nil)
	f.scoreRepo.On("CollectionLeaderboard", 20).Return([]repository.LeaderboardEntry{}, nil)
	f.movieRepo.On("GetByID", uint(5)).Return(&entity.Movie{ID: 5}, nil)
	f.scoreRepo.On("MovieLeaderboard", uint(5), 15).Return([]repository.LeaderboardEntry{}, nil)

	_, err := f.svc.GlobalLeaderboard()
	require.NoError(t, err)
	_, err = f.svc.CollectionLeaderboard()
	require.NoError(t, err)
	_, err = f.svc.MovieLeaderboard(5)
	require.NoError(t, err)

	f.scoreRepo.AssertExpectations(t)
}

// trackerWithCalls возвращает трекер с уже списанными вызовами
func trackerWithCalls(t *testing.T, limit, calls int) *triviagen.UsageTracker {
	t.Helper()
	tracker := triviagen.NewUsageTracker(
		triviagen.NewFileUsageStore(filepath.Join(t.TempDir(), "usage.json")),
		limit,
	)
	for i := 0; i < calls; i++ {
		tracker.RecordCall()
	}
	return tracker
}

func quotaService(t *testing.T, cfg config.TriviaConfig, tracker *triviagen.UsageTracker) *TriviaService {
	t.Helper()
	return NewTriviaService(
		cfg, testLeaderboardConfig(),
		new(MockGenerator), nil, tracker,
		new(MockUserRepo), new(MockMovieRepo), new(MockScoreRepo), NewMockSessionRepo(),
	)
}

func TestQuotaPreCheck_BlocksWhenExhausted(t *testing.T) {
	svc := quotaService(t, testTriviaConfig(), trackerWithCalls(t, 3, 3))

	warning, err := svc.QuotaPreCheck()

	assert.Empty(t, warning)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrQuotaExhausted)
	assert.Contains(t, err.Error(), "(3/3)")
}

func TestQuotaPreCheck_WarnsOnLowRemaining(t *testing.T) {
	svc := quotaService(t, testTriviaConfig(), trackerWithCalls(t, 10, 7))

	warning, err := svc.QuotaPreCheck()

	require.NoError(t, err)
	assert.Contains(t, warning, "3")
}

func TestQuotaPreCheck_SilentWithPlentyRemaining(t *testing.T) {
	svc := quotaService(t, testTriviaConfig(), trackerWithCalls(t, 95, 10))

	warning, err := svc.QuotaPreCheck()

	require.NoError(t, err)
	assert.Empty(t, warning)
}

func TestQuotaPreCheck_SkippedInMockMode(t *testing.T) {
	cfg := testTriviaConfig()
	cfg.ProviderMode = triviagen.ProviderMock

	svc := quotaService(t, cfg, trackerWithCalls(t, 3, 3))

	warning, err := svc.QuotaPreCheck()

	require.NoError(t, err)
	assert.Empty(t, warning)
}

func TestQuotaPreCheck_NoTracker(t *testing.T) {
	f := newTriviaFixture()

	warning, err := f.svc.QuotaPreCheck()

	require.NoError(t, err)
	assert.Empty(t, warning)
}
