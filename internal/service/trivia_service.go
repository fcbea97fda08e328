package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/Sammyduzit/movieweb-app/internal/config"
	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
	"github.com/Sammyduzit/movieweb-app/internal/domain/repository"
	apperrors "github.com/Sammyduzit/movieweb-app/internal/pkg/errors"
	"github.com/Sammyduzit/movieweb-app/internal/service/triviagen"
)

// QuestionGenerator — источник вопросов для оркестратора. Реализуется
// цепочкой провайдеров triviagen.Chain.
type QuestionGenerator interface {
	GenerateMovieTrivia(ctx context.Context, movie *entity.Movie) (*entity.QuestionSet, string, error)
	GenerateCollectionTrivia(ctx context.Context, movies []entity.Movie) (*entity.QuestionSet, string, error)
}

// PerformanceBadge — бейдж производительности по итоговому проценту
type PerformanceBadge struct {
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
	Class string `json:"class"`
}

// AnswerFeedback — обратная связь на принятый ответ
type AnswerFeedback struct {
	IsCorrect     bool `json:"is_correct"`
	UserAnswer    int  `json:"user_answer"`
	CorrectAnswer int  `json:"correct_answer"`
	Completed     bool `json:"completed"`
}

// TriviaResults — итог завершенной викторины
type TriviaResults struct {
	Score       int                   `json:"score"`
	Total       int                   `json:"total"`
	Percentage  int                   `json:"percentage"`
	Performance string                `json:"performance"`
	Badge       PerformanceBadge      `json:"badge"`
	Answers     []entity.AnswerRecord `json:"answers"`
	Type        string                `json:"type"`
	APIUsed     string                `json:"api_used"`
}

// UserTriviaStats — сводная статистика пользователя по викторинам
type UserTriviaStats struct {
	TotalAttempts      int64                `json:"total_attempts"`
	BestScore          int                  `json:"best_score"`
	AverageScore       float64              `json:"average_score"`
	MovieAttempts      int64                `json:"movie_attempts"`
	CollectionAttempts int64                `json:"collection_attempts"`
	RecentScores       []entity.TriviaScore `json:"recent_scores"`
}

// APIStatus — результат диагностики внешних провайдеров
type APIStatus struct {
	Providers map[string]bool      `json:"providers"`
	Usage     triviagen.UsageStats `json:"usage"`
}

// TriviaService — оркестратор викторин: запуск, ход игры, результаты,
// лидерборды и статистика
type TriviaService struct {
	cfg         config.TriviaConfig
	lbCfg       config.LeaderboardConfig
	generator   QuestionGenerator
	providers   []triviagen.Provider
	tracker     *triviagen.UsageTracker
	userRepo    repository.UserRepository
	movieRepo   repository.MovieRepository
	scoreRepo   repository.ScoreRepository
	sessionRepo repository.SessionRepository
}

// NewTriviaService создает оркестратор викторин
func NewTriviaService(
	cfg config.TriviaConfig,
	lbCfg config.LeaderboardConfig,
	generator QuestionGenerator,
	providers []triviagen.Provider,
	tracker *triviagen.UsageTracker,
	userRepo repository.UserRepository,
	movieRepo repository.MovieRepository,
	scoreRepo repository.ScoreRepository,
	sessionRepo repository.SessionRepository,
) *TriviaService {
	return &TriviaService{
		cfg:         cfg,
		lbCfg:       lbCfg,
		generator:   generator,
		providers:   providers,
		tracker:     tracker,
		userRepo:    userRepo,
		movieRepo:   movieRepo,
		scoreRepo:   scoreRepo,
		sessionRepo: sessionRepo,
	}
}

// quotaWarningThreshold — остаток вызовов, при котором запуск викторины
// сопровождается предупреждением для игрока
const quotaWarningThreshold = 5

// QuotaPreCheck проверяет месячную квоту перед запуском викторины.
// Исчерпанная квота блокирует запуск, малый остаток дает предупреждение
// в ответе. В mock-режиме внешние API не вызываются и проверка не нужна.
func (s *TriviaService) QuotaPreCheck() (string, error) {
	if s.tracker == nil || s.cfg.ProviderMode == triviagen.ProviderMock {
		return "", nil
	}

	stats := s.tracker.Stats()
	if stats.Remaining <= 0 {
		return "", &apperrors.QuotaExhaustedError{CallsMade: stats.CallsMade, Limit: stats.Limit}
	}
	if stats.Remaining <= quotaWarningThreshold {
		return fmt.Sprintf("Only %d API calls remaining this month", stats.Remaining), nil
	}
	return "", nil
}

// validateUser проверяет существование пользователя
func (s *TriviaService) validateUser(userID uint) (*entity.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.UserNotFoundError{UserID: userID}
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	return user, nil
}

// StartMovieTrivia запускает викторину по одному фильму пользователя.
// Незавершенная викторина этой сессии браузера молча заменяется новой.
func (s *TriviaService) StartMovieTrivia(ctx context.Context, browserSessionID string, userID, movieID uint) (*entity.TriviaSession, error) {
	if _, err := s.validateUser(userID); err != nil {
		return nil, err
	}

	movie, err := s.movieRepo.GetByUserAndID(userID, movieID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.MovieNotFoundError{MovieID: movieID}
		}
		return nil, apperrors.NewDatabaseError("get movie", err)
	}

	set, apiUsed, err := s.generator.GenerateMovieTrivia(ctx, movie)
	if err != nil {
		log.Printf("[TriviaService] вопросы по фильму %d не сгенерированы: %v", movieID, err)
		return nil, &apperrors.TriviaGenerationError{TriviaType: entity.TriviaTypeMovie}
	}
	set = triviagen.Truncate(set, s.cfg.MovieQuestions)

	session := &entity.TriviaSession{
		Type:       entity.TriviaTypeMovie,
		UserID:     userID,
		MovieID:    &movieID,
		SessionKey: uuid.NewString(),
		Questions:  set.Questions,
		APIUsed:    apiUsed,
	}
	if err := s.sessionRepo.Save(browserSessionID, session); err != nil {
		return nil, apperrors.NewDatabaseError("save trivia session", err)
	}

	log.Printf("[TriviaService] викторина по фильму %d запущена (%d вопросов, провайдер %s)",
		movieID, len(session.Questions), apiUsed)
	return session, nil
}

// StartCollectionTrivia запускает викторину по всей коллекции пользователя.
// Требует минимум MinMoviesForCollection фильмов.
func (s *TriviaService) StartCollectionTrivia(ctx context.Context, browserSessionID string, userID uint) (*entity.TriviaSession, error) {
	if _, err := s.validateUser(userID); err != nil {
		return nil, err
	}

	movies, err := s.movieRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list user movies", err)
	}
	if len(movies) < s.cfg.MinMoviesForCollection {
		return nil, &apperrors.InsufficientMoviesError{
			UserID:        userID,
			MovieCount:    len(movies),
			RequiredCount: s.cfg.MinMoviesForCollection,
		}
	}

	set, apiUsed, err := s.generator.GenerateCollectionTrivia(ctx, movies)
	if err != nil {
		log.Printf("[TriviaService] вопросы по коллекции пользователя %d не сгенерированы: %v", userID, err)
		return nil, &apperrors.TriviaGenerationError{TriviaType: entity.TriviaTypeCollection}
	}
	set = triviagen.Truncate(set, s.cfg.CollectionQuestions)

	session := &entity.TriviaSession{
		Type:       entity.TriviaTypeCollection,
		UserID:     userID,
		SessionKey: uuid.NewString(),
		Questions:  set.Questions,
		APIUsed:    apiUsed,
	}
	if err := s.sessionRepo.Save(browserSessionID, session); err != nil {
		return nil, apperrors.NewDatabaseError("save trivia session", err)
	}

	log.Printf("[TriviaService] викторина по коллекции пользователя %d запущена (%d вопросов, провайдер %s)",
		userID, len(session.Questions), apiUsed)
	return session, nil
}

// activeSession возвращает активную сессию или ErrNoActiveSession
func (s *TriviaService) activeSession(browserSessionID string) (*entity.TriviaSession, error) {
	session, err := s.sessionRepo.Get(browserSessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoActiveSession
		}
		return nil, apperrors.NewDatabaseError("get trivia session", err)
	}
	return session, nil
}

// CurrentQuestion возвращает текущий вопрос и прогресс активной викторины.
// Третий результат false означает, что все вопросы отвечены.
func (s *TriviaService) CurrentQuestion(browserSessionID string) (*entity.Question, entity.Progress, bool, error) {
	session, err := s.activeSession(browserSessionID)
	if err != nil {
		return nil, entity.Progress{}, false, err
	}

	question, progress, ok := session.Current()
	return question, progress, ok, nil
}

// SubmitAnswer принимает ответ на текущий вопрос. Ответ на завершенную
// викторину не меняет состояние: возвращается итог последнего вопроса.
func (s *TriviaService) SubmitAnswer(browserSessionID string, answer int) (*AnswerFeedback, error) {
	session, err := s.activeSession(browserSessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsComplete() {
		session.SubmitAnswer(answer)
		if err := s.sessionRepo.Save(browserSessionID, session); err != nil {
			return nil, apperrors.NewDatabaseError("save trivia session", err)
		}
	}

	if len(session.Answers) == 0 {
		return nil, apperrors.NewValidationError("answer", "no answers recorded")
	}
	last := session.Answers[len(session.Answers)-1]
	return &AnswerFeedback{
		IsCorrect:     last.IsCorrect,
		UserAnswer:    last.UserAnswer,
		CorrectAnswer: last.CorrectAnswer,
		Completed:     session.IsComplete(),
	}, nil
}

// badgeFor возвращает бейдж по итоговому проценту согласно порогам конфига
func (s *TriviaService) badgeFor(percentage int) PerformanceBadge {
	switch {
	case percentage >= s.cfg.MasterThreshold:
		return PerformanceBadge{Text: "Movie Master", Emoji: "🏆", Class: "master"}
	case percentage >= s.cfg.ExpertThreshold:
		return PerformanceBadge{Text: "Cinema Expert", Emoji: "🌟", Class: "expert"}
	case percentage >= s.cfg.BuffThreshold:
		return PerformanceBadge{Text: "Movie Buff", Emoji: "🎬", Class: "buff"}
	case percentage >= s.cfg.LearningThreshold:
		return PerformanceBadge{Text: "Getting There", Emoji: "🍿", Class: "learning"}
	default:
		return PerformanceBadge{Text: "Study More", Emoji: "📚", Class: "learning"}
	}
}

// Results подводит итог завершенной викторины: считает процент и бейдж,
// сохраняет результат и закрывает сессию. Ошибка сохранения результата
// не фатальна — игрок все равно видит свой итог.
func (s *TriviaService) Results(browserSessionID string) (*TriviaResults, error) {
	session, err := s.activeSession(browserSessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsComplete() {
		return nil, apperrors.NewValidationError("session", "trivia session is not complete yet")
	}

	percentage := session.PercentageScore()
	badge := s.badgeFor(percentage)

	score := &entity.TriviaScore{
		UserID:         session.UserID,
		MovieID:        session.MovieID,
		TriviaType:     session.Type,
		Score:          session.Score,
		TotalQuestions: len(session.Questions),
		Percentage:     percentage,
		SessionKey:     session.SessionKey,
	}
	if err := s.scoreRepo.Save(score); err != nil {
		log.Printf("[TriviaService] не удалось сохранить результат викторины: %v", err)
	}

	if err := s.sessionRepo.Delete(browserSessionID); err != nil {
		log.Printf("[TriviaService] не удалось удалить завершенную сессию: %v", err)
	}

	return &TriviaResults{
		Score:       session.Score,
		Total:       len(session.Questions),
		Percentage:  percentage,
		Performance: fmt.Sprintf("%s %s", badge.Emoji, badge.Text),
		Badge:       badge,
		Answers:     session.Answers,
		Type:        session.Type,
		APIUsed:     session.APIUsed,
	}, nil
}

// Quit прерывает активную викторину без сохранения результата
func (s *TriviaService) Quit(browserSessionID string) error {
	if _, err := s.activeSession(browserSessionID); err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(browserSessionID); err != nil {
		return apperrors.NewDatabaseError("delete trivia session", err)
	}
	return nil
}

// GlobalLeaderboard возвращает общий лидерборд
func (s *TriviaService) GlobalLeaderboard() ([]repository.LeaderboardEntry, error) {
	entries, err := s.scoreRepo.GlobalLeaderboard(s.lbCfg.GlobalLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("global leaderboard", err)
	}
	return entries, nil
}

// CollectionLeaderboard возвращает лидерборд викторин по коллекциям
func (s *TriviaService) CollectionLeaderboard() ([]repository.LeaderboardEntry, error) {
	entries, err := s.scoreRepo.CollectionLeaderboard(s.lbCfg.CollectionLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("collection leaderboard", err)
	}
	return entries, nil
}

// MovieLeaderboard возвращает лидерборд конкретного фильма
func (s *TriviaService) MovieLeaderboard(movieID uint) ([]repository.LeaderboardEntry, error) {
	if _, err := s.movieRepo.GetByID(movieID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.MovieNotFoundError{MovieID: movieID}
		}
		return nil, apperrors.NewDatabaseError("get movie", err)
	}

	entries, err := s.scoreRepo.MovieLeaderboard(movieID, s.lbCfg.MovieLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("movie leaderboard", err)
	}
	return entries, nil
}

// UserStats возвращает сводную статистику пользователя. У пользователя без
// единой попытки статистика нулевая, это не ошибка.
func (s *TriviaService) UserStats(userID uint) (*UserTriviaStats, error) {
	if _, err := s.validateUser(userID); err != nil {
		return nil, err
	}

	agg, err := s.scoreRepo.UserAggregate(userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("user trivia aggregate", err)
	}
	recent, err := s.scoreRepo.UserScores(userID, s.lbCfg.UserRecentScores)
	if err != nil {
		return nil, apperrors.NewDatabaseError("user recent scores", err)
	}

	return &UserTriviaStats{
		TotalAttempts:      agg.TotalAttempts,
		BestScore:          agg.BestPercentage,
		AverageScore:       math.Round(agg.AveragePercentage*10) / 10,
		MovieAttempts:      agg.MovieAttempts,
		CollectionAttempts: agg.CollectionAttempts,
		RecentScores:       recent,
	}, nil
}

// TestAPIs выполняет диагностику всех сконфигурированных провайдеров.
// Диагностика основного провайдера тратит квоту как обычный вызов.
func (s *TriviaService) TestAPIs(ctx context.Context) *APIStatus {
	status := &APIStatus{Providers: make(map[string]bool)}
	for _, p := range s.providers {
		status.Providers[p.Name()] = p.TestConnection(ctx)
	}
	if s.tracker != nil {
		status.Usage = s.tracker.Stats()
	}
	return status
}

// UsageStats возвращает состояние месячного счетчика вызовов
func (s *TriviaService) UsageStats() triviagen.UsageStats {
	if s.tracker == nil {
		return triviagen.UsageStats{}
	}
	return s.tracker.Stats()
}

// ResetUsage вручную сбрасывает месячный счетчик вызовов
func (s *TriviaService) ResetUsage() triviagen.UsageStats {
	if s.tracker != nil {
		s.tracker.ForceReset()
	}
	return s.UsageStats()
}
