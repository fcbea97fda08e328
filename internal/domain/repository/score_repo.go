package repository

import (
	"time"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

// LeaderboardEntry — строка лидерборда: результат плюс имя игрока и,
// для викторин по фильму, название фильма
type LeaderboardEntry struct {
	UserID         uint      `json:"user_id"`
	UserName       string    `json:"user_name"`
	MovieID        *uint     `json:"movie_id,omitempty"`
	MovieTitle     *string   `json:"movie_title,omitempty"`
	TriviaType     string    `json:"trivia_type"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserScoreAggregate — агрегат по всем результатам пользователя
type UserScoreAggregate struct {
	TotalAttempts      int64
	BestPercentage     int
	AveragePercentage  float64
	MovieAttempts      int64
	CollectionAttempts int64
}

// ScoreRepository определяет методы для работы с результатами викторин.
// Все лидерборды ранжируются по строгому трехключевому контракту:
// percentage DESC, score DESC, created_at ASC (ранний побеждает при равенстве).
type ScoreRepository interface {
	// Save вставляет результат. Повторное сохранение того же SessionKey —
	// no-op за счет уникального индекса.
	Save(score *entity.TriviaScore) error
	GlobalLeaderboard(limit int) ([]LeaderboardEntry, error)
	CollectionLeaderboard(limit int) ([]LeaderboardEntry, error)
	MovieLeaderboard(movieID uint, limit int) ([]LeaderboardEntry, error)
	// UserScores возвращает последние результаты пользователя, новые первыми
	UserScores(userID uint, limit int) ([]entity.TriviaScore, error)
	UserAggregate(userID uint) (*UserScoreAggregate, error)
}
