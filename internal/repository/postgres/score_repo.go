package postgres

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
	"github.com/Sammyduzit/movieweb-app/internal/domain/repository"
)

// Контракт ранжирования лидербордов: процент, затем сырой счет, затем
// время создания (ранний результат побеждает при полном равенстве).
const leaderboardOrder = "trivia_scores.percentage DESC, trivia_scores.score DESC, trivia_scores.created_at ASC"

// ScoreRepo реализует repository.ScoreRepository
type ScoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo создает новый репозиторий результатов викторин
func NewScoreRepo(db *gorm.DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// Save вставляет результат. Конфликт по session_key означает, что этот
// забег уже сохранен — вставка молча пропускается.
func (r *ScoreRepo) Save(score *entity.TriviaScore) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoNothing: true,
	}).Create(score).Error
}

func (r *ScoreRepo) leaderboardQuery() *gorm.DB {
	return r.db.Table("trivia_scores").
		Select("trivia_scores.user_id, users.name AS user_name, trivia_scores.movie_id, " +
			"movies.title AS movie_title, trivia_scores.trivia_type, trivia_scores.score, " +
			"trivia_scores.total_questions, trivia_scores.percentage, trivia_scores.created_at").
		Joins("JOIN users ON users.id = trivia_scores.user_id").
		Joins("LEFT JOIN movies ON movies.id = trivia_scores.movie_id").
		Order(leaderboardOrder)
}

// GlobalLeaderboard возвращает лучшие результаты по всем викторинам
func (r *ScoreRepo) GlobalLeaderboard(limit int) ([]repository.LeaderboardEntry, error) {
	var entries []repository.LeaderboardEntry
	err := r.leaderboardQuery().Limit(limit).Scan(&entries).Error
	return entries, err
}

// CollectionLeaderboard возвращает лучшие результаты викторин по коллекциям
func (r *ScoreRepo) CollectionLeaderboard(limit int) ([]repository.LeaderboardEntry, error) {
	var entries []repository.LeaderboardEntry
	err := r.leaderboardQuery().
		Where("trivia_scores.trivia_type = ?", entity.TriviaTypeCollection).
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

// MovieLeaderboard возвращает лучшие результаты по конкретному фильму
func (r *ScoreRepo) MovieLeaderboard(movieID uint, limit int) ([]repository.LeaderboardEntry, error) {
	var entries []repository.LeaderboardEntry
	err := r.leaderboardQuery().
		Where("trivia_scores.movie_id = ?", movieID).
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

// UserScores возвращает последние результаты пользователя, новые первыми
func (r *ScoreRepo) UserScores(userID uint, limit int) ([]entity.TriviaScore, error) {
	var scores []entity.TriviaScore
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&scores).Error
	return scores, err
}

// UserAggregate считает сводную статистику пользователя одним запросом.
// Для пользователя без результатов возвращает нулевой агрегат, не ошибку.
func (r *ScoreRepo) UserAggregate(userID uint) (*repository.UserScoreAggregate, error) {
	var agg repository.UserScoreAggregate
	err := r.db.Model(&entity.TriviaScore{}).
		Select("COUNT(*) AS total_attempts, "+
			"COALESCE(MAX(percentage), 0) AS best_percentage, "+
			"COALESCE(AVG(percentage), 0) AS average_percentage, "+
			"COUNT(*) FILTER (WHERE trivia_type = ?) AS movie_attempts, "+
			"COUNT(*) FILTER (WHERE trivia_type = ?) AS collection_attempts",
			entity.TriviaTypeMovie, entity.TriviaTypeCollection).
		Where("user_id = ?", userID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}
