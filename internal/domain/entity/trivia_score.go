package entity

import (
	"time"
)

// Типы викторин
const (
	TriviaTypeMovie      = "movie"
	TriviaTypeCollection = "collection"
)

// TriviaScore представляет сохраненный результат пройденной викторины.
// Запись неизменяема: существует только вставка и ранжированное чтение,
// все лидерборды строятся из этой таблицы.
type TriviaScore struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	// MovieID заполнен только для викторин типа "movie"
	MovieID *uint `gorm:"index" json:"movie_id,omitempty"`

	TriviaType     string `gorm:"size:20;not null" json:"trivia_type"` // "movie" | "collection"
	Score          int    `gorm:"not null;default:0" json:"score"`
	TotalQuestions int    `gorm:"not null;default:0" json:"total_questions"`
	Percentage     int    `gorm:"not null;default:0;index:idx_scores_rank" json:"percentage"`

	// CompletionTime — время прохождения в секундах, опционально
	CompletionTime *int `json:"completion_time,omitempty"`

	// SessionKey — ключ завершенной игровой сессии. Уникальный индекс
	// не позволяет сохранить один и тот же забег дважды.
	SessionKey string `gorm:"size:36;not null;uniqueIndex" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (TriviaScore) TableName() string {
	return "trivia_scores"
}
