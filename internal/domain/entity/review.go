package entity

import (
	"time"
)

// Review представляет рецензию на фильм
type Review struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	MovieID uint   `gorm:"not null;index" json:"movie_id"`
	Content string `gorm:"size:2000;not null" json:"content"`

	// Оценка рецензента 1-10, опциональна
	ReviewerRating *int `json:"reviewer_rating,omitempty"`

	// Счетчик лайков только растет
	Likes int `gorm:"not null;default:0" json:"likes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"` // обновляется при каждой мутации
}

// TableName определяет имя таблицы для GORM
func (Review) TableName() string {
	return "reviews"
}
