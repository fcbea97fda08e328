package entity

import (
	"time"
)

// Movie представляет фильм в коллекции пользователя.
// Пара (title, year) уникальна в пределах одного пользователя: инвариант
// проверяется в сервисе и дублируется ограничением unique_user_movie в БД,
// чтобы исключить гонку между проверкой и вставкой.
type Movie struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	UserID   uint     `gorm:"not null;index;uniqueIndex:unique_user_movie" json:"user_id"`
	Title    string   `gorm:"size:200;not null;uniqueIndex:unique_user_movie" json:"title"`
	Director *string  `gorm:"size:100" json:"director,omitempty"`
	Year     *int     `gorm:"uniqueIndex:unique_user_movie" json:"year,omitempty"`
	Genre    *string  `gorm:"size:100" json:"genre,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`

	// Поля, заполняемые обогащением через OMDb
	IMDbRating *float64 `gorm:"column:imdb_rating" json:"imdb_rating,omitempty"`
	Plot       string   `gorm:"type:text;not null;default:''" json:"plot,omitempty"`
	Poster     string   `gorm:"size:255;not null;default:''" json:"poster,omitempty"`

	// Рецензии удаляются каскадно вместе с фильмом
	Reviews []Review `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Movie) TableName() string {
	return "movies"
}
