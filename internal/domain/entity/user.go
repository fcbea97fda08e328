package entity

import (
	"time"
)

// User представляет пользователя каталога фильмов
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:120;not null;uniqueIndex" json:"email"`

	// Фильмы пользователя удаляются каскадно вместе с ним
	Movies []Movie `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}
