package repository

import (
	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

// SessionRepository хранит активные игровые сессии по идентификатору
// сессии браузера. На один идентификатор — максимум одна сессия:
// Save перезаписывает предыдущую.
type SessionRepository interface {
	Save(browserSessionID string, session *entity.TriviaSession) error
	// Get возвращает apperrors.ErrNotFound, если активной сессии нет
	Get(browserSessionID string) (*entity.TriviaSession, error)
	Delete(browserSessionID string) error
}
