package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
	apperrors "github.com/Sammyduzit/movieweb-app/internal/pkg/errors"
)

// sessionKeyPrefix — пространство ключей игровых сессий в Redis
const sessionKeyPrefix = "trivia:session:"

// SessionRepo реализует repository.SessionRepository поверх Redis.
// Сессия хранится как JSON с TTL; истечение TTL эквивалентно выходу из игры.
type SessionRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
	ctx    context.Context
}

// NewSessionRepo создает новый репозиторий игровых сессий
func NewSessionRepo(client redis.UniversalClient, ttl time.Duration) (*SessionRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for SessionRepo")
	}
	return &SessionRepo{
		client: client,
		ttl:    ttl,
		ctx:    context.Background(),
	}, nil
}

// Save сохраняет сессию, перезаписывая любую предыдущую для этого браузера
func (r *SessionRepo) Save(browserSessionID string, session *entity.TriviaSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal trivia session: %w", err)
	}
	return r.client.Set(r.ctx, sessionKeyPrefix+browserSessionID, data, r.ttl).Err()
}

// Get возвращает активную сессию или apperrors.ErrNotFound
func (r *SessionRepo) Get(browserSessionID string) (*entity.TriviaSession, error) {
	data, err := r.client.Get(r.ctx, sessionKeyPrefix+browserSessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	var session entity.TriviaSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trivia session: %w", err)
	}
	return &session, nil
}

// Delete удаляет сессию; отсутствие ключа не является ошибкой
func (r *SessionRepo) Delete(browserSessionID string) error {
	return r.client.Del(r.ctx, sessionKeyPrefix+browserSessionID).Err()
}
