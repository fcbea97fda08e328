package triviagen

import (
	"context"
	"errors"
	"log"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

// Имена провайдеров, попадающие в поле api_used сессии
const (
	ProviderRapidAPI = "rapidapi"
	ProviderOpenAI   = "openai"
	ProviderMock     = "mock"
)

// Мягкие отказы провайдеров. Любая ошибка провайдера не покидает цепочку:
// она логируется, и цепочка переходит к следующему провайдеру.
var (
	// ErrNoAPIKey — провайдер не сконфигурирован; квота не списывается.
	ErrNoAPIKey = errors.New("provider api key is not configured")

	// ErrQuotaExhausted — месячный лимит основного провайдера исчерпан;
	// вызов пропускается целиком, квота повторно не списывается.
	ErrQuotaExhausted = errors.New("monthly api quota exhausted")

	// ErrNoQuestions — ответ получен, но валидных вопросов в нем нет.
	ErrNoQuestions = errors.New("no valid trivia questions in response")

	// ErrExhausted — все провайдеры цепочки перепробованы безуспешно.
	ErrExhausted = errors.New("all trivia providers exhausted")
)

// Provider генерирует наборы вопросов по фильму или коллекции.
// Контракт границы: провайдер никогда не паникует и не возвращает
// частично валидный набор — либо непустой QuestionSet, либо ошибка.
type Provider interface {
	Name() string
	GenerateMovieTrivia(ctx context.Context, movie *entity.Movie) (*entity.QuestionSet, error)
	GenerateCollectionTrivia(ctx context.Context, movies []entity.Movie) (*entity.QuestionSet, error)
	// TestConnection выполняет минимальный запрос для диагностики
	TestConnection(ctx context.Context) bool
}

// Chain — упорядоченная цепочка провайдеров с откатом: каждый провайдер
// пробуется ровно один раз, без повторов. Отказ любого провайдера мягкий;
// жесткая ошибка возникает только после исчерпания всей цепочки.
type Chain struct {
	providers []Provider
}

// NewChain создает цепочку провайдеров в порядке приоритета
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// GenerateMovieTrivia пробует провайдеров по порядку для викторины по фильму.
// Возвращает набор вопросов и имя сработавшего провайдера.
func (c *Chain) GenerateMovieTrivia(ctx context.Context, movie *entity.Movie) (*entity.QuestionSet, string, error) {
	return c.tryEach(func(p Provider) (*entity.QuestionSet, error) {
		return p.GenerateMovieTrivia(ctx, movie)
	})
}

// GenerateCollectionTrivia пробует провайдеров по порядку для викторины по коллекции
func (c *Chain) GenerateCollectionTrivia(ctx context.Context, movies []entity.Movie) (*entity.QuestionSet, string, error) {
	return c.tryEach(func(p Provider) (*entity.QuestionSet, error) {
		return p.GenerateCollectionTrivia(ctx, movies)
	})
}

func (c *Chain) tryEach(generate func(Provider) (*entity.QuestionSet, error)) (*entity.QuestionSet, string, error) {
	for _, p := range c.providers {
		set, err := generate(p)
		if err != nil {
			log.Printf("[TriviaChain] провайдер %s не дал вопросов: %v", p.Name(), err)
			continue
		}
		if set == nil || len(set.Questions) == 0 {
			log.Printf("[TriviaChain] провайдер %s вернул пустой набор", p.Name())
			continue
		}
		return set, p.Name(), nil
	}
	return nil, "", ErrExhausted
}
