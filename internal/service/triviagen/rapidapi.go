package triviagen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Sammyduzit/movieweb-app/internal/config"
	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

// Канонический текст отказа чат-бота. Приходит со статусом 200, поэтому
// распознается по содержимому.
const rapidAPIRefusal = "I'm sorry, right now I'm not able to answer that question"

// RapidAPIProvider — основной провайдер вопросов через чат-бота на RapidAPI.
// Каждый вызов квотируется: UsageTracker спрашивается до запроса и
// списывается после, включая неудачные попытки.
type RapidAPIProvider struct {
	cfg     config.RapidAPIConfig
	tracker *UsageTracker
	client  *http.Client
}

// NewRapidAPIProvider создает провайдер с HTTP-клиентом с таймаутом из конфига
func NewRapidAPIProvider(cfg config.RapidAPIConfig, tracker *UsageTracker) *RapidAPIProvider {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RapidAPIProvider{
		cfg:     cfg,
		tracker: tracker,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name возвращает имя провайдера для поля api_used
func (p *RapidAPIProvider) Name() string {
	return ProviderRapidAPI
}

// GenerateMovieTrivia генерирует вопросы по одному фильму
func (p *RapidAPIProvider) GenerateMovieTrivia(ctx context.Context, movie *entity.Movie) (*entity.QuestionSet, error) {
	return p.generate(ctx, buildMoviePrompt(movie))
}

// GenerateCollectionTrivia генерирует вопросы по коллекции фильмов
func (p *RapidAPIProvider) GenerateCollectionTrivia(ctx context.Context, movies []entity.Movie) (*entity.QuestionSet, error) {
	return p.generate(ctx, buildCollectionPrompt(movies))
}

// TestConnection выполняет минимальный диагностический запрос.
// Диагностика тоже тратит квоту: это реальный вызов внешнего API.
func (p *RapidAPIProvider) TestConnection(ctx context.Context) bool {
	if p.cfg.Key == "" || !p.tracker.CanMakeCall() {
		return false
	}
	raw, err := p.ask(ctx, "Say OK")
	if err != nil {
		log.Printf("[RapidAPI] диагностический запрос не прошел: %v", err)
		return false
	}
	return raw != ""
}

func (p *RapidAPIProvider) generate(ctx context.Context, prompt string) (*entity.QuestionSet, error) {
	if p.cfg.Key == "" {
		return nil, ErrNoAPIKey
	}
	if !p.tracker.CanMakeCall() {
		return nil, ErrQuotaExhausted
	}

	raw, err := p.ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if strings.Contains(raw, rapidAPIRefusal) {
		return nil, fmt.Errorf("%w: chat bot refused the request", ErrNoQuestions)
	}
	return ParseQuestionSet(raw)
}

// ask выполняет один квотируемый запрос и возвращает текст ответа бота.
// Квота списывается на любую попытку, дошедшую до сети, даже при
// транспортной ошибке.
func (p *RapidAPIProvider) ask(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]string{"query": prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-key", p.cfg.Key)
	req.Header.Set("x-rapidapi-host", p.cfg.Host)

	p.tracker.RecordCall()

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("rapidapi request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("rapidapi response read failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("rapidapi returned status %d: %s", resp.StatusCode, truncateForLog(data))
	}
	return unwrapRapidAPIBody(data), nil
}

// unwrapRapidAPIBody достает текст ответа из обертки {"response": ...} или
// {"message": ...}; тело без обертки трактуется как сырой текст.
func unwrapRapidAPIBody(data []byte) string {
	var wrapper struct {
		Response string `json:"response"`
		Message  string `json:"message"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil {
		if wrapper.Response != "" {
			return wrapper.Response
		}
		if wrapper.Message != "" {
			return wrapper.Message
		}
	}
	return string(data)
}

func truncateForLog(data []byte) string {
	const max = 200
	s := string(data)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
