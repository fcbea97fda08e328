package triviagen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Sammyduzit/movieweb-app/internal/config"
	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

const triviaSystemPrompt = "You are a movie trivia expert. You respond with valid JSON only, no prose."

// OpenAIProvider — резервный провайдер вопросов через Chat Completions API.
// В отличие от основного провайдера не квотируется локально.
type OpenAIProvider struct {
	cfg    config.OpenAIConfig
	client *http.Client
}

// NewOpenAIProvider создает резервный провайдер
func NewOpenAIProvider(cfg config.OpenAIConfig) *OpenAIProvider {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Name возвращает имя провайдера для поля api_used
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// GenerateMovieTrivia генерирует вопросы по одному фильму
func (p *OpenAIProvider) GenerateMovieTrivia(ctx context.Context, movie *entity.Movie) (*entity.QuestionSet, error) {
	return p.generate(ctx, buildMoviePrompt(movie))
}

// GenerateCollectionTrivia генерирует вопросы по коллекции фильмов
func (p *OpenAIProvider) GenerateCollectionTrivia(ctx context.Context, movies []entity.Movie) (*entity.QuestionSet, error) {
	return p.generate(ctx, buildCollectionPrompt(movies))
}

// TestConnection выполняет минимальный диагностический запрос
func (p *OpenAIProvider) TestConnection(ctx context.Context) bool {
	if p.cfg.Key == "" {
		return false
	}
	content, err := p.complete(ctx, "Say OK")
	if err != nil {
		log.Printf("[OpenAI] диагностический запрос не прошел: %v", err)
		return false
	}
	return content != ""
}

func (p *OpenAIProvider) generate(ctx context.Context, prompt string) (*entity.QuestionSet, error) {
	if p.cfg.Key == "" {
		return nil, ErrNoAPIKey
	}
	content, err := p.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseQuestionSet(content)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// complete выполняет один запрос к Chat Completions и возвращает текст
// первого ответа модели
func (p *OpenAIProvider) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: p.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: triviaSystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.Key)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai response read failed: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// продолжаем разбор ниже
	case http.StatusTooManyRequests:
		log.Printf("[OpenAI] превышен rate limit (429), провайдер временно недоступен")
		return "", fmt.Errorf("openai rate limit exceeded")
	case http.StatusUnauthorized:
		log.Printf("[OpenAI] ключ API отклонен (401), проверьте OPENAI_API_KEY")
		return "", fmt.Errorf("openai api key rejected")
	default:
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, truncateForLog(data))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("openai response parse failed: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
