package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Sammyduzit/movieweb-app/internal/config"
	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

// omdbNA — маркер отсутствующего значения в ответах OMDb
const omdbNA = "N/A"

// OMDbService обогащает данные о фильмах из OMDb API. Обогащение — строго
// best-effort: любая ошибка OMDb логируется и не мешает сохранению фильма
// с данными пользователя.
type OMDbService struct {
	cfg    config.OMDbConfig
	client *http.Client
}

// NewOMDbService создает сервис обогащения
func NewOMDbService(cfg config.OMDbConfig) *OMDbService {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &OMDbService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type omdbResponse struct {
	Response   string `json:"Response"` // "True" | "False"
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	Genre      string `json:"Genre"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	IMDbRating string `json:"imdbRating"`
}

// lookup запрашивает OMDb по точному названию (и году, если известен)
func (s *OMDbService) lookup(ctx context.Context, title string, year *int) (*omdbResponse, error) {
	params := url.Values{}
	params.Set("apikey", s.cfg.Key)
	params.Set("t", title)
	params.Set("type", "movie")
	params.Set("plot", "short")
	if year != nil {
		params.Set("y", strconv.Itoa(*year))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("omdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omdb returned status %d", resp.StatusCode)
	}

	var parsed omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("omdb response parse failed: %w", err)
	}
	if parsed.Response != "True" {
		return nil, fmt.Errorf("omdb: %s", parsed.Error)
	}
	return &parsed, nil
}

// Enrich дополняет фильм данными OMDb: заполняет пустые director/year/genre
// и всегда обновляет imdb_rating/plot/poster, если OMDb их знает.
// Данные, введенные пользователем, никогда не перезаписываются.
func (s *OMDbService) Enrich(ctx context.Context, movie *entity.Movie) {
	if s.cfg.Key == "" {
		return
	}

	data, err := s.lookup(ctx, movie.Title, movie.Year)
	if err != nil {
		log.Printf("[OMDb] не удалось обогатить фильм '%s': %v", movie.Title, err)
		return
	}

	if (movie.Director == nil || *movie.Director == "") && data.Director != "" && data.Director != omdbNA {
		movie.Director = &data.Director
	}
	if movie.Year == nil && data.Year != "" && data.Year != omdbNA {
		// OMDb иногда отдает диапазон вида "2019–2021", берем первые 4 цифры
		yearStr := data.Year
		if len(yearStr) > 4 {
			yearStr = yearStr[:4]
		}
		if year, err := strconv.Atoi(yearStr); err == nil {
			movie.Year = &year
		}
	}
	if (movie.Genre == nil || *movie.Genre == "") && data.Genre != "" && data.Genre != omdbNA {
		movie.Genre = &data.Genre
	}
	if data.IMDbRating != "" && data.IMDbRating != omdbNA {
		if rating, err := strconv.ParseFloat(data.IMDbRating, 64); err == nil {
			movie.IMDbRating = &rating
		}
	}
	if data.Plot != "" && data.Plot != omdbNA {
		movie.Plot = data.Plot
	}
	if data.Poster != "" && data.Poster != omdbNA {
		movie.Poster = data.Poster
	}

	log.Printf("[OMDb] фильм '%s' обогащен данными OMDb", movie.Title)
}
