package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
	"github.com/Sammyduzit/movieweb-app/internal/handler/dto"
	"github.com/Sammyduzit/movieweb-app/internal/middleware"
	"github.com/Sammyduzit/movieweb-app/internal/service"
)

// TriviaHandler обрабатывает запросы викторины: запуск, ход игры,
// результаты, лидерборды и статистику
type TriviaHandler struct {
	triviaService *service.TriviaService
}

// NewTriviaHandler создает новый обработчик викторин
func NewTriviaHandler(triviaService *service.TriviaService) *TriviaHandler {
	return &TriviaHandler{triviaService: triviaService}
}

// questionView — вопрос для фронтенда, без индекса правильного ответа
type questionView struct {
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
}

func viewOf(q *entity.Question) questionView {
	return questionView{
		Question:   q.Text,
		Options:    q.Options,
		Difficulty: q.Difficulty,
	}
}

// startedSessionResponse описывает только что запущенную викторину.
// Непустое quotaWarning добавляется в ответ как предупреждение о близком
// исчерпании месячного лимита вызовов.
func startedSessionResponse(session *entity.TriviaSession, quotaWarning string) gin.H {
	resp := gin.H{
		"type":            session.Type,
		"total_questions": len(session.Questions),
		"api_used":        session.APIUsed,
	}
	if session.MovieID != nil {
		resp["movie_id"] = *session.MovieID
	}
	if quotaWarning != "" {
		resp["quota_warning"] = quotaWarning
	}
	return resp
}

// StartMovieTrivia обрабатывает POST /api/users/:user_id/movies/:movie_id/trivia
func (h *TriviaHandler) StartMovieTrivia(c *gin.Context) {
	quotaWarning, err := h.triviaService.QuotaPreCheck()
	if err != nil {
		respondError(c, err)
		return
	}

	session, err := h.triviaService.StartMovieTrivia(
		c.Request.Context(),
		middleware.BrowserSessionID(c),
		uintParam(c, "userID"),
		uintParam(c, "movieID"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, startedSessionResponse(session, quotaWarning))
}

// StartCollectionTrivia обрабатывает POST /api/users/:user_id/trivia
func (h *TriviaHandler) StartCollectionTrivia(c *gin.Context) {
	quotaWarning, err := h.triviaService.QuotaPreCheck()
	if err != nil {
		respondError(c, err)
		return
	}

	session, err := h.triviaService.StartCollectionTrivia(
		c.Request.Context(),
		middleware.BrowserSessionID(c),
		uintParam(c, "userID"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, startedSessionResponse(session, quotaWarning))
}

// CurrentQuestion обрабатывает GET /api/trivia/question
func (h *TriviaHandler) CurrentQuestion(c *gin.Context) {
	question, progress, active, err := h.triviaService.CurrentQuestion(middleware.BrowserSessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if !active {
		respondData(c, http.StatusOK, gin.H{"completed": true})
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"completed": false,
		"question":  viewOf(question),
		"progress":  progress,
	})
}

// SubmitAnswer обрабатывает POST /api/trivia/answer
func (h *TriviaHandler) SubmitAnswer(c *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Answer == nil {
		respondBadRequest(c, "answer index is required")
		return
	}

	feedback, err := h.triviaService.SubmitAnswer(middleware.BrowserSessionID(c), *req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, feedback)
}

// Results обрабатывает GET /api/trivia/results
func (h *TriviaHandler) Results(c *gin.Context) {
	results, err := h.triviaService.Results(middleware.BrowserSessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, results)
}

// Quit обрабатывает POST /api/trivia/quit
func (h *TriviaHandler) Quit(c *gin.Context) {
	if err := h.triviaService.Quit(middleware.BrowserSessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"quit": true})
}

// GlobalLeaderboard обрабатывает GET /api/leaderboard
func (h *TriviaHandler) GlobalLeaderboard(c *gin.Context) {
	entries, err := h.triviaService.GlobalLeaderboard()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, entries)
}

// CollectionLeaderboard обрабатывает GET /api/leaderboard/collection
func (h *TriviaHandler) CollectionLeaderboard(c *gin.Context) {
	entries, err := h.triviaService.CollectionLeaderboard()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, entries)
}

// MovieLeaderboard обрабатывает GET /api/movies/:movie_id/leaderboard
func (h *TriviaHandler) MovieLeaderboard(c *gin.Context) {
	entries, err := h.triviaService.MovieLeaderboard(uintParam(c, "movieID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, entries)
}

// UserStats обрабатывает GET /api/users/:user_id/trivia-stats
func (h *TriviaHandler) UserStats(c *gin.Context) {
	stats, err := h.triviaService.UserStats(uintParam(c, "userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
