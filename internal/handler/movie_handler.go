package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sammyduzit/movieweb-app/internal/handler/dto"
	"github.com/Sammyduzit/movieweb-app/internal/service"
)

// MovieHandler обрабатывает запросы, связанные с фильмами коллекции
type MovieHandler struct {
	movieService *service.MovieService
}

// NewMovieHandler создает новый обработчик фильмов
func NewMovieHandler(movieService *service.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

func movieInputFromRequest(req dto.MovieRequest) service.MovieInput {
	return service.MovieInput{
		Title:    req.Title,
		Director: req.Director,
		Year:     req.Year,
		Genre:    req.Genre,
		Rating:   req.Rating,
	}
}

// ListUserMovies обрабатывает GET /api/users/:user_id/movies
func (h *MovieHandler) ListUserMovies(c *gin.Context) {
	movies, err := h.movieService.ListUserMovies(uintParam(c, "userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, movies)
}

// CreateMovie обрабатывает POST /api/users/:user_id/movies
func (h *MovieHandler) CreateMovie(c *gin.Context) {
	var req dto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	movie, err := h.movieService.CreateMovie(c.Request.Context(), uintParam(c, "userID"), movieInputFromRequest(req))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, movie)
}

// GetMovie обрабатывает GET /api/movies/:movie_id
func (h *MovieHandler) GetMovie(c *gin.Context) {
	movie, err := h.movieService.GetMovie(uintParam(c, "movieID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, movie)
}

// UpdateMovie обрабатывает PUT /api/movies/:movie_id
func (h *MovieHandler) UpdateMovie(c *gin.Context) {
	var req dto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	movie, err := h.movieService.UpdateMovie(uintParam(c, "movieID"), movieInputFromRequest(req))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, movie)
}

// DeleteMovie обрабатывает DELETE /api/movies/:movie_id
func (h *MovieHandler) DeleteMovie(c *gin.Context) {
	if err := h.movieService.DeleteMovie(uintParam(c, "movieID")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
