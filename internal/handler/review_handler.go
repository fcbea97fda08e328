package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sammyduzit/movieweb-app/internal/handler/dto"
	"github.com/Sammyduzit/movieweb-app/internal/service"
)

// ReviewHandler обрабатывает запросы, связанные с рецензиями
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler создает новый обработчик рецензий
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListMovieReviews обрабатывает GET /api/movies/:movie_id/reviews
func (h *ReviewHandler) ListMovieReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListMovieReviews(uintParam(c, "movieID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, reviews)
}

// CreateReview обрабатывает POST /api/movies/:movie_id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "review content is required")
		return
	}

	review, err := h.reviewService.CreateReview(uintParam(c, "movieID"), service.ReviewInput{
		Content:        req.Content,
		ReviewerRating: req.ReviewerRating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, review)
}

// UpdateReview обрабатывает PUT /api/reviews/:review_id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "review content is required")
		return
	}

	review, err := h.reviewService.UpdateReview(uintParam(c, "reviewID"), service.ReviewInput{
		Content:        req.Content,
		ReviewerRating: req.ReviewerRating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, review)
}

// DeleteReview обрабатывает DELETE /api/reviews/:review_id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.reviewService.DeleteReview(uintParam(c, "reviewID")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

// LikeReview обрабатывает POST /api/reviews/:review_id/like
func (h *ReviewHandler) LikeReview(c *gin.Context) {
	review, err := h.reviewService.LikeReview(uintParam(c, "reviewID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, review)
}
