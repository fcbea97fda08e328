package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Sammyduzit/movieweb-app/internal/pkg/errors"
)

// respondData отправляет успешный ответ в контрактном конверте
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError отображает ошибку приложения в HTTP-статус и контрактный
// конверт ошибки. Внутренние детали ошибок БД наружу не уходят.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, apperrors.ErrNoActiveSession):
		status = http.StatusNotFound
		message = "No active trivia session"
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrQuotaExhausted):
		status = http.StatusTooManyRequests
		message = err.Error()
	case errors.Is(err, apperrors.ErrTriviaGeneration):
		status = http.StatusServiceUnavailable
		message = "Trivia generation is temporarily unavailable, please try again later"
	default:
		log.Printf("[Handler] внутренняя ошибка: %v", err)
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// respondBadRequest отправляет 400 для синтаксически невалидного запроса
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   message,
	})
}

// uintParam достает числовой параметр, положенный в контекст
// middleware.ExtractUintParam
func uintParam(c *gin.Context, key string) uint {
	return c.GetUint(key)
}
