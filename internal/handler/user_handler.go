package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sammyduzit/movieweb-app/internal/handler/dto"
	"github.com/Sammyduzit/movieweb-app/internal/service"
)

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers обрабатывает GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, users)
}

// CreateUser обрабатывает POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name and email are required")
		return
	}

	user, err := h.userService.CreateUser(req.Name, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, user)
}

// GetUser обрабатывает GET /api/users/:user_id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(uintParam(c, "userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}
