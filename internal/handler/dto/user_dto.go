package dto

// CreateUserRequest — тело запроса создания пользователя
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}
