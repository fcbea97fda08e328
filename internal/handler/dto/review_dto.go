package dto

// ReviewRequest — тело запроса создания/обновления рецензии
type ReviewRequest struct {
	Content        string `json:"content" binding:"required"`
	ReviewerRating *int   `json:"rating"`
}
