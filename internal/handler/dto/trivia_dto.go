package dto

// SubmitAnswerRequest — тело запроса с ответом на текущий вопрос.
// Индекс варианта передается указателем, чтобы отличать пропущенное
// поле от валидного нулевого индекса.
type SubmitAnswerRequest struct {
	Answer *int `json:"answer" binding:"required"`
}
