package dto

// MovieRequest — тело запроса создания/обновления фильма.
// Опциональные поля передаются указателями: отсутствие поля в JSON
// отличимо от пустого значения.
type MovieRequest struct {
	Title    string   `json:"title" binding:"required"`
	Director *string  `json:"director"`
	Year     *int     `json:"year"`
	Genre    *string  `json:"genre"`
	Rating   *float64 `json:"rating"`
}
