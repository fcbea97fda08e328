package entity

// Словарь уровней сложности, который возвращают провайдеры
const (
	DifficultyEasy     = "easy"
	DifficultyMedium   = "medium"
	DifficultyHard     = "hard"
	DifficultyVeryHard = "very hard"
	DifficultyHighest  = "highest difficulty"
)

// Question представляет один вопрос викторины. Вопросы не персистятся:
// они приходят от провайдера и живут внутри игровой сессии.
type Question struct {
	Text       string   `json:"question"`
	Options    []string `json:"options"` // ровно 4 варианта
	Correct    int      `json:"correct"` // индекс правильного варианта, с нуля
	Difficulty string   `json:"difficulty"`
}

// QuestionSet — ответ провайдера в контрактной форме {"questions": [...]}
type QuestionSet struct {
	Questions []Question `json:"questions"`
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selectedOption int) bool {
	return selectedOption == q.Correct
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}
