package entity

import (
	"math"
)

// AnswerRecord фиксирует один принятый ответ в рамках сессии
type AnswerRecord struct {
	Question      string   `json:"question"`
	UserAnswer    int      `json:"user_answer"`
	CorrectAnswer int      `json:"correct_answer"`
	IsCorrect     bool     `json:"is_correct"`
	Options       []string `json:"options"`
}

// Progress описывает продвижение по вопросам текущей сессии
type Progress struct {
	Current    int `json:"current"` // номер вопроса, с единицы
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// TriviaSession — активная игровая сессия одного браузера. Не персистится
// в БД: живет в хранилище сессий до завершения, выхода или истечения TTL.
// На одну сессию браузера существует максимум одна активная викторина;
// запуск новой молча заменяет незавершенную.
type TriviaSession struct {
	Type       string `json:"type"` // "movie" | "collection"
	UserID     uint   `json:"user_id"`
	MovieID    *uint  `json:"movie_id,omitempty"` // только для типа "movie"
	SessionKey string `json:"session_key"`        // uuid запуска, ключ дедупликации результата

	Questions       []Question     `json:"questions"`
	CurrentQuestion int            `json:"current_question"`
	Score           int            `json:"score"`
	Answers         []AnswerRecord `json:"answers"`

	// APIUsed помечает провайдера, сгенерировавшего вопросы
	APIUsed string `json:"api_used"`
}

// IsComplete возвращает true, когда отвечены все вопросы
func (s *TriviaSession) IsComplete() bool {
	return s.CurrentQuestion >= len(s.Questions)
}

// SubmitAnswer принимает ответ на текущий вопрос: записывает AnswerRecord,
// начисляет очко за правильный ответ и продвигает указатель вопроса.
// Вызов на завершенной сессии — no-op: состояние не меняется, очки не
// начисляются повторно.
func (s *TriviaSession) SubmitAnswer(userAnswer int) {
	if s.IsComplete() {
		return
	}

	question := s.Questions[s.CurrentQuestion]
	isCorrect := question.IsCorrect(userAnswer)

	s.Answers = append(s.Answers, AnswerRecord{
		Question:      question.Text,
		UserAnswer:    userAnswer,
		CorrectAnswer: question.Correct,
		IsCorrect:     isCorrect,
		Options:       question.Options,
	})

	if isCorrect {
		s.Score++
	}
	s.CurrentQuestion++
}

// Current возвращает текущий вопрос и прогресс. Второе значение false
// означает, что сессия завершена и пора переходить к результатам.
func (s *TriviaSession) Current() (*Question, Progress, bool) {
	if s.IsComplete() {
		return nil, Progress{}, false
	}

	total := len(s.Questions)
	current := s.CurrentQuestion + 1
	progress := Progress{
		Current:    current,
		Total:      total,
		Percentage: int(math.Round(float64(current) / float64(total) * 100)),
	}
	return &s.Questions[s.CurrentQuestion], progress, true
}

// PercentageScore возвращает итоговый процент правильных ответов.
// Для пустой сессии определен как 0, деления на ноль нет.
func (s *TriviaSession) PercentageScore() int {
	return PercentageOf(s.Score, len(s.Questions))
}

// PercentageOf считает округленный процент score от total; total == 0 дает 0
func PercentageOf(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
