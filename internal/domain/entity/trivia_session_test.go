package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSession(n int) *TriviaSession {
	questions := make([]Question, n)
	for i := range questions {
		questions[i] = Question{
			Text:       "Вопрос",
			Options:    []string{"A", "B", "C", "D"},
			Correct:    1,
			Difficulty: DifficultyMedium,
		}
	}
	return &TriviaSession{
		Type:       TriviaTypeMovie,
		UserID:     1,
		Questions:  questions,
		SessionKey: "test-session-key",
	}
}

func TestTriviaSession_SubmitAnswer_Correct(t *testing.T) {
	// Arrange
	session := makeSession(3)

	// Act
	session.SubmitAnswer(1)

	// Assert
	assert.Equal(t, 1, session.Score, "правильный ответ должен дать очко")
	assert.Equal(t, 1, session.CurrentQuestion, "указатель вопроса должен сдвинуться")
	require.Len(t, session.Answers, 1)
	assert.True(t, session.Answers[0].IsCorrect)
	assert.Equal(t, 1, session.Answers[0].UserAnswer)
	assert.Equal(t, 1, session.Answers[0].CorrectAnswer)
}

func TestTriviaSession_SubmitAnswer_Incorrect(t *testing.T) {
	// Arrange
	session := makeSession(3)

	// Act
	session.SubmitAnswer(0)

	// Assert
	assert.Equal(t, 0, session.Score, "неправильный ответ не дает очков")
	assert.Equal(t, 1, session.CurrentQuestion)
	require.Len(t, session.Answers, 1)
	assert.False(t, session.Answers[0].IsCorrect)
}

func TestTriviaSession_SubmitAnswer_AfterComplete_NoOp(t *testing.T) {
	// Arrange: проходим всю сессию
	session := makeSession(2)
	session.SubmitAnswer(1)
	session.SubmitAnswer(1)
	require.True(t, session.IsComplete())

	// Act: повторный ответ на завершенной сессии
	session.SubmitAnswer(1)

	// Assert: состояние не изменилось, очки не задвоились
	assert.Equal(t, 2, session.Score)
	assert.Equal(t, 2, session.CurrentQuestion)
	assert.Len(t, session.Answers, 2)
}

func TestTriviaSession_CompletedSession_Invariants(t *testing.T) {
	// Arrange
	session := makeSession(5)
	answers := []int{1, 0, 1, 3, 1} // 3 правильных

	// Act
	for _, a := range answers {
		session.SubmitAnswer(a)
	}

	// Assert: len(answers) == total, score == количество правильных
	require.True(t, session.IsComplete())
	assert.Len(t, session.Answers, len(session.Questions))
	correct := 0
	for _, rec := range session.Answers {
		if rec.IsCorrect {
			correct++
		}
	}
	assert.Equal(t, correct, session.Score)
	assert.Equal(t, 3, session.Score)
}

func TestTriviaSession_Current_Progress(t *testing.T) {
	// Arrange
	session := makeSession(7)
	session.SubmitAnswer(1)
	session.SubmitAnswer(1)

	// Act
	question, progress, ok := session.Current()

	// Assert
	require.True(t, ok)
	require.NotNil(t, question)
	assert.Equal(t, 3, progress.Current, "номер вопроса считается с единицы")
	assert.Equal(t, 7, progress.Total)
	assert.Equal(t, 43, progress.Percentage, "round(3/7*100) == 43")
}

func TestTriviaSession_Current_Complete(t *testing.T) {
	// Arrange
	session := makeSession(1)
	session.SubmitAnswer(1)

	// Act
	question, _, ok := session.Current()

	// Assert: завершенная сессия сигнализирует переход к результатам
	assert.False(t, ok)
	assert.Nil(t, question)
}

func TestPercentageOf(t *testing.T) {
	assert.Equal(t, 0, PercentageOf(0, 0), "total == 0 дает 0, а не панику")
	assert.Equal(t, 0, PercentageOf(5, 0))
	assert.Equal(t, 70, PercentageOf(7, 10))
	assert.Equal(t, 100, PercentageOf(21, 21))
	assert.Equal(t, 33, PercentageOf(1, 3))
	assert.Equal(t, 67, PercentageOf(2, 3))
}

func TestPercentageOf_Bounds(t *testing.T) {
	// 0 <= percentage <= 100 для любых валидных пар
	for total := 0; total <= 21; total++ {
		for score := 0; score <= total; score++ {
			p := PercentageOf(score, total)
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 100)
		}
	}
}
