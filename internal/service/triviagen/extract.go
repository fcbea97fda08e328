package triviagen

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

// questionSetPattern вырезает JSON-объект с ключом "questions" из болтливого
// ответа модели (преамбулы, markdown-ограждения и прочий текст вокруг).
var questionSetPattern = regexp.MustCompile(`(?s)\{.*"questions".*\}`)

// ParseQuestionSet разбирает текст ответа провайдера в QuestionSet.
// Сначала пробует прямой разбор всего текста, затем вырезает JSON-фрагмент
// регулярным выражением. Набор без единого валидного вопроса — ошибка.
func ParseQuestionSet(raw string) (*entity.QuestionSet, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoQuestions
	}

	var set entity.QuestionSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		match := questionSetPattern.FindString(raw)
		if match == "" {
			return nil, fmt.Errorf("%w: no questions object in response", ErrNoQuestions)
		}
		if err := json.Unmarshal([]byte(match), &set); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoQuestions, err)
		}
	}

	valid := set.Questions[:0]
	for _, q := range set.Questions {
		if validQuestion(q) {
			valid = append(valid, q)
		}
	}
	set.Questions = valid

	if len(set.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &set, nil
}

// validQuestion проверяет структурную целостность одного вопроса.
// Контракт вопроса — ровно четыре варианта ответа.
func validQuestion(q entity.Question) bool {
	if strings.TrimSpace(q.Text) == "" {
		return false
	}
	if len(q.Options) != questionOptionCount {
		return false
	}
	return q.Correct >= 0 && q.Correct < len(q.Options)
}

// Truncate обрезает набор до limit вопросов. Ответ модели может содержать
// больше вопросов, чем запрошено — лишние просто отбрасываются.
func Truncate(set *entity.QuestionSet, limit int) *entity.QuestionSet {
	if set == nil || limit <= 0 || len(set.Questions) <= limit {
		return set
	}
	return &entity.QuestionSet{Questions: set.Questions[:limit]}
}
