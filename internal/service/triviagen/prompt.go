package triviagen

import (
	"fmt"
	"strings"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

// Сколько вопросов запрашивается у модели. Ответ все равно обрезается
// оркестратором, но запрашиваем ровно целевое количество.
const (
	MovieQuestionCount      = 7
	CollectionQuestionCount = 21
)

// questionOptionCount — контрактное число вариантов ответа в вопросе
const questionOptionCount = 4

// collectionDigestLimit ограничивает число фильмов в описании коллекции:
// слишком длинный промпт заметно ухудшает ответы модели
const collectionDigestLimit = 10

const answerFormatInstructions = `Return ONLY valid JSON in exactly this format:
{
  "questions": [
    {
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct": 0,
      "difficulty": "medium"
    }
  ]
}
The "correct" field is the zero-based index of the right option.
Do not add any text before or after the JSON.`

// movieFacts собирает известные поля фильма в строку для промпта,
// пропуская незаполненные
func movieFacts(movie *entity.Movie) string {
	parts := []string{fmt.Sprintf("Title: %s", movie.Title)}
	if movie.Director != nil && *movie.Director != "" {
		parts = append(parts, fmt.Sprintf("Director: %s", *movie.Director))
	}
	if movie.Year != nil {
		parts = append(parts, fmt.Sprintf("Year: %d", *movie.Year))
	}
	if movie.Genre != nil && *movie.Genre != "" {
		parts = append(parts, fmt.Sprintf("Genre: %s", *movie.Genre))
	}
	if movie.Plot != "" {
		parts = append(parts, fmt.Sprintf("Plot: %s", movie.Plot))
	}
	return strings.Join(parts, "\n")
}

// buildMoviePrompt строит промпт для викторины по одному фильму:
// вопросы от легких к сверхсложным, только проверяемые факты.
func buildMoviePrompt(movie *entity.Movie) string {
	return fmt.Sprintf(`Generate exactly %d trivia questions about the movie described below.

%s

Requirements:
- Questions 1-2: easy (well-known facts about the movie)
- Questions 3-4: medium (plot details, cast, production)
- Questions 5-6: hard (behind-the-scenes facts, specific details)
- Question 7: very hard (obscure trivia only true fans would know)
- Each question has exactly 4 options with exactly one correct answer
- Only use verifiable facts about this specific movie

%s`, MovieQuestionCount, movieFacts(movie), answerFormatInstructions)
}

// buildCollectionPrompt строит промпт для викторины по всей коллекции.
// В описание попадают максимум collectionDigestLimit фильмов.
func buildCollectionPrompt(movies []entity.Movie) string {
	digest := movies
	if len(digest) > collectionDigestLimit {
		digest = digest[:collectionDigestLimit]
	}

	var sb strings.Builder
	for i := range digest {
		fmt.Fprintf(&sb, "Movie %d:\n%s\n\n", i+1, movieFacts(&digest[i]))
	}

	return fmt.Sprintf(`Generate exactly %d trivia questions about this collection of %d movies.

%s
Requirements:
- Mix questions across all movies in the collection
- Include comparison questions (which movie is older, same director, etc.)
- Difficulty should range from easy to highest difficulty
- Each question has exactly 4 options with exactly one correct answer
- Only use verifiable facts about these specific movies

%s`, CollectionQuestionCount, len(movies), sb.String(), answerFormatInstructions)
}
