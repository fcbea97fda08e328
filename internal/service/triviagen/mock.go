package triviagen

import (
	"context"
	"fmt"
	"log"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

// MockProvider генерирует детерминированные вопросы из полей самих фильмов,
// без внешних вызовов. Включается только явно через trivia.provider_mode=mock;
// в боевой цепочке не участвует.
type MockProvider struct{}

// NewMockProvider создает локальный генератор вопросов
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Name возвращает имя провайдера для поля api_used
func (p *MockProvider) Name() string {
	return ProviderMock
}

// TestConnection всегда успешен: внешних зависимостей нет
func (p *MockProvider) TestConnection(ctx context.Context) bool {
	return true
}

func movieDirector(movie *entity.Movie) string {
	if movie.Director != nil && *movie.Director != "" {
		return *movie.Director
	}
	return "Unknown"
}

func movieGenre(movie *entity.Movie) string {
	if movie.Genre != nil && *movie.Genre != "" {
		return *movie.Genre
	}
	return "Drama"
}

func movieYear(movie *entity.Movie) int {
	if movie.Year != nil {
		return *movie.Year
	}
	return 2000
}

// GenerateMovieTrivia строит набор из 7 вопросов по полям фильма
func (p *MockProvider) GenerateMovieTrivia(ctx context.Context, movie *entity.Movie) (*entity.QuestionSet, error) {
	log.Printf("[MockTrivia] генерирую вопросы по фильму '%s'", movie.Title)

	questions := []entity.Question{
		{
			Text:       fmt.Sprintf("What year was '%s' released?", movie.Title),
			Options:    []string{"2019", "2020", "2021", "2022"},
			Correct:    1,
			Difficulty: entity.DifficultyEasy,
		},
		{
			Text:       fmt.Sprintf("Who directed '%s'?", movie.Title),
			Options:    []string{movieDirector(movie), "Steven Spielberg", "Christopher Nolan", "Martin Scorsese"},
			Correct:    0,
			Difficulty: entity.DifficultyMedium,
		},
		{
			Text:       fmt.Sprintf("What genre is '%s'?", movie.Title),
			Options:    []string{"Action", "Comedy", movieGenre(movie), "Horror"},
			Correct:    2,
			Difficulty: entity.DifficultyEasy,
		},
		{
			Text:       fmt.Sprintf("In '%s', what is the main character's motivation?", movie.Title),
			Options:    []string{"Love", "Revenge", "Money", "Survival"},
			Correct:    0,
			Difficulty: entity.DifficultyHard,
		},
		{
			Text:       fmt.Sprintf("What is a memorable quote from '%s'?", movie.Title),
			Options:    []string{"I'll be back", "May the force be with you", "Here's looking at you, kid", "Show me the money"},
			Correct:    2,
			Difficulty: entity.DifficultyVeryHard,
		},
		{
			Text:       fmt.Sprintf("What filming technique was notably used in '%s'?", movie.Title),
			Options:    []string{"Long takes", "Split screen", "Found footage", "Time loops"},
			Correct:    0,
			Difficulty: entity.DifficultyVeryHard,
		},
		{
			Text:       fmt.Sprintf("What easter egg appears in '%s'?", movie.Title),
			Options:    []string{"Stan Lee cameo", "Director cameo", "Previous movie reference", "Hidden number"},
			Correct:    1,
			Difficulty: entity.DifficultyHighest,
		},
	}

	return &entity.QuestionSet{Questions: questions}, nil
}

// GenerateCollectionTrivia строит набор из 21 вопроса по коллекции:
// вопросы о режиссерах первых трех фильмов, сравнение годов выпуска,
// размер коллекции и общие вопросы-заполнители до целевого количества.
func (p *MockProvider) GenerateCollectionTrivia(ctx context.Context, movies []entity.Movie) (*entity.QuestionSet, error) {
	log.Printf("[MockTrivia] генерирую вопросы по коллекции из %d фильмов", len(movies))

	var questions []entity.Question

	for i := range movies {
		if i >= 3 {
			break
		}
		questions = append(questions, entity.Question{
			Text:       fmt.Sprintf("Which movie in your collection was directed by %s?", movieDirector(&movies[i])),
			Options:    []string{movies[i].Title, "The Matrix", "Inception", "Pulp Fiction"},
			Correct:    0,
			Difficulty: entity.DifficultyMedium,
		})
	}

	if len(movies) >= 2 {
		first, second := &movies[0], &movies[1]
		releasedFirst := 0
		if movieYear(first) > movieYear(second) {
			releasedFirst = 1
		}
		questions = append(questions,
			entity.Question{
				Text:       fmt.Sprintf("Between '%s' and '%s', which was released first?", first.Title, second.Title),
				Options:    []string{first.Title, second.Title, "They were released the same year", "Unknown"},
				Correct:    releasedFirst,
				Difficulty: entity.DifficultyMedium,
			},
			entity.Question{
				Text: "How many movies do you have in your collection?",
				Options: []string{
					fmt.Sprint(len(movies)),
					fmt.Sprint(len(movies) + 1),
					fmt.Sprint(len(movies) - 1),
					fmt.Sprint(len(movies) + 2),
				},
				Correct:    0,
				Difficulty: entity.DifficultyEasy,
			},
		)
	}

	generic := []entity.Question{
		{
			Text:       "Which genre appears most in your collection?",
			Options:    []string{"Action", "Drama", "Comedy", "Sci-Fi"},
			Correct:    1,
			Difficulty: entity.DifficultyMedium,
		},
		{
			Text:       "What decade do most of your movies come from?",
			Options:    []string{"1990s", "2000s", "2010s", "2020s"},
			Correct:    2,
			Difficulty: entity.DifficultyEasy,
		},
		{
			Text:       "Which director appears most frequently in your collection?",
			Options:    []string{"Christopher Nolan", "Steven Spielberg", "Quentin Tarantino", "Martin Scorsese"},
			Correct:    0,
			Difficulty: entity.DifficultyHard,
		},
	}

	for i := 0; len(questions) < CollectionQuestionCount; i++ {
		questions = append(questions, generic[i%len(generic)])
	}

	return &entity.QuestionSet{Questions: questions[:CollectionQuestionCount]}, nil
}
