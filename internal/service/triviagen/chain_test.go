package triviagen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

// stubProvider — провайдер с фиксированным исходом для тестов цепочки
type stubProvider struct {
	name  string
	set   *entity.QuestionSet
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) GenerateMovieTrivia(ctx context.Context, movie *entity.Movie) (*entity.QuestionSet, error) {
	s.calls++
	return s.set, s.err
}

func (s *stubProvider) GenerateCollectionTrivia(ctx context.Context, movies []entity.Movie) (*entity.QuestionSet, error) {
	s.calls++
	return s.set, s.err
}

func (s *stubProvider) TestConnection(ctx context.Context) bool { return s.err == nil }

func oneQuestionSet() *entity.QuestionSet {
	return &entity.QuestionSet{Questions: []entity.Question{
		{Text: "Q?", Options: []string{"A", "B", "C", "D"}, Correct: 0, Difficulty: entity.DifficultyEasy},
	}}
}

func TestChain_PrimarySucceedsSecondaryUntouched(t *testing.T) {
	primary := &stubProvider{name: ProviderRapidAPI, set: oneQuestionSet()}
	secondary := &stubProvider{name: ProviderOpenAI, set: oneQuestionSet()}
	chain := NewChain(primary, secondary)

	set, used, err := chain.GenerateMovieTrivia(context.Background(), testMovie())

	require.NoError(t, err)
	assert.Equal(t, ProviderRapidAPI, used)
	assert.Len(t, set.Questions, 1)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestChain_FallsBackOnPrimaryFailure(t *testing.T) {
	failures := []error{ErrNoAPIKey, ErrQuotaExhausted, ErrNoQuestions, errors.New("connection refused")}
	for _, failure := range failures {
		primary := &stubProvider{name: ProviderRapidAPI, err: failure}
		secondary := &stubProvider{name: ProviderOpenAI, set: oneQuestionSet()}
		chain := NewChain(primary, secondary)

		set, used, err := chain.GenerateMovieTrivia(context.Background(), testMovie())

		require.NoError(t, err, "failure: %v", failure)
		assert.Equal(t, ProviderOpenAI, used)
		assert.Len(t, set.Questions, 1)
		assert.Equal(t, 1, primary.calls, "каждый провайдер пробуется ровно один раз")
	}
}

func TestChain_EmptySetTreatedAsFailure(t *testing.T) {
	primary := &stubProvider{name: ProviderRapidAPI, set: &entity.QuestionSet{}}
	secondary := &stubProvider{name: ProviderOpenAI, set: oneQuestionSet()}
	chain := NewChain(primary, secondary)

	_, used, err := chain.GenerateMovieTrivia(context.Background(), testMovie())

	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, used)
}

func TestChain_AllFailReturnsExhausted(t *testing.T) {
	primary := &stubProvider{name: ProviderRapidAPI, err: ErrQuotaExhausted}
	secondary := &stubProvider{name: ProviderOpenAI, err: ErrNoAPIKey}
	chain := NewChain(primary, secondary)

	_, _, err := chain.GenerateCollectionTrivia(context.Background(), []entity.Movie{*testMovie()})

	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}
