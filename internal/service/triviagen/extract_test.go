package triviagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

const validSetJSON = `{"questions":[{"question":"Who directed Alien?","options":["Ridley Scott","James Cameron","David Fincher","Jean-Pierre Jeunet"],"correct":0,"difficulty":"easy"}]}`

func TestParseQuestionSet_DirectJSON(t *testing.T) {
	set, err := ParseQuestionSet(validSetJSON)

	require.NoError(t, err)
	require.Len(t, set.Questions, 1)
	assert.Equal(t, "Who directed Alien?", set.Questions[0].Text)
	assert.Equal(t, 0, set.Questions[0].Correct)
}

func TestParseQuestionSet_ExtractsFromChattyResponse(t *testing.T) {
	raw := "Sure! Here are your trivia questions:\n```json\n" + validSetJSON + "\n```\nEnjoy the quiz!"

	set, err := ParseQuestionSet(raw)

	require.NoError(t, err)
	assert.Len(t, set.Questions, 1)
}

func TestParseQuestionSet_NoQuestionsObject(t *testing.T) {
	_, err := ParseQuestionSet("I cannot help with that request.")

	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestParseQuestionSet_EmptyInput(t *testing.T) {
	_, err := ParseQuestionSet("   ")

	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestParseQuestionSet_DropsMalformedQuestions(t *testing.T) {
	raw := `{"questions":[
		{"question":"Valid?","options":["A","B","C","D"],"correct":1,"difficulty":"easy"},
		{"question":"","options":["A","B"],"correct":0,"difficulty":"easy"},
		{"question":"Index out of range","options":["A","B"],"correct":5,"difficulty":"easy"},
		{"question":"Too few options","options":["A"],"correct":0,"difficulty":"easy"},
		{"question":"Three options","options":["A","B","C"],"correct":1,"difficulty":"easy"},
		{"question":"Five options","options":["A","B","C","D","E"],"correct":2,"difficulty":"easy"}
	]}`

	set, err := ParseQuestionSet(raw)

	require.NoError(t, err)
	require.Len(t, set.Questions, 1)
	assert.Equal(t, "Valid?", set.Questions[0].Text)
}

func TestParseQuestionSet_AllMalformedIsError(t *testing.T) {
	raw := `{"questions":[{"question":"","options":[],"correct":0}]}`

	_, err := ParseQuestionSet(raw)

	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestTruncate(t *testing.T) {
	set := &entity.QuestionSet{Questions: make([]entity.Question, 10)}

	assert.Len(t, Truncate(set, 7).Questions, 7)
	assert.Len(t, Truncate(set, 10).Questions, 10)
	assert.Len(t, Truncate(set, 21).Questions, 10)
	assert.Nil(t, Truncate(nil, 7))
}
