package triviagen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sammyduzit/movieweb-app/internal/domain/entity"
)

func TestBuildMoviePrompt_SkipsEmptyFacts(t *testing.T) {
	prompt := buildMoviePrompt(&entity.Movie{Title: "Alien"})

	assert.Contains(t, prompt, "Title: Alien")
	assert.NotContains(t, prompt, "Director:")
	assert.NotContains(t, prompt, "Genre:")
}

func TestBuildCollectionPrompt_CapsDigestAtTenMovies(t *testing.T) {
	movies := make([]entity.Movie, 14)
	for i := range movies {
		movies[i] = entity.Movie{Title: fmt.Sprintf("Film %02d", i+1)}
	}

	prompt := buildCollectionPrompt(movies)

	assert.Contains(t, prompt, "Title: Film 10")
	assert.NotContains(t, prompt, "Title: Film 11")
	assert.Equal(t, collectionDigestLimit, strings.Count(prompt, "Title: Film"))
	// общее число фильмов в коллекции при этом не искажается
	assert.Contains(t, prompt, "collection of 14 movies")
}
