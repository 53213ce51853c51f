package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardsJSON(n int) string {
	cards := make([]CardContent, n)
	for i := range cards {
		cards[i] = CardContent{
			Front: fmt.Sprintf("Question %d ?", i+1),
			Back:  fmt.Sprintf("Réponse %d", i+1),
		}
	}
	b, _ := json.Marshal(cards)
	return string(b)
}

func TestFlashcardGenerateWithinBounds(t *testing.T) {
	for _, n := range []int{5, 10, 15} {
		t.Run(fmt.Sprintf("%d cartes", n), func(t *testing.T) {
			gen := &fakeGenerator{constrainedReply: cardsJSON(n)}
			fg := NewFlashcardGenerator(gen)

			cards, err := fg.Generate(context.Background(), "texte du cours")
			require.NoError(t, err)
			assert.Len(t, cards, n)
		})
	}
}

func TestFlashcardGenerateOutOfBoundsFails(t *testing.T) {
	for _, n := range []int{0, 1, 4, 16, 30} {
		t.Run(fmt.Sprintf("%d cartes", n), func(t *testing.T) {
			gen := &fakeGenerator{constrainedReply: cardsJSON(n)}
			fg := NewFlashcardGenerator(gen)

			_, err := fg.Generate(context.Background(), "texte")
			require.ErrorIs(t, err, ErrGenerationFailed)
		})
	}
}

func TestFlashcardGenerateIncompleteCardFails(t *testing.T) {
	gen := &fakeGenerator{constrainedReply: `[
	  {"front": "Q1", "back": "R1"},
	  {"front": "Q2", "back": ""},
	  {"front": "Q3", "back": "R3"},
	  {"front": "Q4", "back": "R4"},
	  {"front": "Q5", "back": "R5"}
	]`}
	fg := NewFlashcardGenerator(gen)

	_, err := fg.Generate(context.Background(), "texte")
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestFlashcardGenerateModelErrorFails(t *testing.T) {
	gen := &fakeGenerator{constrainedErr: errStoreDown}
	fg := NewFlashcardGenerator(gen)

	_, err := fg.Generate(context.Background(), "texte")
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestFlashcardSchemaShape(t *testing.T) {
	gen := &fakeGenerator{constrainedReply: cardsJSON(10)}
	fg := NewFlashcardGenerator(gen)

	_, err := fg.Generate(context.Background(), "texte")
	require.NoError(t, err)

	schema := gen.lastSchema
	require.NotNil(t, schema)
	assert.Equal(t, genai.TypeArray, schema.Type)
	require.NotNil(t, schema.Items)
	assert.ElementsMatch(t, []string{"front", "back"}, schema.Items.Required)

	// le schéma ne sait pas exprimer les bornes : elles vivent dans le prompt
	if assert.Len(t, gen.prompts, 1) {
		assert.Contains(t, gen.prompts[0], "au minimum 5")
		assert.Contains(t, gen.prompts[0], "au maximum 15")
	}
}
