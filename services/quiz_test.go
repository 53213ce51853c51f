package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validQuizJSON = `[
  {
    "question": "En quelle année a eu lieu la prise de la Bastille ?",
    "choices": ["1789", "1793", "1776", "1804"],
    "correctIndex": 0,
    "explanation": "La Bastille est prise le 14 juillet 1789."
  },
  {
    "question": "Qui était roi de France en 1789 ?",
    "choices": ["Louis XIV", "Louis XV", "Louis XVI", "Napoléon"],
    "correctIndex": 2,
    "explanation": "Louis XVI règne de 1774 à 1792."
  }
]`

func TestQuizGenerateParsesFencedReply(t *testing.T) {
	gen := &fakeGenerator{textReply: "```json\n" + validQuizJSON + "\n```"}
	qg := NewQuizGenerator(gen)

	questions, err := qg.Generate(context.Background(), "texte du cours")
	require.NoError(t, err)
	require.Len(t, questions, 2)
	for _, q := range questions {
		assert.Len(t, q.Choices, 4)
		assert.GreaterOrEqual(t, q.CorrectIndex, 0)
		assert.LessOrEqual(t, q.CorrectIndex, 3)
		assert.NotEmpty(t, q.Question)
	}
}

func TestQuizGenerateDiscardsMalformedQuestions(t *testing.T) {
	gen := &fakeGenerator{textReply: `[
	  {"question": "OK ?", "choices": ["a", "b", "c", "d"], "correctIndex": 1, "explanation": "oui"},
	  {"question": "Trois choix", "choices": ["a", "b", "c"], "correctIndex": 0, "explanation": ""},
	  {"question": "Index hors bornes", "choices": ["a", "b", "c", "d"], "correctIndex": 4, "explanation": ""},
	  {"question": "", "choices": ["a", "b", "c", "d"], "correctIndex": 0, "explanation": ""}
	]`}
	qg := NewQuizGenerator(gen)

	questions, err := qg.Generate(context.Background(), "texte")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "OK ?", questions[0].Question)
}

func TestQuizGenerateAllMalformedFails(t *testing.T) {
	gen := &fakeGenerator{textReply: `[{"question": "Trois choix", "choices": ["a", "b", "c"], "correctIndex": 0}]`}
	qg := NewQuizGenerator(gen)

	_, err := qg.Generate(context.Background(), "texte")
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestQuizGenerateUnparseableReplyFails(t *testing.T) {
	gen := &fakeGenerator{textReply: "Désolé, je ne peux pas générer de quiz."}
	qg := NewQuizGenerator(gen)

	_, err := qg.Generate(context.Background(), "texte")
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestQuizGenerateModelErrorFails(t *testing.T) {
	gen := &fakeGenerator{textErr: errStoreDown}
	qg := NewQuizGenerator(gen)

	_, err := qg.Generate(context.Background(), "texte")
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestQuizGenerateTruncatesCourseText(t *testing.T) {
	gen := &fakeGenerator{textReply: validQuizJSON}
	qg := NewQuizGenerator(gen)

	long := make([]byte, 100000)
	for i := range long {
		long[i] = 'x'
	}
	_, err := qg.Generate(context.Background(), string(long))
	require.NoError(t, err)
	if assert.Len(t, gen.prompts, 1) {
		assert.Less(t, len(gen.prompts[0]), quizTextLimit+1000)
	}
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `[1, 2]`, StripCodeFences("```json\n[1, 2]\n```"))
	assert.Equal(t, `[1, 2]`, StripCodeFences("```\n[1, 2]\n```"))
	assert.Equal(t, `[1, 2]`, StripCodeFences("[1, 2]"))
}
