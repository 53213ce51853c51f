package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateText(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"court inchangé", "bonjour", 100, "bonjour"},
		{"ascii coupé à la limite", "abcdef", 3, "abc"},
		{"rune à cheval sur la limite", "aé", 2, "a"},
		{"rune entière conservée", "aé", 3, "aé"},
		{"limite zéro", "été", 0, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, truncateText(tc.in, tc.limit), tc.name)
	}
}

// Un texte accentué plus long que la limite ne doit jamais produire un prompt
// invalide en UTF-8 : le transport gRPC refuse la requête sinon. Le "x" de
// tête décale les "é" pour que la limite tombe au milieu d'une rune.
func TestQuizPromptValidUTF8OnAccentedCourse(t *testing.T) {
	gen := &fakeGenerator{textReply: validQuizJSON}
	qg := NewQuizGenerator(gen)

	_, err := qg.Generate(context.Background(), "x"+strings.Repeat("é", 20000))
	require.NoError(t, err)
	if assert.Len(t, gen.prompts, 1) {
		assert.True(t, utf8.ValidString(gen.prompts[0]))
	}
}

func TestClassifyPromptValidUTF8OnAccentedCourse(t *testing.T) {
	gen := &fakeGenerator{textReply: `{"matiere": "Histoire", "chapitre": "Révolution"}`}
	cl := NewClassifier(gen, true)

	cl.Classify(context.Background(), "x"+strings.Repeat("é", 3000))
	if assert.Len(t, gen.prompts, 1) {
		assert.True(t, utf8.ValidString(gen.prompts[0]))
	}
}

func TestSimplifyPromptValidUTF8OnAccentedCourse(t *testing.T) {
	gen := &fakeGenerator{textReply: "Version simplifiée."}
	s := NewSimplifier(gen)

	_, err := s.Simplify(context.Background(), "x"+strings.Repeat("é", 8000))
	require.NoError(t, err)
	if assert.Len(t, gen.prompts, 1) {
		assert.True(t, utf8.ValidString(gen.prompts[0]))
	}
}

func TestChatSystemValidUTF8OnAccentedCourse(t *testing.T) {
	gen := &fakeGenerator{chunks: []string{"ok"}}
	cs := NewChatService(gen)

	err := cs.Stream(context.Background(), []ChatMessage{{Role: "user", Content: "?"}},
		"x"+strings.Repeat("é", 15000), func(string) error { return nil })
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(gen.lastSystem))
}

func TestFlashcardPromptValidUTF8OnAccentedCourse(t *testing.T) {
	gen := &fakeGenerator{constrainedReply: cardsJSON(5)}
	fg := NewFlashcardGenerator(gen)

	_, err := fg.Generate(context.Background(), "x"+strings.Repeat("é", 8000))
	require.NoError(t, err)
	if assert.Len(t, gen.prompts, 1) {
		assert.True(t, utf8.ValidString(gen.prompts[0]))
	}
}
