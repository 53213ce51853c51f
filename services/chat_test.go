package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatStreamChunks(t *testing.T) {
	gen := &fakeGenerator{chunks: []string{"La photosynthèse ", "transforme la lumière ", "en énergie chimique."}}
	cs := NewChatService(gen)

	var got strings.Builder
	err := cs.Stream(context.Background(), []ChatMessage{{Role: "user", Content: "C'est quoi la photosynthèse ?"}}, "cours de SVT", func(chunk string) error {
		got.WriteString(chunk)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "La photosynthèse transforme la lumière en énergie chimique.", got.String())
}

func TestChatSystemPromptEmbedsCourse(t *testing.T) {
	gen := &fakeGenerator{}
	cs := NewChatService(gen)

	err := cs.Stream(context.Background(), []ChatMessage{{Role: "user", Content: "?"}}, "Le théorème de Pythagore", func(string) error { return nil })
	require.NoError(t, err)
	assert.Contains(t, gen.lastSystem, "Le théorème de Pythagore")
}

func TestChatContextTruncated(t *testing.T) {
	gen := &fakeGenerator{}
	cs := NewChatService(gen)

	err := cs.Stream(context.Background(), []ChatMessage{{Role: "user", Content: "?"}}, strings.Repeat("a", 50000), func(string) error { return nil })
	require.NoError(t, err)
	assert.Less(t, len(gen.lastSystem), chatContextLimit+1000)
}

func TestChatEmptyCoursePlaceholder(t *testing.T) {
	gen := &fakeGenerator{}
	cs := NewChatService(gen)

	err := cs.Stream(context.Background(), []ChatMessage{{Role: "user", Content: "?"}}, "", func(string) error { return nil })
	require.NoError(t, err)
	assert.Contains(t, gen.lastSystem, "Aucun contenu disponible.")
}
