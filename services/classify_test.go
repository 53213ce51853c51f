package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyParsesFirstJSONObject(t *testing.T) {
	gen := &fakeGenerator{textReply: "Voici ma réponse :\n{ \"matiere\": \"Histoire\", \"chapitre\": \"La Guerre Froide\" }\nBonne révision !"}
	cl := NewClassifier(gen, true)

	matiere, chapitre := cl.Classify(context.Background(), "le mur de Berlin...")
	assert.Equal(t, "Histoire", matiere)
	assert.Equal(t, "La Guerre Froide", chapitre)
}

func TestClassifyNoJSONFallsBack(t *testing.T) {
	gen := &fakeGenerator{textReply: "Je ne peux pas répondre en JSON, désolé."}
	cl := NewClassifier(gen, true)

	matiere, chapitre := cl.Classify(context.Background(), "texte")
	assert.Equal(t, DefaultMatiere, matiere)
	assert.Equal(t, DefaultChapitre, chapitre)
}

func TestClassifyInvalidJSONFallsBack(t *testing.T) {
	gen := &fakeGenerator{textReply: `{ matiere: Histoire }`}
	cl := NewClassifier(gen, true)

	matiere, chapitre := cl.Classify(context.Background(), "texte")
	assert.Equal(t, DefaultMatiere, matiere)
	assert.Equal(t, DefaultChapitre, chapitre)
}

func TestClassifyModelErrorFallsBack(t *testing.T) {
	gen := &fakeGenerator{textErr: errStoreDown}
	cl := NewClassifier(gen, true)

	matiere, chapitre := cl.Classify(context.Background(), "texte")
	assert.Equal(t, DefaultMatiere, matiere)
	assert.Equal(t, DefaultChapitre, chapitre)
}

func TestClassifyDisabledSkipsModel(t *testing.T) {
	gen := &fakeGenerator{textReply: `{"matiere": "Maths", "chapitre": "Dérivées"}`}
	cl := NewClassifier(gen, false)

	matiere, chapitre := cl.Classify(context.Background(), "texte")
	assert.Equal(t, DefaultMatiere, matiere)
	assert.Equal(t, DefaultChapitre, chapitre)
	assert.Empty(t, gen.prompts)
}

func TestClassifyBlankFieldsSubstituted(t *testing.T) {
	gen := &fakeGenerator{textReply: `{"matiere": "  ", "chapitre": ""}`}
	cl := NewClassifier(gen, true)

	matiere, chapitre := cl.Classify(context.Background(), "texte")
	assert.Equal(t, DefaultMatiere, matiere)
	assert.Equal(t, DefaultChapitre, chapitre)
}

func TestClassifyTruncatesExcerpt(t *testing.T) {
	gen := &fakeGenerator{textReply: `{"matiere": "SVT", "chapitre": "La cellule"}`}
	cl := NewClassifier(gen, true)

	cl.Classify(context.Background(), strings.Repeat("a", 10000))
	if assert.Len(t, gen.prompts, 1) {
		assert.Less(t, len(gen.prompts[0]), 3000)
	}
}

func TestFirstJSONObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`avant {"a": 1} après`, `{"a": 1}`},
		{`{"a": {"b": 2}}`, `{"a": {"b": 2}}`},
		{`{"a": "accolade } dans une chaîne"}`, `{"a": "accolade } dans une chaîne"}`},
		{`pas d'objet ici`, ``},
		{`{"incomplet": `, ``},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, firstJSONObject(tc.in), "entrée: %s", tc.in)
	}
}
