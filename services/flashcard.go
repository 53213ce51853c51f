package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

const (
	flashcardTextLimit = 10000
	flashcardMin       = 5
	flashcardMax       = 15
)

// CardContent est une paire recto/verso produite par le générateur, avant
// insertion en base.
type CardContent struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type FlashcardGenerator struct {
	gen Generator
}

func NewFlashcardGenerator(gen Generator) *FlashcardGenerator {
	return &FlashcardGenerator{gen: gen}
}

// flashcardSchema contraint la sortie du modèle : tableau d'objets
// {front, back}, chaînes obligatoires. Les bornes 5..15 ne sont pas
// exprimables dans le schéma ; elles sont annoncées dans le prompt et
// vérifiées après parsing.
func flashcardSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"front": {Type: genai.TypeString, Description: "La question ou le terme au recto de la carte"},
				"back":  {Type: genai.TypeString, Description: "La réponse ou la définition au verso"},
			},
			Required: []string{"front", "back"},
		},
	}
}

// Generate produit entre 5 et 15 flashcards, ou échoue. Une réponse hors
// bornes après parsing est refusée, jamais tronquée ni complétée.
func (fg *FlashcardGenerator) Generate(ctx context.Context, courseText string) ([]CardContent, error) {
	courseText = truncateText(courseText, flashcardTextLimit)

	prompt := fmt.Sprintf(`Génère 10 flashcards de révision active à partir du contenu de cours suivant (au minimum %d, au maximum %d).
Concentre-toi sur les concepts clés, les dates, les définitions et les relations importantes.
Le recto doit rester concis (question), le verso clair (réponse).

Contenu du cours :
%s`, flashcardMin, flashcardMax, courseText)

	reply, err := fg.gen.GenerateConstrained(ctx, prompt, flashcardSchema())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	var cards []CardContent
	if err := json.Unmarshal([]byte(StripCodeFences(reply)), &cards); err != nil {
		return nil, fmt.Errorf("%w: réponse JSON illisible: %v", ErrGenerationFailed, err)
	}

	if len(cards) < flashcardMin || len(cards) > flashcardMax {
		return nil, fmt.Errorf("%w: %d cartes hors des bornes [%d,%d]", ErrGenerationFailed, len(cards), flashcardMin, flashcardMax)
	}
	for _, c := range cards {
		if c.Front == "" || c.Back == "" {
			return nil, fmt.Errorf("%w: carte incomplète dans la réponse", ErrGenerationFailed)
		}
	}
	return cards, nil
}
