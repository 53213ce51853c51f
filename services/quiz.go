package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const quizTextLimit = 15000

// QuizQuestion est une question de QCM telle que persistée dans le blob JSON
// d'un quiz.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

type QuizGenerator struct {
	gen Generator
}

func NewQuizGenerator(gen Generator) *QuizGenerator {
	return &QuizGenerator{gen: gen}
}

// Generate demande 5 QCM au modèle à partir du texte du cours. Les questions
// mal formées (pas exactement 4 choix, index hors [0,3]) sont écartées ; si
// rien d'exploitable ne reste, ErrGenerationFailed.
func (qg *QuizGenerator) Generate(ctx context.Context, courseText string) ([]QuizQuestion, error) {
	courseText = truncateText(courseText, quizTextLimit)

	prompt := fmt.Sprintf(`Tu es un professeur expert. À partir du texte de cours suivant, génère 5 questions de type QCM (Choix Multiples) pour tester la compréhension d'un élève.

Format de sortie JSON strict :
[
  {
    "question": "L'intitulé de la question",
    "choices": ["Choix A", "Choix B", "Choix C", "Choix D"],
    "correctIndex": 0,
    "explanation": "Brève explication de la réponse"
  }
]

Texte du cours :
%s`, courseText)

	reply, err := qg.gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	var questions []QuizQuestion
	if err := json.Unmarshal([]byte(StripCodeFences(reply)), &questions); err != nil {
		return nil, fmt.Errorf("%w: réponse JSON illisible: %v", ErrGenerationFailed, err)
	}

	valid := questions[:0]
	for _, q := range questions {
		if q.Question == "" || len(q.Choices) != 4 {
			continue
		}
		if q.CorrectIndex < 0 || q.CorrectIndex > 3 {
			continue
		}
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: aucune question exploitable", ErrGenerationFailed)
	}
	return valid, nil
}

// StripCodeFences retire un éventuel habillage markdown ```json ... ``` de la
// réponse du modèle.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
