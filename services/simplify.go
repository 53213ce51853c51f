package services

import (
	"context"
	"fmt"
)

const simplifyTextLimit = 10000

type Simplifier struct {
	gen Generator
}

func NewSimplifier(gen Generator) *Simplifier {
	return &Simplifier{gen: gen}
}

// Simplify reformule le cours en version claire et structurée. Un seul
// aller-retour ; la mise en cache sur le cours est du ressort de l'appelant.
func (s *Simplifier) Simplify(ctx context.Context, courseText string) (string, error) {
	courseText = truncateText(courseText, simplifyTextLimit)

	prompt := fmt.Sprintf(`Tu es un tuteur pédagogique. Reformule le cours suivant de manière simplifiée, claire et structurée pour un élève qui a des difficultés à comprendre. Utilise des listes à puces et un ton encourageant.

Cours :
%s`, courseText)

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return text, nil
}
