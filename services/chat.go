package services

import (
	"context"
	"fmt"
)

const chatContextLimit = 20000

type ChatService struct {
	gen Generator
}

func NewChatService(gen Generator) *ChatService {
	return &ChatService{gen: gen}
}

// Stream répond à la dernière question de l'historique. Sans aucune mémoire
// côté serveur : le texte complet du cours est renvoyé en préfixe système à
// chaque tour, tronqué à 20 000 caractères.
func (cs *ChatService) Stream(ctx context.Context, history []ChatMessage, courseContent string, send func(chunk string) error) error {
	if courseContent == "" {
		courseContent = "Aucun contenu disponible."
	}
	courseContent = truncateText(courseContent, chatContextLimit)

	system := fmt.Sprintf(`Tu es un assistant de révision. Tu aides un élève à réviser un cours précis.

Voici le contenu du cours :
---
%s
---

Réponds aux questions de l'élève en t'appuyant d'abord sur ce contenu.
Si la réponse n'est pas dans le cours, tu peux utiliser tes connaissances générales en précisant que ce n'est pas explicitement dans les notes.
Sois encourageant, concis et pédagogue.`, courseContent)

	return cs.gen.StreamChat(ctx, system, history, send)
}
