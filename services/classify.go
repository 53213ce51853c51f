package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Valeurs de repli quand la classification ne donne rien d'exploitable.
const (
	DefaultMatiere  = "Autre"
	DefaultChapitre = "Sans titre"
)

const classifyExcerptLimit = 2000

// Classifier devine la matière et le chapitre d'un texte de cours via le
// modèle. La classification est purement consultative : elle ne renvoie jamais
// d'erreur, au pire les valeurs de repli.
type Classifier struct {
	gen     Generator
	enabled bool
}

// NewClassifier construit le classifieur. Avec enabled à false (pas de clé
// API), Classify renvoie directement les valeurs de repli sans appel réseau.
func NewClassifier(gen Generator, enabled bool) *Classifier {
	return &Classifier{gen: gen, enabled: enabled}
}

func (cl *Classifier) Enabled() bool { return cl != nil && cl.enabled }

// Classify renvoie (matiere, chapitre). Jamais d'erreur : un échec d'appel ou
// de parsing retombe sur "Autre" / "Sans titre".
func (cl *Classifier) Classify(ctx context.Context, excerpt string) (string, string) {
	if !cl.Enabled() {
		return DefaultMatiere, DefaultChapitre
	}

	excerpt = truncateText(excerpt, classifyExcerptLimit)

	prompt := fmt.Sprintf(`Analyse le texte de cours suivant et extrais : 1) La matière scolaire (ex: Mathématiques, Français, Histoire). 2) Le titre du chapitre ou le thème principal.
Réponds UNIQUEMENT au format JSON : { "matiere": "...", "chapitre": "..." }

Début du texte :
%s`, excerpt)

	reply, err := cl.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("classification échouée: %v", err)
		return DefaultMatiere, DefaultChapitre
	}

	raw := firstJSONObject(reply)
	if raw == "" {
		return DefaultMatiere, DefaultChapitre
	}

	var meta struct {
		Matiere  string `json:"matiere"`
		Chapitre string `json:"chapitre"`
	}
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		log.Printf("réponse de classification illisible: %v", err)
		return DefaultMatiere, DefaultChapitre
	}

	matiere := strings.TrimSpace(meta.Matiere)
	chapitre := strings.TrimSpace(meta.Chapitre)
	if matiere == "" {
		matiere = DefaultMatiere
	}
	if chapitre == "" {
		chapitre = DefaultChapitre
	}
	return matiere, chapitre
}

// firstJSONObject isole le premier objet {...} équilibré d'une réponse libre
// du modèle. Renvoie "" si aucun objet complet n'est trouvé.
func firstJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
