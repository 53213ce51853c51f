package services

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/revisio/revisio-backend/config"
)

// ChatMessage est un tour de conversation côté client ("user" ou "assistant").
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator est l'interface des appels modèle. Les contrôleurs et le pipeline
// ne connaissent qu'elle, ce qui permet de brancher un fake dans les tests.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateConstrained(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	StreamChat(ctx context.Context, system string, history []ChatMessage, send func(chunk string) error) error
}

// GeminiClient implémente Generator avec l'API Gemini. La configuration
// (clé, endpoint, nom du modèle) est fournie à la construction.
type GeminiClient struct {
	cfg config.AIConfig
}

func NewGeminiClient(cfg config.AIConfig) *GeminiClient {
	return &GeminiClient{cfg: cfg}
}

func (g *GeminiClient) newClient(ctx context.Context) (*genai.Client, error) {
	opts := []option.ClientOption{option.WithAPIKey(g.cfg.APIKey)}
	if g.cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(g.cfg.BaseURL))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("création du client Gemini impossible: %v", err)
	}
	return client, nil
}

func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	client, err := g.newClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(g.cfg.ModelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("erreur Gemini: %v", err)
	}
	return firstPart(resp)
}

// GenerateConstrained force la réponse au schéma JSON fourni (l'équivalent
// d'une sortie structurée validée côté appel).
func (g *GeminiClient) GenerateConstrained(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	client, err := g.newClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(g.cfg.ModelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("erreur Gemini: %v", err)
	}
	return firstPart(resp)
}

// StreamChat rejoue l'historique complet à chaque appel (aucun état côté
// serveur) et pousse la réponse morceau par morceau via send.
func (g *GeminiClient) StreamChat(ctx context.Context, system string, history []ChatMessage, send func(chunk string) error) error {
	client, err := g.newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	model := client.GenerativeModel(g.cfg.ModelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	cs := model.StartChat()
	last := ""
	for i, msg := range history {
		if i == len(history)-1 && msg.Role == "user" {
			last = msg.Content
			break
		}
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	if last == "" {
		return fmt.Errorf("le dernier message doit venir de l'utilisateur")
	}

	iter := cs.SendMessageStream(ctx, genai.Text(last))
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("erreur Gemini: %v", err)
		}
		chunk, err := firstPart(resp)
		if err != nil {
			continue
		}
		if err := send(chunk); err != nil {
			return err
		}
	}
}

func firstPart(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini n'a pas renvoyé de résultat exploitable")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
