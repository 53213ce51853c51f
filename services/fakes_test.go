package services

import (
	"context"
	"errors"

	"github.com/google/generative-ai-go/genai"
)

// fakeGenerator remplace l'appel Gemini dans les tests : il rejoue des
// réponses préparées et enregistre les prompts reçus.
type fakeGenerator struct {
	textReply        string
	textErr          error
	constrainedReply string
	constrainedErr   error
	chunks           []string
	streamErr        error

	prompts    []string
	lastSystem string
	lastSchema *genai.Schema
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.textReply, f.textErr
}

func (f *fakeGenerator) GenerateConstrained(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.lastSchema = schema
	return f.constrainedReply, f.constrainedErr
}

func (f *fakeGenerator) StreamChat(ctx context.Context, system string, history []ChatMessage, send func(chunk string) error) error {
	f.lastSystem = system
	if f.streamErr != nil {
		return f.streamErr
	}
	for _, chunk := range f.chunks {
		if err := send(chunk); err != nil {
			return err
		}
	}
	return nil
}

// fakeStore simule le stockage binaire.
type fakeStore struct {
	err   error
	paths []string
}

func (f *fakeStore) Upload(objectPath string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.paths = append(f.paths, objectPath)
	return "https://storage.example.com/object/public/course-files/" + objectPath, nil
}

var errStoreDown = errors.New("bucket indisponible")
