package config

import "os"

// AIConfig regroupe les paramètres du fournisseur de génération. Les adaptateurs
// reçoivent cet objet à la construction : pas de lecture d'environnement cachée
// dans les services, ce qui permet de les tester avec des fakes.
type AIConfig struct {
	APIKey    string
	BaseURL   string
	ModelName string
}

// Enabled indique si un appel modèle est possible. Sans clé, la classification
// est sautée et les générateurs répondent en erreur.
func (c AIConfig) Enabled() bool { return c.APIKey != "" }

// StorageConfig décrit le bucket Supabase Storage des fichiers de cours.
type StorageConfig struct {
	URL    string
	Key    string
	Bucket string
}

func LoadAIConfig() AIConfig {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return AIConfig{
		APIKey:    os.Getenv("GEMINI_API_KEY"),
		BaseURL:   os.Getenv("GEMINI_BASE_URL"),
		ModelName: model,
	}
}

func LoadStorageConfig() StorageConfig {
	bucket := os.Getenv("SUPABASE_BUCKET")
	if bucket == "" {
		bucket = "course-files"
	}
	return StorageConfig{
		URL:    os.Getenv("SUPABASE_URL"),
		Key:    os.Getenv("SUPABASE_KEY"),
		Bucket: bucket,
	}
}
