package services

import "errors"

// Erreurs sentinelles du pipeline d'ingestion et des générateurs. Les
// contrôleurs les traduisent en statut HTTP + message sous la clé "error".
var (
	ErrUnsupportedMediaType = errors.New("type de fichier non supporté")
	ErrExtractionFailed     = errors.New("extraction du texte impossible")
	ErrInsufficientContent  = errors.New("texte extrait trop court")
	ErrGenerationFailed     = errors.New("la génération IA a échoué")
	ErrPersistenceFailed    = errors.New("enregistrement en base impossible")
)
