package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/revisio/revisio-backend/models"
)

// ObjectStore est le stockage binaire vu par le pipeline. Upload renvoie
// l'URL publique de l'objet.
type ObjectStore interface {
	Upload(objectPath string, data []byte, contentType string) (string, error)
}

// IngestionPolicy fixe explicitement quelles étapes du pipeline sont fatales.
// Les choix étaient auparavant dispersés dans chaque variante d'upload ; ils
// sont regroupés ici en un seul objet valeur.
type IngestionPolicy struct {
	// MinContentLength : longueur minimale du texte extrait. 0 désactive le
	// contrôle.
	MinContentLength int
	// StorageFailureFatal : si false, un échec de stockage est journalisé et
	// le pipeline continue sur le buffer en mémoire, FileURL restant vide.
	StorageFailureFatal bool
}

func DefaultIngestionPolicy() IngestionPolicy {
	return IngestionPolicy{MinContentLength: 50}
}

// IngestInput est un fichier reçu par l'endpoint d'upload, avec d'éventuelles
// métadonnées saisies à la main qui priment toujours sur la classification.
type IngestInput struct {
	UserID      uuid.UUID
	Filename    string
	ContentType string
	Data        []byte
	Matiere     string
	Chapitre    string
}

// Ingestor enchaîne stockage → extraction → classification → persistance.
// Séquence strictement linéaire, un seul aller-retour par étape.
type Ingestor struct {
	db         *gorm.DB
	store      ObjectStore
	classifier *Classifier
	policy     IngestionPolicy
}

func NewIngestor(db *gorm.DB, store ObjectStore, classifier *Classifier, policy IngestionPolicy) *Ingestor {
	return &Ingestor{db: db, store: store, classifier: classifier, policy: policy}
}

// Run exécute le pipeline pour un fichier. Les effets déjà produits (binaire
// stocké, coût modèle) ne sont pas annulés si une étape ultérieure échoue.
func (ing *Ingestor) Run(ctx context.Context, in IngestInput) (*models.Course, error) {
	// 1. Stockage du binaire. Non bloquant par défaut : l'extraction se fait
	// de toute façon sur le buffer en mémoire. L'URL n'est conservée que si
	// l'upload a réellement réussi, pour ne pas persister de lien mort.
	var fileURL *string
	objectPath := fmt.Sprintf("%s/%d%s", in.UserID, time.Now().UnixMilli(), filepath.Ext(in.Filename))
	url, err := ing.store.Upload(objectPath, in.Data, in.ContentType)
	if err != nil {
		if ing.policy.StorageFailureFatal {
			return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
		}
		log.Printf("stockage du fichier échoué (on continue): %v", err)
	} else {
		fileURL = &url
	}

	// 2. Extraction du texte. Fatal : rien n'est persisté en cas d'échec.
	text, err := ExtractText(in.Data, in.ContentType)
	if err != nil {
		return nil, err
	}

	if ing.policy.MinContentLength > 0 && len(text) < ing.policy.MinContentLength {
		return nil, fmt.Errorf("%w: %d caractères extraits", ErrInsufficientContent, len(text))
	}

	// 3. Classification. Jamais fatale. Les valeurs manuelles priment et ne
	// sont jamais écrasées par le modèle.
	matiere, chapitre := in.Matiere, in.Chapitre
	switch {
	case matiere != "" && chapitre != "":
		// tout est fourni, pas d'appel modèle
	case ing.classifier.Enabled():
		m, c := ing.classifier.Classify(ctx, text)
		if matiere == "" {
			matiere = m
		}
		if chapitre == "" {
			chapitre = c
		}
	default:
		// pas de clé API : le chapitre reprend le nom du fichier
		if matiere == "" {
			matiere = DefaultMatiere
		}
		if chapitre == "" {
			chapitre = baseName(in.Filename)
		}
	}
	if matiere == "" {
		matiere = DefaultMatiere
	}
	if chapitre == "" {
		chapitre = DefaultChapitre
	}

	// 4. Persistance.
	course := models.Course{
		UserID:      in.UserID,
		Matiere:     matiere,
		Chapitre:    chapitre,
		ContentText: text,
		FileURL:     fileURL,
	}
	if err := ing.db.WithContext(ctx).Create(&course).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return &course, nil
}

func baseName(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." {
		return DefaultChapitre
	}
	return name
}
