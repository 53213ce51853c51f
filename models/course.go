package models

import (
	"time"

	"github.com/google/uuid"
)

// Course est le matériel de cours d'un étudiant : soit extrait d'un fichier
// importé, soit rédigé à la main dans l'éditeur (FileURL vide dans ce cas).
type Course struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	// Matiere et Chapitre ne sont jamais vides : la classification retombe
	// sur "Autre" / "Sans titre" ou sur le nom du fichier.
	Matiere  string `gorm:"size:150;not null" json:"matiere"`
	Chapitre string `gorm:"size:255;not null" json:"chapitre"`

	ContentText    string  `gorm:"type:text" json:"content_text"`
	SimplifiedText *string `gorm:"type:text" json:"simplified_text,omitempty"`

	// FileURL n'est renseigné que si l'upload vers le stockage a réellement
	// réussi ; un échec de stockage laisse le champ vide.
	FileURL *string `gorm:"type:text" json:"file_url,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Flashcards []Flashcard `json:"flashcards,omitempty"`
	Quizzes    []Quiz      `json:"quizzes,omitempty"`
}
