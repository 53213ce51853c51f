package models

import (
	"time"

	"github.com/google/uuid"
)

// Performance est une note saisie à la main par l'étudiant (sur 20).
// Immuable une fois créée.
type Performance struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Matiere string    `gorm:"size:150;not null" json:"matiere"`
	Note    float64   `gorm:"type:numeric(4,2);not null" json:"note"`
	Date    time.Time `gorm:"not null" json:"date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
