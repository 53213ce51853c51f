package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Quiz conserve la série de questions générée pour un cours sous forme de blob
// JSON. Seul le quiz le plus récent d'un cours est renvoyé par l'API ; les
// anciens restent en base.
type Quiz struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course   Course    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	UserID   uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User     User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	// Tableau de questions : {question, choices[4], correctIndex, explanation}
	Questions datatypes.JSON `gorm:"type:jsonb" json:"questions"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
