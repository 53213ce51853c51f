package models

import (
	"time"

	"github.com/google/uuid"
)

type Flashcard struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course   Course    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	UserID   uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User     User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Front string `gorm:"type:text;not null" json:"front"`
	Back  string `gorm:"type:text;not null" json:"back"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
