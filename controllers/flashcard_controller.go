package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/revisio/revisio-backend/models"
	"github.com/revisio/revisio-backend/services"
)

// GenerateFlashcards crée un lot de 5 à 15 cartes pour le cours et les insère
// toutes. Les générations successives s'accumulent : pas de déduplication ni
// de remplacement des lots précédents.
func GenerateFlashcards(fg *services.FlashcardGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := c.MustGet("db").(*gorm.DB)
		userID, err := uuid.Parse(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id invalide"})
			return
		}

		var course models.Course
		if err := db.First(&course, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cours introuvable"})
			return
		}

		if strings.TrimSpace(course.ContentText) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le cours n'a pas de contenu à partir duquel générer des flashcards"})
			return
		}

		cards, err := fg.Generate(c.Request.Context(), course.ContentText)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rows := make([]models.Flashcard, 0, len(cards))
		for _, card := range cards {
			rows = append(rows, models.Flashcard{
				CourseID: course.ID,
				UserID:   userID,
				Front:    card.Front,
				Back:     card.Back,
			})
		}
		if err := db.Create(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Enregistrement des flashcards impossible"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"count": len(rows)})
	}
}

func GetFlashcards(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var course models.Course
	if err := db.First(&course, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cours introuvable"})
		return
	}

	var cards []models.Flashcard
	if err := db.Where("course_id = ?", course.ID).Order("created_at ASC").Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"flashcards": cards})
}
