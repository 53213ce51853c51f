package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/revisio/revisio-backend/models"
	"github.com/revisio/revisio-backend/services"
)

// GenerateQuiz produit 5 QCM à partir du texte du cours et les persiste en un
// seul blob JSON. Un texte vide est refusé avant tout appel modèle.
func GenerateQuiz(qg *services.QuizGenerator) gin.HandlerFunc {
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
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le cours n'a pas de contenu à partir duquel générer un quiz"})
			return
		}

		questions, err := qg.Generate(c.Request.Context(), course.ContentText)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		blob, err := json.Marshal(questions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Sérialisation du quiz impossible"})
			return
		}

		quiz := models.Quiz{
			CourseID:  course.ID,
			UserID:    userID,
			Questions: datatypes.JSON(blob),
		}
		if err := db.Create(&quiz).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Enregistrement du quiz impossible"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"quiz": quiz})
	}
}

// GetLatestQuiz renvoie le quiz le plus récent du cours. Les quiz plus anciens
// restent en base mais ne sont pas exposés.
func GetLatestQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var course models.Course
	if err := db.First(&course, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cours introuvable"})
		return
	}

	var quiz models.Quiz
	if err := db.Where("course_id = ?", course.ID).Order("created_at DESC").First(&quiz).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucun quiz pour ce cours"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz": quiz})
}
