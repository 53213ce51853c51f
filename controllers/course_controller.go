package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/revisio/revisio-backend/models"
	"github.com/revisio/revisio-backend/services"
	"github.com/revisio/revisio-backend/ws"
)

const maxUploadSize = 20 * 1024 * 1024

// statusForIngestError traduit les erreurs sentinelles du pipeline en statut
// HTTP. Tout le reste part en 500.
func statusForIngestError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnsupportedMediaType),
		errors.Is(err, services.ErrInsufficientContent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// UploadCourse reçoit un fichier de cours en multipart, avec matière et
// chapitre facultatifs saisis à la main, et déroule le pipeline d'ingestion.
func UploadCourse(ing *services.Ingestor) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id invalide"})
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier fourni"})
			return
		}
		if file.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le fichier dépasse 20 Mo"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Lecture du fichier impossible"})
			return
		}
		defer src.Close()
		data, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Lecture du fichier impossible"})
			return
		}

		course, err := ing.Run(c.Request.Context(), services.IngestInput{
			UserID:      userID,
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Data:        data,
			Matiere:     c.PostForm("matiere"),
			Chapitre:    c.PostForm("chapitre"),
		})
		if err != nil {
			c.JSON(statusForIngestError(err), gin.H{"error": err.Error()})
			return
		}

		ws.BroadcastCourseListChanged()
		c.JSON(http.StatusOK, gin.H{"course": course})
	}
}

// ListCourses renvoie tous les cours de l'utilisateur, du plus récent au plus
// ancien.
func ListCourses(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var courses []models.Course
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func GetCourse(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var course models.Course
	if err := db.First(&course, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cours introuvable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"course": course})
}

type ManualCourseInput struct {
	Matiere     string `json:"matiere" binding:"required"`
	Chapitre    string `json:"chapitre" binding:"required"`
	ContentText string `json:"content_text"`
}

// CreateManualCourse enregistre un cours rédigé dans l'éditeur, sans fichier
// source (FileURL reste vide).
func CreateManualCourse(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id invalide"})
		return
	}

	var input ManualCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Veuillez remplir la matière et le chapitre"})
		return
	}

	course := models.Course{
		UserID:      userID,
		Matiere:     input.Matiere,
		Chapitre:    input.Chapitre,
		ContentText: input.ContentText,
	}
	if err := db.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Enregistrement du cours impossible"})
		return
	}

	ws.BroadcastCourseListChanged()
	c.JSON(http.StatusCreated, gin.H{"course": course})
}

type UpdateCourseInput struct {
	Matiere     string `json:"matiere" binding:"required"`
	Chapitre    string `json:"chapitre" binding:"required"`
	ContentText string `json:"content_text"`
}

// UpdateCourse remplace matière, chapitre et contenu. Le cache de version
// simplifiée est invalidé puisque le texte peut avoir changé.
func UpdateCourse(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var course models.Course
	if err := db.First(&course, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cours introuvable"})
		return
	}

	var input UpdateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Veuillez remplir la matière et le chapitre"})
		return
	}

	updates := map[string]interface{}{
		"matiere":         input.Matiere,
		"chapitre":        input.Chapitre,
		"content_text":    input.ContentText,
		"simplified_text": nil,
	}
	if err := db.Model(&course).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Mise à jour du cours impossible"})
		return
	}

	db.First(&course, "id = ?", course.ID)
	c.JSON(http.StatusOK, gin.H{"course": course})
}

// FileDeleter supprime un objet stocké à partir de son URL publique.
type FileDeleter interface {
	Delete(publicURL string) error
}

// DeleteCourse supprime le cours et ses flashcards/quiz associés, puis tente
// de retirer le fichier source du stockage (best-effort).
func DeleteCourse(deleter FileDeleter) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := c.MustGet("db").(*gorm.DB)
		userID := c.GetString("user_id")

		var course models.Course
		if err := db.First(&course, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cours introuvable"})
			return
		}

		if err := db.Where("course_id = ?", course.ID).Delete(&models.Flashcard{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Suppression des flashcards impossible"})
			return
		}
		if err := db.Where("course_id = ?", course.ID).Delete(&models.Quiz{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Suppression des quiz impossible"})
			return
		}
		if err := db.Delete(&course).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Suppression du cours impossible"})
			return
		}

		if course.FileURL != nil && deleter != nil {
			if err := deleter.Delete(*course.FileURL); err != nil {
				log.Printf("suppression du fichier stocké échouée: %v", err)
			}
		}

		ws.BroadcastCourseListChanged()
		c.JSON(http.StatusOK, gin.H{"message": "Cours supprimé"})
	}
}
