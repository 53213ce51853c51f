package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/revisio/revisio-backend/models"
	"github.com/revisio/revisio-backend/services"
)

// SimplifyCourse renvoie une version simplifiée du cours. Le résultat est mis
// en cache sur le cours : les appels suivants resservent la version stockée
// tant que le contenu n'a pas été modifié.
func SimplifyCourse(sp *services.Simplifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := c.MustGet("db").(*gorm.DB)
		userID := c.GetString("user_id")

		var course models.Course
		if err := db.First(&course, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cours introuvable"})
			return
		}

		if course.SimplifiedText != nil && *course.SimplifiedText != "" {
			c.JSON(http.StatusOK, gin.H{"content": *course.SimplifiedText})
			return
		}

		simplified, err := sp.Simplify(c.Request.Context(), course.ContentText)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&course).Update("simplified_text", simplified).Error; err != nil {
			// la génération a réussi, on la renvoie malgré l'échec du cache
			c.JSON(http.StatusOK, gin.H{"content": simplified})
			return
		}
		c.JSON(http.StatusOK, gin.H{"content": simplified})
	}
}

type ChatInput struct {
	Messages      []services.ChatMessage `json:"messages" binding:"required"`
	CourseContent string                 `json:"course_content"`
}

// ChatWithCourse répond en flux SSE à la dernière question de l'historique.
// Aucun état de conversation côté serveur : l'historique complet et le texte
// du cours repartent au modèle à chaque tour.
func ChatWithCourse(cs *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := c.MustGet("db").(*gorm.DB)
		userID := c.GetString("user_id")

		var course models.Course
		if err := db.First(&course, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cours introuvable"})
			return
		}

		var input ChatInput
		if err := c.ShouldBindJSON(&input); err != nil || len(input.Messages) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Historique de messages manquant"})
			return
		}

		content := input.CourseContent
		if content == "" {
			content = course.ContentText
		}

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		err := cs.Stream(c.Request.Context(), input.Messages, content, func(chunk string) error {
			c.SSEvent("message", chunk)
			c.Writer.Flush()
			return nil
		})
		if err != nil {
			c.SSEvent("error", err.Error())
			c.Writer.Flush()
			return
		}
		c.SSEvent("done", "")
		c.Writer.Flush()
	}
}
