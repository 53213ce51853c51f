package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/revisio/revisio-backend/models"
)

type PerformanceInput struct {
	Matiere string   `json:"matiere" binding:"required"`
	Note    *float64 `json:"note" binding:"required,gte=0,lte=20"`
	Date    string   `json:"date"`
}

// CreatePerformance enregistre une note saisie à la main (sur 20). La date est
// facultative, par défaut maintenant.
func CreatePerformance(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id invalide"})
		return
	}

	var input PerformanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Matière et note (entre 0 et 20) sont obligatoires"})
		return
	}

	date := time.Now()
	if input.Date != "" {
		parsed, err := time.Parse(time.RFC3339, input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date invalide (format RFC3339 attendu)"})
			return
		}
		date = parsed
	}

	perf := models.Performance{
		UserID:  userID,
		Matiere: input.Matiere,
		Note:    *input.Note,
		Date:    date,
	}
	if err := db.Create(&perf).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Enregistrement de la note impossible"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"performance": perf})
}

// ListPerformances renvoie les notes de l'utilisateur, de la plus récente à la
// plus ancienne (l'ordre attendu par le graphique).
func ListPerformances(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var perfs []models.Performance
	if err := db.Where("user_id = ?", userID).Order("date DESC").Find(&perfs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"performances": perfs})
}

// ExportPerformances produit un classeur XLSX des notes de l'utilisateur.
func ExportPerformances(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	var perfs []models.Performance
	if err := db.Where("user_id = ?", userID).Order("date ASC").Find(&perfs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Notes"
	f.SetSheetName("Sheet1", sheet)
	f.SetCellValue(sheet, "A1", "Date")
	f.SetCellValue(sheet, "B1", "Matière")
	f.SetCellValue(sheet, "C1", "Note /20")
	for i, p := range perfs {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.Date.Format("02/01/2006"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Matiere)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Note)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Génération du fichier impossible"})
		return
	}

	filename := slug.Make("notes "+user.FullName) + ".xlsx"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
