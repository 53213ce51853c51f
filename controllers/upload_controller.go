package controllers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/revisio/revisio-backend/services"
)

// UploadImage stocke une image sous l'espace de l'utilisateur
// (<userID>/images/<epochMillis>.<ext>) et renvoie son URL publique, destinée
// à être insérée dans un cours rédigé en markdown. Ici un échec de stockage
// est une vraie erreur : sans URL, l'image ne sert à rien.
func UploadImage(store services.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

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

		objectPath := fmt.Sprintf("%s/images/%d%s", userID, time.Now().UnixMilli(), filepath.Ext(file.Filename))
		url, err := store.Upload(objectPath, data, file.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de l'upload: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
