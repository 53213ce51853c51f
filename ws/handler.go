package ws

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/revisio/revisio-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // à restreindre en production
	},
}

// HandleCoursesWebSocket abonne un client authentifié aux notifications de
// changement de la liste de cours. Le token passe en query string, les
// navigateurs ne permettant pas d'en-tête Authorization sur un websocket.
func HandleCoursesWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
		return
	}
	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide ou expiré"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Upgrade WebSocket échoué:", err)
		return
	}
	client := H.Register(conn)
	defer H.Unregister(conn)

	// toutes les écritures passent par la pompe, y compris l'accusé de
	// connexion
	client.Send <- []byte(`{"type": "connected"}`)
	log.Printf("Courses WS connected: userID=%s\n", claims.UserID)

	// seul lecteur de la connexion
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	log.Printf("Courses WS disconnected: userID=%s\n", claims.UserID)
}
