package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DBMiddleware injecte la connexion gorm dans le contexte de la requête.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}
