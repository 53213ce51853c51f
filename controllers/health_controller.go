package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/revisio/revisio-backend/config"
	"github.com/revisio/revisio-backend/ws"
)

func HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"db":        "ok",
		"websocket": gin.H{
			"enabled": true,
			"stats":   ws.H.GetStats(),
		},
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		response["db"] = "error: cannot get DB instance"
		response["status"] = "degraded"
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	if err := sqlDB.Ping(); err != nil {
		response["db"] = "error: cannot connect to DB"
		response["status"] = "degraded"
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	c.JSON(http.StatusOK, response)
}
