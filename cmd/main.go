package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/revisio/revisio-backend/config"
	"github.com/revisio/revisio-backend/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Pas de fichier .env")
	}

	config.InitDB()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r = routes.SetupRouter(r, config.DB, config.LoadAIConfig(), config.LoadStorageConfig())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server running at Port:" + port)
	r.Run(":" + port)
}
