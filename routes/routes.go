package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/revisio/revisio-backend/config"
	"github.com/revisio/revisio-backend/controllers"
	"github.com/revisio/revisio-backend/middleware"
	"github.com/revisio/revisio-backend/services"
	"github.com/revisio/revisio-backend/utils"
	"github.com/revisio/revisio-backend/ws"
)

// SetupRouter câble les services (construits avec leur configuration
// explicite) sur les routes de l'API.
func SetupRouter(r *gin.Engine, db *gorm.DB, aiCfg config.AIConfig, storageCfg config.StorageConfig) *gin.Engine {
	store := utils.NewSupabaseStore(storageCfg)
	gen := services.NewGeminiClient(aiCfg)
	classifier := services.NewClassifier(gen, aiCfg.Enabled())

	ingestor := services.NewIngestor(db, store, classifier, services.DefaultIngestionPolicy())
	quizGen := services.NewQuizGenerator(gen)
	cardGen := services.NewFlashcardGenerator(gen)
	simplifier := services.NewSimplifier(gen)
	chat := services.NewChatService(gen)

	return Register(r, db, RouterDeps{
		Ingestor:      ingestor,
		QuizGen:       quizGen,
		FlashcardGen:  cardGen,
		Simplifier:    simplifier,
		Chat:          chat,
		Store:         store,
		FileDeleter:   store,
		IncludeHealth: true,
	})
}

// RouterDeps permet aux tests de brancher des fakes à la place des adaptateurs
// réels.
type RouterDeps struct {
	Ingestor      *services.Ingestor
	QuizGen       *services.QuizGenerator
	FlashcardGen  *services.FlashcardGenerator
	Simplifier    *services.Simplifier
	Chat          *services.ChatService
	Store         services.ObjectStore
	FileDeleter   controllers.FileDeleter
	IncludeHealth bool
}

func Register(r *gin.Engine, db *gorm.DB, deps RouterDeps) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	if deps.IncludeHealth {
		r.GET("/health", controllers.HealthCheck)
	}

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logingoogle", controllers.GoogleLogin)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))
	{
		// Cours
		authed.POST("/courses", controllers.UploadCourse(deps.Ingestor))
		authed.POST("/courses/manual", controllers.CreateManualCourse)
		authed.GET("/courses", controllers.ListCourses)
		authed.GET("/courses/:id", controllers.GetCourse)
		authed.PUT("/courses/:id", controllers.UpdateCourse)
		authed.DELETE("/courses/:id", controllers.DeleteCourse(deps.FileDeleter))

		// Outils d'étude
		authed.POST("/courses/:id/quiz", controllers.GenerateQuiz(deps.QuizGen))
		authed.GET("/courses/:id/quiz", controllers.GetLatestQuiz)
		authed.POST("/courses/:id/flashcards", controllers.GenerateFlashcards(deps.FlashcardGen))
		authed.GET("/courses/:id/flashcards", controllers.GetFlashcards)
		authed.POST("/courses/:id/simplify", controllers.SimplifyCourse(deps.Simplifier))
		authed.POST("/courses/:id/chat", controllers.ChatWithCourse(deps.Chat))

		// Images insérées dans l'éditeur
		authed.POST("/uploads/image", controllers.UploadImage(deps.Store))

		// Suivi des notes
		authed.POST("/performances", controllers.CreatePerformance)
		authed.GET("/performances", controllers.ListPerformances)
		authed.GET("/performances/export", controllers.ExportPerformances)
	}

	r.GET("/ws/courses", ws.HandleCoursesWebSocket)

	return r
}
