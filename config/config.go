package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/revisio/revisio-backend/models"
)

var DB *gorm.DB

func InitDB() {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Europe/Paris",
		dbHost, dbUser, dbPass, dbName, dbPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatal("Connexion à la base impossible: ", err)
	}

	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Impossible de récupérer sql.DB depuis gorm: ", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate: ", err)
	}
	log.Println("postgreSQL connected & migrated successfully!")
}

// Migrate applique l'AutoMigrate de tous les modèles. Exposé séparément pour
// que les tests puissent migrer une base sqlite en mémoire.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Flashcard{},
		&models.Quiz{},
		&models.Performance{},
	)
}
