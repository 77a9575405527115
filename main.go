package main

import (
	"log"
	"os"

	"opsdesk-backend/config"
	"opsdesk-backend/models"
	"opsdesk-backend/routes"
	"opsdesk-backend/services"

	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	config.ConnectDB()

	err := config.DB.AutoMigrate(
		&models.User{},
		&models.Office{},
		&models.BankAccount{},
		&models.Client{},
		&models.Branch{},
		&models.Collaborator{},
		&models.Project{},
		&models.Equipment{},
		&models.Document{},
		&models.Bill{},
		&models.BillInstallment{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
}

func main() {
	sweeper := services.NewSweeperService(config.DB)
	sweeper.StartScheduler()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server running on port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
