package main

import (
	"Meal-Preorder-Backend/cmd/config"
	migration "Meal-Preorder-Backend/cmd/database/migrate"
	"Meal-Preorder-Backend/cmd/database/seed"
	"Meal-Preorder-Backend/internal/utils"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("error migrating database: %v", err)
	}
	if err := seed.Seed(db); err != nil {
		log.Fatalf("error seeding database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("error creating app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	log.Infof("server listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
