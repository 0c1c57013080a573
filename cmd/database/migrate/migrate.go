package migration

import (
	"Meal-Preorder-Backend/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Errorf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MealPackage{}, &entities.UserPackage{}); err != nil {
		log.Errorf("Error migrating meal package database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PurchaseRequest{}); err != nil {
		log.Errorf("Error migrating purchase request database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DailyMenu{}, &entities.MenuItem{}); err != nil {
		log.Errorf("Error migrating daily menu database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Order{}, &entities.OrderItem{}); err != nil {
		log.Errorf("Error migrating order database: %v", err)
		return err
	}

	log.Info("Database migration complete")
	return nil
}
