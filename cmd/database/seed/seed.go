package seed

import (
	"errors"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/utils"
	"Meal-Preorder-Backend/pkg/user"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type packageTemplate struct {
	name        string
	turns       int
	price       int64
	validDays   int
	packageType string
}

var templates = []packageTemplate{
	{"Trial 5 meals", 5, 175000, 14, entities.PackageTypeNormal},
	{"Weekly 10 meals", 10, 340000, 30, entities.PackageTypeNormal},
	{"Monthly 20 meals", 20, 660000, 45, entities.PackageTypeNormal},
	{"Monthly 30 meals", 30, 960000, 60, entities.PackageTypeNormal},
	{"Quarterly 60 meals", 60, 1860000, 120, entities.PackageTypeNormal},
	{"Trial 5 meals, no rice", 5, 150000, 14, entities.PackageTypeNoRice},
	{"Weekly 10 meals, no rice", 10, 290000, 30, entities.PackageTypeNoRice},
	{"Monthly 20 meals, no rice", 20, 560000, 45, entities.PackageTypeNoRice},
	{"Monthly 30 meals, no rice", 30, 810000, 60, entities.PackageTypeNoRice},
	{"Quarterly 60 meals, no rice", 60, 1560000, 120, entities.PackageTypeNoRice},
}

func seedUser(db *gorm.DB, name, email, password, role string) error {
	var existing entities.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := user.HashPassword(password)
	if err != nil {
		return err
	}
	log.Infof("seeding %s account %s", role, email)
	return db.Create(&entities.User{
		ID:         uuid.New(),
		Name:       name,
		Email:      email,
		Password:   hashed,
		Role:       role,
		IsVerified: true,
	}).Error
}

// Seed inserts the admin, a demo user and the package catalog. It is safe to
// run on every start.
func Seed(db *gorm.DB) error {
	if err := seedUser(db, "Administrator", utils.GetConfig("ADMIN_EMAIL"), utils.GetConfig("ADMIN_PASSWORD"), domain.RoleAdmin); err != nil {
		return err
	}
	if err := seedUser(db, "Demo User", "user@example.com", "user123", domain.RoleUser); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&entities.MealPackage{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	packages := make([]*entities.MealPackage, 0, len(templates))
	for _, t := range templates {
		packages = append(packages, &entities.MealPackage{
			ID:          uuid.New(),
			Name:        t.name,
			Turns:       t.turns,
			Price:       decimal.NewFromInt(t.price),
			ValidDays:   t.validDays,
			PackageType: t.packageType,
			IsActive:    true,
		})
	}
	log.Infof("seeding %d meal packages", len(packages))
	return db.Create(packages).Error
}
