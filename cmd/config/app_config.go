package config

import (
	"Meal-Preorder-Backend/internal/api/handlers"
	"Meal-Preorder-Backend/internal/api/routes"
	"Meal-Preorder-Backend/internal/middleware"
	"Meal-Preorder-Backend/internal/utils"
	"Meal-Preorder-Backend/internal/utils/mailing"
	"Meal-Preorder-Backend/internal/utils/storage"
	"Meal-Preorder-Backend/pkg/jwt"
	"Meal-Preorder-Backend/pkg/mealpackage"
	"Meal-Preorder-Backend/pkg/menu"
	"Meal-Preorder-Backend/pkg/order"
	"Meal-Preorder-Backend/pkg/purchase"
	"Meal-Preorder-Backend/pkg/statistics"
	"Meal-Preorder-Backend/pkg/user"
	"Meal-Preorder-Backend/pkg/userpackage"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

type Dependencies struct {
	Clock      utils.Clock
	Notifier   mailing.Notifier
	Storage    storage.AwsS3
	JWTService jwt.JWTService
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}

	app := NewAppWithDependencies(db, Dependencies{
		Clock:      utils.NewSystemClock(),
		Notifier:   mailing.NewNotifier(),
		Storage:    storage.NewAwsS3(),
		JWTService: jwt.NewJWTService(),
	}, logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Ho_Chi_Minh",
		Output:     file,
	}), limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))
	return app, nil
}

// NewAppWithDependencies wires every repository, service and handler onto a
// fresh fiber app. Extra handlers run before the routes.
func NewAppWithDependencies(db *gorm.DB, deps Dependencies, use ...fiber.Handler) *fiber.App {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	validator := utils.Validate

	for _, h := range use {
		app.Use(h)
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	userPackageRepository := userpackage.NewUserPackageRepository(db)
	mealPackageRepository := mealpackage.NewMealPackageRepository(db)
	purchaseRepository := purchase.NewPurchaseRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	orderRepository := order.NewOrderRepository(db)
	statisticsRepository := statistics.NewStatisticsRepository(db)

	// Service
	userService := user.NewUserService(userRepository, userPackageRepository, deps.JWTService, deps.Notifier, deps.Clock)
	userPackageService := userpackage.NewUserPackageService(userPackageRepository, deps.Clock)
	mealPackageService := mealpackage.NewMealPackageService(mealPackageRepository, deps.Storage)
	purchaseService := purchase.NewPurchaseService(purchaseRepository, mealPackageRepository, deps.Notifier, deps.Clock)
	menuService := menu.NewMenuService(menuRepository, deps.Clock)
	orderService := order.NewOrderService(orderRepository, menuRepository, userPackageRepository, deps.Clock)
	statisticsService := statistics.NewStatisticsService(statisticsRepository, userPackageRepository, deps.Clock)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	mealPackageHandler := handlers.NewMealPackageHandler(mealPackageService, validator)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, validator)
	userPackageHandler := handlers.NewUserPackageHandler(userPackageService)
	menuHandler := handlers.NewMenuHandler(menuService, validator)
	orderHandler := handlers.NewOrderHandler(orderService, validator)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService, validator)

	// routes
	routesConfig := routes.Config{
		App:                app,
		UserHandler:        userHandler,
		MealPackageHandler: mealPackageHandler,
		PurchaseHandler:    purchaseHandler,
		UserPackageHandler: userPackageHandler,
		MenuHandler:        menuHandler,
		OrderHandler:       orderHandler,
		StatisticsHandler:  statisticsHandler,
		Middleware:         middleware.NewMiddleware(userService),
		JWTService:         deps.JWTService,
	}
	routesConfig.Setup()
	return app
}
