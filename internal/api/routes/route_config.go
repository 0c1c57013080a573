package routes

import (
	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/internal/api/handlers"
	"Meal-Preorder-Backend/internal/api/presenters"
	"Meal-Preorder-Backend/internal/middleware"
	"Meal-Preorder-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                *fiber.App
	UserHandler        handlers.UserHandler
	MealPackageHandler handlers.MealPackageHandler
	PurchaseHandler    handlers.PurchaseHandler
	UserPackageHandler handlers.UserPackageHandler
	MenuHandler        handlers.MenuHandler
	OrderHandler       handlers.OrderHandler
	StatisticsHandler  handlers.StatisticsHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.Users()
	c.MealPackages()
	c.PackagePurchases()
	c.UserPackages()
	c.DailyMenus()
	c.Orders()
	c.Statistics()
	c.NotFound()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/verify-otp", c.UserHandler.VerifyOTP)
		auth.Post("/resend-otp", c.UserHandler.ResendOTP)
		auth.Post("/login", c.UserHandler.Login)
		auth.Get("/me", c.auth(), c.UserHandler.Me)
	}
}

func (c *Config) Users() {
	users := c.App.Group("/api/users", c.auth(), c.Middleware.AdminOnly())
	{
		users.Get("", c.UserHandler.GetUsers)
		users.Get("/:id", c.UserHandler.GetUser)
		users.Patch("/:id/block", c.UserHandler.BlockUser)
		users.Patch("/:id/unblock", c.UserHandler.UnblockUser)
	}
}

func (c *Config) MealPackages() {
	packages := c.App.Group("/api/meal-packages", c.auth())
	packages.Get("", c.MealPackageHandler.GetMealPackages)
	packages.Get("/:id", c.MealPackageHandler.GetMealPackage)

	// admin
	packages.Post("", c.Middleware.AdminOnly(), c.MealPackageHandler.CreateMealPackage)
	packages.Put("/:id", c.Middleware.AdminOnly(), c.MealPackageHandler.UpdateMealPackage)
	packages.Delete("/:id", c.Middleware.AdminOnly(), c.MealPackageHandler.DeleteMealPackage)
	packages.Post("/:id/qr-code", c.Middleware.AdminOnly(), c.MealPackageHandler.UploadQRCode)
}

func (c *Config) PackagePurchases() {
	purchases := c.App.Group("/api/package-purchases", c.auth())
	purchases.Get("/my", c.PurchaseHandler.GetMyPurchaseRequests)
	purchases.Post("", c.PurchaseHandler.CreatePurchaseRequest)

	// admin
	purchases.Get("", c.Middleware.AdminOnly(), c.PurchaseHandler.GetPurchaseRequests)
	purchases.Post("/:id/approve", c.Middleware.AdminOnly(), c.PurchaseHandler.ApprovePurchaseRequest)
	purchases.Post("/:id/reject", c.Middleware.AdminOnly(), c.PurchaseHandler.RejectPurchaseRequest)
}

func (c *Config) UserPackages() {
	userPackages := c.App.Group("/api/user-packages", c.auth())
	{
		userPackages.Get("/my", c.UserPackageHandler.GetMyPackages)
		userPackages.Get("/my/active", c.UserPackageHandler.GetMyActivePackages)
		userPackages.Post("/:id/set-active", c.UserPackageHandler.SetActivePackage)
	}
}

func (c *Config) DailyMenus() {
	menus := c.App.Group("/api/daily-menus", c.auth())
	menus.Get("", c.MenuHandler.GetDailyMenus)
	menus.Get("/today", c.MenuHandler.GetTodayMenus)
	menus.Get("/:id", c.MenuHandler.GetDailyMenu)

	// admin
	menus.Post("/preview", c.Middleware.AdminOnly(), c.MenuHandler.PreviewMenu)
	menus.Post("", c.Middleware.AdminOnly(), c.MenuHandler.CreateDailyMenu)
	menus.Put("/:id", c.Middleware.AdminOnly(), c.MenuHandler.UpdateDailyMenu)
	menus.Patch("/:id/lock", c.Middleware.AdminOnly(), c.MenuHandler.LockMenu)
	menus.Patch("/:id/unlock", c.Middleware.AdminOnly(), c.MenuHandler.UnlockMenu)
}

func (c *Config) Orders() {
	orders := c.App.Group("/api/orders", c.auth())
	orders.Get("/my", c.OrderHandler.GetMyOrders)
	orders.Get("/today", c.OrderHandler.GetMyTodayOrder)
	orders.Post("", c.OrderHandler.PlaceOrder)

	// admin
	orders.Get("/by-date/:date", c.Middleware.AdminOnly(), c.OrderHandler.GetOrdersByDate)
	orders.Post("/confirm-all", c.Middleware.AdminOnly(), c.OrderHandler.ConfirmAllOrders)
	orders.Get("/copy-text/:menuId", c.Middleware.AdminOnly(), c.OrderHandler.GetCopyText)
}

func (c *Config) Statistics() {
	stats := c.App.Group("/api/statistics", c.auth(), c.Middleware.AdminOnly())
	{
		stats.Get("/revenue", c.StatisticsHandler.GetRevenue)
		stats.Get("/menu-items", c.StatisticsHandler.GetMenuItemStats)
		stats.Get("/dashboard", c.StatisticsHandler.GetDashboard)
	}
}

func (c *Config) NotFound() {
	c.App.Use(func(ctx *fiber.Ctx) error {
		return presenters.ErrorResponse(ctx, fiber.StatusNotFound, domain.ErrRouteMissing.Message, domain.ErrRouteMissing)
	})
}
