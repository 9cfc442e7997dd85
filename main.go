package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/Abdullah4Jovera/crm_backend/config"
	"github.com/Abdullah4Jovera/crm_backend/controllers"
	"github.com/Abdullah4Jovera/crm_backend/middleware"
	"github.com/Abdullah4Jovera/crm_backend/repositories"
	"github.com/Abdullah4Jovera/crm_backend/routes"
	"github.com/Abdullah4Jovera/crm_backend/services"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis
	redisClient := config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()
	db := config.GetDatabase(client)

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeaders())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "CRM Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	e.Use(httpsRedirect())

	// Initialize repositories
	roleCache := repositories.NewRoleCache(redisClient)
	userRepo := repositories.NewUserRepository(db, roleCache)
	clientRepo := repositories.NewClientRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	dealRepo := repositories.NewDealRepository(db)
	commissionRepo := repositories.NewCommissionRepository(db)
	activityRepo := repositories.NewActivityLogRepository(db)

	// Initialize services
	roleResolver := services.NewRoleResolver(userRepo)
	leadService := services.NewLeadService(leadRepo, clientRepo, catalogRepo, activityRepo, roleResolver)
	reconciliationService := services.NewReconciliationService(dealRepo)

	// Initialize controllers and register routes
	routes.SetupRoutes(e, routes.Controllers{
		Auth:              controllers.NewAuthController(userRepo),
		Users:             controllers.NewUserController(userRepo),
		Leads:             controllers.NewLeadController(leadService, leadRepo),
		Deals:             controllers.NewDealController(dealRepo, reconciliationService),
		Contracts:         controllers.NewContractController(db),
		ServiceCommission: controllers.NewServiceCommissionController(commissionRepo),
		Catalog:           controllers.NewCatalogController(db, catalogRepo),
	})

	// Reap expired blacklisted tokens in the background
	go middleware.CleanupBlacklist()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}

func httpsRedirect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("X-Forwarded-Proto") == "http" {
				return c.Redirect(301, "https://"+c.Request().Host+c.Request().RequestURI)
			}
			return next(c)
		}
	}
}
