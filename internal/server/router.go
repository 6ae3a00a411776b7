package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/citydir/orgdirectory-backend/internal/handlers"
	"github.com/citydir/orgdirectory-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware      *middleware.AuthMiddleware
	BuildingHandler     *handlers.BuildingHandler
	OrganizationHandler *handlers.OrganizationHandler
	ActivityHandler     *handlers.ActivityHandler
	DirectoryHandler    *handlers.DirectoryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-API-Key", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)

	// Everything else sits behind the API key, mutating routes included.
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAPIKey())

	orgs := protected.Group("/organizations")
	{
		orgs.GET("/by_building_address", cfg.DirectoryHandler.ByBuildingAddress)
		orgs.GET("/by_activity_name", cfg.DirectoryHandler.ByActivityName)
		orgs.GET("/search_by_activity", cfg.DirectoryHandler.SearchByActivity)
		orgs.GET("/by_area", cfg.DirectoryHandler.ByArea)
		orgs.GET("/search_by_name", cfg.DirectoryHandler.SearchByName)
		orgs.GET("/:id", cfg.OrganizationHandler.Get)
		orgs.POST("", cfg.OrganizationHandler.Create)
		orgs.PUT("/:id", cfg.OrganizationHandler.Update)
		orgs.DELETE("/:id", cfg.OrganizationHandler.Delete)
	}

	buildings := protected.Group("/buildings")
	{
		buildings.POST("", cfg.BuildingHandler.Create)
		buildings.PUT("/:id", cfg.BuildingHandler.Update)
		buildings.DELETE("/:id", cfg.BuildingHandler.Delete)
	}

	activities := protected.Group("/activities")
	{
		activities.POST("", cfg.ActivityHandler.Create)
		activities.PUT("/:id", cfg.ActivityHandler.Update)
		activities.DELETE("/:id", cfg.ActivityHandler.Delete)
	}

	return router
}
