package app

import (
	"github.com/gin-gonic/gin"

	"github.com/citydir/orgdirectory-backend/internal/server"
)

func wireRouter(handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:      middleware.Auth,
		BuildingHandler:     handlers.Building,
		OrganizationHandler: handlers.Organization,
		ActivityHandler:     handlers.Activity,
		DirectoryHandler:    handlers.Directory,
	})
}
