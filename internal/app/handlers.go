package app

import (
	"github.com/citydir/orgdirectory-backend/internal/handlers"
	"github.com/citydir/orgdirectory-backend/internal/logger"
)

type Handlers struct {
	Building     *handlers.BuildingHandler
	Organization *handlers.OrganizationHandler
	Activity     *handlers.ActivityHandler
	Directory    *handlers.DirectoryHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Building:     handlers.NewBuildingHandler(log, services.Building),
		Organization: handlers.NewOrganizationHandler(log, services.Organization),
		Activity:     handlers.NewActivityHandler(log, services.Activity),
		Directory:    handlers.NewDirectoryHandler(log, services.Directory),
	}
}
