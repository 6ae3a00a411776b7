package app

import (
	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/phone"
	"github.com/citydir/orgdirectory-backend/internal/services"
)

type Services struct {
	Activity     services.ActivityService
	Association  services.AssociationService
	Organization services.OrganizationService
	Building     services.BuildingService
	Directory    services.DirectoryService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) Services {
	log.Info("Wiring services...")
	normalizer := phone.NewNormalizer(cfg.PhoneRegion)

	activityService := services.NewActivityService(db, log, reposet.Activity, reposet.OrganizationActivity)
	associationService := services.NewAssociationService(log, reposet.PhoneNumber, reposet.Activity, reposet.OrganizationActivity, cfg.StrictActivityRefs)
	organizationService := services.NewOrganizationService(db, log, reposet.Organization, reposet.Building, reposet.PhoneNumber, associationService, normalizer)
	buildingService := services.NewBuildingService(db, log, reposet.Building, reposet.Organization)
	directoryService := services.NewDirectoryService(db, log, reposet.Building, reposet.Organization, reposet.Activity, reposet.OrganizationActivity, reposet.PhoneNumber, activityService)

	return Services{
		Activity:     activityService,
		Association:  associationService,
		Organization: organizationService,
		Building:     buildingService,
		Directory:    directoryService,
	}
}
