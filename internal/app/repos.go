package app

import (
	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/repos"
)

type Repos struct {
	Building             repos.BuildingRepo
	Organization         repos.OrganizationRepo
	Activity             repos.ActivityRepo
	PhoneNumber          repos.PhoneNumberRepo
	OrganizationActivity repos.OrganizationActivityRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Building:             repos.NewBuildingRepo(db, log),
		Organization:         repos.NewOrganizationRepo(db, log),
		Activity:             repos.NewActivityRepo(db, log),
		PhoneNumber:          repos.NewPhoneNumberRepo(db, log),
		OrganizationActivity: repos.NewOrganizationActivityRepo(db, log),
	}
}
