package services

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/phone"
	"github.com/citydir/orgdirectory-backend/internal/repos"
	"github.com/citydir/orgdirectory-backend/internal/types"
)

type testEnv struct {
	db           *gorm.DB
	buildingRepo repos.BuildingRepo
	orgRepo      repos.OrganizationRepo
	activityRepo repos.ActivityRepo
	phoneRepo    repos.PhoneNumberRepo
	linkRepo     repos.OrganizationActivityRepo

	activities    ActivityService
	associations  AssociationService
	organizations OrganizationService
	buildings     BuildingService
	directory     DirectoryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A single connection keeps the in-memory database alive for the whole test.
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&types.Building{},
		&types.Organization{},
		&types.PhoneNumber{},
		&types.Activity{},
		&types.OrganizationActivity{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	buildingRepo := repos.NewBuildingRepo(gdb, log)
	orgRepo := repos.NewOrganizationRepo(gdb, log)
	activityRepo := repos.NewActivityRepo(gdb, log)
	phoneRepo := repos.NewPhoneNumberRepo(gdb, log)
	linkRepo := repos.NewOrganizationActivityRepo(gdb, log)

	activities := NewActivityService(gdb, log, activityRepo, linkRepo)
	associations := NewAssociationService(log, phoneRepo, activityRepo, linkRepo, false)
	organizations := NewOrganizationService(gdb, log, orgRepo, buildingRepo, phoneRepo, associations, phone.NewNormalizer("RU"))
	buildings := NewBuildingService(gdb, log, buildingRepo, orgRepo)
	directory := NewDirectoryService(gdb, log, buildingRepo, orgRepo, activityRepo, linkRepo, phoneRepo, activities)

	return &testEnv{
		db:            gdb,
		buildingRepo:  buildingRepo,
		orgRepo:       orgRepo,
		activityRepo:  activityRepo,
		phoneRepo:     phoneRepo,
		linkRepo:      linkRepo,
		activities:    activities,
		associations:  associations,
		organizations: organizations,
		buildings:     buildings,
		directory:     directory,
	}
}

func (e *testEnv) mustBuilding(t *testing.T, address string, lat, lon float64) *types.Building {
	t.Helper()
	building, err := e.buildings.Create(context.Background(), BuildingInput{Address: address, Latitude: lat, Longitude: lon})
	if err != nil {
		t.Fatalf("create building %q: %v", address, err)
	}
	return building
}

func (e *testEnv) mustActivity(t *testing.T, name string, parentID *uint) *types.Activity {
	t.Helper()
	activity, err := e.activities.Create(context.Background(), name, parentID)
	if err != nil {
		t.Fatalf("create activity %q: %v", name, err)
	}
	return activity
}

func (e *testEnv) mustOrganization(t *testing.T, in CreateOrganizationInput) *types.Organization {
	t.Helper()
	org, err := e.organizations.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create organization %q: %v", in.Name, err)
	}
	return org
}
