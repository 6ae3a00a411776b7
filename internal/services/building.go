package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/apierr"
	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/repos"
	"github.com/citydir/orgdirectory-backend/internal/types"
)

type BuildingInput struct {
	Address   string
	Latitude  float64
	Longitude float64
}

type BuildingService interface {
	Create(ctx context.Context, in BuildingInput) (*types.Building, error)
	// Update is a full replace of address and coordinates.
	Update(ctx context.Context, id uint, in BuildingInput) (*types.Building, error)
	Delete(ctx context.Context, id uint) error
}

type buildingService struct {
	db           *gorm.DB
	log          *logger.Logger
	buildingRepo repos.BuildingRepo
	orgRepo      repos.OrganizationRepo
}

func NewBuildingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	buildingRepo repos.BuildingRepo,
	orgRepo repos.OrganizationRepo,
) BuildingService {
	return &buildingService{
		db:           db,
		log:          baseLog.With("service", "BuildingService"),
		buildingRepo: buildingRepo,
		orgRepo:      orgRepo,
	}
}

func (s *buildingService) Create(ctx context.Context, in BuildingInput) (*types.Building, error) {
	var created *types.Building
	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.buildingRepo.AddressExists(ctx, tx, in.Address, 0)
		if err != nil {
			return err
		}
		if exists {
			return apierr.Conflict("building with address %q already exists", in.Address)
		}
		created, err = s.buildingRepo.Create(ctx, tx, &types.Building{
			Address:   in.Address,
			Latitude:  in.Latitude,
			Longitude: in.Longitude,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Building created", "building_id", created.ID)
	return created, nil
}

func (s *buildingService) Update(ctx context.Context, id uint, in BuildingInput) (*types.Building, error) {
	var updated *types.Building
	err := s.db.Transaction(func(tx *gorm.DB) error {
		building, err := s.buildingRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if building == nil {
			return apierr.NotFound("building %d not found", id)
		}

		exists, err := s.buildingRepo.AddressExists(ctx, tx, in.Address, id)
		if err != nil {
			return err
		}
		if exists {
			return apierr.Conflict("building with address %q already exists", in.Address)
		}

		building.Address = in.Address
		building.Latitude = in.Latitude
		building.Longitude = in.Longitude
		if err := s.buildingRepo.Save(ctx, tx, building); err != nil {
			return err
		}
		updated = building
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete refuses while organizations still occupy the building, so no
// organization is ever left pointing at a missing building row.
func (s *buildingService) Delete(ctx context.Context, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		building, err := s.buildingRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if building == nil {
			return apierr.NotFound("building %d not found", id)
		}

		occupants, err := s.orgRepo.CountByBuildingID(ctx, tx, id)
		if err != nil {
			return err
		}
		if occupants > 0 {
			return apierr.Conflict("building %d still has organizations", id)
		}
		return s.buildingRepo.Delete(ctx, tx, id)
	})
}
