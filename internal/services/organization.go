package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/apierr"
	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/phone"
	"github.com/citydir/orgdirectory-backend/internal/repos"
	"github.com/citydir/orgdirectory-backend/internal/types"
)

type CreateOrganizationInput struct {
	Name         string
	BuildingID   uint
	PhoneNumbers []string
	ActivityIDs  []uint
}

// UpdateOrganizationInput carries partial-update semantics: nil fields are
// left untouched, non-nil phone/activity slices trigger a full replace.
type UpdateOrganizationInput struct {
	Name         *string
	BuildingID   *uint
	PhoneNumbers *[]string
	ActivityIDs  *[]uint
}

type OrganizationDetail struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Address      *string  `json:"address"`
	PhoneNumbers []string `json:"phone_numbers"`
}

type OrganizationService interface {
	Create(ctx context.Context, in CreateOrganizationInput) (*types.Organization, error)
	Update(ctx context.Context, id uint, in UpdateOrganizationInput) (*types.Organization, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*OrganizationDetail, error)
}

type organizationService struct {
	db           *gorm.DB
	log          *logger.Logger
	orgRepo      repos.OrganizationRepo
	buildingRepo repos.BuildingRepo
	phoneRepo    repos.PhoneNumberRepo
	associations AssociationService
	normalizer   *phone.Normalizer
}

func NewOrganizationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	orgRepo repos.OrganizationRepo,
	buildingRepo repos.BuildingRepo,
	phoneRepo repos.PhoneNumberRepo,
	associations AssociationService,
	normalizer *phone.Normalizer,
) OrganizationService {
	return &organizationService{
		db:           db,
		log:          baseLog.With("service", "OrganizationService"),
		orgRepo:      orgRepo,
		buildingRepo: buildingRepo,
		phoneRepo:    phoneRepo,
		associations: associations,
		normalizer:   normalizer,
	}
}

func (s *organizationService) Create(ctx context.Context, in CreateOrganizationInput) (*types.Organization, error) {
	// Boundary validation: nothing is written when any number is bad.
	numbers, err := s.normalizer.NormalizeAll(in.PhoneNumbers)
	if err != nil {
		return nil, err
	}

	var created *types.Organization
	err = s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.orgRepo.NameExists(ctx, tx, in.Name, 0)
		if err != nil {
			return err
		}
		if exists {
			return apierr.Conflict("organization %q already exists", in.Name)
		}

		building, err := s.buildingRepo.GetByID(ctx, tx, in.BuildingID)
		if err != nil {
			return err
		}
		if building == nil {
			return apierr.NotFound("building %d not found", in.BuildingID)
		}

		created, err = s.orgRepo.Create(ctx, tx, &types.Organization{
			Name:       in.Name,
			BuildingID: in.BuildingID,
		})
		if err != nil {
			return err
		}
		if err := s.associations.ReplacePhoneNumbers(ctx, tx, created.ID, numbers); err != nil {
			return err
		}
		return s.associations.ReplaceActivities(ctx, tx, created.ID, in.ActivityIDs)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Organization created", "org_id", created.ID)
	return created, nil
}

func (s *organizationService) Update(ctx context.Context, id uint, in UpdateOrganizationInput) (*types.Organization, error) {
	var numbers []string
	if in.PhoneNumbers != nil {
		var err error
		numbers, err = s.normalizer.NormalizeAll(*in.PhoneNumbers)
		if err != nil {
			return nil, err
		}
	}

	var updated *types.Organization
	err := s.db.Transaction(func(tx *gorm.DB) error {
		org, err := s.orgRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if org == nil {
			return apierr.NotFound("organization %d not found", id)
		}

		if in.Name != nil {
			exists, err := s.orgRepo.NameExists(ctx, tx, *in.Name, id)
			if err != nil {
				return err
			}
			if exists {
				return apierr.Conflict("organization %q already exists", *in.Name)
			}
			org.Name = *in.Name
		}

		if in.BuildingID != nil {
			building, err := s.buildingRepo.GetByID(ctx, tx, *in.BuildingID)
			if err != nil {
				return err
			}
			if building == nil {
				return apierr.Invalid("building %d not found", *in.BuildingID)
			}
			org.BuildingID = *in.BuildingID
		}

		if err := s.orgRepo.Save(ctx, tx, org); err != nil {
			return err
		}

		if in.PhoneNumbers != nil {
			if err := s.associations.ReplacePhoneNumbers(ctx, tx, org.ID, numbers); err != nil {
				return err
			}
		}
		if in.ActivityIDs != nil {
			if err := s.associations.ReplaceActivities(ctx, tx, org.ID, *in.ActivityIDs); err != nil {
				return err
			}
		}
		updated = org
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *organizationService) Delete(ctx context.Context, id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		org, err := s.orgRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if org == nil {
			return apierr.NotFound("organization %d not found", id)
		}

		if err := s.associations.ReplacePhoneNumbers(ctx, tx, id, nil); err != nil {
			return err
		}
		if err := s.associations.ReplaceActivities(ctx, tx, id, nil); err != nil {
			return err
		}
		return s.orgRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("Organization deleted", "org_id", id)
	return nil
}

func (s *organizationService) Get(ctx context.Context, id uint) (*OrganizationDetail, error) {
	org, err := s.orgRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apierr.NotFound("organization %d not found", id)
	}

	var address *string
	building, err := s.buildingRepo.GetByID(ctx, nil, org.BuildingID)
	if err != nil {
		return nil, err
	}
	if building != nil {
		address = &building.Address
	}

	phones, err := s.phoneRepo.ListByOrganizationID(ctx, nil, org.ID)
	if err != nil {
		return nil, err
	}
	numbers := make([]string, 0, len(phones))
	for _, p := range phones {
		numbers = append(numbers, p.Number)
	}

	return &OrganizationDetail{
		ID:           org.ID,
		Name:         org.Name,
		Address:      address,
		PhoneNumbers: numbers,
	}, nil
}
