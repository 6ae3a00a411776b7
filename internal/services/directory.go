package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/apierr"
	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/repos"
	"github.com/citydir/orgdirectory-backend/internal/types"
)

type BuildingSummary struct {
	ID      uint   `json:"id"`
	Address string `json:"address"`
}

// DirectoryService composes the lookup operations over buildings, activities
// and organizations. Empty results map to NotFound everywhere except
// SearchByName, which always answers with a list.
type DirectoryService interface {
	ByBuildingAddress(ctx context.Context, address string) ([]string, error)
	ByActivityName(ctx context.Context, activityName string) ([]string, error)
	SearchByActivity(ctx context.Context, activityName string) ([]string, error)
	ByArea(ctx context.Context, lat, lon, latDiff, lonDiff float64) ([]BuildingSummary, error)
	SearchByName(ctx context.Context, substring string) ([]OrganizationDetail, error)
}

type directoryService struct {
	db              *gorm.DB
	log             *logger.Logger
	buildingRepo    repos.BuildingRepo
	orgRepo         repos.OrganizationRepo
	activityRepo    repos.ActivityRepo
	orgActivityRepo repos.OrganizationActivityRepo
	phoneRepo       repos.PhoneNumberRepo
	activities      ActivityService
}

func NewDirectoryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	buildingRepo repos.BuildingRepo,
	orgRepo repos.OrganizationRepo,
	activityRepo repos.ActivityRepo,
	orgActivityRepo repos.OrganizationActivityRepo,
	phoneRepo repos.PhoneNumberRepo,
	activities ActivityService,
) DirectoryService {
	return &directoryService{
		db:              db,
		log:             baseLog.With("service", "DirectoryService"),
		buildingRepo:    buildingRepo,
		orgRepo:         orgRepo,
		activityRepo:    activityRepo,
		orgActivityRepo: orgActivityRepo,
		phoneRepo:       phoneRepo,
		activities:      activities,
	}
}

func (s *directoryService) ByBuildingAddress(ctx context.Context, address string) ([]string, error) {
	building, err := s.buildingRepo.GetByAddress(ctx, nil, address)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, apierr.NotFound("building not found")
	}

	orgs, err := s.orgRepo.ListByBuildingID(ctx, nil, building.ID)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, apierr.NotFound("no organizations found")
	}

	names := make([]string, 0, len(orgs))
	for _, org := range orgs {
		names = append(names, org.Name)
	}
	return names, nil
}

func (s *directoryService) ByActivityName(ctx context.Context, activityName string) ([]string, error) {
	activity, err := s.activityRepo.GetByName(ctx, nil, activityName)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, apierr.NotFound("activity not found")
	}

	links, err := s.orgActivityRepo.ListByActivityIDs(ctx, nil, []uint{activity.ID})
	if err != nil {
		return nil, err
	}
	return s.orgNamesFromLinks(ctx, links)
}

// SearchByActivity expands the named activity into its bounded subtree and
// unions the organizations linked to any activity in it.
func (s *directoryService) SearchByActivity(ctx context.Context, activityName string) ([]string, error) {
	root, err := s.activityRepo.GetByName(ctx, nil, activityName)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, apierr.NotFound("no organizations found")
	}

	subtree, err := s.activities.Subtree(ctx, nil, root)
	if err != nil {
		return nil, err
	}
	activityIDs := make([]uint, 0, len(subtree))
	for _, activity := range subtree {
		activityIDs = append(activityIDs, activity.ID)
	}

	links, err := s.orgActivityRepo.ListByActivityIDs(ctx, nil, activityIDs)
	if err != nil {
		return nil, err
	}
	return s.orgNamesFromLinks(ctx, links)
}

func (s *directoryService) orgNamesFromLinks(ctx context.Context, links []*types.OrganizationActivity) ([]string, error) {
	seen := make(map[uint]bool, len(links))
	orgIDs := make([]uint, 0, len(links))
	for _, link := range links {
		if !seen[link.OrganizationID] {
			seen[link.OrganizationID] = true
			orgIDs = append(orgIDs, link.OrganizationID)
		}
	}

	orgs, err := s.orgRepo.GetByIDs(ctx, nil, orgIDs)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, apierr.NotFound("no organizations found")
	}
	names := make([]string, 0, len(orgs))
	for _, org := range orgs {
		names = append(names, org.Name)
	}
	return names, nil
}

func (s *directoryService) ByArea(ctx context.Context, lat, lon, latDiff, lonDiff float64) ([]BuildingSummary, error) {
	buildings, err := s.buildingRepo.ListByArea(ctx, nil, lat-latDiff, lat+latDiff, lon-lonDiff, lon+lonDiff)
	if err != nil {
		return nil, err
	}
	if len(buildings) == 0 {
		return nil, apierr.NotFound("no buildings found")
	}

	summaries := make([]BuildingSummary, 0, len(buildings))
	for _, b := range buildings {
		summaries = append(summaries, BuildingSummary{ID: b.ID, Address: b.Address})
	}
	return summaries, nil
}

// SearchByName batch-fetches buildings and phone numbers for the whole result
// set instead of loading relations per organization.
func (s *directoryService) SearchByName(ctx context.Context, substring string) ([]OrganizationDetail, error) {
	orgs, err := s.orgRepo.SearchByName(ctx, nil, substring)
	if err != nil {
		return nil, err
	}

	buildingIDs := make([]uint, 0, len(orgs))
	orgIDs := make([]uint, 0, len(orgs))
	for _, org := range orgs {
		orgIDs = append(orgIDs, org.ID)
		buildingIDs = append(buildingIDs, org.BuildingID)
	}

	buildings, err := s.buildingRepo.GetByIDs(ctx, nil, buildingIDs)
	if err != nil {
		return nil, err
	}
	addressByID := make(map[uint]string, len(buildings))
	for _, b := range buildings {
		addressByID[b.ID] = b.Address
	}

	phones, err := s.phoneRepo.ListByOrganizationIDs(ctx, nil, orgIDs)
	if err != nil {
		return nil, err
	}
	phonesByOrg := make(map[uint][]string, len(orgs))
	for _, p := range phones {
		phonesByOrg[p.OrganizationID] = append(phonesByOrg[p.OrganizationID], p.Number)
	}

	details := make([]OrganizationDetail, 0, len(orgs))
	for _, org := range orgs {
		detail := OrganizationDetail{
			ID:           org.ID,
			Name:         org.Name,
			PhoneNumbers: phonesByOrg[org.ID],
		}
		if detail.PhoneNumbers == nil {
			detail.PhoneNumbers = []string{}
		}
		if address, ok := addressByID[org.BuildingID]; ok {
			detail.Address = &address
		}
		details = append(details, detail)
	}
	return details, nil
}
