package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/apierr"
	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/repos"
	"github.com/citydir/orgdirectory-backend/internal/types"
)

// AssociationService owns the organization↔activity join rows and the
// organization's phone numbers. Both replace operations run on the caller's
// transaction so they commit or roll back with the enclosing write.
type AssociationService interface {
	// ReplacePhoneNumbers deletes every phone row owned by orgID and inserts
	// the supplied set. Numbers must already be normalized. An empty slice
	// clears all numbers.
	ReplacePhoneNumbers(ctx context.Context, tx *gorm.DB, orgID uint, numbers []string) error
	// ReplaceActivities does the same for association rows. Unresolvable
	// activity ids are skipped unless strict mode is configured.
	ReplaceActivities(ctx context.Context, tx *gorm.DB, orgID uint, activityIDs []uint) error
}

type associationService struct {
	log             *logger.Logger
	phoneRepo       repos.PhoneNumberRepo
	activityRepo    repos.ActivityRepo
	orgActivityRepo repos.OrganizationActivityRepo
	strictRefs      bool
}

func NewAssociationService(
	baseLog *logger.Logger,
	phoneRepo repos.PhoneNumberRepo,
	activityRepo repos.ActivityRepo,
	orgActivityRepo repos.OrganizationActivityRepo,
	strictRefs bool,
) AssociationService {
	return &associationService{
		log:             baseLog.With("service", "AssociationService"),
		phoneRepo:       phoneRepo,
		activityRepo:    activityRepo,
		orgActivityRepo: orgActivityRepo,
		strictRefs:      strictRefs,
	}
}

func (s *associationService) ReplacePhoneNumbers(ctx context.Context, tx *gorm.DB, orgID uint, numbers []string) error {
	if err := s.phoneRepo.DeleteByOrganizationID(ctx, tx, orgID); err != nil {
		return err
	}
	rows := make([]*types.PhoneNumber, 0, len(numbers))
	for _, number := range numbers {
		rows = append(rows, &types.PhoneNumber{Number: number, OrganizationID: orgID})
	}
	_, err := s.phoneRepo.CreateBatch(ctx, tx, rows)
	return err
}

func (s *associationService) ReplaceActivities(ctx context.Context, tx *gorm.DB, orgID uint, activityIDs []uint) error {
	if err := s.orgActivityRepo.DeleteByOrganizationID(ctx, tx, orgID); err != nil {
		return err
	}

	unique := make([]uint, 0, len(activityIDs))
	seen := make(map[uint]bool, len(activityIDs))
	for _, id := range activityIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	activities, err := s.activityRepo.GetByIDs(ctx, tx, unique)
	if err != nil {
		return err
	}
	if s.strictRefs && len(activities) != len(unique) {
		resolved := make(map[uint]bool, len(activities))
		for _, a := range activities {
			resolved[a.ID] = true
		}
		for _, id := range unique {
			if !resolved[id] {
				return apierr.Invalid("activity %d not found", id)
			}
		}
	}
	if len(activities) != len(unique) {
		s.log.Debug("Skipping unresolvable activity ids", "org_id", orgID, "requested", len(unique), "resolved", len(activities))
	}

	links := make([]*types.OrganizationActivity, 0, len(activities))
	for _, activity := range activities {
		links = append(links, &types.OrganizationActivity{
			OrganizationID: orgID,
			ActivityID:     activity.ID,
		})
	}
	_, err = s.orgActivityRepo.CreateBatch(ctx, tx, links)
	return err
}
