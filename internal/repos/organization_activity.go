package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/types"
)

type OrganizationActivityRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, links []*types.OrganizationActivity) ([]*types.OrganizationActivity, error)
	ListByOrganizationID(ctx context.Context, tx *gorm.DB, orgID uint) ([]*types.OrganizationActivity, error)
	ListByActivityIDs(ctx context.Context, tx *gorm.DB, activityIDs []uint) ([]*types.OrganizationActivity, error)
	DeleteByOrganizationID(ctx context.Context, tx *gorm.DB, orgID uint) error
	DeleteByActivityID(ctx context.Context, tx *gorm.DB, activityID uint) error
}

type organizationActivityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrganizationActivityRepo(db *gorm.DB, baseLog *logger.Logger) OrganizationActivityRepo {
	return &organizationActivityRepo{db: db, log: baseLog.With("repo", "OrganizationActivityRepo")}
}

func (r *organizationActivityRepo) CreateBatch(ctx context.Context, tx *gorm.DB, links []*types.OrganizationActivity) ([]*types.OrganizationActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(links) == 0 {
		return []*types.OrganizationActivity{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *organizationActivityRepo) ListByOrganizationID(ctx context.Context, tx *gorm.DB, orgID uint) ([]*types.OrganizationActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.OrganizationActivity
	if err := transaction.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *organizationActivityRepo) ListByActivityIDs(ctx context.Context, tx *gorm.DB, activityIDs []uint) ([]*types.OrganizationActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.OrganizationActivity
	if len(activityIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("activity_id IN ?", activityIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *organizationActivityRepo) DeleteByOrganizationID(ctx context.Context, tx *gorm.DB, orgID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Delete(&types.OrganizationActivity{}, "organization_id = ?", orgID).Error
}

func (r *organizationActivityRepo) DeleteByActivityID(ctx context.Context, tx *gorm.DB, activityID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Delete(&types.OrganizationActivity{}, "activity_id = ?", activityID).Error
}
