package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/types"
)

type OrganizationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, org *types.Organization) (*types.Organization, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Organization, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Organization, error)
	NameExists(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (bool, error)
	ListByBuildingID(ctx context.Context, tx *gorm.DB, buildingID uint) ([]*types.Organization, error)
	CountByBuildingID(ctx context.Context, tx *gorm.DB, buildingID uint) (int64, error)
	SearchByName(ctx context.Context, tx *gorm.DB, substring string) ([]*types.Organization, error)
	Save(ctx context.Context, tx *gorm.DB, org *types.Organization) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type organizationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrganizationRepo(db *gorm.DB, baseLog *logger.Logger) OrganizationRepo {
	return &organizationRepo{db: db, log: baseLog.With("repo", "OrganizationRepo")}
}

func (r *organizationRepo) Create(ctx context.Context, tx *gorm.DB, org *types.Organization) (*types.Organization, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(org).Error; err != nil {
		return nil, err
	}
	return org, nil
}

func (r *organizationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Organization, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var org types.Organization
	err := transaction.WithContext(ctx).First(&org, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Organization, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Organization
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *organizationRepo) NameExists(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	query := transaction.WithContext(ctx).
		Model(&types.Organization{}).
		Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *organizationRepo) ListByBuildingID(ctx context.Context, tx *gorm.DB, buildingID uint) ([]*types.Organization, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Organization
	if err := transaction.WithContext(ctx).
		Where("building_id = ?", buildingID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *organizationRepo) CountByBuildingID(ctx context.Context, tx *gorm.DB, buildingID uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Organization{}).
		Where("building_id = ?", buildingID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SearchByName is a case-insensitive substring match. LOWER(...) LIKE keeps
// the predicate portable between postgres and the sqlite test store.
func (r *organizationRepo) SearchByName(ctx context.Context, tx *gorm.DB, substring string) ([]*types.Organization, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Organization
	if err := transaction.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+substring+"%").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *organizationRepo) Save(ctx context.Context, tx *gorm.DB, org *types.Organization) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(org).Error
}

func (r *organizationRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Delete(&types.Organization{}, "id = ?", id).Error
}
