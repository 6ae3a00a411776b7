package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/types"
)

type BuildingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, building *types.Building) (*types.Building, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Building, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Building, error)
	GetByAddress(ctx context.Context, tx *gorm.DB, address string) (*types.Building, error)
	AddressExists(ctx context.Context, tx *gorm.DB, address string, excludeID uint) (bool, error)
	ListByArea(ctx context.Context, tx *gorm.DB, minLat, maxLat, minLon, maxLon float64) ([]*types.Building, error)
	Save(ctx context.Context, tx *gorm.DB, building *types.Building) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type buildingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBuildingRepo(db *gorm.DB, baseLog *logger.Logger) BuildingRepo {
	return &buildingRepo{db: db, log: baseLog.With("repo", "BuildingRepo")}
}

func (r *buildingRepo) Create(ctx context.Context, tx *gorm.DB, building *types.Building) (*types.Building, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(building).Error; err != nil {
		return nil, err
	}
	return building, nil
}

func (r *buildingRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Building, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var building types.Building
	err := transaction.WithContext(ctx).First(&building, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &building, nil
}

func (r *buildingRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Building, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Building
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

func (r *buildingRepo) GetByAddress(ctx context.Context, tx *gorm.DB, address string) (*types.Building, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var building types.Building
	err := transaction.WithContext(ctx).First(&building, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &building, nil
}

func (r *buildingRepo) AddressExists(ctx context.Context, tx *gorm.DB, address string, excludeID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	query := transaction.WithContext(ctx).
		Model(&types.Building{}).
		Where("address = ?", address)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByArea selects buildings inside the inclusive bounding box.
func (r *buildingRepo) ListByArea(ctx context.Context, tx *gorm.DB, minLat, maxLat, minLon, maxLon float64) ([]*types.Building, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Building
	if err := transaction.WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", minLat, maxLat).
		Where("longitude BETWEEN ? AND ?", minLon, maxLon).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *buildingRepo) Save(ctx context.Context, tx *gorm.DB, building *types.Building) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(building).Error
}

func (r *buildingRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Delete(&types.Building{}, "id = ?", id).Error
}
