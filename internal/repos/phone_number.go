package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/types"
)

type PhoneNumberRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, numbers []*types.PhoneNumber) ([]*types.PhoneNumber, error)
	ListByOrganizationID(ctx context.Context, tx *gorm.DB, orgID uint) ([]*types.PhoneNumber, error)
	ListByOrganizationIDs(ctx context.Context, tx *gorm.DB, orgIDs []uint) ([]*types.PhoneNumber, error)
	DeleteByOrganizationID(ctx context.Context, tx *gorm.DB, orgID uint) error
}

type phoneNumberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPhoneNumberRepo(db *gorm.DB, baseLog *logger.Logger) PhoneNumberRepo {
	return &phoneNumberRepo{db: db, log: baseLog.With("repo", "PhoneNumberRepo")}
}

func (r *phoneNumberRepo) CreateBatch(ctx context.Context, tx *gorm.DB, numbers []*types.PhoneNumber) ([]*types.PhoneNumber, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(numbers) == 0 {
		return []*types.PhoneNumber{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&numbers).Error; err != nil {
		return nil, err
	}
	return numbers, nil
}

func (r *phoneNumberRepo) ListByOrganizationID(ctx context.Context, tx *gorm.DB, orgID uint) ([]*types.PhoneNumber, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.PhoneNumber
	if err := transaction.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *phoneNumberRepo) ListByOrganizationIDs(ctx context.Context, tx *gorm.DB, orgIDs []uint) ([]*types.PhoneNumber, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.PhoneNumber
	if len(orgIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("organization_id IN ?", orgIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *phoneNumberRepo) DeleteByOrganizationID(ctx context.Context, tx *gorm.DB, orgID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Delete(&types.PhoneNumber{}, "organization_id = ?", orgID).Error
}
