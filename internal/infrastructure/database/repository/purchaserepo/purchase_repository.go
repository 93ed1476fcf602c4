package purchaserepo

import (
	"context"

	"gorm.io/gorm"

	"lms-server/internal/domain/purchase"
	"lms-server/internal/infrastructure/database/dbschema"
	"lms-server/internal/utils/functional"
	"lms-server/internal/utils/platformerrors"
)

type PurchaseGormRepository struct {
	db *gorm.DB
}

var _ purchase.Repository = (*PurchaseGormRepository)(nil)

func NewPurchaseGormRepository(db *gorm.DB) purchase.Repository {
	return &PurchaseGormRepository{db: db}
}

func (repo *PurchaseGormRepository) FindCompleted(ctx context.Context, userID, courseID uint) (*purchase.Purchase, error) {
	var entity dbschema.Purchase
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, purchase.StatusCompleted).
		First(&entity).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find completed purchase",
			err,
			"48a0d6e9-7b23-4f51-8c6d-19e5b2a70c38",
		)
	}
	return entity.EtoD(), nil
}

func (repo *PurchaseGormRepository) ListCompletedByUser(ctx context.Context, userID uint) ([]*purchase.Purchase, error) {
	var entities []dbschema.Purchase
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, purchase.StatusCompleted).
		Order("created_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list completed purchases",
			err,
			"c31f7a84-5d09-4e26-b8a1-640d2e95c7f3",
		)
	}
	return functional.Map(entities, func(e dbschema.Purchase) *purchase.Purchase { return e.EtoD() }), nil
}
