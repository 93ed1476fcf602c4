package courserepo

import (
	"context"

	"gorm.io/gorm"

	"lms-server/internal/domain/course"
	"lms-server/internal/infrastructure/database/dbschema"
	"lms-server/internal/utils/functional"
	"lms-server/internal/utils/platformerrors"
)

type CourseGormRepository struct {
	db *gorm.DB
}

var _ course.Repository = (*CourseGormRepository)(nil)

func NewCourseGormRepository(db *gorm.DB) course.Repository {
	return &CourseGormRepository{db: db}
}

func (repo *CourseGormRepository) FindByID(ctx context.Context, id uint) (*course.Course, error) {
	var entity dbschema.Course
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
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
			"failed to find course by ID",
			err,
			"7f3c9d50-2a86-4e14-b7c3-58d01f9e6a27",
		)
	}
	return entity.EtoD(), nil
}

func (repo *CourseGormRepository) FindByPublicID(ctx context.Context, publicID string) (*course.Course, error) {
	var entity dbschema.Course
	err := repo.db.WithContext(ctx).
		Where("public_id = ?", publicID).
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
			"failed to find course by public ID",
			err,
			"e85a1b47-9c02-4d63-a1f8-26b90d7c3e54",
		)
	}
	return entity.EtoD(), nil
}

func (repo *CourseGormRepository) ListByCreator(ctx context.Context, creatorID uint) ([]*course.Course, error) {
	var entities []dbschema.Course
	err := repo.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list courses by creator",
			err,
			"0b6e8f21-4d97-4c35-92a0-e75c3a18d4f6",
		)
	}
	return functional.Map(entities, func(e dbschema.Course) *course.Course { return e.EtoD() }), nil
}

func (repo *CourseGormRepository) ListPublished(ctx context.Context) ([]*course.Course, error) {
	var entities []dbschema.Course
	err := repo.db.WithContext(ctx).
		Where("published = ?", true).
		Order("title ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list published courses",
			err,
			"52d9c7a3-1e60-4b84-bf25-a09e64d81c37",
		)
	}
	return functional.Map(entities, func(e dbschema.Course) *course.Course { return e.EtoD() }), nil
}
