package course

import (
	"context"

	"lms-server/internal/utils/platformerrors"
)

// Directory answers the course questions the support flows ask: who created a
// course, what it is called, and which courses an instructor owns.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

// Get returns the course with the given internal ID.
func (d *Directory) Get(ctx context.Context, id uint) (*Course, error) {
	c, err := d.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load course")
	}
	if c == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"course not found", nil, "9a41c7d8-2b3e-4c50-86f1-d05e7b2a6c13")
	}
	return c, nil
}

// GetByPublicID returns the course with the given public ID.
func (d *Directory) GetByPublicID(ctx context.Context, publicID string) (*Course, error) {
	c, err := d.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load course")
	}
	if c == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"course not found", nil, "4e8f2a90-7c16-4db3-95a2-1f6b3d08e7c4")
	}
	return c, nil
}

// CreatorOf returns the internal user ID of the course creator.
func (d *Directory) CreatorOf(ctx context.Context, courseID uint) (uint, error) {
	c, err := d.Get(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return c.CreatorID, nil
}

// ListByCreator returns every course owned by the given instructor.
func (d *Directory) ListByCreator(ctx context.Context, creatorID uint) ([]*Course, error) {
	courses, err := d.repo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list courses by creator")
	}
	return courses, nil
}

// ListPublished returns the published catalog, used for the assistant context.
func (d *Directory) ListPublished(ctx context.Context) ([]*Course, error) {
	courses, err := d.repo.ListPublished(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list published courses")
	}
	return courses, nil
}
