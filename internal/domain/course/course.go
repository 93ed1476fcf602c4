package course

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Course is the read model of a marketplace course. Authoring and publishing
// happen in the catalog service; this service only reads.
type Course struct {
	ID        uint
	PublicID  string
	Title     string
	Subtitle  string
	Category  string
	Level     string
	Price     decimal.Decimal
	Published bool
	CreatorID uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	// FindByID returns (nil, nil) when no row matches.
	FindByID(ctx context.Context, id uint) (*Course, error)
	FindByPublicID(ctx context.Context, publicID string) (*Course, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]*Course, error)
	ListPublished(ctx context.Context) ([]*Course, error)
}
