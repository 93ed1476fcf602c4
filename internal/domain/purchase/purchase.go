package purchase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Status of a checkout transaction. Only completed purchases grant access.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// Purchase is the read model of a checkout transaction. Payment processing
// happens in the checkout service; this service only reads.
type Purchase struct {
	ID          uint
	PublicID    string
	UserID      uint
	CourseID    uint
	Amount      decimal.Decimal
	Currency    string
	Status      Status
	PaymentRef  string
	PaymentMeta datatypes.JSON
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Repository interface {
	// FindCompleted returns (nil, nil) when the user holds no completed
	// purchase for the course.
	FindCompleted(ctx context.Context, userID, courseID uint) (*Purchase, error)
	ListCompletedByUser(ctx context.Context, userID uint) ([]*Purchase, error)
}
