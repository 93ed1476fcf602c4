package dbschema

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"lms-server/internal/domain/purchase"
	"lms-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Purchase{})
}

// Purchase represents the database schema for purchases
type Purchase struct {
	BaseModel
	PublicID    string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID      uint            `gorm:"index:idx_purchase_user_course;not null"`
	User        User            `gorm:"foreignKey:UserID"`
	CourseID    uint            `gorm:"index:idx_purchase_user_course;not null"`
	Course      Course          `gorm:"foreignKey:CourseID"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Currency    string          `gorm:"type:varchar(10);not null;default:'USD'"`
	Status      purchase.Status `gorm:"type:varchar(20);index;not null;default:'pending'"`
	PaymentRef  string          `gorm:"type:varchar(128);index"`
	PaymentMeta datatypes.JSON  `gorm:"type:jsonb"`
}

// NewSchemaPurchase creates a database schema from a domain purchase
func NewSchemaPurchase(p *purchase.Purchase) *Purchase {
	return &Purchase{
		BaseModel: BaseModel{
			ID:        p.ID,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
		PublicID:    p.PublicID,
		UserID:      p.UserID,
		CourseID:    p.CourseID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      p.Status,
		PaymentRef:  p.PaymentRef,
		PaymentMeta: p.PaymentMeta,
	}
}

// EtoD converts database schema to domain purchase (Entity to Domain)
func (p *Purchase) EtoD() *purchase.Purchase {
	return &purchase.Purchase{
		ID:          p.ID,
		PublicID:    p.PublicID,
		UserID:      p.UserID,
		CourseID:    p.CourseID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      p.Status,
		PaymentRef:  p.PaymentRef,
		PaymentMeta: p.PaymentMeta,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
