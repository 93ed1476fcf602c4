package dbschema

import (
	"github.com/shopspring/decimal"

	"lms-server/internal/domain/course"
	"lms-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Course{})
}

// Course represents the database schema for courses
type Course struct {
	BaseModel
	PublicID  string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	Title     string          `gorm:"type:varchar(256);not null"`
	Subtitle  string          `gorm:"type:varchar(512)"`
	Category  string          `gorm:"type:varchar(100);index"`
	Level     string          `gorm:"type:varchar(50)"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Published bool            `gorm:"not null;default:false;index"`
	CreatorID uint            `gorm:"index;not null"`
	Creator   User            `gorm:"foreignKey:CreatorID"`
}

// NewSchemaCourse creates a database schema from a domain course
func NewSchemaCourse(c *course.Course) *Course {
	return &Course{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID:  c.PublicID,
		Title:     c.Title,
		Subtitle:  c.Subtitle,
		Category:  c.Category,
		Level:     c.Level,
		Price:     c.Price,
		Published: c.Published,
		CreatorID: c.CreatorID,
	}
}

// EtoD converts database schema to domain course (Entity to Domain)
func (c *Course) EtoD() *course.Course {
	return &course.Course{
		ID:        c.ID,
		PublicID:  c.PublicID,
		Title:     c.Title,
		Subtitle:  c.Subtitle,
		Category:  c.Category,
		Level:     c.Level,
		Price:     c.Price,
		Published: c.Published,
		CreatorID: c.CreatorID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
