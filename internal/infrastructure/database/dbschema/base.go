package dbschema

import "time"

// BaseModel carries the columns every table shares.
type BaseModel struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
