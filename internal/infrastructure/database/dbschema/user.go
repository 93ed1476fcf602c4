package dbschema

import (
	"lms-server/internal/domain/user"
	"lms-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents the database schema for users
type User struct {
	BaseModel
	PublicID string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Issuer   string    `gorm:"type:varchar(256);uniqueIndex:idx_user_identity;not null"`
	Subject  string    `gorm:"type:varchar(256);uniqueIndex:idx_user_identity;not null"`
	Name     string    `gorm:"type:varchar(256)"`
	Email    string    `gorm:"type:varchar(256);index"`
	Role     user.Role `gorm:"type:varchar(20);not null;default:'student'"`
}

// NewSchemaUser creates a database schema from a domain user
func NewSchemaUser(u *user.User) *User {
	return &User{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		PublicID: u.PublicID,
		Issuer:   u.Issuer,
		Subject:  u.Subject,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// EtoD converts database schema to domain user (Entity to Domain)
func (u *User) EtoD() *user.User {
	return &user.User{
		ID:        u.ID,
		PublicID:  u.PublicID,
		Issuer:    u.Issuer,
		Subject:   u.Subject,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
