package user

import (
	"context"
	"time"
)

// Role is the platform-wide capability of a user account.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// User is an account known to the support service. Accounts originate in the
// identity provider; the row here carries the marketplace role and profile
// fields the support flows need.
type User struct {
	ID        uint
	PublicID  string
	Issuer    string
	Subject   string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

// Identity is the subset of verified token claims used to map a request to a
// user row.
type Identity struct {
	Issuer  string
	Subject string
	Name    string
	Email   string
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByPublicID(ctx context.Context, publicID string) (*User, error)
	// FindByIdentity returns (nil, nil) when no row matches.
	FindByIdentity(ctx context.Context, issuer, subject string) (*User, error)
}
