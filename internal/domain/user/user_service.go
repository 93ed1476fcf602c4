package user

import (
	"context"

	"lms-server/internal/utils/idgen"
	"lms-server/internal/utils/platformerrors"
)

// Service maintains the user read model. Accounts are created lazily the
// first time an authenticated identity reaches the service; the role is
// managed out of band (admin seed, instructor approval) and is never
// overwritten from token claims.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureUser resolves the token identity to a user row, creating a student
// account on first sight and refreshing profile fields on later ones.
func (s *Service) EnsureUser(ctx context.Context, identity Identity) (*User, error) {
	if identity.Issuer == "" || identity.Subject == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"token identity is incomplete", nil, "8c1f5a02-6d4b-4f0e-9f5b-2a9c01d7e441")
	}

	existing, err := s.repo.FindByIdentity(ctx, identity.Issuer, identity.Subject)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up user by identity")
	}

	if existing != nil {
		if existing.Name != identity.Name || existing.Email != identity.Email {
			existing.Name = identity.Name
			existing.Email = identity.Email
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to refresh user profile")
			}
		}
		return existing, nil
	}

	publicID, err := idgen.GenerateSecureID("user", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate user id")
	}

	created := &User{
		PublicID: publicID,
		Issuer:   identity.Issuer,
		Subject:  identity.Subject,
		Name:     identity.Name,
		Email:    identity.Email,
		Role:     RoleStudent,
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create user")
	}
	return created, nil
}

// EnsureAdmin guarantees an admin account exists for the given identity,
// creating it or promoting an existing row. Used by the data initializer.
func (s *Service) EnsureAdmin(ctx context.Context, identity Identity) (*User, error) {
	existing, err := s.EnsureUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	if existing.Role == RoleAdmin {
		return existing, nil
	}

	existing.Role = RoleAdmin
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to promote admin")
	}
	return existing, nil
}

// GetByID returns the user with the given internal ID.
func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load user")
	}
	if u == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"user not found", nil, "5b7d9e63-14af-4a28-8a06-c3f92d10b57a")
	}
	return u, nil
}

// GetByPublicID returns the user with the given public ID.
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*User, error) {
	u, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load user")
	}
	if u == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"user not found", nil, "0d2c6b71-8e45-4f9c-b1d0-74a6e2c85f39")
	}
	return u, nil
}
