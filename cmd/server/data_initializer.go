package main

import (
	"context"

	"lms-server/internal/config"
	"lms-server/internal/domain/user"
	"lms-server/internal/infrastructure/logger"
)

type DataInitializer struct {
	users *user.Service
}

// Install seeds the admin account named in the environment. Courses and
// purchases are written by the catalog and checkout services sharing the
// database; nothing to seed for them here.
func (d *DataInitializer) Install(ctx context.Context) error {
	cfg := config.GetGlobal()
	log := logger.GetLogger()

	if cfg.SeedAdminSubject == "" {
		return nil
	}

	admin, err := d.users.EnsureAdmin(ctx, user.Identity{
		Issuer:  cfg.JWTIssuer,
		Subject: cfg.SeedAdminSubject,
		Name:    cfg.SeedAdminName,
		Email:   cfg.SeedAdminEmail,
	})
	if err != nil {
		return err
	}

	log.Info().Str("user", admin.PublicID).Msg("Admin account ensured")
	return nil
}
