package cmd

import (
	"context"
	"errors"

	"movie-ticket/internal/usecase"
	"movie-ticket/pkg/utils"

	"go.uber.org/zap"
)

// SeedAdmin creates the configured administrator account if it does not exist yet.
func SeedAdmin(ctx context.Context, auth usecase.AuthService, admin utils.AdminConfig, logger *zap.Logger) error {
	if admin.Password == "" {
		return errors.New("ADMIN_PASSWORD is required to seed the administrator")
	}

	created, err := auth.SeedAdmin(ctx, admin.Name, admin.Email, admin.Password)
	if err != nil {
		return err
	}

	if created {
		logger.Info("Administrator seeded", zap.String("email", admin.Email))
	} else {
		logger.Info("Administrator already present, nothing to do", zap.String("email", admin.Email))
	}
	return nil
}
