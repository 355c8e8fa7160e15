package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/techforum/engagement-api/internal/api"
	"github.com/techforum/engagement-api/internal/config"
	"github.com/techforum/engagement-api/internal/db"
	"github.com/techforum/engagement-api/internal/identity"
	"github.com/techforum/engagement-api/internal/logger"
	"github.com/techforum/engagement-api/internal/pkg/token"
	"github.com/techforum/engagement-api/internal/repository"
	"github.com/techforum/engagement-api/internal/repository/dao"
	"github.com/techforum/engagement-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = seedAdmin(postgresDB, conf); err != nil {
		return fmt.Errorf("failed to seed admin account -> %w", err)
	}

	s := api.NewServer(conf, postgresDB)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

func seedAdmin(postgresDB *gorm.DB, conf *config.AppConfig) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		zap.L().Warn("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	userRepo := repository.NewUserRepository(dao.NewUserDAO(postgresDB))
	authSvc := service.NewAuthService(userRepo, identity.NewClient(conf.Identity), token.NewIssuer(conf.API.JWTSigningKey))

	return authSvc.EnsureDefaultAdmin(context.Background(), username, password)
}
