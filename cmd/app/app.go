package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TaiyoMatsuda/board-app/internal/api"
	"github.com/TaiyoMatsuda/board-app/internal/config"
	"github.com/TaiyoMatsuda/board-app/internal/db"
	"github.com/TaiyoMatsuda/board-app/internal/logger"
	"github.com/TaiyoMatsuda/board-app/internal/repository/dao"
	"github.com/TaiyoMatsuda/board-app/internal/storage"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	config.Watch()

	dbURL := os.Getenv("DATABASE_URL")
	var gormDB *gorm.DB
	if dbURL != "" {
		gormDB, err = db.OpenPostgresWithURL(dbURL, conf.API.Environment)
	} else {
		gormDB, err = db.Open(conf.Database, conf.API.Environment)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(gormDB); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}

	store, err := storage.New(conf.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage -> %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := api.NewServer(ctx, conf, gormDB, store)
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
