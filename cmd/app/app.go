package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/vietanh2810/resto-ops/internal/api"
	"github.com/vietanh2810/resto-ops/internal/config"
	"github.com/vietanh2810/resto-ops/internal/logger"
	"github.com/vietanh2810/resto-ops/internal/repository/dao"
	"github.com/vietanh2810/resto-ops/internal/store"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dsn := conf.Store.DSN()
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		dsn = dbURL
	}

	connector := store.NewConnector(store.Config{
		Driver:      conf.Store.Driver,
		DSN:         dsn,
		FailOnError: conf.Store.FailOnError,
	}, dao.Schema())

	st, err := connector.Open(context.Background())
	if err != nil {
		return fmt.Errorf("failed to open store -> %w", err)
	}
	defer connector.Close()

	s := api.NewServer(conf, st)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
