package app

import (
	"context"
	"log/slog"

	"github.com/planningpoko/core/internal/config"
	http_init "github.com/planningpoko/core/internal/delivery/http/init"
	http_room "github.com/planningpoko/core/internal/delivery/http/room"
	ws_room "github.com/planningpoko/core/internal/delivery/ws/room"
	infra_pg_init "github.com/planningpoko/core/internal/infra/postgres/init"
	infra_postgres_room "github.com/planningpoko/core/internal/infra/postgres/room"
	usecase_room "github.com/planningpoko/core/internal/usecase/room"
	usecase_session "github.com/planningpoko/core/internal/usecase/session"
)

func Go(cfg *config.Config) {
	logger := slog.Default()

	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	infra_pg_init.MustMigrate(pgConn)

	roomRepository := infra_postgres_room.New(pgConn)
	roomUC := usecase_room.New(roomRepository)

	cache := usecase_session.NewRoomCache()
	registry := usecase_session.NewSessionRegistry()
	hub := ws_room.NewHub(logger)
	engine := usecase_session.New(roomRepository, cache, registry, hub, logger)

	// Rooms that survived a restart must be resolvable by code before
	// the first command arrives.
	if err := engine.Warmup(context.Background()); err != nil {
		logger.Error("cache warmup failed", slog.String("error", err.Error()))
	}

	go hub.Run()

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_room.New(roomUC))
	controllerPool.Add(ws_room.NewController(hub, engine))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Host, cfg.HTTP.Port)
}
