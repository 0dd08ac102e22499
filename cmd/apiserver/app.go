package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"ftaorigin/internal/app/config"
	"ftaorigin/internal/app/domains/modules/mdbom"
	"ftaorigin/internal/app/domains/modules/mdorigin"
	"ftaorigin/internal/app/domains/repo/rpdetermination"
	"ftaorigin/internal/app/domains/repo/rppart"
	"ftaorigin/internal/app/domains/services/svmaster"
	"ftaorigin/internal/app/domains/services/svorigin"
	"ftaorigin/internal/app/infra/mq/lmstfy"
	"ftaorigin/internal/app/infra/persistence/database"
	"ftaorigin/internal/app/infra/persistence/redis"
	"ftaorigin/internal/app/pkg/logger"
	"ftaorigin/internal/app/server/handlers/origin"
	"ftaorigin/internal/app/server/handlers/part"
	"ftaorigin/internal/app/server/routers"
)

// App apiserver 依赖集合
type App struct {
	Engine *gin.Engine
}

// InitializeApp 组装 apiserver 依赖
// 未配置 redis/lmstfy 时只提供同步判定
func InitializeApp(cfg *config.Config, log logger.Logger) (*App, func(), error) {
	ctx := context.Background()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	cleanups := []func(){func() { _ = database.Close(db) }}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	partRepo := rppart.NewPartRepository(db)
	determinationRepo := rpdetermination.NewDeterminationRepository(db)

	bomModule := mdbom.NewBOMModule(partRepo, cfg.Origin.MaxBOMDepth)
	originModule := mdorigin.NewOriginModule(partRepo, determinationRepo, bomModule, mdorigin.Options{
		DomesticCountry: cfg.Origin.DomesticCountry,
		DestCountry:     cfg.Origin.DestCountry,
	})

	var (
		publisher svorigin.JobPublisher
		bus       svorigin.ResultBus
	)
	if err := cfg.ValidateQueue(); err != nil {
		log.Warnf(ctx, "async determination disabled: %v", err)
	} else {
		publisher = lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)

		redisClient, err := redis.NewPubSubClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// 无法 Smart Wait 时仍可投递任务
			log.Warnf(ctx, "connect redis failed, smart wait disabled: %v", err)
		} else {
			bus = redisClient
			cleanups = append(cleanups, func() { _ = redisClient.Close() })
		}
	}

	masterService := svmaster.NewMasterService(partRepo, determinationRepo, log)
	originService := svorigin.NewOriginService(originModule, bomModule, partRepo, determinationRepo, publisher, bus,
		svorigin.Options{
			Queue:         cfg.Lmstfy.Queue,
			ChannelPrefix: cfg.Origin.ResultChannelPrefix,
		}, log)

	engine := routers.SetupRoutes(
		part.NewPartHandler(masterService, originService, log),
		origin.NewOriginHandler(originService, log),
		log,
	)

	return &App{Engine: engine}, cleanup, nil
}
