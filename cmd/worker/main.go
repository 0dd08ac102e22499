package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ftaorigin/internal/app/config"
	"ftaorigin/internal/app/domains/modules/mdbom"
	"ftaorigin/internal/app/domains/modules/mdorigin"
	"ftaorigin/internal/app/domains/repo/rpdetermination"
	"ftaorigin/internal/app/domains/repo/rppart"
	"ftaorigin/internal/app/domains/services/svorigin"
	"ftaorigin/internal/app/infra/mq/lmstfy"
	"ftaorigin/internal/app/infra/persistence/database"
	"ftaorigin/internal/app/infra/persistence/redis"
	"ftaorigin/internal/app/pkg/logger"
	"ftaorigin/internal/app/worker"
	"ftaorigin/internal/app/worker/jobs"
)

var configPath = flag.String("config", "config/config.yaml", "配置文件路径")

func main() {
	flag.Parse()
	ctx := context.Background()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}
	if err := cfg.ValidateWorkers(); err != nil {
		log.Fatalf("Worker config validation failed: %v", err)
	}

	// 2. 初始化 Logger
	zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// 3. 基础设施
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close(db)

	redisClient, err := redis.NewPubSubClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	lmstfyClient := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)

	// 4. 判定服务
	partRepo := rppart.NewPartRepository(db)
	determinationRepo := rpdetermination.NewDeterminationRepository(db)
	bomModule := mdbom.NewBOMModule(partRepo, cfg.Origin.MaxBOMDepth)
	originModule := mdorigin.NewOriginModule(partRepo, determinationRepo, bomModule, mdorigin.Options{
		DomesticCountry: cfg.Origin.DomesticCountry,
		DestCountry:     cfg.Origin.DestCountry,
	})
	originService := svorigin.NewOriginService(originModule, bomModule, partRepo, determinationRepo, lmstfyClient, redisClient,
		svorigin.Options{
			Queue:         cfg.Lmstfy.Queue,
			ChannelPrefix: cfg.Origin.ResultChannelPrefix,
		}, zapLogger)

	// 5. 创建 Manager
	mgr, err := worker.NewManagerInstance(cfg.Workers, worker.NewLmstfySource(lmstfyClient),
		&jobs.Deps{Origin: originService}, zapLogger)
	if err != nil {
		log.Fatalf("Failed to create manager: %v", err)
	}

	go func() {
		if err := mgr.Start(); err != nil {
			log.Fatalf("Manager start failed: %v", err)
		}
	}()
	zapLogger.Infof(ctx, "Worker started. Press Ctrl+C to shutdown.")

	// 6. 等待退出信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	zapLogger.Infof(ctx, "Received signal: %v, shutting down worker...", sig)
	mgr.Shutdown()
	zapLogger.Infof(ctx, "Worker exited gracefully")
}
