package main

import (
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"ftaorigin/internal/app/config"
	"ftaorigin/internal/app/domains/modules/mdbom"
	"ftaorigin/internal/app/domains/modules/mdorigin"
	"ftaorigin/internal/app/domains/repo/rpdetermination"
	"ftaorigin/internal/app/domains/repo/rppart"
	"ftaorigin/internal/app/domains/services/svmaster"
	"ftaorigin/internal/app/domains/services/svorigin"
	"ftaorigin/internal/app/infra/persistence/database"
	"ftaorigin/internal/app/pkg/logger"
)

// env 命令执行环境，只读写数据库，不连接 redis/lmstfy
type env struct {
	cfg    *config.Config
	db     *gorm.DB
	master *svmaster.MasterService
	origin *svorigin.OriginService
}

func loadEnv(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if dsn := c.String("dsn"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 命令行输出只保留告警以上日志
	log, err := logger.NewZapLogger("warn", cfg.App.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}

	partRepo := rppart.NewPartRepository(db)
	determinationRepo := rpdetermination.NewDeterminationRepository(db)
	bomModule := mdbom.NewBOMModule(partRepo, cfg.Origin.MaxBOMDepth)
	originModule := mdorigin.NewOriginModule(partRepo, determinationRepo, bomModule, mdorigin.Options{
		DomesticCountry: cfg.Origin.DomesticCountry,
		DestCountry:     cfg.Origin.DestCountry,
	})

	return &env{
		cfg:    cfg,
		db:     db,
		master: svmaster.NewMasterService(partRepo, determinationRepo, log),
		origin: svorigin.NewOriginService(originModule, bomModule, partRepo, determinationRepo, nil, nil,
			svorigin.Options{ChannelPrefix: cfg.Origin.ResultChannelPrefix}, log),
	}, nil
}

func (e *env) Close() error {
	return database.Close(e.db)
}

// withEnv 包装需要数据库的命令
func withEnv(fn func(c *cli.Context, e *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := loadEnv(c)
		if err != nil {
			return err
		}
		defer e.Close()
		return fn(c, e)
	}
}
