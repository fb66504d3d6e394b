package main

import (
	"log"

	"github.com/KamisAyaka/Crowdfunding/internal/config"
	"github.com/KamisAyaka/Crowdfunding/internal/contract"
	"github.com/KamisAyaka/Crowdfunding/internal/database"
	"github.com/KamisAyaka/Crowdfunding/internal/indexer"
	"github.com/KamisAyaka/Crowdfunding/internal/logger"
	"github.com/KamisAyaka/Crowdfunding/internal/logic"
	"github.com/KamisAyaka/Crowdfunding/internal/router"
	"github.com/KamisAyaka/Crowdfunding/internal/scheduler"
	"github.com/KamisAyaka/Crowdfunding/internal/view"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置，索引服务地址缺失直接拒绝启动
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 初始化日志
	initLogger(cfg.Log)

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化索引服务客户端
	indexerClient, err := indexer.New(cfg.Indexer)
	if err != nil {
		log.Fatalf("Failed to initialize indexer client: %v", err)
	}

	// 初始化交易调用准备器
	preparer, err := contract.NewPreparer(cfg.Chain)
	if err != nil {
		log.Fatalf("Failed to initialize call preparer: %v", err)
	}

	viewLogic := logic.NewViewLogic(indexerClient)
	holder := view.NewHolder()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 启动视图刷新任务
	refreshJob := scheduler.NewViewRefreshJob(viewLogic, holder, cfg)
	manager := scheduler.Start(refreshJob)
	defer manager.Stop()

	// 初始化路由
	r := router.Setup(db, viewLogic, holder, refreshJob, preparer)

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initLogger 按配置初始化默认日志器
func initLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	if cfg.Output == "file" && cfg.File != "" {
		l, err := logger.NewWithFileRotation(level, cfg.File)
		if err != nil {
			log.Fatalf("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
		return
	}

	l, err := logger.New(level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}
