package main

import (
	"github.com/gin-gonic/gin"
	"github.com/haien/ccs/internal/chain"
	"github.com/haien/ccs/internal/config"
	"github.com/haien/ccs/internal/database"
	"github.com/haien/ccs/internal/logger"
	"github.com/haien/ccs/internal/router"
	"github.com/haien/ccs/internal/scheduler"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志器
	level := logger.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.Output == "file" {
		fileLogger, err := logger.NewWithFileRotation(level, cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(fileLogger)
	} else {
		stdLogger, err := logger.New(level)
		if err != nil {
			logger.Fatal("Failed to initialize logger: %v", err)
		}
		logger.SetDefaultLogger(stdLogger)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 启动链上捐赠监听（可选）
	if cfg.Ethereum.Enabled {
		chainClient, err := chain.Init(cfg.Ethereum)
		if err != nil {
			logger.Fatal("Failed to initialize ethereum client: %v", err)
		}

		monitor := chain.NewDonationMonitor(db, chainClient)
		if err := monitor.Start(); err != nil {
			logger.Fatal("Failed to start donation monitor: %v", err)
		}
		defer monitor.Stop()
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, cfg)

	// 启动定时任务
	manager := scheduler.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
