package main

import (
	"os"
	"path/filepath"
	"time"

	"rental_engine/internal/catalog"
	"rental_engine/internal/chatbot"
	"rental_engine/internal/history"
	"rental_engine/internal/logger"
	"rental_engine/internal/maintenance"
	"rental_engine/internal/pricing"
	"rental_engine/internal/recommend"
	"rental_engine/internal/server"
	"rental_engine/internal/task"
	"rental_engine/internal/user"

	"github.com/robfig/cron/v3"
)

func main() {
	cfg := InitServerConfig()
	logger.SetDebug(cfg.Server.Debug)

	// 1. 初始化 User Provider
	userProvider, err := user.NewStaticProvider(cfg.Paths.Users)
	if err != nil {
		logger.Fatal("Failed to init user provider: %v", err)
	}

	// 2. 初始化目录
	catalogProvider, err := catalog.NewStaticProvider(cfg.Paths.Cars)
	if err != nil {
		logger.Fatal("Failed to init catalog provider: %v", err)
	}

	// 3. 初始化 History Store
	if dir := filepath.Dir(cfg.Paths.History); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("Failed to create history dir: %v", err)
		}
	}
	historyStore, err := history.NewFileStore(cfg.Paths.History)
	if err != nil {
		logger.Fatal("Failed to init history store: %v", err)
	}

	// 4. 权重：配置覆盖默认值，加载时校验一次
	weights := recommend.DefaultWeights()
	if cfg.Engine.Weights != nil {
		weights = *cfg.Engine.Weights
	}
	if err := weights.Validate(); err != nil {
		logger.Fatal("Invalid feature weights: %v", err)
	}

	// 5. 推荐引擎：基于启动时的目录快照构建
	engine := recommend.NewEngine(catalogProvider.List(), weights)

	// 6. 定价 / 维护 / 聊天组件，随机源统一从配置种子派生
	seed := cfg.Pricing.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pricer := pricing.New(pricing.NewJitterEstimator(seed), seed+1)
	predictor := maintenance.New(seed + 2)
	bot := chatbot.New(seed + 3)
	taskManager := task.NewManager()

	// 7. 定时任务：历史记录保留期清理 + 过期任务回收
	scheduler := cron.New()
	retention := cfg.History.RetentionDays
	if _, err := scheduler.AddFunc("@daily", func() {
		if err := historyStore.Cleanup(retention); err != nil {
			logger.Error("History cleanup failed: %v", err)
		} else {
			logger.Info("History cleanup done (retention %d days)", retention)
		}
		if removed := taskManager.Prune(24 * time.Hour); removed > 0 {
			logger.Debug("Pruned %d finished tasks", removed)
		}
	}); err != nil {
		logger.Fatal("Failed to schedule cleanup job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// 8. 启动 HTTP 服务
	srv := server.NewServer(userProvider, catalogProvider, engine, historyStore, pricer, predictor, bot, taskManager, cfg.Engine.Limit)

	logger.Info("Starting server on port %s", cfg.Server.Port)
	if err := srv.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Server exited: %v", err)
	}
}
