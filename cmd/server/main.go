package main

import (
	"context"
	"log"

	"github.com/adventcalendar/internal/config"
	"github.com/adventcalendar/internal/db"
	"github.com/adventcalendar/internal/handler"
	"github.com/adventcalendar/internal/router"
	"github.com/adventcalendar/internal/service"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 日历内容只加载一次，失败后页面显示错误，不重试
	content, contentErr := service.NewContentLoader().Load(context.Background(), cfg.CalendarDataPath)
	if contentErr != nil {
		log.Printf("[ERROR] error loading calendar data from %s: %v", cfg.CalendarDataPath, contentErr)
	}

	policy := service.NewUnlockPolicy(service.WithLocation(service.LoadReferenceLocation(cfg.Timezone)))

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg.SessionSecret, handler.Options{
		DB:            db.DB,
		Content:       content,
		ContentErr:    contentErr,
		Policy:        policy,
		StorageDriver: cfg.StorageDriver,
	})

	log.Printf("[INFO] advent calendar listening on %s (storage=%s, timezone=%s)", cfg.ListenAddr, cfg.StorageDriver, policy.Location())
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
