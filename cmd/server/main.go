package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/papergraph/papergraph/internal/conf"
	"github.com/papergraph/papergraph/internal/server"
	"github.com/papergraph/papergraph/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	defer logger.Sync()

	// .env 可选，容器环境直接注入环境变量
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("⚠️ .env error", zap.Error(err))
	}

	cfg, err := conf.LoadConfig("configs/config.yaml")
	if err != nil {
		logger.Fatal("❌ LoadConfig error", zap.Error(err))
	}

	srv := server.NewServer(cfg)

	port := cfg.Server.Port
	if port == "" {
		port = ":8080"
	}

	go func() {
		log.Printf("🌐 Papergraph running at http://localhost%s", port)
		if err := srv.Run(port); err != nil {
			logger.Fatal("❌ Server error", zap.Error(err))
		}
	}()

	// 等待退出信号，停掉巡查调度后优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Papergraph shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("❌ Shutdown error", zap.Error(err))
	}
}
