package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/snehapuri/formula-builder/internal/config"
	"github.com/snehapuri/formula-builder/internal/logger"
	"github.com/snehapuri/formula-builder/internal/server"
)

var (
	port       = flag.Int("port", 0, "服务端口 (覆盖配置文件与环境变量)")
	devMode    = flag.Bool("dev", false, "开发模式")
	configPath = flag.String("config", "", "配置文件路径 (默认为可执行文件同目录下的 config.toml)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Formula Builder - 药品定价合规计算服务")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败，使用默认配置: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.Info("configuration loaded",
		"path", info.Path,
		"file_found", info.FileFound,
		"port_specified", info.PortSpecified,
		"port", cfg.Server.Port,
		"dev_mode", cfg.Server.DevMode,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"max_upload_bytes", cfg.Upload.MaxBytes,
	)

	srv := server.NewServer(cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	fmt.Printf("服务已启动: http://localhost:%d\n", cfg.Server.Port)
	fmt.Println("\n按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("服务启动失败", "error", err)
			os.Exit(1)
		}
		return
	case <-quit:
	}

	fmt.Println("\n正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("关闭服务失败", "error", err)
	}
}
