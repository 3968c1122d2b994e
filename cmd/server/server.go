package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caiary/config"
	"caiary/internal/database"
	"caiary/internal/model"
	"caiary/internal/route"
	"caiary/internal/storage"
	"caiary/packages/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动 HTTP 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "执行数据库表迁移",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		defer logger.Sync()

		if err := database.InitPostgresOnly(); err != nil {
			return err
		}
		defer database.Close()

		if err := model.InitTable(database.PostgresDB); err != nil {
			return err
		}
		logger.L().Info("数据库迁移完成")
		return nil
	},
}

// setup 加载配置并初始化日志
func setup() error {
	if err := config.Load(configPath); err != nil {
		return err
	}
	logConf := config.Conf.Log
	return logger.Init(logger.Config{
		Level:  logConf.Level,
		Format: logConf.Format,
		Output: logConf.Output,
		Path:   logConf.Path,
	})
}

func runServer() error {
	// 1. 加载配置
	if err := setup(); err != nil {
		return err
	}
	defer logger.Sync()
	conf := config.Conf
	gin.SetMode(conf.Server.Mode)

	// 2. 初始化数据库
	if err := database.InitDatabase(true); err != nil {
		return fmt.Errorf("初始化数据库失败: %w", err)
	}
	defer database.Close()

	// 3. 初始化图片存储
	store, err := storage.New(context.Background(), conf.Storage)
	if err != nil {
		return fmt.Errorf("初始化图片存储失败: %w", err)
	}

	// 4. 设置路由
	r := route.SetupRouter(route.Dependencies{
		Config: conf,
		DB:     database.PostgresDB,
		Redis:  database.RedisDB,
		Store:  store,
	})

	// 5. 启动服务
	srv := &http.Server{
		Addr:         conf.ServerAddr(),
		Handler:      r,
		ReadTimeout:  conf.Server.ReadTimeout,
		WriteTimeout: conf.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("服务异常退出: %w", err)
	case <-quit:
	}

	// 6. 优雅关闭
	logger.L().Info("正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("关闭服务失败: %w", err)
	}
	return nil
}
