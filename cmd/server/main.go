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

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tinyblog/internal/config"
	"github.com/tinyblog/internal/db"
	"github.com/tinyblog/internal/logging"
	"github.com/tinyblog/internal/router"
	"github.com/tinyblog/internal/service"
)

const shutdownTimeout = 5 * time.Second

func main() {
	fmt.Println(color.New(color.FgHiCyan).Add(color.Bold).Sprint("Tinyblog"))

	cfg, err := config.Load()
	if err != nil {
		logging.Logger.WithError(err).Fatal("failed to load configuration")
	}

	logging.Configure(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseDSN,
		Logger: logging.Gorm(),
	}); err != nil {
		logging.Logger.WithError(err).Fatal("failed to initialize database")
	}

	if cfg.DefaultAuthorName != "" && cfg.DefaultAuthorPassword != "" {
		author, err := service.NewAuthorService(db.DB).Ensure(cfg.DefaultAuthorName, cfg.DefaultAuthorPassword)
		if err != nil {
			logging.Logger.WithError(err).Fatal("failed to ensure default author")
		}
		logging.Logger.WithField("author", author.Username).Info("default author ready")
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.SetupRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Logger.WithFields(logrus.Fields{
			"addr":   cfg.ListenAddr,
			"driver": cfg.DatabaseDriver,
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.WithError(err).Fatal("failed to run server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.WithError(err).Error("server shutdown error")
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
