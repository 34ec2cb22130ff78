package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/tinyblog/internal/config"
	"github.com/tinyblog/internal/db"
	"github.com/tinyblog/internal/logging"
	"github.com/tinyblog/internal/seed"
)

func main() {
	file := flag.String("file", "fixtures/seed.yaml", "path to the YAML fixture")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Logger.WithError(err).Fatal("failed to load configuration")
	}
	logging.Configure(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	f, err := os.Open(*file)
	if err != nil {
		logging.Logger.WithError(err).Fatal("无法打开种子文件")
	}
	defer f.Close()

	fixture, err := seed.Parse(f)
	if err != nil {
		logging.Logger.WithError(err).WithField("file", *file).Fatal("种子文件格式错误")
	}

	if err := db.Init(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseDSN,
		Logger: logging.Gorm(),
	}); err != nil {
		logging.Logger.WithError(err).Fatal("failed to initialize database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := seed.Apply(ctx, seed.NewServices(db.DB), fixture)
	if err != nil {
		logging.Logger.WithError(err).Fatal("导入失败")
	}

	logging.Logger.WithFields(logrus.Fields{
		"categories": result.Categories,
		"tags":       result.Tags,
		"posts":      result.Posts,
	}).Info("导入完成")
}
