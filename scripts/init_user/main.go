package main

import (
	"fmt"

	"github.com/tinyblog/internal/config"
	"github.com/tinyblog/internal/db"
	"github.com/tinyblog/internal/logging"
	"github.com/tinyblog/internal/service"
)

const (
	fallbackUsername = "admin"
	fallbackPassword = "admin123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger.WithError(err).Fatal("配置加载失败")
	}

	// 初始化数据库
	if err := db.Init(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseDSN,
		Logger: logging.Gorm(),
	}); err != nil {
		logging.Logger.WithError(err).Fatal("数据库初始化失败")
	}

	username, password := cfg.DefaultAuthorName, cfg.DefaultAuthorPassword
	if username == "" || password == "" {
		username, password = fallbackUsername, fallbackPassword
	}

	var count int64
	if err := db.DB.Model(&db.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		logging.Logger.WithError(err).Fatal("查询用户失败")
	}
	if count > 0 {
		fmt.Println("用户已存在，无需初始化")
		return
	}

	if _, err := service.NewAuthorService(db.DB).Ensure(username, password); err != nil {
		logging.Logger.WithError(err).Fatal("创建用户失败")
	}

	fmt.Println("默认作者创建成功")
	fmt.Println("用户名:", username)
	if cfg.DefaultAuthorPassword == "" {
		fmt.Println("密码:", password)
	}
}
