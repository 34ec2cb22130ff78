package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr            string
	Port                  string
	DatabaseDriver        string
	DatabasePath          string
	DatabaseDSN           string
	GinMode               string
	LogLevel              string
	LogFormat             string
	CORSAllowedOrigins    []string
	DefaultAuthorName     string
	DefaultAuthorPassword string
}

// Load 依次读取 .env、settings.toml 与环境变量，并为缺失项提供默认值。
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.SetConfigName("settings")
	v.SetConfigType("toml")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_PATH", "blog.db")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("read settings: %w", err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) AppConfig {
	port := strings.TrimSpace(v.GetString("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(v.GetString("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	return AppConfig{
		ListenAddr:            listenAddr,
		Port:                  port,
		DatabaseDriver:        strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER"))),
		DatabasePath:          strings.TrimSpace(v.GetString("DATABASE_PATH")),
		DatabaseDSN:           strings.TrimSpace(v.GetString("DATABASE_DSN")),
		GinMode:               strings.TrimSpace(v.GetString("GIN_MODE")),
		LogLevel:              strings.TrimSpace(v.GetString("LOG_LEVEL")),
		LogFormat:             strings.TrimSpace(v.GetString("LOG_FORMAT")),
		CORSAllowedOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DefaultAuthorName:     strings.TrimSpace(v.GetString("DEFAULT_AUTHOR_NAME")),
		DefaultAuthorPassword: strings.TrimSpace(v.GetString("DEFAULT_AUTHOR_PASSWORD")),
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
