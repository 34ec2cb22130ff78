package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger 是全局日志实例
var Logger = logrus.New()

// Options controls the process-wide logger.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// Configure 根据配置设置日志级别与格式，未知级别回退到 info。
func Configure(opts Options) {
	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		Logger.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if opts.Output != nil {
		Logger.SetOutput(opts.Output)
	} else {
		Logger.SetOutput(os.Stdout)
	}
}
