package router

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tinyblog/internal/config"
	"github.com/tinyblog/internal/db"
	"github.com/tinyblog/internal/handler"
	"github.com/tinyblog/internal/logging"
	"github.com/tinyblog/web"
)

// SetupRouter 配置 Gin 引擎和路由，使用全局 db.DB
func SetupRouter(cfg config.AppConfig) *gin.Engine {
	r := gin.New()
	r.Use(logging.Middleware(), gin.Recovery())

	// 加载模板并添加自定义函数
	r.SetHTMLTemplate(template.Must(web.Templates(templateFuncs())))

	api := handler.NewAPI(db.DB)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.GET("/", api.Index)
	r.GET("/posts/:id", api.ShowPostDetail)
	r.GET("/categories/:id", api.ShowCategory)
	r.GET("/tags/:id", api.ShowTag)
	r.GET("/archives/:year/:month", api.ShowArchive)

	jsonAPI := r.Group("/api")
	jsonAPI.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	{
		jsonAPI.GET("/posts", api.GetPosts)
		jsonAPI.GET("/posts/:id", api.GetPost)
	}

	return r
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"excerpt": handler.Excerpt,
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
		"isoTime": func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
		"monthNumber": func(t time.Time) int {
			return int(t.Month())
		},
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
