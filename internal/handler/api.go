package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tinyblog/internal/logging"
	"github.com/tinyblog/internal/service"
	"gorm.io/gorm"
)

const siteName = "Tinyblog"

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	posts      *service.PostService
	categories *service.CategoryService
	tags       *service.TagService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB) *API {
	return &API{
		db:         db,
		posts:      service.NewPostService(db),
		categories: service.NewCategoryService(db),
		tags:       service.NewTagService(db),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// renderHTML 渲染模板，并补充站点名称、年份与侧边栏数据。
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = siteName
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}
	if _, exists := payload["sidebar"]; !exists {
		payload["sidebar"] = a.buildSidebar(c)
	}

	c.HTML(status, template, payload)
}

type sidebarView struct {
	Categories []categoryLink
	Tags       []service.TagUsage
}

type categoryLink struct {
	ID   uint
	Name string
}

// buildSidebar 侧边栏失败不影响主体渲染，只记录 warn 日志。
func (a *API) buildSidebar(c *gin.Context) sidebarView {
	var view sidebarView

	categories, err := a.categories.List()
	if err != nil {
		sidebarWarning(c, err).Warn("sidebar: failed to load categories")
	} else {
		for _, category := range categories {
			view.Categories = append(view.Categories, categoryLink{ID: category.ID, Name: category.Name})
		}
	}

	usage, err := a.tags.Usage()
	if err != nil {
		sidebarWarning(c, err).Warn("sidebar: failed to load tags")
	} else {
		view.Tags = usage
	}

	return view
}

func sidebarWarning(c *gin.Context, err error) *logrus.Entry {
	return logging.Logger.WithError(err).WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.Request.URL.Path,
	})
}
