package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rootblog/internal/config"
	"github.com/rootblog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db      *gorm.DB
	posts   *service.PostService
	tags    *service.TagService
	auth    *service.AuthService
	uploads *service.UploadService
	site    siteViewModel
}

// siteViewModel carries the blog identity injected into every template.
type siteViewModel struct {
	Title       string
	Subtitle    string
	Description string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg config.AppConfig) *API {
	return &API{
		db:      gdb,
		posts:   service.NewPostService(gdb),
		tags:    service.NewTagService(gdb),
		auth:    service.NewAuthService(cfg.AdminLogin, cfg.AdminPasswordHash),
		uploads: service.NewUploadService(cfg.UploadDir, cfg.UploadURLPath),
		site:    siteViewModel{Title: cfg.BlogTitle, Subtitle: cfg.BlogSubtitle, Description: cfg.BlogDescription},
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// renderHTML 在向模板渲染时自动附加站点名称等公共数据。
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = gin.H{
			"title":       a.site.Title,
			"subtitle":    a.site.Subtitle,
			"description": a.site.Description,
		}
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}

	c.HTML(status, template, payload)
}
