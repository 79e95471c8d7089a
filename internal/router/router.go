package router

import (
	"html/template"
	"path/filepath"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rootblog/internal/config"
	"github.com/rootblog/internal/db"
	"github.com/rootblog/internal/handler"
)

const templateGlob = "web/template/*.html"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = handler.MaxUploadBytes

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("rootblog_session", store))

	// 加载模板并添加自定义函数
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	})
	if pages, err := filepath.Glob(templateGlob); err == nil && len(pages) > 0 {
		r.LoadHTMLGlob(templateGlob)
	}

	// 静态文件服务
	r.Static("/static", "./web/static")
	r.Static("/uploads", cfg.UploadDir)

	api := handler.NewAPI(db.DB, cfg)

	// 公共路由
	r.GET("/", api.ShowHome)
	r.GET("/post/:slug", api.ShowPost)
	r.GET("/tags", api.ShowTagArchive)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("", api.ShowDashboard)
			auth.GET("/post/new", api.ShowNewPost)
			auth.POST("/post/new", api.CreatePost)
			auth.GET("/post/:id/preview", api.PreviewPost)
			auth.GET("/post/:id/edit", api.ShowEditPost)
			auth.POST("/post/:id/edit", api.UpdatePost)
			auth.POST("/post/:id/delete", api.DeletePost)
			auth.POST("/upload", handler.MaxBodyBytes(handler.MaxUploadBytes), api.UploadImage)
		}
	}

	return r
}
