package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabasePath      string
	SessionSecret     string
	GinMode           string
	UploadDir         string
	UploadURLPath     string
	AdminLogin        string
	AdminPasswordHash string
	BlogTitle         string
	BlogSubtitle      string
	BlogDescription   string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "blog.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "rootblog-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "web/static/uploads"
	}

	uploadURLPath := strings.TrimSpace(os.Getenv("UPLOAD_URL_PATH"))
	if uploadURLPath == "" {
		uploadURLPath = "/static/uploads"
	}

	adminLogin := strings.TrimSpace(os.Getenv("ADMIN_LOGIN"))
	if adminLogin == "" {
		adminLogin = "admin"
	}

	adminPasswordHash := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH"))
	if adminPasswordHash == "" {
		// 开发环境回退凭证，生产环境请用 scripts/hashpass 生成摘要
		if hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost); err == nil {
			adminPasswordHash = string(hash)
		}
	}

	blogTitle := strings.TrimSpace(os.Getenv("BLOG_TITLE"))
	if blogTitle == "" {
		blogTitle = "root@blog"
	}

	blogSubtitle := strings.TrimSpace(os.Getenv("BLOG_SUBTITLE"))
	if blogSubtitle == "" {
		blogSubtitle = "Заметки сисадмина"
	}

	blogDescription := strings.TrimSpace(os.Getenv("BLOG_DESC"))
	if blogDescription == "" {
		blogDescription = "DevOps, Linux, инфраструктура и всякое такое"
	}

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabasePath:      databasePath,
		SessionSecret:     sessionSecret,
		GinMode:           ginMode,
		UploadDir:         uploadDir,
		UploadURLPath:     uploadURLPath,
		AdminLogin:        adminLogin,
		AdminPasswordHash: adminPasswordHash,
		BlogTitle:         blogTitle,
		BlogSubtitle:      blogSubtitle,
		BlogDescription:   blogDescription,
	}
}
