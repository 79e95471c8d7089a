package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionAuthKey    = "logged_in"
	sessionFlashKind  = "flash_kind"
	sessionFlashText  = "flash_message"
	loginErrorMessage = "Неверный логин или пароль"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Вход",
	})
}

// Login validates the credential pair and establishes the session flag.
// A failed attempt re-renders the form with a generic message that does not
// reveal which field was wrong.
func (a *API) Login(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	login := c.PostForm("login")
	password := c.PostForm("password")

	if !a.auth.Authenticate(login, password) {
		a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"title": "Вход",
			"error": loginErrorMessage,
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionAuthKey, true)
	if err := session.Save(); err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{
			"title": "Вход",
			"error": "Не удалось сохранить сессию",
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}

// Logout clears the whole session, not just the auth flag, and returns the
// visitor to the public feed. Safe to call repeatedly.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}

// ShowDashboard 渲染后台主面板，展示全部文章（含草稿）。
func (a *API) ShowDashboard(c *gin.Context) {
	posts, err := a.posts.ListAll()
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "dashboard.html", gin.H{
			"title": "Панель управления",
			"error": "Не удалось загрузить посты",
		})
		return
	}

	kind, message := popFlash(c)
	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":        "Панель управления",
		"posts":        posts,
		"flashKind":    kind,
		"flashMessage": message,
	})
}

// AuthRequired guards admin routes: a request without the session flag is
// redirected to the login page instead of failing with an error.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAuthenticated(c) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// isAuthenticated is the typed accessor for the session auth flag.
func isAuthenticated(c *gin.Context) bool {
	flag, _ := sessions.Default(c).Get(sessionAuthKey).(bool)
	return flag
}

func setFlash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.Set(sessionFlashKind, kind)
	session.Set(sessionFlashText, message)
	session.Save()
}

func popFlash(c *gin.Context) (string, string) {
	session := sessions.Default(c)
	kind, _ := session.Get(sessionFlashKind).(string)
	message, _ := session.Get(sessionFlashText).(string)
	if kind == "" && message == "" {
		return "", ""
	}
	session.Delete(sessionFlashKind)
	session.Delete(sessionFlashText)
	session.Save()
	return kind, message
}
