package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/rootblog/internal/config"
	"github.com/rootblog/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubHTMLRender struct {
	lastName string
	lastData interface{}
}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	r.lastName = name
	r.lastData = data
	return &stubHTMLInstance{name: name, data: data}
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

func setupTestAPI(t *testing.T) (*API, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Post{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash test password: %v", err)
	}

	cfg := config.AppConfig{
		UploadDir:         t.TempDir(),
		UploadURLPath:     "/static/uploads",
		AdminLogin:        "admin",
		AdminPasswordHash: string(hash),
		BlogTitle:         "root@blog",
		BlogSubtitle:      "Заметки сисадмина",
	}

	return NewAPI(gdb, cfg), func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

// newSessionRouter wires the cookie session middleware and a recording HTML
// stub so handlers can run without the web/ template tree.
func newSessionRouter(renderer *stubHTMLRender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if renderer != nil {
		router.HTMLRender = renderer
	}
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("test_session", store))
	return router
}

func postFormRequest(t *testing.T, router *gin.Engine, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		request.AddCookie(c)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func get(t *testing.T, router *gin.Engine, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		request.AddCookie(c)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func adminRouter(api *API, renderer *stubHTMLRender) *gin.Engine {
	router := newSessionRouter(renderer)
	router.GET("/admin/login", api.ShowLoginPage)
	router.POST("/admin/login", api.Login)
	router.GET("/admin/logout", api.Logout)

	auth := router.Group("")
	auth.Use(AuthRequired())
	auth.GET("/admin", api.ShowDashboard)
	return router
}

func TestLoginWithWrongPasswordLeavesSessionUnset(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	t.Cleanup(cleanup)

	renderer := &stubHTMLRender{}
	router := adminRouter(api, renderer)

	form := url.Values{}
	form.Set("login", "admin")
	form.Set("password", "wrong")
	recorder := postFormRequest(t, router, "/admin/login", form, nil)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
	if renderer.lastName != "login.html" {
		t.Fatalf("expected login template, got %s", renderer.lastName)
	}
	payload, ok := renderer.lastData.(gin.H)
	if !ok {
		t.Fatalf("expected payload to be gin.H, got %T", renderer.lastData)
	}
	if payload["error"] != "Неверный логин или пароль" {
		t.Fatalf("expected generic error message, got %v", payload["error"])
	}

	// The dashboard must still be out of reach.
	dashboard := get(t, router, "/admin", recorder.Result().Cookies())
	if dashboard.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", dashboard.Code)
	}
	if location := dashboard.Header().Get("Location"); location != "/admin/login" {
		t.Fatalf("expected redirect to login, got %q", location)
	}
}

func TestLoginWithValidCredentialsOpensDashboard(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	t.Cleanup(cleanup)

	renderer := &stubHTMLRender{}
	router := adminRouter(api, renderer)

	form := url.Values{}
	form.Set("login", "admin")
	form.Set("password", "admin123")
	recorder := postFormRequest(t, router, "/admin/login", form, nil)

	if recorder.Code != http.StatusFound {
		t.Fatalf("expected redirect after login, got %d", recorder.Code)
	}
	if location := recorder.Header().Get("Location"); location != "/admin" {
		t.Fatalf("expected redirect to dashboard, got %q", location)
	}

	dashboard := get(t, router, "/admin", recorder.Result().Cookies())
	if dashboard.Code != http.StatusOK {
		t.Fatalf("expected dashboard to render, got %d", dashboard.Code)
	}
	if renderer.lastName != "dashboard.html" {
		t.Fatalf("expected dashboard template, got %s", renderer.lastName)
	}
}

func TestLogoutClearsSessionAndIsIdempotent(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	t.Cleanup(cleanup)

	router := adminRouter(api, &stubHTMLRender{})

	form := url.Values{}
	form.Set("login", "admin")
	form.Set("password", "admin123")
	login := postFormRequest(t, router, "/admin/login", form, nil)
	cookies := login.Result().Cookies()

	first := get(t, router, "/admin/logout", cookies)
	if first.Code != http.StatusFound || first.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to feed, got %d -> %q", first.Code, first.Header().Get("Location"))
	}
	cookies = first.Result().Cookies()

	second := get(t, router, "/admin/logout", cookies)
	if second.Code != http.StatusFound || second.Header().Get("Location") != "/" {
		t.Fatalf("expected second logout to behave the same, got %d -> %q", second.Code, second.Header().Get("Location"))
	}

	dashboard := get(t, router, "/admin", second.Result().Cookies())
	if dashboard.Code != http.StatusFound || dashboard.Header().Get("Location") != "/admin/login" {
		t.Fatalf("expected dashboard to redirect to login after logout, got %d", dashboard.Code)
	}
}

func TestLoginPageRedirectsWhenAlreadyAuthenticated(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	t.Cleanup(cleanup)

	router := adminRouter(api, &stubHTMLRender{})

	form := url.Values{}
	form.Set("login", "admin")
	form.Set("password", "admin123")
	login := postFormRequest(t, router, "/admin/login", form, nil)

	page := get(t, router, "/admin/login", login.Result().Cookies())
	if page.Code != http.StatusFound || page.Header().Get("Location") != "/admin" {
		t.Fatalf("expected redirect to dashboard, got %d -> %q", page.Code, page.Header().Get("Location"))
	}
}
