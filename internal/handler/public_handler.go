package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rootblog/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// ShowHome renders the paginated public feed, optionally narrowed by tag.
func (a *API) ShowHome(c *gin.Context) {
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	tag := strings.TrimSpace(c.Query("tag"))

	filter := service.PublicFilter{
		Tag:     tag,
		Page:    page,
		PerPage: 10,
	}

	posts, err := a.posts.ListPublic(filter)
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "index.html", gin.H{
			"error": "Не удалось загрузить посты",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "index.html", gin.H{
		"posts":       posts.Posts,
		"page":        posts.Page,
		"totalPages":  posts.TotalPages,
		"total":       posts.Total,
		"tag":         tag,
		"queryParams": buildQueryParams(tag),
	})
}

// ShowPost renders a single published post; unknown or unpublished slugs 404.
func (a *API) ShowPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := a.posts.GetBySlug(slug, true)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	a.renderHTML(c, http.StatusOK, "post.html", gin.H{
		"title":   post.Title,
		"post":    post,
		"content": renderMarkdown(post.Content),
	})
}

// ShowTagArchive lists tags with published post counts.
func (a *API) ShowTagArchive(c *gin.Context) {
	stats, err := a.tags.Stats()
	if err != nil {
		stats = nil
	}

	a.renderHTML(c, http.StatusOK, "tags.html", gin.H{
		"tags": stats,
	})
}

// renderMarkdown converts post markdown to sanitized HTML. A conversion
// failure degrades to the escaped source text instead of breaking the page.
func renderMarkdown(content string) template.HTML {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

func buildQueryParams(tag string) string {
	if tag == "" {
		return ""
	}
	values := url.Values{}
	values.Set("tag", tag)
	return "&" + values.Encode()
}
