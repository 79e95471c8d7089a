package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rootblog/internal/service"
)

// postForm is the explicit payload accepted by the create and edit forms.
// The published checkbox follows the HTML convention of posting "on".
type postForm struct {
	Title     string
	Content   string
	Tags      string
	Excerpt   string
	Published bool
}

func bindPostForm(c *gin.Context) postForm {
	return postForm{
		Title:     strings.TrimSpace(c.PostForm("title")),
		Content:   c.PostForm("content"),
		Tags:      c.PostForm("tags"),
		Excerpt:   strings.TrimSpace(c.PostForm("excerpt")),
		Published: c.PostForm("published") == "on",
	}
}

func (f postForm) input() service.PostInput {
	return service.PostInput{
		Title:     f.Title,
		Content:   f.Content,
		Tags:      f.Tags,
		Excerpt:   f.Excerpt,
		Published: f.Published,
	}
}

// ShowNewPost 渲染创建文章页面
func (a *API) ShowNewPost(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "editor.html", gin.H{
		"title": "Новый пост",
	})
}

// CreatePost handles the authoring form submission. An empty body re-renders
// the editor with a notice and writes nothing.
func (a *API) CreatePost(c *gin.Context) {
	form := bindPostForm(c)

	if _, err := a.posts.Create(form.input()); err != nil {
		if errors.Is(err, service.ErrContentRequired) {
			a.renderHTML(c, http.StatusBadRequest, "editor.html", gin.H{
				"title": "Новый пост",
				"form":  form,
				"error": "Напиши текст статьи :)",
			})
			return
		}
		a.renderHTML(c, http.StatusInternalServerError, "editor.html", gin.H{
			"title": "Новый пост",
			"form":  form,
			"error": "Не удалось сохранить пост",
		})
		return
	}

	setFlash(c, "success", "Пост опубликован!")
	c.Redirect(http.StatusFound, "/admin")
}

// PreviewPost renders the post detail template for any publish state.
func (a *API) PreviewPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	a.renderHTML(c, http.StatusOK, "post.html", gin.H{
		"title":   post.Title,
		"post":    post,
		"content": renderMarkdown(post.Content),
		"preview": true,
	})
}

// ShowEditPost 渲染编辑文章页面
func (a *API) ShowEditPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	a.renderHTML(c, http.StatusOK, "editor.html", gin.H{
		"title": "Редактирование",
		"post":  post,
	})
}

// UpdatePost applies the edit form to an existing post. The slug stays as it
// was at creation regardless of title changes.
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	form := bindPostForm(c)

	if _, err := a.posts.Update(id, form.input()); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		a.renderHTML(c, http.StatusInternalServerError, "editor.html", gin.H{
			"title": "Редактирование",
			"form":  form,
			"error": "Не удалось обновить пост",
		})
		return
	}

	setFlash(c, "success", "Пост обновлён!")
	c.Redirect(http.StatusFound, "/admin")
}

// DeletePost permanently removes a post and returns to the dashboard.
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	if err := a.posts.Delete(id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		a.renderHTML(c, http.StatusInternalServerError, "dashboard.html", gin.H{
			"title": "Панель управления",
			"error": "Не удалось удалить пост",
		})
		return
	}

	setFlash(c, "info", "Пост удалён")
	c.Redirect(http.StatusFound, "/admin")
}
