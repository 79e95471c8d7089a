package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rootblog/internal/service"
)

// MaxUploadBytes bounds the whole upload request body.
const MaxUploadBytes = 16 << 20 // 16 MiB

// MaxBodyBytes caps the request body before any multipart parsing happens.
func MaxBodyBytes(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// UploadImage handles the editor image upload. The response is JSON:
// {"location": url} on success, {"error": reason} with status 400 otherwise.
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file"})
		return
	}
	if file.Size > MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file"})
		return
	}

	stored, err := a.uploads.Save(file.Filename, data)
	if err != nil {
		if errors.Is(err, service.ErrFileTypeNotAllowed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file not allowed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	response := gin.H{"location": stored.URL}
	if stored.Width > 0 && stored.Height > 0 {
		response["width"] = stored.Width
		response["height"] = stored.Height
	}
	c.JSON(http.StatusOK, response)
}
