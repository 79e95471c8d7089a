package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var (
	ErrFileTypeNotAllowed = errors.New("file type not allowed")

	allowedExtensions = map[string]bool{
		".png":  true,
		".jpg":  true,
		".jpeg": true,
		".gif":  true,
		".webp": true,
		".svg":  true,
	}

	unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// UploadService persists uploaded images into the public upload directory.
type UploadService struct {
	dir     string
	urlPath string
}

// StoredUpload describes a persisted upload. Width and Height are zero when
// the image dimensions could not be probed (e.g. svg).
type StoredUpload struct {
	URL    string
	Width  int
	Height int
}

// NewUploadService creates an UploadService writing into dir and serving
// files under urlPath.
func NewUploadService(dir, urlPath string) *UploadService {
	return &UploadService{dir: dir, urlPath: urlPath}
}

// Save validates the extension, sanitizes the name and writes the bytes to
// the upload directory, returning the public URL of the stored file.
//
// The stored name carries the current unix timestamp between base name and
// extension. Two uploads of the same base name within the same second still
// collide; accepted limitation for a single-admin system.
func (s *UploadService) Save(fileName string, data []byte) (*StoredUpload, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return nil, ErrFileTypeNotAllowed
	}

	base := sanitizeFileName(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
	if base == "" {
		base = uuid.NewString()
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	storedName := fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, storedName), data, 0o644); err != nil {
		return nil, err
	}

	stored := &StoredUpload{URL: path.Join(s.urlPath, storedName)}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		stored.Width = cfg.Width
		stored.Height = cfg.Height
	}

	return stored, nil
}

// sanitizeFileName strips directory components and anything outside
// [A-Za-z0-9._-], turning whitespace into underscores first. The result never
// contains path separators or parent references.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFileChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._-")
}
