package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rootblog/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrContentRequired = errors.New("post content is required")
)

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title     string
	Content   string
	Tags      string
	Excerpt   string
	Published bool
}

// PublicFilter describes filters for the public post feed.
type PublicFilter struct {
	Tag     string
	Page    int
	PerPage int
}

// PostListResult aggregates paginated list data.
type PostListResult struct {
	Posts      []db.Post
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// Create validates input, derives a unique slug from the title and persists
// the post. The slug is fixed here for the lifetime of the post.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrContentRequired
	}

	slug, err := s.generateSlug(input.Title)
	if err != nil {
		return nil, err
	}

	post := db.Post{
		Title:     strings.TrimSpace(input.Title),
		Slug:      slug,
		Content:   input.Content,
		Excerpt:   strings.TrimSpace(input.Excerpt),
		Tags:      input.Tags,
		Published: input.Published,
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}

	return &post, nil
}

// Update applies updates to an existing post. The slug and creation time are
// never touched, even when the title changes.
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	existing.Title = strings.TrimSpace(input.Title)
	existing.Content = input.Content
	existing.Tags = input.Tags
	existing.Excerpt = strings.TrimSpace(input.Excerpt)
	existing.Published = input.Published

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}

	return &existing, nil
}

// Delete permanently removes a post by id.
func (s *PostService) Delete(id uint) error {
	result := s.db.Delete(&db.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Get fetches a post by id regardless of publish state.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug fetches a post by slug. With publishedOnly set, an existing but
// unpublished post is reported as not found.
func (s *PostService) GetBySlug(slug string, publishedOnly bool) (*db.Post, error) {
	query := s.db.Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var post db.Post
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListPublic provides the paginated public feed: published posts only,
// newest first, optionally narrowed by tag.
//
// The tag filter is a substring match against the raw comma separated blob,
// so filtering by "go" also matches a post tagged "mongo". Kept for
// compatibility with the historical behavior.
func (s *PostService) ListPublic(filter PublicFilter) (*PostListResult, error) {
	result := &PostListResult{Page: filter.Page, PerPage: filter.PerPage}
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.PerPage <= 0 {
		result.PerPage = 10
	}

	baseQuery := s.db.Model(&db.Post{}).Where("published = ?", true)
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		baseQuery = baseQuery.Where("tags LIKE ?", "%"+tag+"%")
	}

	if err := baseQuery.Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.Page - 1) * result.PerPage

	var posts []db.Post
	if err := baseQuery.
		Order("created_at desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	if result.Total == 0 {
		result.TotalPages = 1
	} else {
		result.TotalPages = int((result.Total + int64(result.PerPage) - 1) / int64(result.PerPage))
	}

	result.Posts = posts
	return result, nil
}

// ListAll returns every post in any publish state ordered by created time
// descending. Dashboard use only.
func (s *PostService) ListAll() ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// generateSlug resolves the slugified title against the persisted state,
// appending -1, -2, ... until an unused slug is found. An empty base falls
// back to purely numeric candidates so slugs are never empty.
// The check-then-insert is not locked; with a single admin writer the unique
// index turns the worst case into a failed insert.
func (s *PostService) generateSlug(title string) (string, error) {
	base := Slugify(title)
	candidate := base

	for i := 1; ; i++ {
		if candidate != "" {
			taken, err := s.slugExists(candidate)
			if err != nil {
				return "", err
			}
			if !taken {
				return candidate, nil
			}
		}

		if base == "" {
			candidate = strconv.Itoa(i)
		} else {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
	}
}

func (s *PostService) slugExists(slug string) (bool, error) {
	var count int64
	if err := s.db.Model(&db.Post{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
