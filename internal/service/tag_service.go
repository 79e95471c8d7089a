package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rootblog/internal/db"
	"gorm.io/gorm"
)

// TagService aggregates tag usage across published posts.
type TagService struct {
	db *gorm.DB
}

// TagStat pairs a tag label with the number of published posts carrying it.
type TagStat struct {
	Name  string
	Count int
}

// NewTagService creates a TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// Stats counts exact tag labels over published posts, most used first.
// Unlike the feed filter this splits the blob into tokens, so the archive
// shows real labels.
func (s *TagService) Stats() ([]TagStat, error) {
	var posts []db.Post
	if err := s.db.Where("published = ?", true).Find(&posts).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := range posts {
		for _, tag := range posts[i].TagList() {
			counts[tag]++
		}
	}

	stats := make([]TagStat, 0, len(counts))
	for name, count := range counts {
		stats = append(stats, TagStat{Name: name, Count: count})
	}

	slices.SortFunc(stats, func(a, b TagStat) int {
		if diff := cmp.Compare(b.Count, a.Count); diff != 0 {
			return diff
		}
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	return stats, nil
}
