package db

import (
	"strings"
	"time"
)

// Post 定义了文章模型。
// 不嵌入 gorm.Model：删除是物理删除，ID 不复用，不需要 DeletedAt。
type Post struct {
	ID        uint   `gorm:"primarykey"`
	Title     string `gorm:"size:300;not null"`
	Slug      string `gorm:"size:300;uniqueIndex;not null"`
	Content   string `gorm:"type:text;not null"`
	Excerpt   string `gorm:"size:500"`
	Tags      string `gorm:"size:300;default:''"`
	Published bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TagList splits the comma separated tag blob into trimmed labels,
// dropping empty segments and preserving stored order.
func (p *Post) TagList() []string {
	parts := strings.Split(p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
