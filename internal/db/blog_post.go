package db

import (
	"time"

	"gorm.io/gorm"
)

// BlogPostCategories enumerates the allowed blog categories.
var BlogPostCategories = []string{"tech", "culture", "case-study", "notice"}

// BlogPost is a long-form article authored in the admin console.
type BlogPost struct {
	gorm.Model
	Slug        string `gorm:"uniqueIndex;not null"`
	Title       string `gorm:"size:160;not null"`
	Category    string `gorm:"size:32;not null"`
	Status      string `gorm:"size:16;not null;default:draft"`
	Content     string `gorm:"type:text"`
	Summary     string
	PublishedAt *time.Time `gorm:"index"`
	CoverURL    string
	CoverAlt    string
	CoverPath   string
	Tags        []string `gorm:"serializer:json"`
}

// TableName keeps the table name stable across gorm versions.
func (BlogPost) TableName() string {
	return "blog_posts"
}

// Visible reports whether the post should appear on public routes at the
// given instant.
func (p *BlogPost) Visible(now time.Time) bool {
	return p.Status == StatusPublished && p.PublishedAt != nil && !p.PublishedAt.After(now)
}
