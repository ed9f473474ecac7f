package db

import (
	"time"

	"gorm.io/gorm"
)

// Content lifecycle states. Only published documents whose publish time has
// passed are visible on public routes.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// AnnouncementCategories enumerates the allowed announcement categories.
var AnnouncementCategories = []string{"news", "maintenance", "event", "press"}

// ContentLink is an external link card attached to an announcement.
type ContentLink struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Announcement is a short public notice authored in the admin console.
type Announcement struct {
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
	Links       []ContentLink     `gorm:"serializer:json"`
	LinkLabels  map[string]string `gorm:"serializer:json"`
}

// TableName keeps the table name stable across gorm versions.
func (Announcement) TableName() string {
	return "announcements"
}

// Visible reports whether the announcement should appear on public routes
// at the given instant.
func (a *Announcement) Visible(now time.Time) bool {
	return a.Status == StatusPublished && a.PublishedAt != nil && !a.PublishedAt.After(now)
}
