package db

import "gorm.io/gorm"

// SiteConfigKeyMyLife identifies the single "my-life" configuration record.
const SiteConfigKeyMyLife = "my-life"

// SiteConfig is a singleton configuration document: one row per well-known
// key, fully overwritten on every write, no history kept.
type SiteConfig struct {
	gorm.Model
	Key       string `gorm:"size:64;uniqueIndex;not null"`
	Message   string `gorm:"type:text"`
	ImageURL  string
	ImagePath string
}

// TableName keeps the table name stable across gorm versions.
func (SiteConfig) TableName() string {
	return "site_configs"
}
