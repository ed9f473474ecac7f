package service

import (
	"time"

	"github.com/sitekit/internal/db"
)

// resolvePublishedAt implements the publish-date rule shared by both content
// types: a published document takes the requested time or defaults to now; a
// draft carries no publish time at all (the stored field is cleared, not
// left stale).
func resolvePublishedAt(status string, requested *time.Time) *time.Time {
	if status != db.StatusPublished {
		return nil
	}
	if requested != nil && !requested.IsZero() {
		t := *requested
		return &t
	}
	now := time.Now()
	return &now
}
