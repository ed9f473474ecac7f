package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitekit/internal/cache"
)

type refreshRequest struct {
	ID uint `json:"id"`
}

// refreshTags is the fixed bundle dropped on a manual refresh. Slug
// scoped detail entries also carry one of these tags, so the bundle
// clears every cached read path.
var refreshTags = []string{
	cache.TagPublicAnnouncements,
	cache.TagAdminAnnouncements,
	cache.TagPublicPosts,
	cache.TagAdminPosts,
	cache.TagSiteConfig,
	cache.TagAdminIntakes,
}

// RefreshCache drops all cached content so the next reads hit the
// database. An optional id is accepted for forward compatibility but
// the invalidation is always the full bundle.
func (a *API) RefreshCache(c *gin.Context) {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)

	a.cache.Invalidate(refreshTags...)
	c.JSON(http.StatusOK, gin.H{"refreshed": true})
}
