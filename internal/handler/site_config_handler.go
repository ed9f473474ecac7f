package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitekit/internal/service"
)

type siteConfigRequest struct {
	Message   string `json:"message" binding:"max=2000"`
	ImageURL  string `json:"imageUrl" binding:"omitempty,url,max=500"`
	ImagePath string `json:"imagePath" binding:"max=500"`
}

// GetSiteConfig returns the current "my-life" settings document.
func (a *API) GetSiteConfig(c *gin.Context) {
	cfg, err := a.siteConfig.Get()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

// UpdateSiteConfig overwrites the settings document in place.
func (a *API) UpdateSiteConfig(c *gin.Context) {
	var req siteConfigRequest
	if !bindJSON(c, &req) {
		return
	}

	cfg, err := a.siteConfig.Set(service.SiteConfigInput{
		Message:   req.Message,
		ImageURL:  req.ImageURL,
		ImagePath: req.ImagePath,
	})
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}
