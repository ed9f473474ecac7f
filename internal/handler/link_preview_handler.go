package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitekit/internal/service"
)

type linkPreviewRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// FetchLinkPreview resolves Open Graph metadata for a URL pasted into
// the admin editor.
func (a *API) FetchLinkPreview(c *gin.Context) {
	var req linkPreviewRequest
	if !bindJSON(c, &req) {
		return
	}

	preview, err := a.previews.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPreviewURLInvalid):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPreviewTimeout):
			respondError(c, http.StatusGatewayTimeout, "preview fetch timed out")
		case errors.Is(err, service.ErrPreviewFailed):
			respondError(c, http.StatusBadGateway, "preview fetch failed")
		default:
			respondInternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"preview": preview})
}
