package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitekit/internal/service"
)

// UploadMedia accepts a multipart image and stores it through the media
// gate. Owner and purpose are optional form fields used in the storage
// path.
func (a *API) UploadMedia(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read file")
		return
	}
	defer file.Close()

	// Read one byte past the limit so oversized files are rejected by
	// the service rather than silently truncated.
	data, err := io.ReadAll(io.LimitReader(file, a.uploads.MaxBytes()+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read file")
		return
	}

	result, err := a.uploads.Upload(
		data,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		c.PostForm("owner"),
		c.PostForm("purpose"),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrFileTooLarge):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondInternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":    result.URL,
		"path":   result.Path,
		"width":  result.Width,
		"height": result.Height,
	})
}
