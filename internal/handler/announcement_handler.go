package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitekit/internal/db"
	"github.com/sitekit/internal/service"
)

type coverRequest struct {
	URL  string `json:"url" binding:"omitempty,url"`
	Alt  string `json:"alt"`
	Path string `json:"path"`
}

type linkRequest struct {
	URL         string `json:"url" binding:"required,url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image" binding:"omitempty,url"`
}

type announcementRequest struct {
	Title       string            `json:"title" binding:"required,max=160"`
	Slug        string            `json:"slug" binding:"required,max=160"`
	Category    string            `json:"category" binding:"required,oneof=news maintenance event press"`
	Status      string            `json:"status" binding:"required,oneof=draft published"`
	Content     string            `json:"content" binding:"max=20000"`
	Summary     string            `json:"summary" binding:"max=500"`
	PublishedAt *time.Time        `json:"publishedAt"`
	Cover       coverRequest      `json:"cover"`
	Links       []linkRequest     `json:"links" binding:"omitempty,dive"`
	LinkLabels  map[string]string `json:"linkLabels"`
}

func (r announcementRequest) toInput() service.AnnouncementInput {
	links := make([]db.ContentLink, 0, len(r.Links))
	for _, link := range r.Links {
		links = append(links, db.ContentLink{
			URL:         link.URL,
			Title:       link.Title,
			Description: link.Description,
			Image:       link.Image,
		})
	}

	return service.AnnouncementInput{
		Title:       r.Title,
		Slug:        r.Slug,
		Category:    r.Category,
		Status:      r.Status,
		Content:     r.Content,
		Summary:     r.Summary,
		PublishedAt: r.PublishedAt,
		CoverURL:    r.Cover.URL,
		CoverAlt:    r.Cover.Alt,
		CoverPath:   r.Cover.Path,
		Links:       links,
		LinkLabels:  r.LinkLabels,
	}
}

// ListAnnouncements returns all announcements for the admin console.
func (a *API) ListAnnouncements(c *gin.Context) {
	announcements, err := a.announcements.ListAdmin()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}

// GetAnnouncement returns one announcement by id, any status.
func (a *API) GetAnnouncement(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	announcement, err := a.announcements.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			respondError(c, http.StatusNotFound, "announcement not found")
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcement": announcement})
}

// CreateAnnouncement runs the write pipeline for a new announcement.
func (a *API) CreateAnnouncement(c *gin.Context) {
	var req announcementRequest
	if !bindJSON(c, &req) {
		return
	}

	announcement, err := a.announcements.Create(req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrSlugTaken) {
			respondError(c, http.StatusConflict, "slug already exists")
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": announcement.ID})
}

// UpdateAnnouncement replaces an announcement with the incoming payload.
func (a *API) UpdateAnnouncement(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req announcementRequest
	if !bindJSON(c, &req) {
		return
	}

	announcement, err := a.announcements.Update(id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnnouncementNotFound):
			respondError(c, http.StatusNotFound, "announcement not found")
		case errors.Is(err, service.ErrSlugTaken):
			respondError(c, http.StatusConflict, "slug already exists")
		default:
			respondInternalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": announcement.ID})
}

// DeleteAnnouncement removes an announcement permanently.
func (a *API) DeleteAnnouncement(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.announcements.Delete(id); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			respondError(c, http.StatusNotFound, "announcement not found")
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
