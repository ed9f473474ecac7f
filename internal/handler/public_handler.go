package handler

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sitekit/internal/db"
	"github.com/sitekit/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown converts markdown content to sanitized HTML for the
// public pages. Rendering failures fall back to the raw text so a bad
// document never blanks a page.
func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return sanitizer.Sanitize(buf.String())
}

type publicItem struct {
	Slug        string           `json:"slug"`
	Title       string           `json:"title"`
	Category    string           `json:"category"`
	Summary     string           `json:"summary"`
	PublishedAt *time.Time       `json:"publishedAt"`
	CoverURL    string           `json:"coverUrl,omitempty"`
	CoverAlt    string           `json:"coverAlt,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Links       []db.ContentLink `json:"links,omitempty"`
}

type publicDetail struct {
	publicItem
	HTML string `json:"html"`
}

func announcementItem(a db.Announcement) publicItem {
	return publicItem{
		Slug:        a.Slug,
		Title:       a.Title,
		Category:    a.Category,
		Summary:     a.Summary,
		PublishedAt: a.PublishedAt,
		CoverURL:    a.CoverURL,
		CoverAlt:    a.CoverAlt,
		Links:       a.Links,
	}
}

func blogPostItem(p db.BlogPost) publicItem {
	return publicItem{
		Slug:        p.Slug,
		Title:       p.Title,
		Category:    p.Category,
		Summary:     p.Summary,
		PublishedAt: p.PublishedAt,
		CoverURL:    p.CoverURL,
		CoverAlt:    p.CoverAlt,
		Tags:        p.Tags,
	}
}

// PublicAnnouncements lists the latest published announcements.
func (a *API) PublicAnnouncements(c *gin.Context) {
	items, err := a.announcements.ListPublic()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load announcements")
		return
	}

	out := make([]publicItem, 0, len(items))
	for _, item := range items {
		out = append(out, announcementItem(item))
	}
	c.JSON(http.StatusOK, gin.H{"announcements": out})
}

// PublicAnnouncementBySlug returns one published announcement with its
// rendered HTML body.
func (a *API) PublicAnnouncementBySlug(c *gin.Context) {
	item, err := a.announcements.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			respondError(c, http.StatusNotFound, "announcement not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load announcement")
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcement": publicDetail{
		publicItem: announcementItem(*item),
		HTML:       renderMarkdown(item.Content),
	}})
}

// PublicBlogPosts lists the latest published blog posts.
func (a *API) PublicBlogPosts(c *gin.Context) {
	items, err := a.posts.ListPublic()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load posts")
		return
	}

	out := make([]publicItem, 0, len(items))
	for _, item := range items {
		out = append(out, blogPostItem(item))
	}
	c.JSON(http.StatusOK, gin.H{"posts": out})
}

// PublicBlogPostBySlug returns one published post with its rendered HTML
// body.
func (a *API) PublicBlogPostBySlug(c *gin.Context) {
	item, err := a.posts.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrBlogPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": publicDetail{
		publicItem: blogPostItem(*item),
		HTML:       renderMarkdown(item.Content),
	}})
}

// PublicSiteConfig returns the "my-life" snippet shown on the site
// footer.
func (a *API) PublicSiteConfig(c *gin.Context) {
	cfg, err := a.siteConfig.Get()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load site config")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  cfg.Message,
		"imageUrl": cfg.ImageURL,
	})
}

type intakeSubmitRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Email   string `json:"email" binding:"required,email,max=254"`
	Topic   string `json:"topic" binding:"required,max=160"`
	Details string `json:"details" binding:"max=4000"`
}

// SubmitIntake records a consultation request from the public contact
// form.
func (a *API) SubmitIntake(c *gin.Context) {
	var req intakeSubmitRequest
	if !bindJSON(c, &req) {
		return
	}

	intake, err := a.intakes.Submit(req.Name, req.Email, req.Topic, req.Details)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to record request")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": intake.ID})
}
