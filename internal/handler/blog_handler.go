package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitekit/internal/service"
)

type blogPostRequest struct {
	Title       string       `json:"title" binding:"required,max=160"`
	Slug        string       `json:"slug" binding:"required,max=160"`
	Category    string       `json:"category" binding:"required,oneof=tech culture case-study notice"`
	Status      string       `json:"status" binding:"required,oneof=draft published"`
	Content     string       `json:"content" binding:"max=60000"`
	Summary     string       `json:"summary" binding:"max=500"`
	PublishedAt *time.Time   `json:"publishedAt"`
	Cover       coverRequest `json:"cover"`
	Tags        []string     `json:"tags" binding:"omitempty,dive,max=64"`
}

func (r blogPostRequest) toInput() service.BlogPostInput {
	return service.BlogPostInput{
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
		Tags:        r.Tags,
	}
}

// ListBlogPosts returns all posts for the admin console.
func (a *API) ListBlogPosts(c *gin.Context) {
	posts, err := a.posts.ListAdmin()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetBlogPost returns one post by id, any status.
func (a *API) GetBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrBlogPostNotFound) {
			respondError(c, http.StatusNotFound, "blog post not found")
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreateBlogPost runs the write pipeline for a new post.
func (a *API) CreateBlogPost(c *gin.Context) {
	var req blogPostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := a.posts.Create(req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrSlugTaken) {
			respondError(c, http.StatusConflict, "slug already exists")
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": post.ID})
}

// UpdateBlogPost replaces a post with the incoming payload.
func (a *API) UpdateBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req blogPostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := a.posts.Update(id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBlogPostNotFound):
			respondError(c, http.StatusNotFound, "blog post not found")
		case errors.Is(err, service.ErrSlugTaken):
			respondError(c, http.StatusConflict, "slug already exists")
		default:
			respondInternalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": post.ID})
}

// DeleteBlogPost removes a post permanently.
func (a *API) DeleteBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.posts.Delete(id); err != nil {
		if errors.Is(err, service.ErrBlogPostNotFound) {
			respondError(c, http.StatusNotFound, "blog post not found")
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
