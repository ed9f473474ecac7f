package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sitekit/internal/cache"
	"github.com/sitekit/internal/db"
	"github.com/sitekit/internal/slug"
	"gorm.io/gorm"
)

var ErrBlogPostNotFound = errors.New("blog post not found")

const publicBlogPostLimit = 20

// BlogPostInput represents fields accepted when creating or updating a blog
// post.
type BlogPostInput struct {
	Title       string
	Slug        string
	Category    string
	Status      string
	Content     string
	Summary     string
	PublishedAt *time.Time
	CoverURL    string
	CoverAlt    string
	CoverPath   string
	Tags        []string
}

// BlogPostService owns the blog post write pipeline and the cached read
// paths. It runs the same pipeline as announcements with its own slug
// namespace and summary budget.
type BlogPostService struct {
	db    *gorm.DB
	cache *cache.Store
}

// NewBlogPostService creates a BlogPostService instance.
func NewBlogPostService(gdb *gorm.DB, store *cache.Store) *BlogPostService {
	return &BlogPostService{db: gdb, cache: store}
}

// Create validates, normalizes and persists a new blog post, then
// invalidates its cache tags.
func (s *BlogPostService) Create(input BlogPostInput) (*db.BlogPost, error) {
	normalized := slug.Normalize(input.Slug, "post")

	if err := s.checkSlugCollision(normalized, 0); err != nil {
		return nil, err
	}

	post := db.BlogPost{}
	applyBlogPostInput(&post, input, normalized)

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}

	s.invalidate(normalized)
	return &post, nil
}

// Update replaces an existing post's fields with the incoming payload.
func (s *BlogPostService) Update(id uint, input BlogPostInput) (*db.BlogPost, error) {
	var existing db.BlogPost
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, err
	}

	normalized := slug.Normalize(input.Slug, "post")

	if err := s.checkSlugCollision(normalized, id); err != nil {
		return nil, err
	}

	previousSlug := existing.Slug
	applyBlogPostInput(&existing, input, normalized)

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}

	s.invalidate(normalized)
	if previousSlug != "" && previousSlug != normalized {
		s.cache.Invalidate(cache.BlogPostSlugTag(previousSlug))
	}
	return &existing, nil
}

// Delete removes a blog post permanently.
func (s *BlogPostService) Delete(id uint) error {
	var existing db.BlogPost
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBlogPostNotFound
		}
		return err
	}

	if err := s.db.Unscoped().Delete(&db.BlogPost{}, id).Error; err != nil {
		return err
	}

	s.invalidate(existing.Slug)
	return nil
}

// Get fetches a post by id regardless of status. Admin use only.
func (s *BlogPostService) Get(id uint) (*db.BlogPost, error) {
	var post db.BlogPost
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListAdmin returns every post newest first, cached under the admin tag.
func (s *BlogPostService) ListAdmin() ([]db.BlogPost, error) {
	value, err := s.cache.GetOrCompute(
		"posts:admin:list",
		[]string{cache.TagAdminPosts},
		func() (any, error) {
			var posts []db.BlogPost
			if err := s.db.Order("created_at desc, id desc").Find(&posts).Error; err != nil {
				return nil, err
			}
			return posts, nil
		},
	)
	if err != nil {
		return nil, err
	}
	posts, _ := value.([]db.BlogPost)
	return posts, nil
}

// ListPublic returns the latest published-and-due posts.
func (s *BlogPostService) ListPublic() ([]db.BlogPost, error) {
	value, err := s.cache.GetOrCompute(
		"posts:public:latest",
		[]string{cache.TagPublicPosts},
		func() (any, error) {
			var posts []db.BlogPost
			if err := s.db.
				Where("status = ? AND published_at <= ?", db.StatusPublished, time.Now()).
				Order("published_at desc, id desc").
				Limit(publicBlogPostLimit).
				Find(&posts).Error; err != nil {
				return nil, err
			}
			return posts, nil
		},
	)
	if err != nil {
		return nil, err
	}
	posts, _ := value.([]db.BlogPost)
	return posts, nil
}

// GetPublicBySlug returns one published-and-due post, cached under its slug
// tag.
func (s *BlogPostService) GetPublicBySlug(slugValue string) (*db.BlogPost, error) {
	value, err := s.cache.GetOrCompute(
		"posts:public:slug:"+slugValue,
		[]string{cache.TagPublicPosts, cache.BlogPostSlugTag(slugValue)},
		func() (any, error) {
			var post db.BlogPost
			if err := s.db.
				Where("slug = ? AND status = ? AND published_at <= ?", slugValue, db.StatusPublished, time.Now()).
				First(&post).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrBlogPostNotFound
				}
				return nil, err
			}
			return post, nil
		},
	)
	if err != nil {
		return nil, err
	}
	post, ok := value.(db.BlogPost)
	if !ok {
		return nil, ErrBlogPostNotFound
	}
	return &post, nil
}

func (s *BlogPostService) checkSlugCollision(slugValue string, selfID uint) error {
	var existing db.BlogPost
	query := s.db.Where("slug = ?", slugValue)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	err := query.First(&existing).Error
	if err == nil {
		return ErrSlugTaken
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (s *BlogPostService) invalidate(slugValue string) {
	s.cache.Invalidate(
		cache.TagPublicPosts,
		cache.TagAdminPosts,
		cache.BlogPostSlugTag(slugValue),
	)
}

func applyBlogPostInput(p *db.BlogPost, input BlogPostInput, normalizedSlug string) {
	p.Slug = normalizedSlug
	p.Title = strings.TrimSpace(input.Title)
	p.Category = strings.TrimSpace(input.Category)
	p.Status = strings.TrimSpace(input.Status)
	p.Content = input.Content
	p.Summary = DeriveSummary(input.Summary, input.Content, BlogPostSummaryLen)
	p.PublishedAt = resolvePublishedAt(p.Status, input.PublishedAt)
	p.CoverURL = strings.TrimSpace(input.CoverURL)
	p.CoverAlt = strings.TrimSpace(input.CoverAlt)
	p.CoverPath = strings.TrimSpace(input.CoverPath)
	p.Tags = normalizeTags(input.Tags)
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	if len(normalized) == 0 {
		return nil
	}
	return normalized
}
