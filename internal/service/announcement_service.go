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

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrSlugTaken            = errors.New("slug already exists")
)

const publicAnnouncementLimit = 20

// AnnouncementInput represents fields accepted when creating or updating an
// announcement. The whole set is re-validated and re-derived on every write.
type AnnouncementInput struct {
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
	Links       []db.ContentLink
	LinkLabels  map[string]string
}

// AnnouncementService owns the announcement write pipeline and the cached
// read paths.
type AnnouncementService struct {
	db    *gorm.DB
	cache *cache.Store
}

// NewAnnouncementService creates an AnnouncementService instance.
func NewAnnouncementService(gdb *gorm.DB, store *cache.Store) *AnnouncementService {
	return &AnnouncementService{db: gdb, cache: store}
}

// Create validates, normalizes and persists a new announcement, then
// invalidates every cache tag that could carry stale data about it.
func (s *AnnouncementService) Create(input AnnouncementInput) (*db.Announcement, error) {
	normalized := slug.Normalize(input.Slug, "announcement")

	if err := s.checkSlugCollision(normalized, 0); err != nil {
		return nil, err
	}

	announcement := db.Announcement{}
	applyAnnouncementInput(&announcement, input, normalized)

	if err := s.db.Create(&announcement).Error; err != nil {
		return nil, err
	}

	s.invalidate(normalized)
	return &announcement, nil
}

// Update replaces an existing announcement's fields with the incoming
// payload, re-running the same normalization and derivation as Create.
func (s *AnnouncementService) Update(id uint, input AnnouncementInput) (*db.Announcement, error) {
	var existing db.Announcement
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}

	normalized := slug.Normalize(input.Slug, "announcement")

	if err := s.checkSlugCollision(normalized, id); err != nil {
		return nil, err
	}

	previousSlug := existing.Slug
	applyAnnouncementInput(&existing, input, normalized)

	// Save writes the full field set; a nil PublishedAt clears the stored
	// publish time rather than leaving a stale value behind.
	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}

	s.invalidate(normalized)
	if previousSlug != "" && previousSlug != normalized {
		s.cache.Invalidate(cache.AnnouncementSlugTag(previousSlug))
	}
	return &existing, nil
}

// Delete removes an announcement permanently. There is no tombstone.
func (s *AnnouncementService) Delete(id uint) error {
	var existing db.Announcement
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}

	if err := s.db.Unscoped().Delete(&db.Announcement{}, id).Error; err != nil {
		return err
	}

	s.invalidate(existing.Slug)
	return nil
}

// Get fetches an announcement by id regardless of status. Admin use only.
func (s *AnnouncementService) Get(id uint) (*db.Announcement, error) {
	var announcement db.Announcement
	if err := s.db.First(&announcement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &announcement, nil
}

// ListAdmin returns every announcement newest first, cached under the admin
// tag.
func (s *AnnouncementService) ListAdmin() ([]db.Announcement, error) {
	value, err := s.cache.GetOrCompute(
		"announcements:admin:list",
		[]string{cache.TagAdminAnnouncements},
		func() (any, error) {
			var announcements []db.Announcement
			if err := s.db.Order("created_at desc, id desc").Find(&announcements).Error; err != nil {
				return nil, err
			}
			return announcements, nil
		},
	)
	if err != nil {
		return nil, err
	}
	announcements, _ := value.([]db.Announcement)
	return announcements, nil
}

// ListPublic returns the latest published-and-due announcements. The
// visibility filter runs at cache-population time, so a future-dated entry
// surfaces only once the cache is repopulated after its publish time.
func (s *AnnouncementService) ListPublic() ([]db.Announcement, error) {
	value, err := s.cache.GetOrCompute(
		"announcements:public:latest",
		[]string{cache.TagPublicAnnouncements},
		func() (any, error) {
			var announcements []db.Announcement
			if err := s.db.
				Where("status = ? AND published_at <= ?", db.StatusPublished, time.Now()).
				Order("published_at desc, id desc").
				Limit(publicAnnouncementLimit).
				Find(&announcements).Error; err != nil {
				return nil, err
			}
			return announcements, nil
		},
	)
	if err != nil {
		return nil, err
	}
	announcements, _ := value.([]db.Announcement)
	return announcements, nil
}

// GetPublicBySlug returns one published-and-due announcement, cached under
// its slug tag. Misses are not cached.
func (s *AnnouncementService) GetPublicBySlug(slugValue string) (*db.Announcement, error) {
	value, err := s.cache.GetOrCompute(
		"announcements:public:slug:"+slugValue,
		[]string{cache.TagPublicAnnouncements, cache.AnnouncementSlugTag(slugValue)},
		func() (any, error) {
			var announcement db.Announcement
			if err := s.db.
				Where("slug = ? AND status = ? AND published_at <= ?", slugValue, db.StatusPublished, time.Now()).
				First(&announcement).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrAnnouncementNotFound
				}
				return nil, err
			}
			return announcement, nil
		},
	)
	if err != nil {
		return nil, err
	}
	announcement, ok := value.(db.Announcement)
	if !ok {
		return nil, ErrAnnouncementNotFound
	}
	return &announcement, nil
}

func (s *AnnouncementService) checkSlugCollision(slugValue string, selfID uint) error {
	// Check and persist are two separate store operations with nothing
	// between them; two concurrent creates can both pass. The unique index
	// on slug is the backstop.
	var existing db.Announcement
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

func (s *AnnouncementService) invalidate(slugValue string) {
	s.cache.Invalidate(
		cache.TagPublicAnnouncements,
		cache.TagAdminAnnouncements,
		cache.AnnouncementSlugTag(slugValue),
	)
}

func applyAnnouncementInput(a *db.Announcement, input AnnouncementInput, normalizedSlug string) {
	a.Slug = normalizedSlug
	a.Title = strings.TrimSpace(input.Title)
	a.Category = strings.TrimSpace(input.Category)
	a.Status = strings.TrimSpace(input.Status)
	a.Content = input.Content
	a.Summary = DeriveSummary(input.Summary, input.Content, AnnouncementSummaryLen)
	a.PublishedAt = resolvePublishedAt(a.Status, input.PublishedAt)
	a.CoverURL = strings.TrimSpace(input.CoverURL)
	a.CoverAlt = strings.TrimSpace(input.CoverAlt)
	a.CoverPath = strings.TrimSpace(input.CoverPath)
	a.Links = normalizeLinks(input.Links)
	a.LinkLabels = normalizeLinkLabels(input.LinkLabels)
}

func normalizeLinks(links []db.ContentLink) []db.ContentLink {
	if len(links) == 0 {
		return nil
	}
	normalized := make([]db.ContentLink, 0, len(links))
	for _, link := range links {
		url := strings.TrimSpace(link.URL)
		if url == "" {
			continue
		}
		normalized = append(normalized, db.ContentLink{
			URL:         url,
			Title:       strings.TrimSpace(link.Title),
			Description: strings.TrimSpace(link.Description),
			Image:       strings.TrimSpace(link.Image),
		})
	}
	return normalized
}

func normalizeLinkLabels(labels map[string]string) map[string]string {
	if len(labels) == 0 {
		return nil
	}
	normalized := make(map[string]string, len(labels))
	for url, label := range labels {
		url = strings.TrimSpace(url)
		label = strings.TrimSpace(label)
		if url == "" || label == "" {
			continue
		}
		normalized[url] = label
	}
	if len(normalized) == 0 {
		return nil
	}
	return normalized
}
