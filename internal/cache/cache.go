// Package cache implements a tag-based read-through cache. Entries never
// expire on a timer; the only path to freshness is explicit tag
// invalidation performed by the write side.
package cache

import "sync"

// Cache tags shared by the write pipelines and the read paths. A write must
// invalidate every tag that could hold stale data about its content type,
// public and admin facing alike.
const (
	TagPublicAnnouncements = "public-announcements"
	TagAdminAnnouncements  = "admin-announcements"
	TagPublicPosts         = "public-posts"
	TagAdminPosts          = "admin-posts"
	TagSiteConfig          = "site-config"
	TagAdminIntakes        = "admin-intakes"
)

// AnnouncementSlugTag returns the tag guarding slug-addressed announcement reads.
func AnnouncementSlugTag(slug string) string {
	return "public-announcement:" + slug
}

// BlogPostSlugTag returns the tag guarding slug-addressed blog post reads.
func BlogPostSlugTag(slug string) string {
	return "public-post:" + slug
}

type entry struct {
	value any
	tags  []string
}

// Store is an in-process tag-invalidated cache. It is safe for concurrent
// use; a read racing an invalidation may observe either the old or the new
// value, which is the intended contract.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	byTag   map[string]map[string]struct{}
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		byTag:   make(map[string]map[string]struct{}),
	}
}

// Get returns the cached value for key, if present.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// GetOrCompute returns the cached value for key, computing and caching it
// under the given tags on a miss. Concurrent misses for the same key may
// compute more than once; the last store wins.
func (s *Store) GetOrCompute(key string, tags []string, compute func() (any, error)) (any, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}

	s.set(key, tags, value)
	return value, nil
}

// Invalidate evicts every entry associated with any of the given tags.
func (s *Store) Invalidate(tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tag := range tags {
		keys, ok := s.byTag[tag]
		if !ok {
			continue
		}
		for key := range keys {
			s.drop(key)
		}
	}
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) set(key string, tags []string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		s.drop(key)
	}

	s.entries[key] = entry{value: value, tags: tags}
	for _, tag := range tags {
		keys, ok := s.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			s.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// drop removes key and its tag index entries. Caller holds the write lock.
func (s *Store) drop(key string) {
	e, ok := s.entries[key]
	if !ok {
		return
	}
	delete(s.entries, key)
	for _, tag := range e.tags {
		if keys, ok := s.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(s.byTag, tag)
			}
		}
	}
}
