package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dirm02/course-admin-api/internal/models"
)

// CourseCache is the process-local lookup table keyed by course id. It is
// written by list fetches and mutations and read by the edit-preload path.
// A miss means the record was never loaded in this process; callers must not
// fall back to the network (absent-on-miss is part of the contract).
type CourseCache struct {
	store *gocache.Cache
}

// NewCourseCache builds a course cache with the given entry TTL.
func NewCourseCache(ttl, cleanupInterval time.Duration) *CourseCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &CourseCache{store: gocache.New(ttl, cleanupInterval)}
}

// Get returns the cached course and whether it was present.
func (c *CourseCache) Get(id string) (models.Course, bool) {
	if v, ok := c.store.Get(id); ok {
		if course, ok := v.(models.Course); ok {
			return course, true
		}
	}
	return models.Course{}, false
}

// Put stores or replaces a course entry.
func (c *CourseCache) Put(course models.Course) {
	if course.ID == "" {
		return
	}
	c.store.SetDefault(course.ID, course)
}

// PutPage replaces entries for every course on a freshly fetched page.
func (c *CourseCache) PutPage(courses []models.Course) {
	for _, course := range courses {
		c.Put(course)
	}
}

// Delete evicts the entry for id, if any.
func (c *CourseCache) Delete(id string) {
	c.store.Delete(id)
}
