package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/providers"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/repositories"
)

// CachedCourseAdapter wraps a CourseRepository with caching
type CachedCourseAdapter struct {
	adapter repositories.CourseRepository
	cache   providers.CacheProvider
	now     func() time.Time
}

// NewCachedCourseAdapter creates a new cached course adapter
func NewCachedCourseAdapter(adapter repositories.CourseRepository, cache providers.CacheProvider) repositories.CourseRepository {
	return &CachedCourseAdapter{
		adapter: adapter,
		cache:   cache,
		now:     time.Now,
	}
}

// Cache TTLs
const (
	courseByIDTTL    = 2 * time.Minute
	activeCoursesTTL = time.Minute
)

const activeCoursesCacheKey = "courses:active"

func courseCacheKey(id string) string {
	return fmt.Sprintf("course:%s", id)
}

// GetByID retrieves a course by ID with caching
func (a *CachedCourseAdapter) GetByID(ctx context.Context, id string) (*entities.Course, error) {
	cacheKey := courseCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var course entities.Course
		if err := json.Unmarshal(cached, &course); err == nil {
			return &course, nil
		}
		log.Ctx(ctx).Warn().Err(err).Str("course_id", id).Msg("Failed to unmarshal cached course")
	}

	course, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.store(ctx, cacheKey, course, courseByIDTTL)
	return course, nil
}

// ListActive serves the upcoming schedule from one cached snapshot, filtered
// by the requested time so a course never outlives its start in the list.
func (a *CachedCourseAdapter) ListActive(ctx context.Context, after time.Time) ([]*entities.Course, error) {
	var snapshot []*entities.Course

	if cached, err := a.cache.Get(ctx, activeCoursesCacheKey); err == nil {
		if err := json.Unmarshal(cached, &snapshot); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("Failed to unmarshal cached course list")
			snapshot = nil
		}
	}

	if snapshot == nil {
		courses, err := a.adapter.ListActive(ctx, a.now())
		if err != nil {
			return nil, err
		}
		a.store(ctx, activeCoursesCacheKey, courses, activeCoursesTTL)
		snapshot = courses
	}

	upcoming := make([]*entities.Course, 0, len(snapshot))
	for _, c := range snapshot {
		if c.StartsAt.After(after) {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

func (a *CachedCourseAdapter) store(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data, ttl); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Failed to cache courses")
	}
}
