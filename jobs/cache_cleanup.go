package jobs

import (
	"github.com/sirupsen/logrus"

	"github.com/ipocraft/ipocraft-backend/services"
)

// CacheCleanupJob drops expired listing snapshot entries so the cache map
// does not accumulate dead keys between requests.
type CacheCleanupJob struct {
	Cache *services.ViewCache
}

func NewCacheCleanupJob(cache *services.ViewCache) *CacheCleanupJob {
	return &CacheCleanupJob{Cache: cache}
}

func (j *CacheCleanupJob) Run() {
	removed := j.Cache.CleanupExpired()
	if removed > 0 {
		logrus.WithFields(logrus.Fields{
			"removed_entries": removed,
			"remaining":       j.Cache.Size(),
		}).Info("Cache cleanup completed")
	}
}
