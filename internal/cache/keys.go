package cache

import (
	"strings"
	"time"
)

const (
	GlobalKeyPrefix = "vocabquiz"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizMarkerKey is set once a quiz has been written to pageID on day.
func QuizMarkerKey(pageID string, day time.Time) string {
	return strings.Join([]string{GlobalKeyPrefix, "quiz", "page", pageID, day.Format(time.DateOnly)}, ":")
}
