package guard

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Guard suppresses duplicate execution of a logical action within a short
// window. A key stays held for the TTL regardless of what the guarded
// action did; callers never release.
type Guard struct {
	entries *cache.Cache
}

func New(ttl time.Duration) *Guard {
	// Expiry is checked lazily on acquisition; the background sweep only
	// bounds memory.
	return &Guard{entries: cache.New(ttl, time.Minute)}
}

// TryAcquire records key iff no unexpired entry for it exists. A false
// return means an equivalent action is already in flight or just completed
// and the caller must drop the duplicate.
func (g *Guard) TryAcquire(key string) bool {
	return g.entries.Add(key, struct{}{}, cache.DefaultExpiration) == nil
}

// SubmitKey builds the guard key for free-form content submissions. Rapid
// resubmissions from one user are treated as accidental duplicates
// regardless of their literal content.
func SubmitKey(userID int64) string {
	return fmt.Sprintf("submit:%d", userID)
}

// GestureKey builds the guard key for a discrete button tap, scoped to the
// gesture's unique identifier.
func GestureKey(gestureID string) string {
	return "gesture:" + gestureID
}
