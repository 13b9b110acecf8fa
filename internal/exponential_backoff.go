package internal

import (
	"math/rand"
	"time"
)

// GetBackoffTime returns a randomized exponential backoff: a uniform draw
// from [0, 2^retries) slot times, capped at maximum.
func GetBackoffTime(retries int64, slotTime time.Duration, maximum time.Duration) time.Duration {
	if retries <= 0 || slotTime <= 0 || maximum <= 0 {
		return 0
	}
	if retries >= 63 {
		return maximum
	}
	slots := rand.Int63n(int64(1) << retries)
	if slots >= int64(maximum/slotTime) {
		return maximum
	}
	return time.Duration(slots) * slotTime
}
