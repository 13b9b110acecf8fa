package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetBackoffTimeStaysWithinBounds(t *testing.T) {
	for retries := int64(1); retries < 70; retries++ {
		backoff := GetBackoffTime(retries, 100*time.Millisecond, 10*time.Second)
		assert.GreaterOrEqual(t, backoff, time.Duration(0))
		assert.LessOrEqual(t, backoff, 10*time.Second)
	}
}

func TestGetBackoffTimeZeroWithoutRetries(t *testing.T) {
	assert.Zero(t, GetBackoffTime(0, time.Second, time.Minute))
	assert.Zero(t, GetBackoffTime(3, 0, time.Minute))
}

func TestGetBackoffTimeCapsAtMaximum(t *testing.T) {
	assert.Equal(t, time.Minute, GetBackoffTime(63, time.Second, time.Minute))
	assert.Equal(t, time.Second, GetBackoffTime(5, time.Minute, time.Second))
}
