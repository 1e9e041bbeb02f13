package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowDeniesBeyondLimit(t *testing.T) {
	limiter := New(time.Minute, 500)

	for i := 0; i < 100; i++ {
		assert.True(t, limiter.Allow("203.0.113.7", 100), "call %d should be allowed", i+1)
	}
	assert.False(t, limiter.Allow("203.0.113.7", 100), "101st call in the window should be denied")
}

func TestAllowTracksTokensIndependently(t *testing.T) {
	limiter := New(time.Minute, 500)

	for i := 0; i < 3; i++ {
		limiter.Allow("first", 3)
	}
	assert.False(t, limiter.Allow("first", 3))
	assert.True(t, limiter.Allow("second", 3), "a fresh token is unaffected by another token's debits")
}

func TestAllowRecoversAfterWindow(t *testing.T) {
	limiter := New(20*time.Millisecond, 500)

	assert.True(t, limiter.Allow("t", 1))
	assert.False(t, limiter.Allow("t", 1))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, limiter.Allow("t", 1), "debits should expire with the window")
}

func TestFlushPastTokenCeiling(t *testing.T) {
	limiter := New(time.Minute, 2)

	limiter.Allow("a", 1)
	limiter.Allow("b", 1)
	// third distinct token pushes the map over the ceiling and flushes it
	limiter.Allow("c", 1)

	assert.True(t, limiter.Allow("a", 1), "flush should have reset a's count")
}

func TestAllowConcurrent(t *testing.T) {
	limiter := New(time.Minute, 500)

	var wg sync.WaitGroup
	allowed := make(chan bool, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- limiter.Allow("shared", 100)
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	assert.Equal(t, 100, count, "exactly the limit should pass under concurrency")
}
