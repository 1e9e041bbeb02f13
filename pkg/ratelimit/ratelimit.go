// Package ratelimit implements the fixed-window debit counter guarding calls
// to the place-search provider. Every call debits the caller's token; the
// debit is returned after the window elapses. Denial is advisory: callers
// degrade to empty suggestions rather than failing the request.
package ratelimit

import (
	"sync"
	"time"
)

type Limiter struct {
	mu        sync.Mutex
	window    time.Duration
	maxTokens int
	counts    map[string]int
}

// New creates a limiter with the given window and a ceiling on distinct
// tokens. Past the ceiling the whole map is flushed; memory stays bounded at
// the cost of briefly resetting everyone's count.
func New(window time.Duration, maxTokens int) *Limiter {
	return &Limiter{
		window:    window,
		maxTokens: maxTokens,
		counts:    make(map[string]int),
	}
}

// Allow debits token and reports whether the call is within limit. The debit
// counts even when the call is denied, matching the window semantics of the
// upstream quota it protects.
func (l *Limiter) Allow(token string, limit int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[token]++
	n := l.counts[token]

	time.AfterFunc(l.window, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		c, ok := l.counts[token]
		if !ok {
			return
		}
		if c <= 1 {
			delete(l.counts, token)
		} else {
			l.counts[token] = c - 1
		}
	})

	if len(l.counts) > l.maxTokens {
		l.counts = make(map[string]int)
	}

	return n <= limit
}
