package ratelimiter

import (
	"sync"
	"time"
)

// bucket is a token bucket for a single identity
type bucket struct {
	tokens     float64
	capacity   float64
	rate       float64 // tokens per second
	lastRefill time.Time
	lastSeen   time.Time
	mu         sync.Mutex
}

func (b *bucket) allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (b *bucket) refund() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = min(b.tokens+1, b.capacity)
}

// UserRateLimiter keeps one bucket per identity (user id, ip, ...).
// Buckets idle for longer than expiration are dropped by a janitor goroutine.
type UserRateLimiter struct {
	buckets    map[string]*bucket
	mu         sync.Mutex
	rate       float64
	capacity   float64
	expiration time.Duration
	now        func() time.Time
	stop       chan struct{}
	stopOnce   sync.Once
}

func New(rate float64, capacity float64, expiration time.Duration) *UserRateLimiter {
	url := &UserRateLimiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		capacity:   capacity,
		expiration: expiration,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	go url.janitor()
	return url
}

// PerMinute allows n requests per minute with a burst of max(1, n).
func PerMinute(n float64) *UserRateLimiter {
	capacity := n
	if capacity < 1 {
		capacity = 1
	}
	return New(n/60, capacity, time.Hour)
}

func (url *UserRateLimiter) Allow(identity string) bool {
	now := url.now()

	url.mu.Lock()
	b, ok := url.buckets[identity]
	if !ok {
		b = &bucket{tokens: url.capacity, capacity: url.capacity, rate: url.rate, lastRefill: now}
		url.buckets[identity] = b
	}
	url.mu.Unlock()

	return b.allow(now)
}

// Refund returns a token taken by Allow, never above capacity.
func (url *UserRateLimiter) Refund(identity string) {
	url.mu.Lock()
	b, ok := url.buckets[identity]
	url.mu.Unlock()
	if ok {
		b.refund()
	}
}

func (url *UserRateLimiter) janitor() {
	interval := url.expiration
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-url.stop:
			return
		case <-ticker.C:
			url.cleanup()
		}
	}
}

func (url *UserRateLimiter) cleanup() {
	cutoff := url.now().Add(-url.expiration)
	url.mu.Lock()
	defer url.mu.Unlock()
	for id, b := range url.buckets {
		b.mu.Lock()
		idle := b.lastSeen.Before(cutoff)
		b.mu.Unlock()
		if idle {
			delete(url.buckets, id)
		}
	}
}

func (url *UserRateLimiter) size() int {
	url.mu.Lock()
	defer url.mu.Unlock()
	return len(url.buckets)
}

// Stop terminates the janitor goroutine. Safe to call more than once.
func (url *UserRateLimiter) Stop() {
	url.stopOnce.Do(func() { close(url.stop) })
}
