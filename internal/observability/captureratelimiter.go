package observability

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// CaptureRateLimiter lets each distinct message through at most once per
// period. Memory is bounded by an LRU of message digests, so with many
// distinct messages a repeat can slip through early.
//
// A nil limiter lets everything through.
type CaptureRateLimiter struct {
	mu     sync.Mutex
	cache  *lru.Cache
	period time.Duration
	now    func() time.Time
}

// NewCaptureRateLimiter tracks up to size messages.
func NewCaptureRateLimiter(size int, period time.Duration) (*CaptureRateLimiter, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CaptureRateLimiter{cache: cache, period: period, now: time.Now}, nil
}

// AllowCapture reports whether msg may be reported now, and if so records
// the time.
func (rl *CaptureRateLimiter) AllowCapture(msg string) bool {
	if rl == nil {
		return true
	}
	sum := md5.Sum([]byte(msg))
	key := hex.EncodeToString(sum[:])

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if last, ok := rl.cache.Get(key); ok && now.Sub(last.(time.Time)) < rl.period {
		return false
	}
	rl.cache.Add(key, now)
	return true
}
