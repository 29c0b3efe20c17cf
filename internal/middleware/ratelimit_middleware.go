package middleware

import (
	"sync"
	"time"
)

const (
	invalidAuthLimit  = 5
	invalidAuthWindow = time.Minute
)

// InvalidAuthRateLimiter throttles repeated failed authentication attempts
// per client IP. Successful requests are never counted.
type InvalidAuthRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*authWindow
}

type authWindow struct {
	count     int
	startedAt time.Time
}

func NewInvalidAuthRateLimiter() *InvalidAuthRateLimiter {
	rl := &InvalidAuthRateLimiter{
		windows: make(map[string]*authWindow),
	}
	go rl.evictLoop()
	return rl
}

// Allow reports whether the IP may make another failed attempt within the
// current window.
func (r *InvalidAuthRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	w, ok := r.windows[ip]
	if !ok || now.Sub(w.startedAt) > invalidAuthWindow {
		r.windows[ip] = &authWindow{count: 1, startedAt: now}
		return true
	}
	if w.count >= invalidAuthLimit {
		return false
	}
	w.count++
	return true
}

func (r *InvalidAuthRateLimiter) evictLoop() {
	ticker := time.NewTicker(5 * invalidAuthWindow)
	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for ip, w := range r.windows {
			if now.Sub(w.startedAt) > invalidAuthWindow {
				delete(r.windows, ip)
			}
		}
		r.mu.Unlock()
	}
}
