package ratelimit

import (
	"sync"
	"time"
)

// Limiter - скользящее окно в минуту по ключу (у шлюза ключ - IP клиента).
type Limiter struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	limit  int
	window time.Duration
}

type Config struct {
	RequestsPerMinute int
}

func New(cfg Config) *Limiter {
	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = 60
	}

	l := &Limiter{
		seen:   make(map[string][]time.Time),
		limit:  limit,
		window: time.Minute,
	}
	go l.cleanup()
	return l
}

// Allow records the request and reports whether key is still under the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	// оставляем только свежие запросы
	old := l.seen[key]
	fresh := old[:0] // reuse underlying array
	for _, t := range old {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= l.limit {
		l.seen[key] = fresh
		return false
	}

	l.seen[key] = append(fresh, now)
	return true
}

// Remaining reports how many requests key has left in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.window)
	cnt := 0
	for _, t := range l.seen[key] {
		if t.After(cutoff) {
			cnt++
		}
	}

	if rem := l.limit - cnt; rem > 0 {
		return rem
	}
	return 0
}

// RetryAfter reports how long key has to wait before a slot frees up.
func (l *Limiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.seen[key]
	if len(ts) < l.limit {
		return 0
	}

	oldest := ts[0]
	for _, t := range ts[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}

	wait := time.Until(oldest.Add(l.window))
	if wait < 0 {
		return 0
	}
	return wait
}

// cleanup - фоновая очистка ключей, которые больше не приходят.
// TODO: останавливать тикер при graceful shutdown шлюза
func (l *Limiter) cleanup() {
	tick := time.NewTicker(5 * time.Minute)
	for range tick.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-l.window)

		for key, ts := range l.seen {
			var fresh []time.Time
			for _, t := range ts {
				if t.After(cutoff) {
					fresh = append(fresh, t)
				}
			}
			if len(fresh) == 0 {
				delete(l.seen, key)
			} else {
				l.seen[key] = fresh
			}
		}
		l.mu.Unlock()
	}
}
