package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 3,
	})

	key := "203.0.113.7"

	for i := 0; i < 3; i++ {
		if !limiter.Allow(key) {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	if limiter.Allow(key) {
		t.Error("Fourth request should be blocked")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 1,
	})

	first := "203.0.113.7"
	second := "198.51.100.2"

	if !limiter.Allow(first) {
		t.Error("First key should be allowed")
	}
	if !limiter.Allow(second) {
		t.Error("Second key should be allowed")
	}

	if limiter.Allow(first) {
		t.Error("First key second request should be blocked")
	}
	if limiter.Allow(second) {
		t.Error("Second key second request should be blocked")
	}
}

func TestLimiter_Remaining(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 5,
	})

	key := "203.0.113.7"

	if remaining := limiter.Remaining(key); remaining != 5 {
		t.Errorf("Remaining() = %d, want 5", remaining)
	}

	limiter.Allow(key)
	limiter.Allow(key)

	if remaining := limiter.Remaining(key); remaining != 3 {
		t.Errorf("Remaining() = %d, want 3", remaining)
	}
}

func TestLimiter_RetryAfter(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 1,
	})

	key := "203.0.113.7"

	if wait := limiter.RetryAfter(key); wait != 0 {
		t.Errorf("RetryAfter() = %v before any requests, want 0", wait)
	}

	limiter.Allow(key)

	wait := limiter.RetryAfter(key)
	if wait <= 0 || wait > time.Minute {
		t.Errorf("RetryAfter() = %v, want within (0, 1m]", wait)
	}
}

func TestLimiter_DefaultLimit(t *testing.T) {
	limiter := New(Config{})

	if limiter.limit != 60 {
		t.Errorf("default limit = %d, want 60", limiter.limit)
	}
}
