package ratelimit

import (
	"sync"
	"time"
)

// Limiter 按客户端 IP 的固定窗口计数器。
// 窗口到期即整体清零（固定窗口，不是滑动窗口）。
type Limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string]*entry
	now     func() time.Time // 测试时可替换
}

type entry struct {
	count       int
	windowStart time.Time
}

// New 创建限流器：每个 key 在 window 内最多 max 次。
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow 判断 key 的本次请求是否放行，放行时计数加一。
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.Sub(e.windowStart) >= l.window {
		l.entries[key] = &entry{count: 1, windowStart: now}
		l.prune(now)
		return true
	}
	if e.count >= l.max {
		return false
	}
	e.count++
	return true
}

// prune 清理已过期的窗口，避免 map 无限增长。调用方必须持有锁。
func (l *Limiter) prune(now time.Time) {
	if len(l.entries) < 1024 {
		return
	}
	for k, e := range l.entries {
		if now.Sub(e.windowStart) >= l.window {
			delete(l.entries, k)
		}
	}
}
