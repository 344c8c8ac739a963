package ratelimit

import (
	"fmt"
	"testing"
	"time"
)

// TestLimiter_WithinWindow 窗口内超过上限应拒绝
func TestLimiter_WithinWindow(t *testing.T) {
	l := New(5, 15*time.Minute)

	// 前 5 次放行
	for i := 0; i < 5; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("第 %d 次请求不应被拒绝", i+1)
		}
	}

	// 第 6 次拒绝
	if l.Allow("10.0.0.1") {
		t.Error("第 6 次请求应被拒绝")
	}

	// 其它 IP 不受影响
	if !l.Allow("10.0.0.2") {
		t.Error("不同 IP 不应被连带限流")
	}
}

// TestLimiter_WindowReset 窗口到期后计数清零
func TestLimiter_WindowReset(t *testing.T) {
	l := New(3, time.Hour)

	now := time.Now()
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("第 %d 次请求不应被拒绝", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("窗口内第 4 次请求应被拒绝")
	}

	// 时间推进到窗口边界之后
	now = now.Add(time.Hour + time.Second)
	if !l.Allow("10.0.0.1") {
		t.Error("窗口重置后应重新放行")
	}
}

// TestLimiter_Prune 过期窗口应被清理
func TestLimiter_Prune(t *testing.T) {
	l := New(1, time.Minute)

	now := time.Now()
	l.now = func() time.Time { return now }

	for i := 0; i < 2000; i++ {
		l.Allow(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}

	now = now.Add(2 * time.Minute)
	l.Allow("fresh")

	l.mu.Lock()
	size := len(l.entries)
	l.mu.Unlock()
	if size > 1024 {
		t.Errorf("过期窗口未被清理, size=%d", size)
	}
}
