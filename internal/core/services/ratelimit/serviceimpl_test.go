package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gitlab.com/clawgames.net/internal/adapter/logging"
	"gitlab.com/clawgames.net/internal/adapter/memory"
	"gitlab.com/clawgames.net/internal/config"
)

func newLimiter() *SubmissionRateLimiter {
	cfg := config.DefaultSubmissionConfig()
	store := memory.NewRateLimitStore(cfg.CompactThreshold, cfg.CompactAge)
	return NewSubmissionRateLimiter(store, cfg, logging.NewNopLogger())
}

func TestAdmit_Sequence(t *testing.T) {
	l := newLimiter()
	ctx := context.Background()
	t0 := time.Unix(1700000000, 0)

	steps := []struct {
		offset time.Duration
		want   bool
	}{
		{0, true},
		{30 * time.Second, false},
		{59 * time.Second, false},
		{61 * time.Second, true},
		{90 * time.Second, false},
		{121 * time.Second, true},
	}
	for _, s := range steps {
		got, err := l.Admit(ctx, "203.0.113.7", t0.Add(s.offset))
		if err != nil {
			t.Fatalf("Admit(+%v): %v", s.offset, err)
		}
		if got != s.want {
			t.Fatalf("Admit(+%v) = %v, want %v", s.offset, got, s.want)
		}
	}
}

func TestAdmit_SourcesIndependent(t *testing.T) {
	l := newLimiter()
	ctx := context.Background()
	t0 := time.Unix(1700000000, 0)

	if ok, _ := l.Admit(ctx, "a", t0); !ok {
		t.Fatal("a rejected")
	}
	if ok, _ := l.Admit(ctx, "b", t0.Add(time.Second)); !ok {
		t.Fatal("b rejected")
	}
}

func TestAdmit_EmptyKeySharesUnknown(t *testing.T) {
	l := newLimiter()
	ctx := context.Background()
	t0 := time.Unix(1700000000, 0)

	if ok, _ := l.Admit(ctx, "", t0); !ok {
		t.Fatal("first unknown rejected")
	}
	if ok, _ := l.Admit(ctx, UnknownSource, t0.Add(time.Second)); ok {
		t.Fatal("empty key and unknown key must share a slot")
	}
}

func TestAllow_UsesClock(t *testing.T) {
	l := newLimiter()
	now := time.Unix(1700000000, 0)
	l.SetClock(func() time.Time { return now })
	ctx := context.Background()

	if ok, _ := l.Allow(ctx, "a"); !ok {
		t.Fatal("first rejected")
	}
	now = now.Add(61 * time.Second)
	if ok, _ := l.Allow(ctx, "a"); !ok {
		t.Fatal("after window rejected")
	}
}

func TestAdmit_ConcurrentSameSource(t *testing.T) {
	l := newLimiter()
	ctx := context.Background()
	t0 := time.Unix(1700000000, 0)

	var admitted int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Admit(ctx, "burst", t0); ok {
				atomic.AddInt32(&admitted, 1)
			}
		}()
	}
	wg.Wait()
	if admitted != 1 {
		t.Fatalf("admitted = %d, want 1", admitted)
	}
}
