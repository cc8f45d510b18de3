package ratelimitport

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"gitlab.com/clawgames.net/internal/adapter/logging"
)

func newStore(t *testing.T) (*RateLimitRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRateLimitRepository(client, logging.NewNopLogger()), mr
}

func TestAdmit_WindowEnforced(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	ok, err := store.Admit(ctx, "203.0.113.7", now, time.Minute)
	if err != nil || !ok {
		t.Fatalf("first Admit = %v, %v", ok, err)
	}

	ok, err = store.Admit(ctx, "203.0.113.7", now.Add(time.Second), time.Minute)
	if err != nil || ok {
		t.Fatalf("second Admit = %v, %v; want rejected", ok, err)
	}

	ok, _ = store.Admit(ctx, "198.51.100.1", now, time.Minute)
	if !ok {
		t.Fatal("distinct source rejected")
	}

	mr.FastForward(61 * time.Second)
	ok, err = store.Admit(ctx, "203.0.113.7", now.Add(61*time.Second), time.Minute)
	if err != nil || !ok {
		t.Fatalf("Admit after window = %v, %v", ok, err)
	}
}

func TestAdmit_UsesCallerClock(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	if ok, err := store.Admit(ctx, "a", now, time.Minute); err != nil || !ok {
		t.Fatalf("first Admit = %v, %v", ok, err)
	}

	// no server time passes; only the injected clock moves
	if ok, _ := store.Admit(ctx, "a", now.Add(59*time.Second), time.Minute); ok {
		t.Fatal("admitted 59s after the previous submission")
	}
	if ok, err := store.Admit(ctx, "a", now.Add(time.Minute), time.Minute); err != nil || !ok {
		t.Fatalf("Admit at exactly the window = %v, %v", ok, err)
	}

	entry, err := store.GetEntry(ctx, "a")
	if err != nil || entry == nil || !entry.LastSubmissionTime.Equal(now.Add(time.Minute)) {
		t.Fatalf("GetEntry = %+v, %v", entry, err)
	}
}

func TestGetEntry(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()
	now := time.UnixMilli(1700000000123)

	if entry, err := store.GetEntry(ctx, "a"); err != nil || entry != nil {
		t.Fatalf("GetEntry before admit = %v, %v", entry, err)
	}

	_, _ = store.Admit(ctx, "a", now, time.Minute)
	entry, err := store.GetEntry(ctx, "a")
	if err != nil || entry == nil || !entry.LastSubmissionTime.Equal(now) {
		t.Fatalf("GetEntry = %+v, %v", entry, err)
	}

	mr.FastForward(2 * time.Minute)
	if entry, _ := store.GetEntry(ctx, "a"); entry != nil {
		t.Fatalf("entry survived its window: %+v", entry)
	}
}

func TestAdmit_StoreUnavailable(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()

	if _, err := store.Admit(context.Background(), "a", time.Now(), time.Minute); err == nil {
		t.Fatal("expected error from closed redis")
	}
}
