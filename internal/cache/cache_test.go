package cache

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	a := Key("analysis", "The cat sat.")
	b := Key("analysis", "The cat sat.")
	c := Key("analysis", "The dog sat.")
	d := Key("render", "The cat sat.")
	if a != b {
		t.Fatal("same input should give the same key")
	}
	if a == c || a == d {
		t.Fatal("different input or namespace should give a different key")
	}
	if !strings.HasPrefix(a, "gapfill:analysis:") || len(a) != len("gapfill:analysis:")+64 {
		t.Fatalf("unexpected key %q", a)
	}
}

func TestMemory_GetSet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, ok, err := m.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := m.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	_ = m.Set(ctx, "k", "v", time.Minute)
	now = now.Add(59 * time.Second)
	if _, ok, _ := m.Get(ctx, "k"); !ok {
		t.Fatal("entry expired early")
	}
	now = now.Add(time.Second)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("entry should have expired")
	}
	if m.Len() != 0 {
		t.Fatal("expired entry should be dropped on read")
	}
}

func TestMemory_SweepsExpiredOnWrite(t *testing.T) {
	m := NewMemory()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < sweepEvery; i++ {
		_ = m.Set(ctx, fmt.Sprintf("k%d", i), "v", time.Second)
	}
	now = now.Add(time.Hour)
	_ = m.Set(ctx, "fresh", "v", 0)
	if m.Len() != 1 {
		t.Fatalf("expected only the fresh entry, got %d", m.Len())
	}
}

// TestRedis runs against a live server when GAPFILL_TEST_REDIS_URL is set.
func TestRedis(t *testing.T) {
	url := os.Getenv("GAPFILL_TEST_REDIS_URL")
	if url == "" {
		t.Skip("GAPFILL_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	r, err := NewRedis(ctx, url)
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	defer r.Close()

	key := Key("test", t.Name()+time.Now().String())
	if _, ok, err := r.Get(ctx, key); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := r.Set(ctx, key, "봄", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := r.Get(ctx, key)
	if err != nil || !ok || v != "봄" {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}
}

func TestNewRedis_BadURL(t *testing.T) {
	if _, err := NewRedis(context.Background(), "not a url"); err == nil {
		t.Fatal("expected a parse error")
	}
}
