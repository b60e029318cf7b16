package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before any Set
	_, hit, err := c.Get(ctx, "report:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expected miss before Set")
	}

	// Round trip
	if err := c.Set(ctx, "report:abc", []byte(`{"passed":true}`), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "report:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != `{"passed":true}` {
		t.Errorf("unexpected data: %s", data)
	}

	// Delete is idempotent
	if err := c.Delete(ctx, "report:abc"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if err := c.Delete(ctx, "report:abc"); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "report:abc")
	if hit {
		t.Error("expected miss after Delete")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "expiring", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, hit, err := c.Get(ctx, "expiring")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	fc := c.(*FileCache)

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)

	if err := fc.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	_, hit, _ := c.Get(ctx, "a")
	if hit {
		t.Error("expected miss after Clear")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	opts := ReportKeyOpts{Treatment: "X", Outcome: "Y", Adjustment: []string{"Z"}}

	// Same fingerprint and options produce the same key
	k1 := k.ReportKey("fp1", opts)
	k2 := k.ReportKey("fp1", opts)
	if k1 != k2 {
		t.Error("ReportKey should be deterministic")
	}
	if !strings.HasPrefix(k1, "report:") {
		t.Errorf("ReportKey should carry report prefix, got %s", k1)
	}

	// Different fingerprints produce different keys
	if k1 == k.ReportKey("fp2", opts) {
		t.Error("different fingerprints should produce different keys")
	}

	// Different options produce different keys
	if k1 == k.ReportKey("fp1", ReportKeyOpts{Treatment: "X", Outcome: "Y", Adjustment: []string{"Z", "W"}}) {
		t.Error("different adjustment sets should produce different keys")
	}
	if k1 == k.ReportKey("fp1", ReportKeyOpts{Treatment: "X", Outcome: "Y", Adjustment: []string{"Z"}, MaxPathDepth: 5}) {
		t.Error("different depth limits should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "prod:")

	opts := ReportKeyOpts{Treatment: "X", Outcome: "Y"}
	want := "prod:" + base.ReportKey("fp", opts)
	if got := scoped.ReportKey("fp", opts); got != want {
		t.Errorf("ScopedKeyer.ReportKey = %s, want %s", got, want)
	}

	// Nil inner falls back to default keyer
	fallback := NewScopedKeyer(nil, "x:")
	if !strings.HasPrefix(fallback.ReportKey("fp", opts), "x:report:") {
		t.Error("nil inner should default")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	if IsRetryable(ErrNotFound) {
		t.Error("bare errors should not be retryable")
	}
	if !IsRetryable(Retryable(ErrNotFound)) {
		t.Error("wrapped errors should be retryable")
	}

	// Non-retryable errors return immediately
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return ErrNotFound
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("non-retryable error should not retry, got %d calls", calls)
	}

	// Retryable errors retry until success
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(context.DeadlineExceeded)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}
