package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Validation hooks
	v := NoopValidationHooks{}
	v.OnParseStart(ctx, "smoking-cancer")
	v.OnParseComplete(ctx, "smoking-cancer", 3, 2, time.Second, nil)
	v.OnValidateStart(ctx, "smoking-cancer")
	v.OnValidateComplete(ctx, "smoking-cancer", true, 0, time.Second, nil)
	v.OnIssue(ctx, "DAG-02", "high")

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "report")
	c.OnCacheMiss(ctx, "report")
	c.OnCacheSet(ctx, "report", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Validation().(NoopValidationHooks); !ok {
		t.Error("Validation() should return NoopValidationHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customValidation := &testValidationHooks{}
	SetValidationHooks(customValidation)
	if Validation() != customValidation {
		t.Error("SetValidationHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Validation().(NoopValidationHooks); !ok {
		t.Error("Reset() should restore NoopValidationHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testValidationHooks{}
	SetValidationHooks(custom)

	// Setting nil should be ignored
	SetValidationHooks(nil)

	if Validation() != custom {
		t.Error("SetValidationHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testValidationHooks struct{ NoopValidationHooks }
type testCacheHooks struct{ NoopCacheHooks }
