package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/causallab/dagcheck/pkg/check"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	rep := &check.Report{
		ScenarioID:  "smoking-cancer",
		Fingerprint: "fp1",
		Passed:      true,
		Issues:      []check.Issue{},
	}
	if err := s.SaveReport(ctx, rep); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	rec, err := s.GetReport(ctx, "smoking-cancer")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if rec.Report.Fingerprint != "fp1" {
		t.Errorf("fingerprint = %q", rec.Report.Fingerprint)
	}
	if rec.SavedAt.IsZero() {
		t.Error("SavedAt should be set")
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetReport(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreReplacesByScenarioID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.SaveReport(ctx, &check.Report{ScenarioID: "s1", Fingerprint: "old"})
	_ = s.SaveReport(ctx, &check.Report{ScenarioID: "s1", Fingerprint: "new"})

	rec, err := s.GetReport(ctx, "s1")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if rec.Report.Fingerprint != "new" {
		t.Errorf("fingerprint = %q, want new", rec.Report.Fingerprint)
	}

	records, err := s.ListReports(ctx, 0)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected single record after replace, got %d", len(records))
	}
}

func TestMemoryStoreListOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, id := range []string{"a", "b", "c"} {
		_ = s.SaveReport(ctx, &check.Report{ScenarioID: id})
		time.Sleep(time.Millisecond)
	}

	records, err := s.ListReports(ctx, 0)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].ScenarioID != "c" {
		t.Errorf("newest first: got %s", records[0].ScenarioID)
	}

	limited, err := s.ListReports(ctx, 2)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored: got %d records", len(limited))
	}
}
