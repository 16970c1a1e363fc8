package goCaptcha

import (
	"context"
	"testing"
	"time"
)

func seedExpiredRecord(t *testing.T, engine *Engine, id string) {
	t.Helper()

	now := time.Now()
	record := &challengeRecord{
		Answer:      "1234",
		Kind:        KindDigits,
		CreatedAt:   now.Add(-10 * time.Minute).Unix(),
		ExpiresAt:   now.Add(-5 * time.Minute).Unix(),
		MaxAttempts: 3,
	}
	if err := engine.store.Save(context.Background(), id, record, time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}

func TestSweepRemovesExpiredMemoryRecords(t *testing.T) {
	ctx := context.Background()
	engine := newMemoryEngine(t)

	if _, err := engine.Generate(ctx, KindDigits, GenerateOptions{}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	seedExpiredRecord(t, engine, "captcha:dead-1")
	seedExpiredRecord(t, engine, "captcha:dead-2")

	removed, err := engine.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed records, got %d", removed)
	}

	stats, err := engine.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 1 || stats.Active != 1 || stats.Expired != 0 {
		t.Fatalf("unexpected stats after sweep: %+v", stats)
	}

	snapshot := engine.MetricsSnapshot()
	if snapshot.Counters[MetricSweepRun] != 1 {
		t.Fatalf("expected 1 sweep run, got %d", snapshot.Counters[MetricSweepRun])
	}
	if snapshot.Counters[MetricSweepRemoved] != 2 {
		t.Fatalf("expected 2 swept records counted, got %d", snapshot.Counters[MetricSweepRemoved])
	}
}

func TestStatsMemoryCountsExpiredSeparately(t *testing.T) {
	ctx := context.Background()
	engine := newMemoryEngine(t)

	if _, err := engine.Generate(ctx, KindDigits, GenerateOptions{}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	seedExpiredRecord(t, engine, "captcha:dead")

	stats, err := engine.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 2 || stats.Active != 1 || stats.Expired != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Backend != "memory" {
		t.Fatalf("expected memory backend label, got %q", stats.Backend)
	}
}

func TestSweepRedisRemovesLogicalCorpses(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	engine := newRedisEngine(t, rdb)

	if _, err := engine.Generate(ctx, KindDigits, GenerateOptions{}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	seedExpiredRecord(t, engine, "captcha:corpse")

	removed, err := engine.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed corpse, got %d", removed)
	}

	stats, err := engine.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 1 || stats.Active != 1 {
		t.Fatalf("unexpected stats after sweep: %+v", stats)
	}
	// Native eviction is authoritative on Redis; Expired is always 0.
	if stats.Expired != 0 {
		t.Fatalf("expected Expired 0 for redis backend, got %d", stats.Expired)
	}
	if stats.Backend != "redis" {
		t.Fatalf("expected redis backend label, got %q", stats.Backend)
	}
}

func TestSweepRedisUnavailable(t *testing.T) {
	mr, rdb := newTestRedis(t)

	ctx := context.Background()
	engine := newRedisEngine(t, rdb)

	mr.Close()

	if _, err := engine.Sweep(ctx); err == nil {
		t.Fatal("expected sweep error after redis shutdown")
	}
	if _, err := engine.Stats(ctx); err == nil {
		t.Fatal("expected stats error after redis shutdown")
	}
}

func TestHealthMemoryBackend(t *testing.T) {
	engine := newMemoryEngine(t)

	report := engine.Health(context.Background())
	if !report.Healthy {
		t.Fatalf("expected healthy memory backend, got %q", report.Message)
	}
	if report.Message != "memory backend healthy" {
		t.Fatalf("unexpected health message %q", report.Message)
	}
}

func TestHealthRedisBackend(t *testing.T) {
	mr, rdb := newTestRedis(t)

	engine := newRedisEngine(t, rdb)

	report := engine.Health(context.Background())
	if !report.Healthy {
		t.Fatalf("expected healthy redis backend, got %q", report.Message)
	}

	mr.Close()

	report = engine.Health(context.Background())
	if report.Healthy {
		t.Fatal("expected unhealthy report after redis shutdown")
	}
	if report.Message == "" {
		t.Fatal("expected failure detail in health message")
	}

	snapshot := engine.MetricsSnapshot()
	if snapshot.Counters[MetricHealthProbeFailure] == 0 {
		t.Fatal("expected health probe failure to be counted")
	}
}

func TestHealthLeavesNoResidue(t *testing.T) {
	ctx := context.Background()
	engine := newMemoryEngine(t)

	if report := engine.Health(ctx); !report.Healthy {
		t.Fatalf("expected healthy report, got %q", report.Message)
	}

	stats, err := engine.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 0 {
		t.Fatalf("health probe must clean up after itself, found %d records", stats.Total)
	}
}
