package goCaptcha

import (
	"context"
	"testing"
	"time"
)

func liveRecord(answer string) *challengeRecord {
	now := time.Now()
	return &challengeRecord{
		Answer:      answer,
		Kind:        KindDigits,
		CreatedAt:   now.Unix(),
		ExpiresAt:   now.Add(5 * time.Minute).Unix(),
		MaxAttempts: 3,
	}
}

func deadRecord(answer string) *challengeRecord {
	now := time.Now()
	return &challengeRecord{
		Answer:      answer,
		Kind:        KindDigits,
		CreatedAt:   now.Add(-10 * time.Minute).Unix(),
		ExpiresAt:   now.Add(-time.Minute).Unix(),
		MaxAttempts: 3,
	}
}

func TestMemoryStoreSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store := newMemoryChallengeStore()

	if err := store.Save(ctx, "id-1", liveRecord("1234"), time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	record, err := store.Get(ctx, "id-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.Answer != "1234" {
		t.Fatalf("expected stored answer, got %q", record.Answer)
	}

	if err := store.Delete(ctx, "id-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "id-1"); err != errChallengeNotFound {
		t.Fatalf("expected errChallengeNotFound, got %v", err)
	}

	// Delete is idempotent.
	if err := store.Delete(ctx, "id-1"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := newMemoryChallengeStore()

	if err := store.Save(ctx, "id-1", liveRecord("1234"), time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	first, err := store.Get(ctx, "id-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	first.Attempts = 99

	second, err := store.Get(ctx, "id-1")
	if err != nil {
		t.Fatalf("second Get failed: %v", err)
	}
	if second.Attempts != 0 {
		t.Fatal("mutating a returned record must not affect the stored one")
	}
}

func TestMemoryStoreGetReturnsExpiredRecords(t *testing.T) {
	ctx := context.Background()
	store := newMemoryChallengeStore()

	if err := store.Save(ctx, "id-dead", deadRecord("1234"), time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Expired records stay visible until swept; classification is the
	// engine's job.
	record, err := store.Get(ctx, "id-dead")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !record.expiredAt(time.Now()) {
		t.Fatal("expected record to report as expired")
	}
}

func TestMemoryStoreSweepExpired(t *testing.T) {
	ctx := context.Background()
	store := newMemoryChallengeStore()

	if err := store.Save(ctx, "live", liveRecord("1"), time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, "dead-1", deadRecord("2"), time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, "dead-2", deadRecord("3"), time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	removed, err := store.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("SweepExpired failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 1 || stats.Active != 1 || stats.Expired != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestMemoryStoreJanitorStopIsIdempotent(t *testing.T) {
	store := newMemoryChallengeStore()
	store.startJanitor(time.Millisecond)

	store.stopJanitor()
	store.stopJanitor()
}

func TestMemoryStoreJanitorDisabledForZeroInterval(t *testing.T) {
	store := newMemoryChallengeStore()
	store.startJanitor(0)

	// No goroutine was started; stop must still be safe.
	store.stopJanitor()
}
