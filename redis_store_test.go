package goCaptcha

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRedisStoreSaveGetRoundTrip(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := newRedisChallengeStore(rdb, "cpc", 512)

	original := liveRecord("17")
	original.Kind = KindMath
	original.Attempts = 1

	if err := store.Save(ctx, "id-1", original, time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, "id-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Answer != original.Answer ||
		got.Kind != original.Kind ||
		got.Attempts != original.Attempts ||
		got.MaxAttempts != original.MaxAttempts ||
		got.CreatedAt != original.CreatedAt ||
		got.ExpiresAt != original.ExpiresAt {
		t.Fatalf("round-trip mismatch: got %+v want %+v", got, original)
	}
}

func TestRedisStoreSetsNativeTTL(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := newRedisChallengeStore(rdb, "cpc", 512)

	if err := store.Save(ctx, "id-ttl", liveRecord("1234"), 90*time.Second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ttl := mr.TTL("cpc:id-ttl")
	if ttl <= 0 || ttl > 90*time.Second {
		t.Fatalf("expected native TTL within (0, 90s], got %s", ttl)
	}
}

func TestRedisStoreNativeEvictionIsNotFound(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := newRedisChallengeStore(rdb, "cpc", 512)

	if err := store.Save(ctx, "id-evict", liveRecord("1234"), time.Second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := store.Get(ctx, "id-evict"); err != errChallengeNotFound {
		t.Fatalf("expected errChallengeNotFound after eviction, got %v", err)
	}
}

func TestRedisStoreDeletesLogicalCorpseOnRead(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := newRedisChallengeStore(rdb, "cpc", 512)

	if err := store.Save(ctx, "id-corpse", deadRecord("1234"), time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := store.Get(ctx, "id-corpse"); err != errChallengeExpired {
		t.Fatalf("expected errChallengeExpired, got %v", err)
	}

	// The corpse was removed by the read.
	if mr.Exists("cpc:id-corpse") {
		t.Fatal("expected expired key to be deleted on read")
	}
}

func TestRedisStoreDeleteIsIdempotent(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := newRedisChallengeStore(rdb, "cpc", 512)

	if err := store.Save(ctx, "id-del", liveRecord("1234"), time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx, "id-del"); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	if err := store.Delete(ctx, "id-del"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}

func TestRedisStoreStatsIgnoresForeignKeys(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := newRedisChallengeStore(rdb, "cpc", 512)

	for i := 0; i < 3; i++ {
		if err := store.Save(ctx, fmt.Sprintf("id-%d", i), liveRecord("1"), time.Minute); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}
	// Keys outside the store prefix must never be counted.
	if err := rdb.Set(ctx, "other:key", "x", 0).Err(); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 3 || stats.Active != 3 || stats.Expired != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestRedisStoreSweepBudgetBoundsVisitedKeys(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := newRedisChallengeStore(rdb, "cpc", 4)

	for i := 0; i < 10; i++ {
		if err := store.Save(ctx, fmt.Sprintf("id-%d", i), deadRecord("1"), time.Hour); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	removed, err := store.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("SweepExpired failed: %v", err)
	}
	if removed > 4 {
		t.Fatalf("sweep exceeded its scan budget: removed %d", removed)
	}
}

func TestDecodeChallengeRecordRejectsBadData(t *testing.T) {
	if _, err := decodeChallengeRecord(nil); err == nil {
		t.Fatal("expected error for empty payload")
	}

	if _, err := decodeChallengeRecord([]byte{0xFF, 0x00}); err == nil {
		t.Fatal("expected error for unknown version")
	}

	encoded, err := encodeChallengeRecord(liveRecord("1234"))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if _, err := decodeChallengeRecord(encoded[:len(encoded)-2]); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}

func TestEncodeChallengeRecordRejectsOversizedAnswer(t *testing.T) {
	record := liveRecord("")
	record.Answer = string(make([]byte, 70000))

	if _, err := encodeChallengeRecord(record); err == nil {
		t.Fatal("expected error for oversized answer")
	}
}

func TestRedisStoreBackendErrorsAreWrapped(t *testing.T) {
	mr, rdb := newTestRedis(t)

	ctx := context.Background()
	store := newRedisChallengeStore(rdb, "cpc", 512)

	mr.Close()

	if err := store.Save(ctx, "id", liveRecord("1"), time.Minute); !errors.Is(err, errStoreBackend) {
		t.Fatalf("expected errStoreBackend from Save, got %v", err)
	}
	if _, err := store.Get(ctx, "id"); !errors.Is(err, errStoreBackend) {
		t.Fatalf("expected errStoreBackend from Get, got %v", err)
	}
	if err := store.Delete(ctx, "id"); !errors.Is(err, errStoreBackend) {
		t.Fatalf("expected errStoreBackend from Delete, got %v", err)
	}
	if _, err := store.Stats(ctx); !errors.Is(err, errStoreBackend) {
		t.Fatalf("expected errStoreBackend from Stats, got %v", err)
	}
}
