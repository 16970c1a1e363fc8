package goCaptcha

import (
	"context"
	"sync"
	"time"
)

// memoryChallengeStore keeps challenge records in a mutex-guarded map. Records
// persist until verified, deleted, or removed by SweepExpired; the janitor
// goroutine (when started) runs the sweep on a fixed interval.
type memoryChallengeStore struct {
	mu      sync.Mutex
	entries map[string]*challengeRecord

	janitorDone chan struct{}
	janitorOnce sync.Once
}

func newMemoryChallengeStore() *memoryChallengeStore {
	return &memoryChallengeStore{
		entries: make(map[string]*challengeRecord),
	}
}

func (s *memoryChallengeStore) Backend() Backend {
	return BackendMemory
}

func (s *memoryChallengeStore) Save(_ context.Context, id string, record *challengeRecord, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Overwrite is allowed; expiry is carried by the record itself.
	s.entries[id] = record.clone()
	return nil
}

func (s *memoryChallengeStore) Get(_ context.Context, id string) (*challengeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.entries[id]
	if !ok {
		return nil, errChallengeNotFound
	}

	// Expired records stay visible until swept or deleted; the engine decides
	// how to classify them.
	return record.clone(), nil
}

func (s *memoryChallengeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

func (s *memoryChallengeStore) SweepExpired(_ context.Context) (int, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, record := range s.entries {
		if record.expiredAt(now) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed, nil
}

func (s *memoryChallengeStore) Stats(_ context.Context) (storeStats, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	stats := storeStats{Total: len(s.entries)}
	for _, record := range s.entries {
		if record.expiredAt(now) {
			stats.Expired++
		} else {
			stats.Active++
		}
	}
	return stats, nil
}

// startJanitor launches the periodic sweep timer. It is safe to call at most
// once; stopJanitor terminates the goroutine.
func (s *memoryChallengeStore) startJanitor(interval time.Duration) {
	if interval <= 0 {
		return
	}

	s.janitorDone = make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				_, _ = s.SweepExpired(context.Background())
			case <-s.janitorDone:
				return
			}
		}
	}()
}

func (s *memoryChallengeStore) stopJanitor() {
	if s.janitorDone == nil {
		return
	}
	s.janitorOnce.Do(func() {
		close(s.janitorDone)
	})
}
