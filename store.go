package goCaptcha

import (
	"context"
	"errors"
	"time"
)

var (
	errChallengeNotFound = errors.New("challenge record not found")
	errChallengeExpired  = errors.New("challenge record expired")
	errStoreBackend      = errors.New("challenge store backend unavailable")
)

// challengeRecord is the unit of stored state. Answer is already normalized;
// the record never leaves the process boundary except binary-encoded for the
// Redis backend.
type challengeRecord struct {
	Answer      string
	Kind        ChallengeKind
	CreatedAt   int64
	ExpiresAt   int64
	Attempts    uint16
	MaxAttempts uint16
}

func (r *challengeRecord) clone() *challengeRecord {
	cp := *r
	return &cp
}

func (r *challengeRecord) expiredAt(now time.Time) bool {
	return now.Unix() > r.ExpiresAt
}

type storeStats struct {
	Total   int
	Active  int
	Expired int
}

// challengeStore is the contract both backends implement. Get returns
// errChallengeNotFound for absent records; the Redis variant additionally
// reports errChallengeExpired for logically-dead records it deletes on read.
// Save/Delete are idempotent. SweepExpired removes logically-dead records for
// the memory variant and is a bounded accounting pass for the Redis variant.
type challengeStore interface {
	Save(ctx context.Context, id string, record *challengeRecord, ttl time.Duration) error
	Get(ctx context.Context, id string) (*challengeRecord, error)
	Delete(ctx context.Context, id string) error
	SweepExpired(ctx context.Context) (int, error)
	Stats(ctx context.Context) (storeStats, error)
	Backend() Backend
}
