package goCaptcha

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
)

const challengeRecordVersionV1 = 1

// redisChallengeStore persists one binary-encoded record per challenge under
// a namespaced key with Redis' native per-key TTL. Eviction is authoritative
// on the Redis side; SweepExpired and Stats are bounded SCAN accounting
// passes, never full keyspace walks.
type redisChallengeStore struct {
	redis     redis.UniversalClient
	prefix    string
	scanCount int64
}

func newRedisChallengeStore(redisClient redis.UniversalClient, prefix string, scanCount int64) *redisChallengeStore {
	if scanCount < 1 {
		scanCount = 512
	}
	return &redisChallengeStore{
		redis:     redisClient,
		prefix:    prefix,
		scanCount: scanCount,
	}
}

func (s *redisChallengeStore) Backend() Backend {
	return BackendRedis
}

func (s *redisChallengeStore) key(id string) string {
	return s.prefix + ":" + id
}

func (s *redisChallengeStore) Save(ctx context.Context, id string, record *challengeRecord, ttl time.Duration) error {
	encoded, err := encodeChallengeRecord(record)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, s.key(id), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", errStoreBackend, err)
	}
	return nil
}

func (s *redisChallengeStore) Get(ctx context.Context, id string) (*challengeRecord, error) {
	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errChallengeNotFound
		}
		return nil, fmt.Errorf("%w: %v", errStoreBackend, err)
	}

	record, err := decodeChallengeRecord(data)
	if err != nil {
		return nil, err
	}
	if record.expiredAt(time.Now()) {
		// Native TTL should have evicted the key already; clean up the
		// logical corpse and report expiry distinctly.
		_, _ = s.redis.Del(ctx, s.key(id)).Result()
		return nil, errChallengeExpired
	}
	return record, nil
}

func (s *redisChallengeStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: %v", errStoreBackend, err)
	}
	return nil
}

func (s *redisChallengeStore) SweepExpired(ctx context.Context) (int, error) {
	removed := 0

	err := s.scan(ctx, func(key string) error {
		data, err := s.redis.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil
			}
			return err
		}
		record, err := decodeChallengeRecord(data)
		if err != nil {
			return nil
		}
		if record.expiredAt(time.Now()) {
			if n, err := s.redis.Del(ctx, key).Result(); err == nil && n > 0 {
				removed++
			}
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("%w: %v", errStoreBackend, err)
	}
	return removed, nil
}

func (s *redisChallengeStore) Stats(ctx context.Context) (storeStats, error) {
	stats := storeStats{}

	err := s.scan(ctx, func(string) error {
		stats.Total++
		return nil
	})
	if err != nil {
		return storeStats{}, fmt.Errorf("%w: %v", errStoreBackend, err)
	}

	// Keys still present have a live TTL; Redis already evicted the rest.
	stats.Active = stats.Total
	return stats, nil
}

// scan visits at most scanCount keys under the store prefix per call. The
// budget bounds the cost of maintenance passes on large keyspaces.
func (s *redisChallengeStore) scan(ctx context.Context, visit func(key string) error) error {
	var (
		cursor  uint64
		visited int64
	)

	for {
		keys, next, err := s.redis.Scan(ctx, cursor, s.prefix+":*", s.scanCount).Result()
		if err != nil {
			return err
		}

		for _, key := range keys {
			if visited >= s.scanCount {
				return nil
			}
			visited++
			if err := visit(key); err != nil {
				return err
			}
		}

		cursor = next
		if cursor == 0 || visited >= s.scanCount {
			return nil
		}
	}
}

func encodeChallengeRecord(record *challengeRecord) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(challengeRecordVersionV1)
	buf.WriteByte(byte(record.Kind))

	if err := binary.Write(&buf, binary.BigEndian, record.Attempts); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, record.MaxAttempts); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, record.CreatedAt); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, record.ExpiresAt); err != nil {
		return nil, err
	}

	if len(record.Answer) > 65535 {
		return nil, errors.New("challenge record answer too long")
	}
	if err := binary.Write(&buf, binary.BigEndian, uint16(len(record.Answer))); err != nil {
		return nil, err
	}
	buf.WriteString(record.Answer)

	return buf.Bytes(), nil
}

func decodeChallengeRecord(data []byte) (*challengeRecord, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != challengeRecordVersionV1 {
		return nil, errors.New("invalid challenge record version")
	}

	kind, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}

	record := &challengeRecord{
		Kind: ChallengeKind(kind),
	}

	if err := binary.Read(reader, binary.BigEndian, &record.Attempts); err != nil {
		return nil, err
	}
	if err := binary.Read(reader, binary.BigEndian, &record.MaxAttempts); err != nil {
		return nil, err
	}
	if err := binary.Read(reader, binary.BigEndian, &record.CreatedAt); err != nil {
		return nil, err
	}
	if err := binary.Read(reader, binary.BigEndian, &record.ExpiresAt); err != nil {
		return nil, err
	}

	var answerLen uint16
	if err := binary.Read(reader, binary.BigEndian, &answerLen); err != nil {
		return nil, err
	}

	answer := make([]byte, answerLen)
	if _, err := io.ReadFull(reader, answer); err != nil {
		return nil, err
	}
	record.Answer = string(answer)

	return record, nil
}
