package goCaptcha

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/goCaptcha/internal/rate"
	"github.com/MrEthical07/goCaptcha/internal/render"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by goCaptcha APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build resolves the storage backend once for the process lifetime and wires
// the engine. The backend choice is never re-evaluated per request; switching
// backends requires constructing a new engine (live records do not migrate).
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Security.EnableIPThrottle && b.redis == nil {
		return nil, errors.New("EnableIPThrottle requires redis client")
	}

	engine := &Engine{
		config: cfg,
	}

	// -------- BACKEND SELECTOR --------
	switch cfg.Storage.Backend {
	case BackendRedis:
		if b.redis == nil {
			return nil, errors.New("redis backend requires redis client")
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := b.redis.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		engine.store = newRedisChallengeStore(b.redis, cfg.Storage.RedisPrefix, cfg.Storage.SweepScanCount)

	case BackendMemory:
		store := newMemoryChallengeStore()
		store.startJanitor(cfg.Storage.SweepInterval)
		engine.store = store
		engine.memStore = store

	default:
		return nil, errors.New("unknown storage backend")
	}

	// -------- RENDERER --------
	renderer, err := render.New(render.Config{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		NoiseLevel: cfg.Render.NoiseLevel,
		FontSize:   cfg.Render.FontSize,
	})
	if err != nil {
		return nil, err
	}
	engine.renderer = renderer

	if b.redis != nil {
		engine.rateLimiter = rate.New(b.redis, rate.Config{
			EnableIPThrottle: cfg.Security.EnableIPThrottle,
			MaxGenerates:     cfg.Security.MaxGeneratesPerIP,
			Cooldown:         cfg.Security.GenerateCooldown,
		})
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}
