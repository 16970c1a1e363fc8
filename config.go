package goCaptcha

import (
	"errors"
	"time"
)

// Config defines a public type used by goCaptcha APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Challenge ChallengeConfig
	Render    RenderConfig
	Storage   StorageConfig
	Security  SecurityConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
CHALLENGE CONFIG
====================================
*/

// ChallengeConfig defines a public type used by goCaptcha APIs.
//
// ChallengeConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ChallengeConfig struct {
	DefaultKind ChallengeKind
	TextLength  int
	DigitLength int
	TTL         time.Duration
	MaxAttempts int
	IDPrefix    string
	IDStrategy  IDStrategyType
}

/*
====================================
RENDER CONFIG
====================================
*/

// RenderConfig defines a public type used by goCaptcha APIs.
//
// RenderConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RenderConfig struct {
	Width      int
	Height     int
	NoiseLevel int
	FontSize   int
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig defines a public type used by goCaptcha APIs.
//
// StorageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StorageConfig struct {
	Backend     Backend
	RedisPrefix string

	// SweepInterval drives the memory backend's janitor. Zero disables the
	// janitor; callers must then invoke Sweep themselves.
	SweepInterval time.Duration

	// SweepScanCount bounds the per-call SCAN budget of the Redis backend's
	// accounting pass.
	SweepScanCount int64
}

/*
====================================
SECURITY CONFIG
====================================
*/

// SecurityConfig defines a public type used by goCaptcha APIs.
//
// SecurityConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SecurityConfig struct {
	EnableIPThrottle  bool
	MaxGeneratesPerIP int
	GenerateCooldown  time.Duration
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig defines a public type used by goCaptcha APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by goCaptcha APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Challenge: ChallengeConfig{
			DefaultKind: KindDigits,
			TextLength:  4,
			DigitLength: 4,
			TTL:         300 * time.Second,
			MaxAttempts: 3,
			IDPrefix:    "captcha:",
			IDStrategy:  IDTimestamp,
		},
		Render: RenderConfig{
			Width:      150,
			Height:     50,
			NoiseLevel: 4,
			FontSize:   28,
		},
		Storage: StorageConfig{
			Backend:        BackendMemory,
			RedisPrefix:    "cpc",
			SweepInterval:  5 * time.Minute,
			SweepScanCount: 512,
		},
		Security: SecurityConfig{
			EnableIPThrottle:  false,
			MaxGeneratesPerIP: 30,
			GenerateCooldown:  10 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig returns the hard-coded fallback configuration: digit
// challenges of length 4, a 300s TTL, 3 attempts, the in-memory backend, and
// audit/metrics disabled.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Challenge
	if !c.Challenge.DefaultKind.valid() {
		return errors.New("Challenge DefaultKind is not a supported kind")
	}
	if c.Challenge.TextLength < 1 || c.Challenge.TextLength > 16 {
		return errors.New("Challenge TextLength must be between 1 and 16")
	}
	if c.Challenge.DigitLength < 1 || c.Challenge.DigitLength > 16 {
		return errors.New("Challenge DigitLength must be between 1 and 16")
	}
	if c.Challenge.TTL <= 0 {
		return errors.New("Challenge TTL must be > 0")
	}
	if c.Challenge.MaxAttempts < 1 {
		return errors.New("Challenge MaxAttempts must be >= 1")
	}
	if c.Challenge.IDPrefix == "" {
		return errors.New("Challenge IDPrefix must not be empty")
	}
	if c.Challenge.IDStrategy != IDTimestamp && c.Challenge.IDStrategy != IDUUID {
		return errors.New("Challenge IDStrategy must be IDTimestamp or IDUUID")
	}

	// Render
	if c.Render.Width < 40 || c.Render.Width > 1024 {
		return errors.New("Render Width must be between 40 and 1024")
	}
	if c.Render.Height < 20 || c.Render.Height > 512 {
		return errors.New("Render Height must be between 20 and 512")
	}
	if c.Render.NoiseLevel < 0 || c.Render.NoiseLevel > 10 {
		return errors.New("Render NoiseLevel must be between 0 and 10")
	}
	if c.Render.FontSize < 8 || c.Render.FontSize > 256 {
		return errors.New("Render FontSize must be between 8 and 256")
	}

	// Storage
	if c.Storage.Backend != BackendMemory && c.Storage.Backend != BackendRedis {
		return errors.New("Storage Backend must be BackendMemory or BackendRedis")
	}
	if c.Storage.RedisPrefix == "" {
		return errors.New("Storage RedisPrefix must not be empty")
	}
	if c.Storage.SweepInterval < 0 {
		return errors.New("Storage SweepInterval must be >= 0")
	}
	if c.Storage.SweepScanCount < 1 {
		return errors.New("Storage SweepScanCount must be >= 1")
	}

	// Security
	if c.Security.EnableIPThrottle {
		if c.Security.MaxGeneratesPerIP < 1 {
			return errors.New("Security MaxGeneratesPerIP must be >= 1 when EnableIPThrottle is true")
		}
		if c.Security.GenerateCooldown <= 0 {
			return errors.New("Security GenerateCooldown must be > 0 when EnableIPThrottle is true")
		}
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize < 1 {
		return errors.New("Audit BufferSize must be >= 1 when Audit is enabled")
	}

	return nil
}
