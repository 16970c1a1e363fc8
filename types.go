package goCaptcha

import (
	"time"
)

// ChallengeKind represents the content family of an issued challenge.
//
//	Docs: docs/challenge_kinds.md
type ChallengeKind uint8

const (
	// KindText is an exported constant or variable used by the captcha engine.
	KindText ChallengeKind = iota
	// KindMath is an exported constant or variable used by the captcha engine.
	KindMath
	// KindDigits is an exported constant or variable used by the captcha engine.
	KindDigits
)

// String describes the string operation and its observable behavior.
//
// String may return an error when input validation, dependency calls, or security checks fail.
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (k ChallengeKind) String() string {
	switch k {
	case KindText:
		return "free-text"
	case KindMath:
		return "arithmetic-expression"
	case KindDigits:
		return "numeric-only"
	default:
		return "unknown"
	}
}

func (k ChallengeKind) valid() bool {
	return k == KindText || k == KindMath || k == KindDigits
}

// Backend defines a public type used by goCaptcha APIs.
//
// Backend instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Backend uint8

const (
	// BackendMemory is an exported constant or variable used by the captcha engine.
	BackendMemory Backend = iota
	// BackendRedis is an exported constant or variable used by the captcha engine.
	BackendRedis
)

// String describes the string operation and its observable behavior.
//
// String may return an error when input validation, dependency calls, or security checks fail.
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b Backend) String() string {
	switch b {
	case BackendMemory:
		return "memory"
	case BackendRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IDStrategyType defines a public type used by goCaptcha APIs.
//
// IDStrategyType instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type IDStrategyType int

const (
	// IDTimestamp is an exported constant or variable used by the captcha engine.
	IDTimestamp IDStrategyType = iota
	// IDUUID is an exported constant or variable used by the captcha engine.
	IDUUID
)

// GenerateOptions carries per-call overrides for [Engine.Generate] and
// [Engine.Refresh]. Zero values fall back to the configured defaults.
type GenerateOptions struct {
	Length     int
	Width      int
	Height     int
	NoiseLevel int
	TTL        time.Duration
}

// Challenge is returned by [Engine.Generate] and [Engine.Refresh]. It carries
// the opaque challenge id, the rendered SVG artifact, and expiry metadata.
// The plaintext answer is never included.
type Challenge struct {
	ID        string
	Kind      ChallengeKind
	Artifact  string
	ExpiresAt time.Time
	TTL       time.Duration
}

// Outcome classifies the result of a verification call. Outcomes are
// first-class values, not errors: a wrong guess is expected traffic.
//
//	Docs: docs/verification.md
type Outcome uint8

const (
	// OutcomeSuccess is an exported constant or variable used by the captcha engine.
	OutcomeSuccess Outcome = iota
	// OutcomeInvalid is an exported constant or variable used by the captcha engine.
	OutcomeInvalid
	// OutcomeExpired is an exported constant or variable used by the captcha engine.
	OutcomeExpired
	// OutcomeAttemptsExhausted is an exported constant or variable used by the captcha engine.
	OutcomeAttemptsExhausted
	// OutcomeNotFound is an exported constant or variable used by the captcha engine.
	OutcomeNotFound
)

// String describes the string operation and its observable behavior.
//
// String may return an error when input validation, dependency calls, or security checks fail.
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeExpired:
		return "expired"
	case OutcomeAttemptsExhausted:
		return "attempts_exhausted"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// VerifyResult is returned by [Engine.Verify]. AttemptsLeft is meaningful only
// when Outcome is [OutcomeInvalid].
type VerifyResult struct {
	Outcome      Outcome
	AttemptsLeft int
}

// Stats is a diagnostic snapshot returned by [Engine.Stats]. For the Redis
// backend Expired is always 0 because native eviction is authoritative, and
// Total/Active are bounded-scan estimates.
type Stats struct {
	Total   int
	Active  int
	Expired int
	Backend string
}

// HealthReport is returned by [Engine.Health]. A failed probe is reported in
// Message; Health never returns an error.
type HealthReport struct {
	Healthy bool
	Message string
}
