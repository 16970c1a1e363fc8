// Package goCaptcha provides a low-latency CAPTCHA issuance and verification
// engine with SVG challenge artifacts, strict TTL and attempt-count limits,
// and interchangeable in-memory or Redis-backed challenge storage.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goCaptcha is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (Challenge, VerifyResult, Stats, HealthReport). All internal
// coordination — artifact rendering, secure randomness, rate limit primitives,
// audit dispatch — lives under internal/ and is never exported.
//
// # What this package must NOT do
//
//   - Expose Redis clients, store implementations, or record encoding details
//     in its public API.
//   - Return the plaintext answer of a live challenge to any caller.
//   - Re-resolve the storage backend after Build; backend choice is fixed for
//     the process lifetime.
//
// # Storage contract
//
// Challenge records are short-lived state only. The memory backend provides no
// durability across restarts; the Redis backend delegates eviction to native
// per-key TTLs. Verification outcomes (invalid, expired, exhausted, not found)
// are returned as values, never as errors.
package goCaptcha
