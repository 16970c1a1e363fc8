// Package rate provides internal primitives used to build Redis-backed rate
// limit keys, errors, and limiter behavior for challenge generation.
//
// # Window semantics
//
// Fixed-window counters: INCR + conditional EXPIRE on first hit. Key prefix:
//   - cgi: — challenge generation per-IP
//
// # What this package must NOT do
//
//   - Implement issuance or verification policy (that lives in the engine).
//   - Be imported outside the goCaptcha module.
package rate
