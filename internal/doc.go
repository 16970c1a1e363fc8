// Package internal contains helper utilities that are intentionally private to
// goCaptcha, including secure random generation for challenge ids and answers.
//
// # Sub-packages
//
//   - render — per-kind challenge content and SVG artifact drawing
//   - rate — Redis-backed fixed-window counters for generation throttling
//
// # What this package must NOT do
//
//   - Export types that appear in the public goCaptcha API.
//   - Be imported by any package outside the goCaptcha module.
package internal
