// Package render produces (answer, artifact) pairs for challenge issuance:
// per-kind plaintext content plus a distorted SVG representation of it.
//
// # Design
//
// Rendering is pure with respect to its inputs except for its source of
// randomness. Content and artifact are produced together so they can never
// disagree; a failed render never yields a partial pair. Glyphs are emitted
// as individual <text> elements with positional and rotational jitter, and
// NoiseLevel scales the number of distraction strokes and dots.
//
// # What this package must NOT do
//
//   - Touch challenge storage or know about record lifecycles.
//   - Apply answer normalization policy (that belongs to the engine).
//   - Be imported outside the goCaptcha module.
package render
