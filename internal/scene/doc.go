// Package scene analyzes screenshot lighting and plans adaptive preprocessing.
//
// This package implements the first stage of the inventory scanning pipeline:
// it measures a screenshot's global statistics (brightness, contrast,
// saturation, noise, special effects, map environment), derives an
// enhancement plan from them, and applies that plan to produce the buffer
// every downstream detector consumes.
//
// # Pipeline
//
// The three operations compose into the adaptive preprocessing flow:
//
//  1. Analyze: one pass over the pixels plus two sparse sampling passes,
//     producing a SceneAnalysis.
//  2. PlanPreprocess: a pure mapping from SceneAnalysis to PreprocessConfig.
//  3. Apply: executes the config (brightness, contrast, smoothing,
//     sharpening, histogram stretch, in that order) on a fresh buffer.
//
// Enhance bundles all three for callers that do not need the intermediate
// values.
//
// # Determinism
//
// Every function in this package is pure: identical input buffers produce
// identical outputs, there is no internal state, and nothing is mutated.
// Degenerate inputs (0x0 or 1x1 images) return safe neutral results rather
// than failing, which lets callers feed arbitrary crops without
// pre-validation.
//
// # Classification Levels
//
// Numeric measurements are also classified into coarse levels consumed by
// the planner:
//   - Brightness: "dark" (<70), "normal" (70-180 inclusive), "bright" (>180)
//   - Contrast: "low" (<30), "normal" (30-70), "high" (>70)
//   - Noise: "low", "medium", "high" from sampled neighborhood differences
//
// The environment hint ("normal", "hell", "snow", "dark", "bright") is a
// coarse guess at the map biome, used to bias the enhancement plan toward
// thresholds that survive that biome's palette.
//
// # Alpha Handling
//
// Preprocessing only ever rewrites the RGB channels. The alpha channel is
// copied through unchanged, byte for byte.
package scene
