// Package count recognizes stack-count overlays inside inventory cells.
//
// Inventory cells render their stack size as a small "x12"-style badge in
// the bottom-right corner. This package locates that badge region from
// the resolution profile, binarizes it, extracts connected components and
// matches them against a fixed 5x7 digit glyph catalog to recover the
// count.
//
// # Recognition Pipeline
//
//  1. Region derivation: 40% of the cell width by the profile's count
//     text height, anchored at the cell's bottom-right corner and clamped
//     to the image.
//  2. Binarization: yellow-text or light-gray foreground rules (both
//     threshold sets are configurable via Options).
//  3. Component extraction: 4-connected flood fill; undersized and
//     oversized blobs are discarded as noise.
//  4. Optional "x" prefix detection near the region's left edge.
//  5. Glyph matching: each component is resampled onto a 5x7 grid and
//     scored against the digit templates by cell agreement.
//  6. Composition and sanity checks: digits concatenate left to right;
//     implausible totals reset to 1.
//  7. Common-stack correction: low-confidence reads snap to nearby
//     plausible stack sizes.
//
// # Failure Behavior
//
// Detection is total: degenerate regions, unreadable digits and absurd
// totals all degrade to {count: 1, method: "none"} instead of returning
// an error. An "x" with no recognizable digits is surfaced as rawText
// "x?" so callers can tell an ambiguous badge from a missing one.
//
// # Concurrency
//
// A Detector is immutable after construction; the glyph catalog and the
// common-stack table are read-only package state. Any number of
// goroutines may call Detect and HasOverlay concurrently, which is how
// the scanner fans out across grid cells.
package count
