// Package detection models recognized entities and fuses detections from
// independent recognition pipelines.
//
// A Result ties a catalog entity to the confidence and method of the
// pipeline that recognized it, plus the optional position and stack
// count. Three operations consume Results:
//
//   - AggregateDuplicates merges repeated detections of one entity,
//     summing stack counts and keeping the strongest confidence.
//   - Combine fuses the OCR pipeline's results with the CV pipeline's:
//     when both pipelines agree on an entity, the merged record's
//     confidence is boosted and its method becomes "hybrid".
//   - IconMatcher produces CV results by scoring cell crops against the
//     catalog's icon templates in Lab color space.
//
// # Determinism
//
// Both aggregation steps sort with stable ordering (display name
// ascending for duplicates, confidence descending for fusion, insertion
// order on ties), so identical inputs always yield byte-identical
// output. Grouping is keyed explicitly and carries arrival order rather
// than relying on map iteration.
package detection
