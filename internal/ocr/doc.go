// Package ocr adapts the Tesseract engine into the inventory scanner's
// detection model.
//
// On Linux with CGO enabled, recognition goes through the gosseract
// bindings; everywhere else the package compiles to a stub whose entry
// points return ErrUnavailable, which the scanner interprets as "run
// CV-only". Check Available() to know which build is active.
//
// ScanWords yields raw word boxes with engine confidences. DetectEntities
// is the layer the rest of the pipeline uses: it groups words into text
// lines, matches each line against the entity catalog and emits
// detection.Results with method "ocr", ready for confidence fusion with
// the CV pipeline.
//
// The analysis core never imports this package; OCR output reaches it as
// plain detection lists, keeping the core free of cgo and I/O.
package ocr
