//go:build !cgo || !linux

package ocr

import "image"

// Available reports whether the Tesseract engine can be used.
func Available() bool {
	return false
}

// scanWords on platforms without the Tesseract bindings always fails
// with ErrUnavailable. The scanner treats that as "no OCR results" and
// proceeds CV-only.
func scanWords(_ image.Image, _ string) ([]Word, error) {
	return nil, ErrUnavailable
}
