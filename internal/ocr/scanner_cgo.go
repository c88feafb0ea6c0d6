//go:build cgo && linux

package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Screenshots shorter than this are upscaled x2 before recognition;
// Tesseract reads the small stroke weight of game UI text poorly at
// native size.
const upscaleMaxHeight = 600

// Available reports whether the Tesseract engine can be used.
func Available() bool {
	return true
}

// scanWords runs gosseract over the image and returns word boxes in the
// original image's coordinates.
//
// Tesseract wants a file path, so the (possibly upscaled) image is
// written to a temporary PNG first, mirroring the region-OCR flow this
// adapter grew out of.
func scanWords(img image.Image, language string) ([]Word, error) {
	scale := 1
	if img.Bounds().Dy() > 0 && img.Bounds().Dy() < upscaleMaxHeight {
		scale = 2
		img = imaging.Resize(img, img.Bounds().Dx()*2, img.Bounds().Dy()*2, imaging.Lanczos)
	}

	tmpFile, err := os.CreateTemp("", "inventory-ocr-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: image.Rect(
				box.Box.Min.X/scale,
				box.Box.Min.Y/scale,
				box.Box.Max.X/scale,
				box.Box.Max.Y/scale,
			),
		})
	}
	return words, nil
}
