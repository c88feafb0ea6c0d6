//go:build cgo

package imaging

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"
)

func TestLoadWebP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{90, 120, 150, 255})
		}
	}

	path := filepath.Join(t.TempDir(), "shot.webp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create webp file: %v", err)
	}
	if err := webp.Encode(f, img, &webp.Options{Lossless: true}); err != nil {
		f.Close()
		t.Fatalf("failed to encode webp: %v", err)
	}
	f.Close()

	cache := NewImageCache()
	loaded, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load(webp) failed: %v", err)
	}
	b := loaded.Bounds()
	if b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("got %dx%d, want 20x10", b.Dx(), b.Dy())
	}
}
