package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache provides thread-safe caching of decoded screenshots and
// icon templates to avoid redundant disk reads.
//
// The cache stores decoded image.Image values keyed by their file path.
// Once loaded, subsequent Load() calls for the same path return the
// cached copy without disk I/O. The same cache instance is shared by the
// server handlers, the scanner and the icon template loader.
//
// ImageCache is safe for concurrent use by multiple goroutines. Cached
// images remain in memory until Evict() or Clear(); a long-running
// server that scans many screenshots should clear periodically.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or loads it from disk if not
// cached.
//
// Parameters:
//   - path: File path to the image. Supported formats are PNG, JPEG
//     and WebP (game capture tools commonly emit all three).
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the
//     format (e.g. *image.RGBA, *image.NRGBA, *image.YCbCr).
//   - error: Non-nil if the file cannot be read or decoded.
//
// The image is cached using the exact path string provided; relative and
// absolute paths to the same file occupy separate entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// decode tries the registered stdlib/x decoders first, then falls back
// to the chai2010 WebP decoder, which handles lossless and extended
// WebP variants the x/image decoder rejects.
func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}

	if wimg, werr := decodeWebPFallback(data); werr == nil {
		return wimg, nil
	}
	return nil, err
}

// Clear removes all images from the cache, freeing the associated
// memory. After Clear(), every image is reloaded from disk on its next
// Load().
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path. Unknown
// paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image, loading it into the
// cache if not already present. The resolution profile lookup consumes
// exactly these two values.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
