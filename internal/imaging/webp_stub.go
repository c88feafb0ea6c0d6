//go:build !cgo

package imaging

import (
	"errors"
	"image"
)

// decodeWebPFallback without cgo has no chai2010 decoder available;
// only the formats registered with image.Decode are supported.
func decodeWebPFallback(_ []byte) (image.Image, error) {
	return nil, errors.New("webp fallback decoder unavailable without cgo")
}
