//go:build cgo

package imaging

import (
	"bytes"
	"image"

	"github.com/chai2010/webp"
)

// decodeWebPFallback decodes via the chai2010 WebP decoder, which
// handles lossless and extended WebP variants the x/image decoder
// rejects.
func decodeWebPFallback(data []byte) (image.Image, error) {
	return webp.Decode(bytes.NewReader(data))
}
