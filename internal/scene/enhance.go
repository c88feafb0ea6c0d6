package scene

import (
	"image"
)

// Apply runs the preprocessing pipeline on an image and returns the
// enhanced copy.
//
// The input is never modified. The output is a new RGBA buffer with the
// same dimensions (re-anchored at the origin) and the alpha channel
// copied through unchanged. Stages run in a fixed order:
//
//  1. Brightness shift, clamped to 0-255.
//  2. Contrast scale around the 128 midpoint.
//  3. 3x3 smoothing when ReduceNoise is set.
//  4. Unsharp-mask sharpening when SharpeningFactor > 0.
//  5. Per-channel histogram stretch when NormalizeColors is set.
//
// Degenerate inputs (0x0, 1x1) pass through safely.
func Apply(img image.Image, cfg PreprocessConfig) *image.RGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return dst
	}

	// Stages 1 and 2 are pointwise; fold them into the copy loop.
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := rgba8(img, x, y)
			dst.Pix[i] = adjustChannel(r, cfg)
			dst.Pix[i+1] = adjustChannel(g, cfg)
			dst.Pix[i+2] = adjustChannel(b, cfg)
			dst.Pix[i+3] = a
			i += 4
		}
	}

	if cfg.ReduceNoise {
		smooth(dst)
	}
	if cfg.SharpeningFactor > 0 {
		sharpen(dst, cfg.SharpeningFactor)
	}
	if cfg.NormalizeColors {
		normalizeChannels(dst)
	}
	return dst
}

// Enhance analyzes the image, plans a config for it and applies it.
func Enhance(img image.Image) *image.RGBA {
	return Apply(img, PlanPreprocess(Analyze(img)))
}

// adjustChannel applies the brightness shift followed by the contrast
// scale to a single channel value.
func adjustChannel(v uint8, cfg PreprocessConfig) uint8 {
	shifted := clamp(int(v)+cfg.BrightnessAdjust, 0, 255)
	scaled := int(float64(shifted-128)*cfg.ContrastFactor + 128)
	return uint8(clamp(scaled, 0, 255))
}

// smooth replaces each RGB value with the mean of its 3x3 neighborhood.
// Border pixels average over the neighbors that exist. Alpha is left
// alone.
func smooth(img *image.RGBA) {
	src := make([]uint8, len(img.Pix))
	copy(src, img.Pix)
	width := img.Rect.Dx()
	height := img.Rect.Dy()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < 3; c++ {
				sum, count := 0, 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := x+dx, y+dy
						if nx < 0 || nx >= width || ny < 0 || ny >= height {
							continue
						}
						sum += int(src[ny*img.Stride+nx*4+c])
						count++
					}
				}
				img.Pix[y*img.Stride+x*4+c] = uint8(sum / count)
			}
		}
	}
}

// sharpen applies an unsharp mask: each channel moves away from its 3x3
// mean by the given factor.
func sharpen(img *image.RGBA, factor float64) {
	src := make([]uint8, len(img.Pix))
	copy(src, img.Pix)
	width := img.Rect.Dx()
	height := img.Rect.Dy()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < 3; c++ {
				sum, count := 0, 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := x+dx, y+dy
						if nx < 0 || nx >= width || ny < 0 || ny >= height {
							continue
						}
						sum += int(src[ny*img.Stride+nx*4+c])
						count++
					}
				}
				orig := float64(src[y*img.Stride+x*4+c])
				blurred := float64(sum) / float64(count)
				v := int(orig + factor*(orig-blurred))
				img.Pix[y*img.Stride+x*4+c] = uint8(clamp(v, 0, 255))
			}
		}
	}
}

// normalizeChannels stretches each RGB channel's histogram to the full
// 0-255 range. Channels with no spread are left untouched.
func normalizeChannels(img *image.RGBA) {
	width := img.Rect.Dx()
	height := img.Rect.Dy()
	if width == 0 || height == 0 {
		return
	}

	for c := 0; c < 3; c++ {
		minV, maxV := 255, 0
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				v := int(img.Pix[y*img.Stride+x*4+c])
				if v < minV {
					minV = v
				}
				if v > maxV {
					maxV = v
				}
			}
		}
		if maxV <= minV {
			continue
		}
		spread := maxV - minV
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				idx := y*img.Stride + x*4 + c
				img.Pix[idx] = uint8((int(img.Pix[idx]) - minV) * 255 / spread)
			}
		}
	}
}

// rgba8 returns the 8-bit RGBA components of a pixel.
func rgba8(img image.Image, x, y int) (uint8, uint8, uint8, uint8) {
	r, g, b, a := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
