package scene

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// SceneAnalysis summarizes the lighting and texture statistics of one
// screenshot.
//
// All values are purely derived from the pixel data; nothing is carried
// over between calls. The level fields are coarse classifications of the
// numeric fields and drive the preprocessing planner.
type SceneAnalysis struct {
	Brightness      float64 `json:"brightness"`      // Mean channel intensity (0-255)
	BrightnessLevel string  `json:"brightnessLevel"` // "dark", "normal" or "bright"
	Contrast        float64 `json:"contrast"`        // Luminance standard deviation (0-100)
	ContrastLevel   string  `json:"contrastLevel"`   // "low", "normal" or "high"
	Saturation      float64 `json:"saturation"`      // Mean HSV saturation (0-100)
	NoiseLevel      string  `json:"noiseLevel"`      // "low", "medium" or "high"
	HasHeavyEffects bool    `json:"hasHeavyEffects"` // True when bloom/particle cover saturates the frame
	EnvironmentHint string  `json:"environmentHint"` // "normal", "hell", "snow", "dark" or "bright"
}

// Classification thresholds. Brightness boundaries are inclusive to
// "normal": exactly 70 and exactly 180 are normal.
const (
	darkBrightnessMax   = 70
	brightBrightnessMin = 180
	lowContrastMax      = 30
	highContrastMin     = 70

	// Heavy-effects sampling: every 4th pixel, flagged when more than 5%
	// of sampled pixels are both very bright and strongly colored.
	effectSampleStep    = 4
	effectLuminanceMin  = 200
	effectSaturationMin = 60
	effectFractionMin   = 0.05

	// Noise sampling grid. Images smaller than noiseMinSize on either
	// axis skip sampling and report "low".
	noiseSampleStep = 4
	noiseMinSize    = 8
	noiseHighMin    = 14
	noiseMediumMin  = 7
)

// Analyze computes the scene statistics for an image.
//
// The analysis is a single deterministic pass plus two sparse sampling
// passes (noise, heavy effects). A 0x0 image yields neutral defaults:
// brightness 128/"normal", contrast 50/"normal", saturation 0, noise
// "low", no heavy effects, environment "normal".
//
// Parameters:
//   - img: Source image; only the RGB channels are inspected
//
// Returns:
//   - SceneAnalysis with every field populated
func Analyze(img image.Image) SceneAnalysis {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return SceneAnalysis{
			Brightness:      128,
			BrightnessLevel: "normal",
			Contrast:        50,
			ContrastLevel:   "normal",
			Saturation:      0,
			NoiseLevel:      "low",
			HasHeavyEffects: false,
			EnvironmentHint: "normal",
		}
	}

	var (
		channelSum int64
		redSum     int64
		greenSum   int64
		blueSum    int64
		lumSum     float64
		satSum     float64
	)

	lums := make([]float64, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b := rgb8(img, x, y)
			channelSum += int64(r) + int64(g) + int64(b)
			redSum += int64(r)
			greenSum += int64(g)
			blueSum += int64(b)

			lum := luminance(r, g, b)
			lumSum += lum
			lums = append(lums, lum)
			satSum += saturation(r, g, b)
		}
	}

	n := float64(width * height)
	brightness := float64(channelSum) / (3 * n)
	meanLum := lumSum / n

	// Variance as the sum of squared deviations from the mean. The
	// one-pass E[X²]−E[X]² form cancels catastrophically on low-variance
	// buffers and reports nonzero contrast for uniform images.
	var devSqSum float64
	for _, lum := range lums {
		d := lum - meanLum
		devSqSum += d * d
	}
	contrast := math.Min(100, math.Sqrt(devSqSum/n))
	sat := satSum / n

	analysis := SceneAnalysis{
		Brightness:      brightness,
		BrightnessLevel: classifyBrightness(brightness),
		Contrast:        contrast,
		ContrastLevel:   classifyContrast(contrast),
		Saturation:      sat,
		NoiseLevel:      estimateNoise(img),
		HasHeavyEffects: detectHeavyEffects(img),
	}
	analysis.EnvironmentHint = classifyEnvironment(
		brightness, sat,
		float64(redSum)/n, float64(greenSum)/n, float64(blueSum)/n,
	)
	return analysis
}

func classifyBrightness(brightness float64) string {
	switch {
	case brightness < darkBrightnessMax:
		return "dark"
	case brightness > brightBrightnessMin:
		return "bright"
	default:
		return "normal"
	}
}

func classifyContrast(contrast float64) string {
	switch {
	case contrast < lowContrastMax:
		return "low"
	case contrast > highContrastMin:
		return "high"
	default:
		return "normal"
	}
}

// classifyEnvironment maps the scene statistics onto a map-environment
// hint, checked in priority order: hell, snow, dark, bright, normal.
func classifyEnvironment(brightness, sat, meanR, meanG, meanB float64) string {
	switch {
	case meanR > meanG*1.5 && meanR > meanB*1.5:
		return "hell"
	case brightness > 180 && sat < 30:
		return "snow"
	case brightness < 50:
		return "dark"
	case brightness > 200:
		return "bright"
	default:
		return "normal"
	}
}

// estimateNoise samples a coarse grid and averages the local luminance
// difference to the right and lower neighbor of each sample.
func estimateNoise(img image.Image) string {
	bounds := img.Bounds()
	if bounds.Dx() < noiseMinSize || bounds.Dy() < noiseMinSize {
		return "low"
	}

	var total float64
	var samples int
	for y := bounds.Min.Y; y+1 < bounds.Max.Y; y += noiseSampleStep {
		for x := bounds.Min.X; x+1 < bounds.Max.X; x += noiseSampleStep {
			lum := luminance(rgb8(img, x, y))
			right := luminance(rgb8(img, x+1, y))
			down := luminance(rgb8(img, x, y+1))
			total += (math.Abs(lum-right) + math.Abs(lum-down)) / 2
			samples++
		}
	}
	if samples == 0 {
		return "low"
	}

	mean := total / float64(samples)
	switch {
	case mean > noiseHighMin:
		return "high"
	case mean > noiseMediumMin:
		return "medium"
	default:
		return "low"
	}
}

// detectHeavyEffects samples every 4th pixel in raster order and counts
// those that are simultaneously very bright and strongly saturated,
// which is the signature of bloom and particle overload.
func detectHeavyEffects(img image.Image) bool {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	total := width * height
	if total == 0 {
		return false
	}

	var sampled, hot int
	for i := 0; i < total; i += effectSampleStep {
		x := bounds.Min.X + i%width
		y := bounds.Min.Y + i/width
		r, g, b := rgb8(img, x, y)
		sampled++
		if luminance(r, g, b) > effectLuminanceMin && saturation(r, g, b) > effectSaturationMin {
			hot++
		}
	}
	return float64(hot)/float64(sampled) > effectFractionMin
}

// rgb8 returns the 8-bit RGB components of a pixel.
func rgb8(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

// luminance converts a pixel to ITU-R BT.601 luminance.
// Formula: Y = 0.299*R + 0.587*G + 0.114*B
func luminance(r, g, b uint8) float64 {
	return float64(r)*0.299 + float64(g)*0.587 + float64(b)*0.114
}

// saturation returns the HSV saturation of a pixel on a 0-100 scale.
func saturation(r, g, b uint8) float64 {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	_, s, _ := c.Hsv()
	return s * 100
}
