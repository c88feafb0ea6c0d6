package scene

import (
	"image"
	"image/color"
	"testing"
)

// createTestImage creates a uniform RGBA image filled with the given color.
func createTestImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// setLinear sets the pixel at a linear raster index.
func setLinear(img *image.RGBA, idx int, c color.RGBA) {
	width := img.Rect.Dx()
	img.Set(idx%width, idx/width, c)
}

func TestAnalyzeEmptyImage(t *testing.T) {
	a := Analyze(image.NewRGBA(image.Rect(0, 0, 0, 0)))

	if a.Brightness != 128 || a.BrightnessLevel != "normal" {
		t.Errorf("got brightness %.1f/%s, want 128/normal", a.Brightness, a.BrightnessLevel)
	}
	if a.Contrast != 50 || a.ContrastLevel != "normal" {
		t.Errorf("got contrast %.1f/%s, want 50/normal", a.Contrast, a.ContrastLevel)
	}
	if a.Saturation != 0 {
		t.Errorf("got saturation %.1f, want 0", a.Saturation)
	}
	if a.NoiseLevel != "low" {
		t.Errorf("got noise %s, want low", a.NoiseLevel)
	}
	if a.HasHeavyEffects {
		t.Error("got heavy effects on empty image")
	}
	if a.EnvironmentHint != "normal" {
		t.Errorf("got environment %s, want normal", a.EnvironmentHint)
	}
}

func TestAnalyzeUniformImage(t *testing.T) {
	// Any uniform gray image has zero saturation and zero contrast.
	a := Analyze(createTestImage(32, 32, color.RGBA{128, 128, 128, 255}))

	if a.Saturation != 0 {
		t.Errorf("got saturation %.3f, want 0", a.Saturation)
	}
	if a.Contrast != 0 {
		t.Errorf("got contrast %.3f, want 0", a.Contrast)
	}
	if a.ContrastLevel != "low" {
		t.Errorf("got contrast level %s, want low", a.ContrastLevel)
	}
	if a.Brightness != 128 {
		t.Errorf("got brightness %.3f, want 128", a.Brightness)
	}
}

func TestBrightnessBoundaries(t *testing.T) {
	tests := []struct {
		gray uint8
		want string
	}{
		{69, "dark"},
		{70, "normal"},
		{180, "normal"},
		{181, "bright"},
	}
	for _, tt := range tests {
		img := createTestImage(16, 16, color.RGBA{tt.gray, tt.gray, tt.gray, 255})
		a := Analyze(img)
		if a.BrightnessLevel != tt.want {
			t.Errorf("gray %d: got %s (brightness %.4f), want %s", tt.gray, a.BrightnessLevel, a.Brightness, tt.want)
		}
	}
}

func TestContrastHighOnBlackAndWhite(t *testing.T) {
	img := createTestImage(32, 32, color.RGBA{0, 0, 0, 255})
	for y := 0; y < 32; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}

	a := Analyze(img)
	if a.Contrast != 100 {
		t.Errorf("got contrast %.2f, want 100 (clamped)", a.Contrast)
	}
	if a.ContrastLevel != "high" {
		t.Errorf("got contrast level %s, want high", a.ContrastLevel)
	}
}

func TestSaturationPureColor(t *testing.T) {
	a := Analyze(createTestImage(16, 16, color.RGBA{255, 0, 0, 255}))
	if a.Saturation != 100 {
		t.Errorf("got saturation %.3f, want 100", a.Saturation)
	}
}

func TestEnvironmentHints(t *testing.T) {
	tests := []struct {
		name string
		fill color.RGBA
		want string
	}{
		// Red dominates green and blue by more than 1.5x.
		{"hell", color.RGBA{200, 60, 60, 255}, "hell"},
		// Bright and desaturated.
		{"snow", color.RGBA{220, 220, 220, 255}, "snow"},
		// Very dark scene.
		{"dark", color.RGBA{30, 30, 30, 255}, "dark"},
		// Very bright but saturated enough to not be snow.
		{"bright", color.RGBA{255, 230, 140, 255}, "bright"},
		{"normal", color.RGBA{100, 120, 110, 255}, "normal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(createTestImage(32, 32, tt.fill))
			if a.EnvironmentHint != tt.want {
				t.Errorf("got %s, want %s (brightness %.1f, saturation %.1f)",
					a.EnvironmentHint, tt.want, a.Brightness, a.Saturation)
			}
		})
	}
}

func TestEnvironmentPriorityHellBeforeDark(t *testing.T) {
	// Dark overall but red-dominant: hell wins over dark.
	a := Analyze(createTestImage(32, 32, color.RGBA{45, 10, 10, 255}))
	if a.EnvironmentHint != "hell" {
		t.Errorf("got %s, want hell", a.EnvironmentHint)
	}
}

func TestHeavyEffectsBoundary(t *testing.T) {
	// 100x100 image: the detector samples every 4th pixel (2500 samples).
	// Hot pixels (bright and saturated) are placed exactly on sampled
	// indexes so the qualifying fraction is controlled precisely.
	hot := color.RGBA{255, 255, 0, 255}

	build := func(hotSamples int) *image.RGBA {
		img := createTestImage(100, 100, color.RGBA{128, 128, 128, 255})
		for i := 0; i < hotSamples; i++ {
			setLinear(img, i*4, hot)
		}
		return img
	}

	// 100 of 2500 samples = 4%: below the 5% threshold.
	if a := Analyze(build(100)); a.HasHeavyEffects {
		t.Error("4%% qualifying samples flagged heavy effects, want false")
	}
	// 250 of 2500 samples = 10%: above the threshold.
	if a := Analyze(build(250)); !a.HasHeavyEffects {
		t.Error("10%% qualifying samples did not flag heavy effects, want true")
	}
}

func TestNoiseLevels(t *testing.T) {
	t.Run("uniform is low", func(t *testing.T) {
		a := Analyze(createTestImage(64, 64, color.RGBA{90, 90, 90, 255}))
		if a.NoiseLevel != "low" {
			t.Errorf("got %s, want low", a.NoiseLevel)
		}
	})

	t.Run("checkerboard is high", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 64, 64))
		for y := 0; y < 64; y++ {
			for x := 0; x < 64; x++ {
				v := uint8(0)
				if (x+y)%2 == 0 {
					v = 255
				}
				img.Set(x, y, color.RGBA{v, v, v, 255})
			}
		}
		a := Analyze(img)
		if a.NoiseLevel != "high" {
			t.Errorf("got %s, want high", a.NoiseLevel)
		}
	})

	t.Run("alternating columns is medium", func(t *testing.T) {
		// Right-neighbor difference 20, down-neighbor 0: mean 10.
		img := image.NewRGBA(image.Rect(0, 0, 64, 64))
		for y := 0; y < 64; y++ {
			for x := 0; x < 64; x++ {
				v := uint8(100)
				if x%2 == 0 {
					v = 120
				}
				img.Set(x, y, color.RGBA{v, v, v, 255})
			}
		}
		a := Analyze(img)
		if a.NoiseLevel != "medium" {
			t.Errorf("got %s, want medium", a.NoiseLevel)
		}
	})

	t.Run("tiny image defaults to low", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				v := uint8(0)
				if (x+y)%2 == 0 {
					v = 255
				}
				img.Set(x, y, color.RGBA{v, v, v, 255})
			}
		}
		a := Analyze(img)
		if a.NoiseLevel != "low" {
			t.Errorf("got %s, want low (below sampling size)", a.NoiseLevel)
		}
	})
}

func TestAnalyzeDeterministic(t *testing.T) {
	img := createTestImage(48, 48, color.RGBA{77, 140, 201, 255})
	first := Analyze(img)
	second := Analyze(img)
	if first != second {
		t.Errorf("repeated analysis differs:\n%+v\n%+v", first, second)
	}
}
