package scene

import (
	"math"
	"testing"
)

func baseline() SceneAnalysis {
	return SceneAnalysis{
		Brightness:      128,
		BrightnessLevel: "normal",
		Contrast:        50,
		ContrastLevel:   "normal",
		Saturation:      40,
		NoiseLevel:      "low",
		EnvironmentHint: "normal",
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPlanBrightnessLevels(t *testing.T) {
	tests := []struct {
		level      string
		wantFactor float64
		wantAdjust int
	}{
		{"dark", 1.3, 20},
		{"bright", 1.4, -10},
		{"normal", 1.5, 0},
	}
	for _, tt := range tests {
		a := baseline()
		a.BrightnessLevel = tt.level
		cfg := PlanPreprocess(a)
		if !almostEqual(cfg.ContrastFactor, tt.wantFactor) {
			t.Errorf("%s: got factor %.3f, want %.3f", tt.level, cfg.ContrastFactor, tt.wantFactor)
		}
		if cfg.BrightnessAdjust != tt.wantAdjust {
			t.Errorf("%s: got adjust %d, want %d", tt.level, cfg.BrightnessAdjust, tt.wantAdjust)
		}
	}
}

func TestPlanContrastScaling(t *testing.T) {
	a := baseline()
	a.ContrastLevel = "low"
	if cfg := PlanPreprocess(a); !almostEqual(cfg.ContrastFactor, 1.8) {
		t.Errorf("low contrast: got %.3f, want 1.8", cfg.ContrastFactor)
	}

	a.ContrastLevel = "high"
	if cfg := PlanPreprocess(a); !almostEqual(cfg.ContrastFactor, 1.275) {
		t.Errorf("high contrast: got %.4f, want 1.275", cfg.ContrastFactor)
	}
}

func TestPlanEnvironmentOverrides(t *testing.T) {
	t.Run("snow", func(t *testing.T) {
		a := baseline()
		a.EnvironmentHint = "snow"
		cfg := PlanPreprocess(a)
		if cfg.BrightnessAdjust != -15 {
			t.Errorf("got adjust %d, want -15", cfg.BrightnessAdjust)
		}
		if !almostEqual(cfg.ContrastFactor, 1.6) {
			t.Errorf("got factor %.3f, want 1.6", cfg.ContrastFactor)
		}
	})

	t.Run("dark", func(t *testing.T) {
		a := baseline()
		a.EnvironmentHint = "dark"
		cfg := PlanPreprocess(a)
		if cfg.BrightnessAdjust != 25 {
			t.Errorf("got adjust %d, want 25", cfg.BrightnessAdjust)
		}
		if !almostEqual(cfg.ContrastFactor, 1.3) {
			t.Errorf("got factor %.3f, want 1.3", cfg.ContrastFactor)
		}
	})

	t.Run("hell caps contrast", func(t *testing.T) {
		a := baseline()
		a.ContrastLevel = "low" // would be 1.8 without the cap
		a.EnvironmentHint = "hell"
		cfg := PlanPreprocess(a)
		if !almostEqual(cfg.ContrastFactor, 1.4) {
			t.Errorf("got factor %.3f, want 1.4", cfg.ContrastFactor)
		}
	})

	t.Run("hell leaves low factors alone", func(t *testing.T) {
		a := baseline()
		a.BrightnessLevel = "dark" // base 1.3, already under the cap
		a.EnvironmentHint = "hell"
		cfg := PlanPreprocess(a)
		if !almostEqual(cfg.ContrastFactor, 1.3) {
			t.Errorf("got factor %.3f, want 1.3", cfg.ContrastFactor)
		}
	})
}

func TestPlanNoiseHandling(t *testing.T) {
	a := baseline()

	a.NoiseLevel = "high"
	cfg := PlanPreprocess(a)
	if !cfg.ReduceNoise {
		t.Error("high noise: ReduceNoise false, want true")
	}
	if cfg.SharpeningFactor != 0 {
		t.Errorf("high noise: sharpening %.2f, want 0", cfg.SharpeningFactor)
	}

	a.NoiseLevel = "medium"
	cfg = PlanPreprocess(a)
	if cfg.ReduceNoise {
		t.Error("medium noise: ReduceNoise true, want false")
	}
	if !almostEqual(cfg.SharpeningFactor, 0.2) {
		t.Errorf("medium noise: sharpening %.2f, want 0.2", cfg.SharpeningFactor)
	}

	a.NoiseLevel = "low"
	cfg = PlanPreprocess(a)
	if !almostEqual(cfg.SharpeningFactor, 0.4) {
		t.Errorf("low noise: sharpening %.2f, want 0.4", cfg.SharpeningFactor)
	}
}

func TestPlanHeavyEffectsOverride(t *testing.T) {
	a := baseline()
	a.ContrastLevel = "low"
	a.EnvironmentHint = "snow"
	a.HasHeavyEffects = true

	cfg := PlanPreprocess(a)
	if cfg.NormalizeColors {
		t.Error("heavy effects: NormalizeColors true, want false")
	}
	if !almostEqual(cfg.ContrastFactor, 1.2) {
		t.Errorf("heavy effects: factor %.3f, want 1.2", cfg.ContrastFactor)
	}
	// The snow brightness override still applies; only contrast and
	// normalization are forced.
	if cfg.BrightnessAdjust != -15 {
		t.Errorf("heavy effects: adjust %d, want -15", cfg.BrightnessAdjust)
	}
}

func TestPlanDefaultsNormalizeColors(t *testing.T) {
	if cfg := PlanPreprocess(baseline()); !cfg.NormalizeColors {
		t.Error("NormalizeColors false for a plain scene, want true")
	}
}

// TestPlanOutputsAlwaysInRange exercises every combination of levels and
// flags and checks the documented clamps.
func TestPlanOutputsAlwaysInRange(t *testing.T) {
	brightness := []string{"dark", "normal", "bright"}
	contrast := []string{"low", "normal", "high"}
	noise := []string{"low", "medium", "high"}
	envs := []string{"normal", "hell", "snow", "dark", "bright"}

	for _, bl := range brightness {
		for _, cl := range contrast {
			for _, nl := range noise {
				for _, env := range envs {
					for _, heavy := range []bool{false, true} {
						a := SceneAnalysis{
							BrightnessLevel: bl,
							ContrastLevel:   cl,
							NoiseLevel:      nl,
							EnvironmentHint: env,
							HasHeavyEffects: heavy,
						}
						cfg := PlanPreprocess(a)
						if cfg.ContrastFactor < 1.0 || cfg.ContrastFactor > 2.0 {
							t.Errorf("%+v: contrast factor %.3f out of range", a, cfg.ContrastFactor)
						}
						if cfg.BrightnessAdjust < -50 || cfg.BrightnessAdjust > 50 {
							t.Errorf("%+v: brightness adjust %d out of range", a, cfg.BrightnessAdjust)
						}
						if cfg.SharpeningFactor < 0 || cfg.SharpeningFactor > 1 {
							t.Errorf("%+v: sharpening %.3f out of range", a, cfg.SharpeningFactor)
						}
						if cfg.ReduceNoise && cfg.SharpeningFactor != 0 {
							t.Errorf("%+v: smoothing and sharpening both active", a)
						}
					}
				}
			}
		}
	}
}
