package scene

// PreprocessConfig describes the enhancement steps applied to a
// screenshot before recognition.
//
// A config is derived solely from a SceneAnalysis; planning the same
// analysis twice yields the same config.
type PreprocessConfig struct {
	ContrastFactor   float64 `json:"contrastFactor"`   // Contrast scale around midpoint 128 (1.0-2.0)
	BrightnessAdjust int     `json:"brightnessAdjust"` // Additive per-channel shift (-50..50)
	SharpeningFactor float64 `json:"sharpeningFactor"` // Unsharp mask strength (0-1)
	ReduceNoise      bool    `json:"reduceNoise"`      // Smooth before anything is sharpened
	NormalizeColors  bool    `json:"normalizeColors"`  // Stretch each channel's histogram
}

// PlanPreprocess maps a scene analysis onto a preprocessing config.
//
// Rules are applied in order of increasing precedence:
//  1. Base contrast and brightness from the brightness level, contrast
//     scaled by the contrast level.
//  2. Environment overrides: snow lowers brightness and raises contrast,
//     dark maps push brightness up, hell caps the contrast factor so red
//     glow is not blown out.
//  3. Noise handling: heavy noise switches to smoothing and disables
//     sharpening; clean frames sharpen more aggressively.
//  4. Heavy effects override everything: color normalization would only
//     amplify bloom, and contrast is pinned low.
//
// All outputs are clamped to their documented ranges before returning.
func PlanPreprocess(a SceneAnalysis) PreprocessConfig {
	cfg := PreprocessConfig{NormalizeColors: true}

	switch a.BrightnessLevel {
	case "dark":
		cfg.ContrastFactor = 1.3
		cfg.BrightnessAdjust = 20
	case "bright":
		cfg.ContrastFactor = 1.4
		cfg.BrightnessAdjust = -10
	default:
		cfg.ContrastFactor = 1.5
	}

	switch a.ContrastLevel {
	case "low":
		cfg.ContrastFactor *= 1.2
	case "high":
		cfg.ContrastFactor *= 0.85
	}

	switch a.EnvironmentHint {
	case "snow":
		cfg.BrightnessAdjust = -15
		cfg.ContrastFactor = 1.6
	case "dark":
		cfg.BrightnessAdjust = 25
		cfg.ContrastFactor = 1.3
	case "hell":
		if cfg.ContrastFactor > 1.4 {
			cfg.ContrastFactor = 1.4
		}
	}

	switch a.NoiseLevel {
	case "high":
		cfg.ReduceNoise = true
		cfg.SharpeningFactor = 0
	case "medium":
		cfg.SharpeningFactor = 0.2
	default:
		cfg.SharpeningFactor = 0.4
	}

	if a.HasHeavyEffects {
		cfg.NormalizeColors = false
		cfg.ContrastFactor = 1.2
	}

	cfg.ContrastFactor = clampFloat(cfg.ContrastFactor, 1.0, 2.0)
	cfg.BrightnessAdjust = clamp(cfg.BrightnessAdjust, -50, 50)
	cfg.SharpeningFactor = clampFloat(cfg.SharpeningFactor, 0, 1)
	return cfg
}

func clampFloat(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
