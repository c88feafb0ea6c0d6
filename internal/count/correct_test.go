package count

import "testing"

func TestCorrectToCommonStack(t *testing.T) {
	tests := []struct {
		name       string
		raw        int
		confidence float64
		want       int
	}{
		{"low confidence snaps", 11, 0.5, 10},
		{"gate is inclusive", 11, 0.80, 10},
		{"just above gate passes through", 11, 0.81, 11},
		{"high confidence passes through", 11, 0.95, 11},
		{"exact stack unchanged", 50, 0.5, 50},
		{"snap up", 4, 0.5, 5},
		{"snap down", 26, 0.5, 25},
		{"tolerance boundary", 77, 0.5, 75},
		{"outside tolerance unchanged", 64, 0.3, 64},
		{"99 cap is itself common", 98, 0.5, 99},
		{"small counts untouched", 2, 0.1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CorrectToCommonStack(tt.raw, tt.confidence); got != tt.want {
				t.Errorf("CorrectToCommonStack(%d, %.2f) = %d, want %d",
					tt.raw, tt.confidence, got, tt.want)
			}
		})
	}
}

func TestCorrectToCommonStackTieBreak(t *testing.T) {
	opts := DefaultOptions()
	opts.CommonStacks = []int{4, 8}

	// Equidistant from 4 and 8; the smaller stack wins.
	if got := opts.CorrectToCommonStack(6, 0.5); got != 4 {
		t.Errorf("got %d, want 4 on a distance tie", got)
	}
}

func TestCorrectToCommonStackCustomTolerance(t *testing.T) {
	opts := DefaultOptions()
	opts.StackTolerance = 0

	if got := opts.CorrectToCommonStack(11, 0.5); got != 11 {
		t.Errorf("got %d, want 11 with zero tolerance", got)
	}
	if got := opts.CorrectToCommonStack(10, 0.5); got != 10 {
		t.Errorf("got %d, want 10 with zero tolerance", got)
	}
}

func TestMatchGlyphIdentity(t *testing.T) {
	for digit := 0; digit < 10; digit++ {
		var mask glyphMask
		for row := 0; row < glyphRows; row++ {
			for col := 0; col < glyphCols; col++ {
				mask[row][col] = digitGlyphs[digit][row][col] == '1'
			}
		}

		got, score := matchGlyph(mask)
		if got != digit {
			t.Errorf("template %d matched as %d", digit, got)
		}
		if score != 1.0 {
			t.Errorf("template %d scored %.3f against itself, want 1.0", digit, score)
		}
	}
}

func TestMatchGlyphEmptyMask(t *testing.T) {
	// An empty mask still returns some digit; the caller rejects it via
	// the similarity floor, not here.
	_, score := matchGlyph(glyphMask{})
	if score >= 0.9 {
		t.Errorf("empty mask scored %.3f, expected a weak match", score)
	}
}
