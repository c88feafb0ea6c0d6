package count

// Canonical glyph grid dimensions. Extracted components are resampled to
// this size before matching.
const (
	glyphCols = 5
	glyphRows = 7
)

// digitGlyphs holds the 5x7 digit masks the recognizer matches against,
// mirroring the blocky pixel font the game renders stack counts with.
// '1' cells are foreground. Every glyph is 4-connected and touches all
// four edges of the grid, so a cleanly rendered digit's bounding box
// resamples onto the grid without distortion. The table is never mutated
// after initialization.
var digitGlyphs = [10][glyphRows]string{
	{"11111", "10001", "10001", "10001", "10001", "10001", "11111"}, // 0
	{"00100", "01100", "00100", "00100", "00100", "00100", "11111"}, // 1
	{"11111", "00001", "00001", "11111", "10000", "10000", "11111"}, // 2
	{"11111", "00001", "00001", "01111", "00001", "00001", "11111"}, // 3
	{"10001", "10001", "10001", "11111", "00001", "00001", "00001"}, // 4
	{"11111", "10000", "10000", "11111", "00001", "00001", "11111"}, // 5
	{"11111", "10000", "10000", "11111", "10001", "10001", "11111"}, // 6
	{"11111", "00001", "00001", "00001", "00001", "00001", "00001"}, // 7
	{"11111", "10001", "10001", "11111", "10001", "10001", "11111"}, // 8
	{"11111", "10001", "10001", "11111", "00001", "00001", "11111"}, // 9
}

// glyphMask is a binarized component resampled onto the canonical grid.
type glyphMask [glyphRows][glyphCols]bool

// matchGlyph scores a mask against every digit template.
//
// The similarity is the fraction of grid cells that agree (foreground and
// background both count), so a perfect match scores 1.0 and an inverted
// mask scores 0.0. Matching is the only coupling between component
// extraction and the template catalog, which keeps the catalog retunable
// on its own.
//
// Returns:
//   - the best-matching digit (0-9)
//   - its similarity score in [0,1]
func matchGlyph(mask glyphMask) (int, float64) {
	bestDigit := 0
	bestScore := -1.0
	for digit := 0; digit < len(digitGlyphs); digit++ {
		matches := 0
		for row := 0; row < glyphRows; row++ {
			for col := 0; col < glyphCols; col++ {
				set := digitGlyphs[digit][row][col] == '1'
				if set == mask[row][col] {
					matches++
				}
			}
		}
		score := float64(matches) / float64(glyphRows*glyphCols)
		if score > bestScore {
			bestScore = score
			bestDigit = digit
		}
	}
	return bestDigit, bestScore
}
