package ocr

import (
	"errors"
	"image"
	"sort"

	"github.com/ironsheep/inventory-scan-mcp/internal/catalog"
	"github.com/ironsheep/inventory-scan-mcp/internal/detection"
)

// ErrUnavailable is returned by every recognition entry point on
// platforms without the Tesseract bindings. Callers that treat OCR as an
// optional pipeline check for it with errors.Is and fall back to CV-only
// scanning.
var ErrUnavailable = errors.New("tesseract OCR is not available on this platform")

// Word is one recognized word with its location and engine confidence.
type Word struct {
	// Text is the recognized word content.
	Text string `json:"text"`

	// Confidence is the engine's certainty, scaled to 0-1.
	Confidence float64 `json:"confidence"`

	// Bounds is the word's bounding box in image coordinates.
	Bounds image.Rectangle `json:"-"`
}

// ScanWords recognizes the words in an image.
//
// Small images are upscaled before recognition, and the returned
// bounding boxes are mapped back to the original coordinates. Empty
// words are filtered out. On platforms without Tesseract the error is
// ErrUnavailable.
func ScanWords(img image.Image, language string) ([]Word, error) {
	if language == "" {
		language = "eng"
	}
	return scanWords(img, language)
}

// DetectEntities runs OCR over an image and maps the recognized text
// onto catalog entities.
//
// Words are grouped into lines by vertical overlap, each line's text is
// matched against the catalog (normalized contains-match, longest name
// first), and every hit becomes a detection.Result with method "ocr".
// The result confidence is the mean confidence of the line's words and
// the position is the line's bounding box.
//
// Returns ErrUnavailable (wrapped) when the engine is missing; any other
// error comes from the engine itself.
func DetectEntities(img image.Image, cat *catalog.Catalog, language string) ([]detection.Result, error) {
	words, err := ScanWords(img, language)
	if err != nil {
		return nil, err
	}

	var results []detection.Result
	for _, line := range groupLines(words) {
		entity, ok := cat.Match(line.text())
		if !ok {
			continue
		}

		pos := detection.BoundsFromRect(line.bounds())
		results = append(results, detection.Result{
			Kind:       entity.Kind,
			ID:         entity.ID,
			Name:       entity.Name,
			Confidence: line.meanConfidence(),
			Method:     detection.MethodOCR,
			Position:   &pos,
			RawText:    line.text(),
		})
	}
	return results, nil
}

// line is a horizontal run of words sharing a text baseline.
type line struct {
	words []Word
}

func (l line) text() string {
	out := ""
	for i, w := range l.words {
		if i > 0 {
			out += " "
		}
		out += w.Text
	}
	return out
}

func (l line) bounds() image.Rectangle {
	r := l.words[0].Bounds
	for _, w := range l.words[1:] {
		r = r.Union(w.Bounds)
	}
	return r
}

func (l line) meanConfidence() float64 {
	var sum float64
	for _, w := range l.words {
		sum += w.Confidence
	}
	return sum / float64(len(l.words))
}

// groupLines clusters words into text lines: two words share a line when
// their boxes overlap vertically by at least half the shorter box.
// Within a line, words are ordered left to right.
func groupLines(words []Word) []line {
	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Bounds.Min.Y != sorted[j].Bounds.Min.Y {
			return sorted[i].Bounds.Min.Y < sorted[j].Bounds.Min.Y
		}
		return sorted[i].Bounds.Min.X < sorted[j].Bounds.Min.X
	})

	var lines []line
	for _, w := range sorted {
		placed := false
		for i := range lines {
			if sameLine(lines[i].words[len(lines[i].words)-1], w) {
				lines[i].words = append(lines[i].words, w)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, line{words: []Word{w}})
		}
	}

	for i := range lines {
		sort.SliceStable(lines[i].words, func(a, b int) bool {
			return lines[i].words[a].Bounds.Min.X < lines[i].words[b].Bounds.Min.X
		})
	}
	return lines
}

func sameLine(a, b Word) bool {
	top := maxInt(a.Bounds.Min.Y, b.Bounds.Min.Y)
	bottom := minInt(a.Bounds.Max.Y, b.Bounds.Max.Y)
	overlap := bottom - top
	if overlap <= 0 {
		return false
	}
	shorter := minInt(a.Bounds.Dy(), b.Bounds.Dy())
	return overlap*2 >= shorter
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
