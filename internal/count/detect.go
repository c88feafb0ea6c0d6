package count

import (
	"image"
	"sort"
	"strconv"

	"github.com/ironsheep/inventory-scan-mcp/internal/profile"
)

// Options holds the tunable thresholds of the count detector.
//
// The binarization predicate and the count cap are calibrated against one
// game's inventory UI, so they live here rather than as constants; the
// config file can override any of them.
type Options struct {
	// Binarization: a pixel is foreground when it passes the yellow text
	// rule (R > YellowRedMin, G > YellowGreenMin, B < YellowBlueMax) or
	// the light-gray rule (channel average > GrayMin).
	YellowRedMin   uint8 `json:"yellowRedMin"`
	YellowGreenMin uint8 `json:"yellowGreenMin"`
	YellowBlueMax  uint8 `json:"yellowBlueMax"`
	GrayMin        int   `json:"grayMin"`

	// Component filtering. Components narrower than MinComponentWidth,
	// shorter than MinComponentHeight, or wider than half the count
	// region are discarded as background noise.
	MinComponentWidth  int `json:"minComponentWidth"`
	MinComponentHeight int `json:"minComponentHeight"`

	// MinGlyphSimilarity is the floor below which a component's best
	// digit match is rejected and composition fails.
	MinGlyphSimilarity float64 `json:"minGlyphSimilarity"`

	// MaxCount caps plausible stack sizes; composed counts above it are
	// treated as misreads.
	MaxCount int `json:"maxCount"`

	// Common-stack correction: low-confidence counts within
	// StackTolerance of an entry in CommonStacks snap to that entry.
	// ConfidenceGate is exclusive; a confidence equal to it still
	// corrects.
	CommonStacks   []int   `json:"commonStacks"`
	StackTolerance int     `json:"stackTolerance"`
	ConfidenceGate float64 `json:"confidenceGate"`

	// Overlay pre-filter: the count region is considered to carry an
	// overlay when the fraction of near-white pixels (all channels above
	// OverlayWhiteMin) exceeds OverlayMinFraction.
	OverlayWhiteMin    uint8   `json:"overlayWhiteMin"`
	OverlayMinFraction float64 `json:"overlayMinFraction"`
}

// DefaultOptions returns the thresholds tuned for the game's stock UI.
func DefaultOptions() Options {
	return Options{
		YellowRedMin:       200,
		YellowGreenMin:     180,
		YellowBlueMax:      100,
		GrayMin:            180,
		MinComponentWidth:  3,
		MinComponentHeight: 5,
		MinGlyphSimilarity: 0.6,
		MaxCount:           99,
		CommonStacks:       []int{5, 10, 15, 20, 25, 30, 40, 50, 75, 99},
		StackTolerance:     2,
		ConfidenceGate:     0.8,
		OverlayWhiteMin:    200,
		OverlayMinFraction: 0.10,
	}
}

// Result is the outcome of one count detection.
//
// Count is always at least 1; a cell with no readable overlay simply
// holds one of whatever it shows.
type Result struct {
	Count      int     `json:"count"`             // Detected stack count (>= 1)
	Method     string  `json:"method"`            // "digit_match" or "none"
	RawText    string  `json:"rawText,omitempty"` // Recognized text, "x?" when an x has no digits
	Confidence float64 `json:"confidence"`        // Mean glyph similarity of the digits (0-1)
}

// Detector recognizes stack-count overlays inside inventory cells.
//
// A Detector is immutable after construction and safe for concurrent use
// from multiple goroutines.
type Detector struct {
	opts Options
}

// New creates a Detector with the given options.
func New(opts Options) *Detector {
	return &Detector{opts: opts}
}

// Options returns the thresholds the detector was built with.
func (d *Detector) Options() Options {
	return d.opts
}

// CountRegion returns the sub-region of a cell where the stack count is
// rendered: the bottom-right corner, 40% of the cell wide and as tall as
// the resolution profile's count text.
//
// The rectangle is not clamped; callers intersect it with their image.
func CountRegion(cell image.Rectangle, screenHeight int) image.Rectangle {
	textWidth := int(0.4 * float64(cell.Dx()))
	textHeight := profile.CountTextHeight(screenHeight)
	return image.Rect(cell.Max.X-textWidth, cell.Max.Y-textHeight, cell.Max.X, cell.Max.Y)
}

// Detect recognizes the stack count rendered in a cell's count region.
//
// The steps are: derive and clamp the count region, binarize it, extract
// 4-connected components, filter noise, detect an optional leading "x",
// match every remaining component against the digit glyph catalog and
// compose the digits into an integer. Implausible or unreadable results
// degrade to count 1 rather than failing; Detect never panics and always
// returns a usable Result.
//
// Parameters:
//   - img: Source screenshot (typically already preprocessed)
//   - cell: Inventory cell rectangle in image coordinates
//   - screenHeight: Screen height used for resolution profile lookup
//
// Returns:
//   - Result with the corrected count, method, raw text and confidence
func (d *Detector) Detect(img image.Image, cell image.Rectangle, screenHeight int) Result {
	region := CountRegion(cell, screenHeight).Intersect(img.Bounds())
	if region.Empty() {
		return Result{Count: 1, Method: "none"}
	}

	mask := d.binarize(img, region)
	comps := findComponents(mask)
	comps = d.filterComponents(comps, region.Dx())

	sort.Slice(comps, func(i, j int) bool {
		return comps[i].minX < comps[j].minX
	})

	hasX := false
	if len(comps) > 0 && comps[0].minX <= region.Dx()/3 && isCross(comps[0]) {
		hasX = true
		comps = comps[1:]
	}

	digits := ""
	var scoreSum float64
	for _, comp := range comps {
		digit, score := matchGlyph(resample(mask, comp))
		if score < d.opts.MinGlyphSimilarity {
			// One unreadable component poisons the whole composition;
			// a partial read would silently produce a wrong count.
			return Result{Count: 1, Method: "none", RawText: ambiguousText(hasX)}
		}
		digits += strconv.Itoa(digit)
		scoreSum += score
	}

	if digits == "" {
		return Result{Count: 1, Method: "none", RawText: ambiguousText(hasX)}
	}

	raw := digits
	if hasX {
		raw = "x" + digits
	}
	confidence := scoreSum / float64(len(digits))

	composed, err := strconv.Atoi(digits)
	if err != nil || composed < 1 || composed > d.opts.MaxCount {
		// Outside [1, MaxCount] is a misread; a lone "0" or "00" lands
		// here too, keeping the count >= 1 contract.
		return Result{Count: 1, Method: "none", RawText: raw}
	}

	return Result{
		Count:      d.opts.CorrectToCommonStack(composed, confidence),
		Method:     "digit_match",
		RawText:    raw,
		Confidence: confidence,
	}
}

// HasOverlay is the cheap pre-filter for Detect: it reports whether the
// cell's count region contains enough near-white pixels to plausibly
// carry a count overlay.
//
// Regions fully outside the image return false.
func (d *Detector) HasOverlay(img image.Image, cell image.Rectangle, screenHeight int) bool {
	region := CountRegion(cell, screenHeight).Intersect(img.Bounds())
	if region.Empty() {
		return false
	}

	white := 0
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			r, g, b := rgb8(img, x, y)
			if r > d.opts.OverlayWhiteMin && g > d.opts.OverlayWhiteMin && b > d.opts.OverlayWhiteMin {
				white++
			}
		}
	}
	total := region.Dx() * region.Dy()
	return float64(white)/float64(total) > d.opts.OverlayMinFraction
}

// binarize builds the foreground mask of a region using the yellow-text
// and light-gray rules.
func (d *Detector) binarize(img image.Image, region image.Rectangle) [][]bool {
	mask := make([][]bool, region.Dy())
	for y := range mask {
		mask[y] = make([]bool, region.Dx())
		for x := range mask[y] {
			r, g, b := rgb8(img, region.Min.X+x, region.Min.Y+y)
			yellow := r > d.opts.YellowRedMin && g > d.opts.YellowGreenMin && b < d.opts.YellowBlueMax
			gray := (int(r)+int(g)+int(b))/3 > d.opts.GrayMin
			mask[y][x] = yellow || gray
		}
	}
	return mask
}

// component is one connected foreground region in mask-local coordinates.
type component struct {
	points                 []image.Point
	minX, minY, maxX, maxY int
}

func (c component) width() int  { return c.maxX - c.minX + 1 }
func (c component) height() int { return c.maxY - c.minY + 1 }

// findComponents extracts 4-connected components from a binary mask
// using an explicit stack, the same scheme the shape contour tracer
// uses, restricted to the four cardinal neighbors.
func findComponents(mask [][]bool) []component {
	height := len(mask)
	if height == 0 {
		return nil
	}
	width := len(mask[0])

	visited := make([][]bool, height)
	for y := range visited {
		visited[y] = make([]bool, width)
	}

	var comps []component
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !mask[y][x] || visited[y][x] {
				continue
			}

			comp := component{minX: x, minY: y, maxX: x, maxY: y}
			stack := []image.Point{{X: x, Y: y}}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
					continue
				}
				if visited[p.Y][p.X] || !mask[p.Y][p.X] {
					continue
				}

				visited[p.Y][p.X] = true
				comp.points = append(comp.points, p)
				if p.X < comp.minX {
					comp.minX = p.X
				}
				if p.X > comp.maxX {
					comp.maxX = p.X
				}
				if p.Y < comp.minY {
					comp.minY = p.Y
				}
				if p.Y > comp.maxY {
					comp.maxY = p.Y
				}

				// 4-connected neighbors
				stack = append(stack,
					image.Point{X: p.X + 1, Y: p.Y},
					image.Point{X: p.X - 1, Y: p.Y},
					image.Point{X: p.X, Y: p.Y + 1},
					image.Point{X: p.X, Y: p.Y - 1},
				)
			}
			comps = append(comps, comp)
		}
	}
	return comps
}

// filterComponents drops components that are too small to be a digit or
// too wide to be anything but background bleed.
func (d *Detector) filterComponents(comps []component, regionWidth int) []component {
	kept := comps[:0]
	for _, c := range comps {
		if c.width() < d.opts.MinComponentWidth {
			continue
		}
		if c.height() < d.opts.MinComponentHeight {
			continue
		}
		if c.width() > regionWidth/2 {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// isCross reports whether a component looks like the multiplication sign
// that precedes the digits: a roughly square blob whose pixels hug the
// two diagonals of its bounding box.
func isCross(c component) bool {
	w := c.width()
	h := c.height()
	if w < 2 || h < 2 {
		return false
	}
	aspect := float64(w) / float64(h)
	if aspect < 0.5 || aspect > 2.0 {
		return false
	}

	onDiagonal := 0
	for _, p := range c.points {
		u := float64(p.X-c.minX) / float64(w-1)
		v := float64(p.Y-c.minY) / float64(h-1)
		if absFloat(u-v) <= 0.34 || absFloat(u+v-1) <= 0.34 {
			onDiagonal++
		}
	}
	return float64(onDiagonal)/float64(len(c.points)) >= 0.6
}

// resample projects a component onto the canonical glyph grid. A grid
// cell is set when at least 35% of its source pixels are foreground,
// which keeps thin strokes alive while suppressing stray speckle.
func resample(mask [][]bool, c component) glyphMask {
	var out glyphMask
	w := c.width()
	h := c.height()

	for row := 0; row < glyphRows; row++ {
		y0 := c.minY + row*h/glyphRows
		y1 := c.minY + (row+1)*h/glyphRows
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for col := 0; col < glyphCols; col++ {
			x0 := c.minX + col*w/glyphCols
			x1 := c.minX + (col+1)*w/glyphCols
			if x1 <= x0 {
				x1 = x0 + 1
			}

			set, total := 0, 0
			for y := y0; y < y1 && y <= c.maxY; y++ {
				for x := x0; x < x1 && x <= c.maxX; x++ {
					total++
					if mask[y][x] {
						set++
					}
				}
			}
			out[row][col] = total > 0 && float64(set)/float64(total) >= 0.35
		}
	}
	return out
}

func ambiguousText(hasX bool) string {
	if hasX {
		return "x?"
	}
	return ""
}

// rgb8 returns the 8-bit RGB components of a pixel.
func rgb8(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
