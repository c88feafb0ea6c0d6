package detection

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/inventory-scan-mcp/internal/catalog"
	icache "github.com/ironsheep/inventory-scan-mcp/internal/imaging"
)

// Icon templates are compared at a fixed canonical size. Game icons ship
// at 32x32 and are upscaled to 64x64 for matching, which smooths the
// pixel art enough for per-pixel color comparison to be meaningful.
const iconTemplateSize = 64

// iconBlurRadius softens both template and cell crop before comparison
// so sub-pixel alignment differences do not dominate the distance.
const iconBlurRadius = 1.5

// IconOptions configures the icon-similarity detector.
type IconOptions struct {
	// TemplateDir is the root directory holding entity icon templates;
	// each catalog entity's Icon path is resolved relative to it. An
	// empty or missing directory yields a matcher that never matches.
	TemplateDir string `json:"templateDir"`

	// MinSimilarity is the floor a cell/template pair must reach to be
	// reported as a detection.
	MinSimilarity float64 `json:"minSimilarity"`
}

// DefaultIconOptions returns the stock icon matching thresholds.
func DefaultIconOptions() IconOptions {
	return IconOptions{MinSimilarity: 0.72}
}

// iconTemplate is one entity's prepared reference image.
type iconTemplate struct {
	entity catalog.Entity
	pixels *image.NRGBA
}

// IconMatcher scores inventory-cell crops against the catalog's icon
// templates.
//
// Templates are loaded and preprocessed once at construction; a matcher
// is immutable afterwards and safe for concurrent use, which lets the
// scanner share one across its per-cell goroutines.
type IconMatcher struct {
	opts      IconOptions
	templates []iconTemplate
}

// NewIconMatcher loads every catalog entity's icon template from the
// options' template directory.
//
// Entities without an icon path, and icon files that are absent or
// undecodable, are skipped silently: a partial template set degrades
// recall, not correctness. A missing template directory produces a
// matcher with no templates. The error return covers only a nil catalog.
func NewIconMatcher(cache *icache.ImageCache, cat *catalog.Catalog, opts IconOptions) (*IconMatcher, error) {
	if cat == nil {
		return nil, fmt.Errorf("icon matcher requires a catalog")
	}
	if opts.MinSimilarity <= 0 {
		opts.MinSimilarity = DefaultIconOptions().MinSimilarity
	}

	m := &IconMatcher{opts: opts}
	if opts.TemplateDir == "" {
		return m, nil
	}
	if _, err := os.Stat(opts.TemplateDir); err != nil {
		return m, nil
	}

	for _, e := range cat.Entities() {
		if e.Icon == "" {
			continue
		}
		img, err := cache.Load(filepath.Join(opts.TemplateDir, e.Icon))
		if err != nil {
			continue
		}
		m.templates = append(m.templates, iconTemplate{
			entity: e,
			pixels: prepareForMatch(img),
		})
	}
	return m, nil
}

// TemplateCount returns the number of usable templates that were loaded.
func (m *IconMatcher) TemplateCount() int {
	return len(m.templates)
}

// MatchCell scores one inventory cell against every template and returns
// the best match as an icon_similarity Result.
//
// The cell crop is resized and blurred the same way the templates were,
// then compared per pixel in Lab space. The reported confidence is the
// similarity score. Returns false when no template reaches the minimum
// similarity or the cell rectangle is degenerate.
func (m *IconMatcher) MatchCell(img image.Image, cell image.Rectangle) (Result, bool) {
	cell = cell.Intersect(img.Bounds())
	if cell.Empty() || len(m.templates) == 0 {
		return Result{}, false
	}

	crop := prepareForMatch(imaging.Crop(img, cell))

	bestScore := -1.0
	var best catalog.Entity
	for _, tpl := range m.templates {
		score := similarity(crop, tpl.pixels)
		if score > bestScore {
			bestScore = score
			best = tpl.entity
		}
	}
	if bestScore < m.opts.MinSimilarity {
		return Result{}, false
	}

	pos := BoundsFromRect(cell)
	return Result{
		Kind:       best.Kind,
		ID:         best.ID,
		Name:       best.Name,
		Confidence: bestScore,
		Method:     MethodIconSimilarity,
		Position:   &pos,
	}, true
}

// MatchCells runs MatchCell over a list of cells and collects the hits,
// sorted descending by confidence.
func (m *IconMatcher) MatchCells(img image.Image, cells []image.Rectangle) []Result {
	var out []Result
	for _, cell := range cells {
		if r, ok := m.MatchCell(img, cell); ok {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// prepareForMatch normalizes an image for comparison: resize to the
// canonical template size with Lanczos, then soften with a Gaussian
// blur.
func prepareForMatch(img image.Image) *image.NRGBA {
	resized := imaging.Resize(img, iconTemplateSize, iconTemplateSize, imaging.Lanczos)
	blurred := blur.Gaussian(resized, iconBlurRadius)
	return imaging.Clone(blurred)
}

// similarity computes the mean perceptual closeness of two equally sized
// images: per-pixel Lab distance averaged over the grid, mapped onto
// [0,1] where 1 is identical.
func similarity(a, b *image.NRGBA) float64 {
	var total float64
	n := iconTemplateSize * iconTemplateSize
	for y := 0; y < iconTemplateSize; y++ {
		for x := 0; x < iconTemplateSize; x++ {
			ca := labColor(a, x, y)
			cb := labColor(b, x, y)
			d := ca.DistanceLab(cb)
			if d > 1 {
				d = 1
			}
			total += d
		}
	}
	return 1 - total/float64(n)
}

// labColor reads one pixel as a go-colorful color for Lab comparison.
func labColor(img *image.NRGBA, x, y int) colorful.Color {
	i := img.PixOffset(x, y)
	return colorful.Color{
		R: float64(img.Pix[i]) / 255,
		G: float64(img.Pix[i+1]) / 255,
		B: float64(img.Pix[i+2]) / 255,
	}
}
