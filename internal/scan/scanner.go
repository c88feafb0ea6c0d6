// Package scan orchestrates the full screenshot-import pipeline.
//
// A Scanner ties the pure analysis core (scene, count, detection) to its
// collaborators (profile table, catalog, icon templates, optional OCR)
// and runs them in order: analyze the scene, plan and apply adaptive
// preprocessing, fan out over the inventory grid cells, then fuse and
// aggregate the detections. The scanner owns all I/O-adjacent wiring so
// the core packages stay pure.
package scan

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/ironsheep/inventory-scan-mcp/internal/catalog"
	"github.com/ironsheep/inventory-scan-mcp/internal/config"
	"github.com/ironsheep/inventory-scan-mcp/internal/count"
	"github.com/ironsheep/inventory-scan-mcp/internal/detection"
	icache "github.com/ironsheep/inventory-scan-mcp/internal/imaging"
	"github.com/ironsheep/inventory-scan-mcp/internal/ocr"
	"github.com/ironsheep/inventory-scan-mcp/internal/profile"
	"github.com/ironsheep/inventory-scan-mcp/internal/scene"
)

// Report is the outcome of one full inventory scan.
type Report struct {
	// Scene is the lighting analysis of the raw screenshot.
	Scene scene.SceneAnalysis `json:"scene"`

	// Preprocess is the enhancement plan derived from the scene.
	Preprocess scene.PreprocessConfig `json:"preprocess"`

	// Profile is the grid geometry used for cell extraction.
	Profile profile.Profile `json:"profile"`

	// Results holds one record per recognized entity, aggregated and
	// sorted by display name.
	Results []detection.Result `json:"results"`

	// CellsScanned is the number of grid cells examined.
	CellsScanned int `json:"cellsScanned"`

	// OCRUsed reports whether the OCR pipeline contributed results.
	OCRUsed bool `json:"ocrUsed"`
}

// Scanner runs the screenshot-import flow.
//
// A Scanner is immutable after New and safe for concurrent use; each
// Scan call works entirely on its own data.
type Scanner struct {
	cfg      *config.Config
	detector *count.Detector
	matcher  *detection.IconMatcher
	cat      *catalog.Catalog
	debug    bool
}

// New builds a Scanner from a configuration.
//
// The shared image cache feeds the icon template loader. A nil config
// uses the defaults.
func New(cfg *config.Config, cache *icache.ImageCache) (*Scanner, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load entity catalog: %w", err)
	}

	matcher, err := detection.NewIconMatcher(cache, cat, cfg.Icons)
	if err != nil {
		return nil, fmt.Errorf("failed to build icon matcher: %w", err)
	}

	return &Scanner{
		cfg:      cfg,
		detector: count.New(cfg.Count),
		matcher:  matcher,
		cat:      cat,
		debug:    cfg.Server.LogLevel == "debug",
	}, nil
}

// Catalog returns the entity catalog the scanner resolves against.
func (s *Scanner) Catalog() *catalog.Catalog {
	return s.cat
}

// Detector returns the configured count detector.
func (s *Scanner) Detector() *count.Detector {
	return s.detector
}

// Matcher returns the configured icon matcher.
func (s *Scanner) Matcher() *detection.IconMatcher {
	return s.matcher
}

// Scan runs the full pipeline over one screenshot.
//
// Cells are processed concurrently, one goroutine per grid cell writing
// into its own result slot, so identical inputs always produce identical
// reports. OCR runs when enabled and available; an unavailable engine
// quietly degrades to CV-only scanning.
func (s *Scanner) Scan(img image.Image) *Report {
	started := time.Now()
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	analysis := scene.Analyze(img)
	plan := scene.PlanPreprocess(analysis)
	enhanced := scene.Apply(img, plan)
	s.debugf("scene analyzed and enhanced in %v (env=%s brightness=%s)",
		time.Since(started), analysis.EnvironmentHint, analysis.BrightnessLevel)

	prof := profile.ForResolution(width, height)
	cells := prof.Cells()

	// Per-cell fan-out. Each goroutine owns exactly one slot.
	cellResults := make([]*detection.Result, len(cells))
	var wg sync.WaitGroup
	for i, cell := range cells {
		wg.Add(1)
		go func(i int, cell image.Rectangle) {
			defer wg.Done()
			cellResults[i] = s.scanCell(img, enhanced, cell, height)
		}(i, cell)
	}
	wg.Wait()

	var cv []detection.Result
	for _, r := range cellResults {
		if r != nil {
			cv = append(cv, *r)
		}
	}
	// Merge cells holding the same entity before fusion, so a record
	// that agrees with OCR carries the summed stack count.
	cv = detection.AggregateDuplicates(cv)

	ocrResults, ocrUsed := s.runOCR(enhanced)

	combined := detection.Combine(ocrResults, cv)
	results := detection.AggregateDuplicates(combined)
	s.debugf("scan finished in %v: %d cells, %d cv, %d ocr, %d aggregated",
		time.Since(started), len(cells), len(cv), len(ocrResults), len(results))

	return &Report{
		Scene:        analysis,
		Preprocess:   plan,
		Profile:      prof,
		Results:      results,
		CellsScanned: len(cells),
		OCRUsed:      ocrUsed,
	}
}

// scanCell recognizes the entity and stack count of a single grid cell.
// Icon matching reads the raw frame (adaptive enhancement shifts hues,
// which would skew color template scores); count reading uses the
// enhanced buffer, where the overlay text has been sharpened. Cells with
// no icon match contribute nothing.
func (s *Scanner) scanCell(raw, enhanced image.Image, cell image.Rectangle, screenHeight int) *detection.Result {
	result, ok := s.matcher.MatchCell(raw, cell)
	if !ok {
		return nil
	}

	result.Count = 1
	if s.detector.HasOverlay(enhanced, cell, screenHeight) {
		c := s.detector.Detect(enhanced, cell, screenHeight)
		result.Count = c.Count
		if c.RawText != "" {
			result.RawText = c.RawText
		}
	}
	return &result
}

// runOCR executes the OCR pipeline when it is enabled and available.
func (s *Scanner) runOCR(img image.Image) ([]detection.Result, bool) {
	if !s.cfg.OCR.Enabled {
		return nil, false
	}

	results, err := ocr.DetectEntities(img, s.cat, s.cfg.OCR.Language)
	if err != nil {
		if !errors.Is(err, ocr.ErrUnavailable) {
			log.Printf("OCR pipeline failed, continuing CV-only: %v", err)
		}
		return nil, false
	}
	return results, len(results) > 0
}

func (s *Scanner) debugf(format string, args ...interface{}) {
	if s.debug {
		log.Printf(format, args...)
	}
}
