package detection

import (
	"image"

	"github.com/ironsheep/inventory-scan-mcp/internal/catalog"
)

// Recognition methods. A Result carries the method that produced it so
// downstream consumers can weigh sources differently.
const (
	MethodOCR            = "ocr"
	MethodTemplateMatch  = "template_match"
	MethodIconSimilarity = "icon_similarity"
	MethodHybrid         = "hybrid"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// BoundsFromRect converts an image.Rectangle into a Bounds.
func BoundsFromRect(r image.Rectangle) Bounds {
	return Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// Rect converts the bounds back into an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Result is one recognized entity in a screenshot.
//
// A Result references a catalog entity by kind and ID; it never embeds
// game data beyond the display name. Confidence is the producing
// pipeline's certainty in [0,1]. Count is the stack size when one was
// read from the cell (zero means "not counted", which aggregation treats
// as 1).
type Result struct {
	// Kind is the entity category ("item", "weapon", "tome", "character").
	Kind catalog.Kind `json:"kind"`

	// ID is the stable catalog identifier of the entity.
	ID string `json:"id"`

	// Name is the entity's display name, carried for sorting and output.
	Name string `json:"name"`

	// Confidence is the recognition certainty (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Method identifies the pipeline that produced this result.
	Method string `json:"method"`

	// Position is the bounding box of the detection, when known.
	Position *Bounds `json:"position,omitempty"`

	// Count is the detected stack size (>= 1 when set, 0 when unknown).
	Count int `json:"count,omitempty"`

	// RawText is the raw recognized text behind this result, if any.
	RawText string `json:"rawText,omitempty"`
}

// key identifies the entity a result refers to. Fusion and grouping
// accumulate on it.
type key struct {
	kind catalog.Kind
	id   string
}

func (r Result) key() key {
	return key{kind: r.Kind, id: r.ID}
}
