// Package profile holds the static resolution-to-grid-layout table.
//
// A Profile describes where the inventory grid sits on screen for a given
// resolution class and how large the stack-count text is. Selection is a
// pure lookup keyed by screen height; unknown sizes scale the 1080p
// reference geometry proportionally.
package profile

import (
	"image"
	"math"
)

// Profile describes the inventory grid geometry for one resolution class.
type Profile struct {
	Name            string `json:"name"`            // Resolution class, e.g. "1080p" or "scaled"
	Columns         int    `json:"columns"`         // Grid columns
	Rows            int    `json:"rows"`            // Grid rows
	CellWidth       int    `json:"cellWidth"`       // Cell width in pixels
	CellHeight      int    `json:"cellHeight"`      // Cell height in pixels
	CellGap         int    `json:"cellGap"`         // Spacing between adjacent cells
	OriginX         int    `json:"originX"`         // Left edge of the grid
	OriginY         int    `json:"originY"`         // Top edge of the grid
	CountTextHeight int    `json:"countTextHeight"` // Height of the stack-count overlay text
}

// referenceClass is the per-height-class geometry before the grid origin
// is centered for the actual screen width.
type referenceClass struct {
	name       string
	cellSize   int
	cellGap    int
	textHeight int
}

// classes maps exact screen heights to tuned geometry. Everything else is
// scaled from the 1080 entry.
var classes = map[int]referenceClass{
	720:  {name: "720p", cellSize: 43, cellGap: 5, textHeight: 11},
	1080: {name: "1080p", cellSize: 64, cellGap: 8, textHeight: 16},
	1440: {name: "1440p", cellSize: 85, cellGap: 11, textHeight: 21},
	2160: {name: "2160p", cellSize: 128, cellGap: 16, textHeight: 32},
}

const (
	gridColumns = 8
	gridRows    = 4

	// minTextHeight keeps the count region usable on tiny screens.
	minTextHeight = 8
)

// ForResolution returns the grid profile for a screen of the given size.
//
// Exact 720/1080/1440/2160 heights use tuned geometry; any other height
// scales the 1080p reference. The grid is centered on the screen. The
// lookup is total: every size, including degenerate ones, yields a usable
// profile.
func ForResolution(width, height int) Profile {
	c, ok := classes[height]
	if !ok {
		c = scaledClass(height)
	}

	p := Profile{
		Name:            c.name,
		Columns:         gridColumns,
		Rows:            gridRows,
		CellWidth:       c.cellSize,
		CellHeight:      c.cellSize,
		CellGap:         c.cellGap,
		CountTextHeight: c.textHeight,
	}

	gridW := p.Columns*p.CellWidth + (p.Columns-1)*p.CellGap
	gridH := p.Rows*p.CellHeight + (p.Rows-1)*p.CellGap
	p.OriginX = maxInt(0, (width-gridW)/2)
	p.OriginY = maxInt(0, (height-gridH)/2)
	return p
}

// CountTextHeight returns the stack-count text height for a screen height
// without building a full profile.
func CountTextHeight(screenHeight int) int {
	if c, ok := classes[screenHeight]; ok {
		return c.textHeight
	}
	return scaledClass(screenHeight).textHeight
}

// CellAt returns the pixel rectangle of the cell at the given grid
// position. Positions outside the grid still map to a rectangle by the
// same arithmetic; callers clamp against the image when needed.
func (p Profile) CellAt(col, row int) image.Rectangle {
	x := p.OriginX + col*(p.CellWidth+p.CellGap)
	y := p.OriginY + row*(p.CellHeight+p.CellGap)
	return image.Rect(x, y, x+p.CellWidth, y+p.CellHeight)
}

// Cells returns all cell rectangles in row-major order.
func (p Profile) Cells() []image.Rectangle {
	cells := make([]image.Rectangle, 0, p.Columns*p.Rows)
	for row := 0; row < p.Rows; row++ {
		for col := 0; col < p.Columns; col++ {
			cells = append(cells, p.CellAt(col, row))
		}
	}
	return cells
}

func scaledClass(height int) referenceClass {
	ref := classes[1080]
	scale := float64(height) / 1080.0
	if scale <= 0 {
		scale = 0
	}
	return referenceClass{
		name:       "scaled",
		cellSize:   maxInt(1, int(math.Round(float64(ref.cellSize)*scale))),
		cellGap:    maxInt(0, int(math.Round(float64(ref.cellGap)*scale))),
		textHeight: maxInt(minTextHeight, int(math.Round(float64(ref.textHeight)*scale))),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
