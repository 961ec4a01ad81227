// Package mask derives the evenodd clip region that cuts the selection
// rectangle out of the full-screen dimming overlay.
package mask

import (
	"math"

	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/selection"
)

// Region is an evenodd clip description: the outer ring covers the whole
// screen and the inner ring traces the selection, so filling both with the
// evenodd rule dims everything except the selection hole.
type Region struct {
	Outer []geometry.Point
	Inner []geometry.Point
}

// Renderer rebuilds the clip region from selection geometry. Its only state
// is the last known screen size, refreshed on resize events.
type Renderer struct {
	screenW float64
	screenH float64
}

// NewRenderer creates a renderer for the given screen size.
func NewRenderer(screenW, screenH float64) *Renderer {
	return &Renderer{screenW: screenW, screenH: screenH}
}

// Resize records a new screen size.
func (r *Renderer) Resize(screenW, screenH float64) {
	r.screenW = screenW
	r.screenH = screenH
}

// Region computes the clip region for the selection. The outer ring winds
// clockwise and the inner ring counter-clockwise so the two cancel under the
// evenodd rule.
func (r *Renderer) Region(sel selection.Rect) Region {
	outer := []geometry.Point{
		{X: 0, Y: 0},
		{X: r.screenW, Y: 0},
		{X: r.screenW, Y: r.screenH},
		{X: 0, Y: r.screenH},
	}
	return Region{Outer: outer, Inner: InnerRing(sel)}
}

// InnerRing traces the selection boundary counter-clockwise. Rounded corners
// are approximated by sampled quarter arcs; the sample count grows with the
// radius so the silhouette stays smooth without unbounded vertex growth.
func InnerRing(sel selection.Rect) []geometry.Point {
	left, top := sel.Left, sel.Top
	right, bottom := sel.Left+sel.Width, sel.Top+sel.Height
	rad := sel.Radius
	if rad <= 0 {
		return []geometry.Point{
			{X: left, Y: top},
			{X: left, Y: bottom},
			{X: right, Y: bottom},
			{X: right, Y: top},
		}
	}
	if max := sel.MaxRadius(); rad > max {
		rad = max
	}
	n := ArcSegments(rad)

	pts := make([]geometry.Point, 0, 4*(n+1))
	// Counter-clockwise on screen: down the left edge, along the bottom, up
	// the right edge, back across the top. Straight edges are implicit
	// between consecutive arc endpoints.
	pts = append(pts, arc(left+rad, bottom-rad, rad, math.Pi, math.Pi*3/2, n)...)    // sw
	pts = append(pts, arc(right-rad, bottom-rad, rad, math.Pi*3/2, 2*math.Pi, n)...) // se
	pts = append(pts, arc(right-rad, top+rad, rad, 0, math.Pi/2, n)...)              // ne
	pts = append(pts, arc(left+rad, top+rad, rad, math.Pi/2, math.Pi, n)...)         // nw
	return pts
}

// ArcSegments returns the number of sampled points per quarter arc for a
// radius: 5 below 30px, 8 from 30 to 100px, 12 above 100px.
func ArcSegments(radius float64) int {
	switch {
	case radius < 30:
		return 5
	case radius <= 100:
		return 8
	default:
		return 12
	}
}

// arc samples n+1 points of a quarter circle around (cx, cy) from angle a0 to
// a1. Angles follow screen coordinates: y grows downward.
func arc(cx, cy, r, a0, a1 float64, n int) []geometry.Point {
	pts := make([]geometry.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		pts = append(pts, geometry.Point{
			X: cx + r*math.Cos(a),
			Y: cy - r*math.Sin(a),
		})
	}
	return pts
}
