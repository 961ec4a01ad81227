// Package selection implements the state machine that owns the capture
// selection rectangle: creating it with a drag, moving it, resizing it by its
// eight edge handles, and rounding its corners by four radius handles.
package selection

import (
	"math"

	"github.com/example/snipmark/internal/geometry"
)

// MinSize is the smallest selection edge, in display pixels, that survives a
// resize or an initial drag.
const MinSize = 10

// handleHitSize is the half-extent of the square hit area around a handle.
const handleHitSize = 6

// Rect is the selection rectangle with an optional corner radius, all in
// display pixels.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
	Radius float64
}

// Bounds returns the rectangle without its radius.
func (r Rect) Bounds() geometry.Rect {
	return geometry.Rect{Left: r.Left, Top: r.Top, Width: r.Width, Height: r.Height}
}

// MaxRadius returns the largest corner radius the rectangle admits.
func (r Rect) MaxRadius() float64 {
	m := r.Width
	if r.Height < m {
		m = r.Height
	}
	if m < 0 {
		m = 0
	}
	return m / 2
}

func (r Rect) clampRadius() Rect {
	if r.Radius < 0 {
		r.Radius = 0
	}
	if max := r.MaxRadius(); r.Radius > max {
		r.Radius = max
	}
	return r
}

// State identifies the engine's current interaction phase.
type State int

const (
	StateIdle State = iota
	StateSelecting
	StateMoving
	StateResizing
	StateAdjustingRadius
)

// Handle identifies one of the eight resize handles.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

// Corner identifies one of the four radius handles.
type Corner int

const (
	CornerNone Corner = iota
	CornerNW
	CornerNE
	CornerSE
	CornerSW
)

// Engine drives the selection rectangle through pointer interactions. It is
// the sole mutator of the rectangle; callers observe it through Selection.
type Engine struct {
	layout *geometry.Layout

	state  State
	rect   Rect
	exists bool

	anchor      geometry.Point
	start       geometry.Point
	startRect   Rect
	handle      Handle
	corner      Corner
	startRadius float64
	moveOffset  geometry.Point
}

// NewEngine creates an engine constrained by the given monitor layout.
func NewEngine(layout *geometry.Layout) *Engine {
	return &Engine{layout: layout}
}

// State returns the current interaction state.
func (e *Engine) State() State { return e.state }

// Selection returns the committed or in-progress rectangle and whether one
// exists at all.
func (e *Engine) Selection() (Rect, bool) { return e.rect, e.exists }

// BorderRadius returns the current corner radius.
func (e *Engine) BorderRadius() float64 { return e.rect.Radius }

// Clear discards the selection and returns the engine to Idle.
func (e *Engine) Clear() {
	e.state = StateIdle
	e.rect = Rect{}
	e.exists = false
}

// Cancel aborts any in-progress interaction. A committed selection from an
// earlier interaction is kept; an in-progress initial drag is discarded.
func (e *Engine) Cancel() {
	if e.state == StateSelecting {
		e.rect = Rect{}
		e.exists = false
	} else if e.state != StateIdle {
		e.rect = e.startRect
	}
	e.state = StateIdle
}

// HitTarget describes what lies under a pointer position.
type HitTarget int

const (
	HitNothing HitTarget = iota
	HitInside
	HitHandle
	HitRadius
)

// HitTest resolves the pointer position against the selection, checking
// radius handles first, then resize handles, then the interior.
func (e *Engine) HitTest(x, y float64) (HitTarget, Handle, Corner) {
	if !e.exists {
		return HitNothing, HandleNone, CornerNone
	}
	if c := e.radiusHandleAt(x, y); c != CornerNone {
		return HitRadius, HandleNone, c
	}
	if h := e.resizeHandleAt(x, y); h != HandleNone {
		return HitHandle, h, CornerNone
	}
	if e.rect.Bounds().Contains(x, y) {
		return HitInside, HandleNone, CornerNone
	}
	return HitNothing, HandleNone, CornerNone
}

// PointerDown begins an interaction for the pointer position.
func (e *Engine) PointerDown(x, y float64) {
	target, handle, corner := e.HitTest(x, y)
	e.start = geometry.Point{X: x, Y: y}
	switch target {
	case HitRadius:
		e.state = StateAdjustingRadius
		e.corner = corner
		e.startRect = e.rect
		e.startRadius = e.rect.Radius
	case HitHandle:
		e.state = StateResizing
		e.handle = handle
		e.startRect = e.rect
	case HitInside:
		e.state = StateMoving
		e.startRect = e.rect
		e.moveOffset = geometry.Point{X: x - e.rect.Left, Y: y - e.rect.Top}
	default:
		// Any previous rectangle goes away immediately so stale geometry
		// never flashes under the new drag.
		e.state = StateSelecting
		e.anchor = geometry.Point{X: x, Y: y}
		e.rect = Rect{Left: x, Top: y}
		e.exists = true
	}
}

// PointerMove updates the in-progress interaction with a new pointer position.
func (e *Engine) PointerMove(x, y float64) {
	switch e.state {
	case StateSelecting:
		e.rect = normalized(e.anchor, geometry.Point{X: x, Y: y})
	case StateMoving:
		nx, ny := e.layout.Constrain(x-e.moveOffset.X, y-e.moveOffset.Y, e.startRect.Width, e.startRect.Height)
		e.rect.Left = nx
		e.rect.Top = ny
	case StateResizing:
		e.rect = e.resized(x, y)
	case StateAdjustingRadius:
		e.rect.Radius = e.adjustedRadius(x, y)
	}
}

// PointerUp commits the in-progress interaction. An initial drag smaller than
// MinSize in either dimension is discarded entirely.
func (e *Engine) PointerUp() {
	if e.state == StateSelecting {
		if e.rect.Width < MinSize || e.rect.Height < MinSize {
			e.rect = Rect{}
			e.exists = false
		}
	}
	e.state = StateIdle
}

// Nudge shifts a committed selection by the given delta, clamped to the
// monitor layout. It is a no-op while an interaction is in progress.
func (e *Engine) Nudge(dx, dy float64) {
	if !e.exists || e.state != StateIdle {
		return
	}
	nx, ny := e.layout.Constrain(e.rect.Left+dx, e.rect.Top+dy, e.rect.Width, e.rect.Height)
	e.rect.Left = nx
	e.rect.Top = ny
}

func normalized(a, b geometry.Point) Rect {
	left, right := a.X, b.X
	if right < left {
		left, right = right, left
	}
	top, bottom := a.Y, b.Y
	if bottom < top {
		top, bottom = bottom, top
	}
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// resized applies the pointer delta to the edges implied by the active
// handle. The anchored edge moves when the minimum size would be violated so
// the rectangle never visually jumps, and the result is clamped to the
// monitor layout.
func (e *Engine) resized(x, y float64) Rect {
	dx := x - e.start.X
	dy := y - e.start.Y
	r := e.startRect

	switch e.handle {
	case HandleNW, HandleW, HandleSW:
		r.Left = e.startRect.Left + dx
		r.Width = e.startRect.Width - dx
		if r.Width < MinSize {
			r.Left = e.startRect.Left + e.startRect.Width - MinSize
			r.Width = MinSize
		}
	case HandleNE, HandleE, HandleSE:
		r.Width = e.startRect.Width + dx
		if r.Width < MinSize {
			r.Width = MinSize
		}
	}
	switch e.handle {
	case HandleNW, HandleN, HandleNE:
		r.Top = e.startRect.Top + dy
		r.Height = e.startRect.Height - dy
		if r.Height < MinSize {
			r.Top = e.startRect.Top + e.startRect.Height - MinSize
			r.Height = MinSize
		}
	case HandleSW, HandleS, HandleSE:
		r.Height = e.startRect.Height + dy
		if r.Height < MinSize {
			r.Height = MinSize
		}
	}

	nx, ny := e.layout.Constrain(r.Left, r.Top, r.Width, r.Height)
	r.Left = nx
	r.Top = ny
	return r.clampRadius()
}

// adjustedRadius projects the pointer displacement along the corner's
// diagonal toward the rectangle center. The per-corner sign convention
// matches the interaction users expect: dragging a radius handle toward the
// center grows the radius, away shrinks it.
func (e *Engine) adjustedRadius(x, y float64) float64 {
	dx := x - e.start.X
	dy := y - e.start.Y
	var delta float64
	switch e.corner {
	case CornerNW:
		delta = (dx + dy) / 2
	case CornerNE:
		delta = (-dx + dy) / 2
	case CornerSE:
		delta = (-dx - dy) / 2
	case CornerSW:
		delta = (dx - dy) / 2
	}
	r := e.startRadius + delta
	if r < 0 {
		r = 0
	}
	if max := e.rect.MaxRadius(); r > max {
		r = max
	}
	return r
}

// HandlePositions returns the display positions of the eight resize handles
// keyed by handle.
func (e *Engine) HandlePositions() map[Handle]geometry.Point {
	r := e.rect
	cx := r.Left + r.Width/2
	cy := r.Top + r.Height/2
	return map[Handle]geometry.Point{
		HandleNW: {X: r.Left, Y: r.Top},
		HandleN:  {X: cx, Y: r.Top},
		HandleNE: {X: r.Left + r.Width, Y: r.Top},
		HandleE:  {X: r.Left + r.Width, Y: cy},
		HandleSE: {X: r.Left + r.Width, Y: r.Top + r.Height},
		HandleS:  {X: cx, Y: r.Top + r.Height},
		HandleSW: {X: r.Left, Y: r.Top + r.Height},
		HandleW:  {X: r.Left, Y: cy},
	}
}

// RadiusHandlePositions returns the display positions of the four radius
// handles, inset from each corner along its diagonal by the current radius.
func (e *Engine) RadiusHandlePositions() map[Corner]geometry.Point {
	r := e.rect
	inset := r.Radius
	if inset < handleHitSize*2 {
		inset = handleHitSize * 2
	}
	d := inset / math.Sqrt2
	return map[Corner]geometry.Point{
		CornerNW: {X: r.Left + d, Y: r.Top + d},
		CornerNE: {X: r.Left + r.Width - d, Y: r.Top + d},
		CornerSE: {X: r.Left + r.Width - d, Y: r.Top + r.Height - d},
		CornerSW: {X: r.Left + d, Y: r.Top + r.Height - d},
	}
}

func (e *Engine) radiusHandleAt(x, y float64) Corner {
	for corner, p := range e.RadiusHandlePositions() {
		if math.Abs(x-p.X) <= handleHitSize && math.Abs(y-p.Y) <= handleHitSize {
			return corner
		}
	}
	return CornerNone
}

func (e *Engine) resizeHandleAt(x, y float64) Handle {
	for handle, p := range e.HandlePositions() {
		if math.Abs(x-p.X) <= handleHitSize && math.Abs(y-p.Y) <= handleHitSize {
			return handle
		}
	}
	return HandleNone
}
