package geometry

import "errors"

// ErrBoundsUnavailable indicates that no monitor data could be obtained and
// the layout fell back to a single viewport-sized monitor.
var ErrBoundsUnavailable = errors.New("monitor layout unavailable")

// Point is a position in display pixels.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in display pixels.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right returns the X coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the Y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Intersect returns the overlapping region of two rectangles. The result is
// the zero Rect when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	left := r.Left
	if o.Left > left {
		left = o.Left
	}
	top := r.Top
	if o.Top > top {
		top = o.Top
	}
	right := r.Right()
	if o.Right() < right {
		right = o.Right()
	}
	bottom := r.Bottom()
	if o.Bottom() < bottom {
		bottom = o.Bottom()
	}
	if right <= left || bottom <= top {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Area returns the rectangle's area, zero for empty rectangles.
func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Monitor describes one display in the session's monitor layout.
type Monitor struct {
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Primary bool
}

// Rect returns the monitor's rectangle.
func (m Monitor) Rect() Rect {
	return Rect{Left: m.X, Top: m.Y, Width: m.Width, Height: m.Height}
}

// Layout is the per-session monitor arrangement used to constrain selection
// geometry. It is immutable after construction so Constrain stays a pure
// function of its inputs.
type Layout struct {
	monitors []Monitor
	virtual  Rect
}

// NewLayout builds a layout from the monitors reported by the capture
// backend. With an empty monitor list it falls back to a single monitor the
// size of the fallback viewport and reports ErrBoundsUnavailable alongside
// the usable layout.
func NewLayout(monitors []Monitor, fallback Rect) (*Layout, error) {
	if len(monitors) == 0 {
		mon := Monitor{X: fallback.Left, Y: fallback.Top, Width: fallback.Width, Height: fallback.Height, Primary: true}
		return &Layout{monitors: []Monitor{mon}, virtual: fallback}, ErrBoundsUnavailable
	}
	ms := make([]Monitor, len(monitors))
	copy(ms, monitors)
	virtual := ms[0].Rect()
	for _, m := range ms[1:] {
		r := m.Rect()
		if r.Left < virtual.Left {
			virtual.Width += virtual.Left - r.Left
			virtual.Left = r.Left
		}
		if r.Top < virtual.Top {
			virtual.Height += virtual.Top - r.Top
			virtual.Top = r.Top
		}
		if r.Right() > virtual.Right() {
			virtual.Width = r.Right() - virtual.Left
		}
		if r.Bottom() > virtual.Bottom() {
			virtual.Height = r.Bottom() - virtual.Top
		}
	}
	return &Layout{monitors: ms, virtual: virtual}, nil
}

// Monitors returns a copy of the layout's monitor list.
func (l *Layout) Monitors() []Monitor {
	out := make([]Monitor, len(l.monitors))
	copy(out, l.monitors)
	return out
}

// Virtual returns the bounding box of all monitors.
func (l *Layout) Virtual() Rect { return l.virtual }

// Constrain clamps the rectangle's origin so it stays inside the monitor
// whose rectangle shares the largest area with it. Exact area ties prefer the
// primary monitor, then list order. When no monitor intersects at all the
// virtual bounds act as the clamp target; since that clamp can slide the
// rectangle into a monitor it previously missed, the monitor clamp runs once
// more on the result so repeated calls are stable.
func (l *Layout) Constrain(x, y, width, height float64) (float64, float64) {
	if cx, cy, ok := l.clampToMonitor(x, y, width, height); ok {
		return cx, cy
	}
	cx := clampAxis(x, width, l.virtual.Left, l.virtual.Right())
	cy := clampAxis(y, height, l.virtual.Top, l.virtual.Bottom())
	if mx, my, ok := l.clampToMonitor(cx, cy, width, height); ok {
		return mx, my
	}
	return cx, cy
}

// clampToMonitor clamps the rectangle into the monitor sharing the largest
// intersection area with it. ok is false when no monitor intersects.
func (l *Layout) clampToMonitor(x, y, width, height float64) (cx, cy float64, ok bool) {
	cand := Rect{Left: x, Top: y, Width: width, Height: height}
	best := -1
	bestArea := 0.0
	for i, m := range l.monitors {
		area := cand.Intersect(m.Rect()).Area()
		if area > bestArea {
			best = i
			bestArea = area
			continue
		}
		if area > 0 && area == bestArea && best >= 0 {
			if m.Primary && !l.monitors[best].Primary {
				best = i
			}
		}
	}
	if best < 0 {
		return x, y, false
	}
	target := l.monitors[best].Rect()
	return clampAxis(x, width, target.Left, target.Right()),
		clampAxis(y, height, target.Top, target.Bottom()), true
}

func clampAxis(pos, size, lo, hi float64) float64 {
	max := hi - size
	if max < lo {
		// Rectangle is wider than the target; pin to the near edge.
		max = lo
	}
	if pos < lo {
		return lo
	}
	if pos > max {
		return max
	}
	return pos
}

// Transform converts between display pixels, the logical coordinates pointer
// events report, and capture pixels, the physical coordinates of the backing
// capture buffer.
type Transform struct {
	ScaleX float64
	ScaleY float64
}

// NewTransform derives the per-axis scale factors from the display viewport
// size and the capture buffer size. Degenerate inputs produce the identity
// transform.
func NewTransform(displayW, displayH, captureW, captureH float64) Transform {
	t := Transform{ScaleX: 1, ScaleY: 1}
	if displayW > 0 && captureW > 0 {
		t.ScaleX = captureW / displayW
	}
	if displayH > 0 && captureH > 0 {
		t.ScaleY = captureH / displayH
	}
	return t
}

// ToCapture maps a display-pixel position to capture pixels.
func (t Transform) ToCapture(x, y float64) (float64, float64) {
	return x * t.ScaleX, y * t.ScaleY
}

// ToDisplay maps a capture-pixel position back to display pixels.
func (t Transform) ToDisplay(x, y float64) (float64, float64) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return x / sx, y / sy
}

// RectToCapture maps a display-pixel rectangle to capture pixels.
func (t Transform) RectToCapture(r Rect) Rect {
	return Rect{
		Left:   r.Left * t.ScaleX,
		Top:    r.Top * t.ScaleY,
		Width:  r.Width * t.ScaleX,
		Height: r.Height * t.ScaleY,
	}
}
