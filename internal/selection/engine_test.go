package selection

import (
	"testing"

	"github.com/example/snipmark/internal/geometry"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	layout, err := geometry.NewLayout([]geometry.Monitor{
		{X: 0, Y: 0, Width: 1920, Height: 1080, Primary: true},
	}, geometry.Rect{})
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	return NewEngine(layout)
}

func drag(e *Engine, x0, y0, x1, y1 float64) {
	e.PointerDown(x0, y0)
	e.PointerMove(x1, y1)
	e.PointerUp()
}

func TestCreateSelection(t *testing.T) {
	e := testEngine(t)
	e.PointerDown(100, 100)
	if e.State() != StateSelecting {
		t.Fatalf("state = %v, want Selecting", e.State())
	}
	e.PointerMove(400, 300)
	e.PointerUp()
	r, ok := e.Selection()
	if !ok {
		t.Fatal("expected committed selection")
	}
	want := Rect{Left: 100, Top: 100, Width: 300, Height: 200}
	if r != want {
		t.Fatalf("selection = %+v, want %+v", r, want)
	}
	if e.State() != StateIdle {
		t.Fatalf("state = %v, want Idle", e.State())
	}
}

func TestCreateSelectionReversedDrag(t *testing.T) {
	e := testEngine(t)
	drag(e, 400, 300, 100, 100)
	r, ok := e.Selection()
	if !ok {
		t.Fatal("expected committed selection")
	}
	want := Rect{Left: 100, Top: 100, Width: 300, Height: 200}
	if r != want {
		t.Fatalf("selection = %+v, want %+v", r, want)
	}
}

func TestTinySelectionDiscarded(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
	}{
		{"both small", 5, 5},
		{"narrow", 5, 100},
		{"short", 100, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := testEngine(t)
			drag(e, 200, 200, 200+tc.dx, 200+tc.dy)
			if _, ok := e.Selection(); ok {
				t.Fatal("selection should be discarded below the minimum size")
			}
			if e.State() != StateIdle {
				t.Fatalf("state = %v, want Idle", e.State())
			}
		})
	}
}

func TestResizeSouthEast(t *testing.T) {
	e := testEngine(t)
	drag(e, 100, 100, 400, 300)
	e.PointerDown(400, 300)
	if e.State() != StateResizing {
		t.Fatalf("state = %v, want Resizing", e.State())
	}
	e.PointerMove(450, 350)
	e.PointerUp()
	r, _ := e.Selection()
	want := Rect{Left: 100, Top: 100, Width: 350, Height: 250}
	if r != want {
		t.Fatalf("selection = %+v, want %+v", r, want)
	}
}

func TestResizeNorthWestAdjustsOrigin(t *testing.T) {
	e := testEngine(t)
	drag(e, 100, 100, 400, 300)
	e.PointerDown(100, 100)
	e.PointerMove(150, 130)
	e.PointerUp()
	r, _ := e.Selection()
	want := Rect{Left: 150, Top: 130, Width: 250, Height: 170}
	if r != want {
		t.Fatalf("selection = %+v, want %+v", r, want)
	}
}

func TestResizeEnforcesMinimumByMovingAnchoredEdge(t *testing.T) {
	e := testEngine(t)
	drag(e, 100, 100, 200, 200)
	// Drag the west edge far past the east edge.
	e.PointerDown(100, 150)
	if e.State() != StateResizing {
		t.Fatalf("state = %v, want Resizing", e.State())
	}
	e.PointerMove(500, 150)
	e.PointerUp()
	r, _ := e.Selection()
	if r.Width != MinSize {
		t.Fatalf("width = %v, want %v", r.Width, float64(MinSize))
	}
	// The floor is applied to the anchored edge: right edge stays put.
	if got := r.Left + r.Width; got != 200 {
		t.Fatalf("right edge = %v, want 200", got)
	}
}

func TestResizeClampedToMonitor(t *testing.T) {
	e := testEngine(t)
	drag(e, 1600, 900, 1800, 1000)
	e.PointerDown(1800, 1000) // se handle
	e.PointerMove(2400, 1400)
	e.PointerUp()
	r, _ := e.Selection()
	if r.Left+r.Width > 1920 || r.Top+r.Height > 1080 {
		t.Fatalf("selection %+v escapes the monitor", r)
	}
}

func TestMoveClampedToMonitor(t *testing.T) {
	e := testEngine(t)
	drag(e, 100, 100, 400, 300)
	e.PointerDown(250, 200) // interior
	if e.State() != StateMoving {
		t.Fatalf("state = %v, want Moving", e.State())
	}
	e.PointerMove(-500, -500)
	e.PointerUp()
	r, _ := e.Selection()
	if r.Left != 0 || r.Top != 0 {
		t.Fatalf("selection origin = (%v,%v), want (0,0)", r.Left, r.Top)
	}
	if r.Width != 300 || r.Height != 200 {
		t.Fatalf("move changed size: %+v", r)
	}
}

func TestNewDragDiscardsPreviousSelection(t *testing.T) {
	e := testEngine(t)
	drag(e, 100, 100, 400, 300)
	e.PointerDown(900, 700) // empty space
	r, ok := e.Selection()
	if !ok {
		t.Fatal("expected in-progress selection")
	}
	if r.Width != 0 || r.Height != 0 || r.Left != 900 || r.Top != 700 {
		t.Fatalf("stale geometry survived pointer down: %+v", r)
	}
}

func TestRadiusAdjustPerCorner(t *testing.T) {
	tests := []struct {
		name   string
		corner Corner
		dx, dy float64
		want   float64
	}{
		{"nw toward center grows", CornerNW, 30, 30, 30},
		{"nw away shrinks to zero", CornerNW, -30, -30, 0},
		{"ne toward center grows", CornerNE, -30, 30, 30},
		{"se toward center grows", CornerSE, -30, -30, 30},
		{"sw toward center grows", CornerSW, 30, -30, 30},
		{"mixed axes average", CornerNW, 40, 0, 20},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := testEngine(t)
			drag(e, 100, 100, 500, 400)
			pos := e.RadiusHandlePositions()[tc.corner]
			e.PointerDown(pos.X, pos.Y)
			if e.State() != StateAdjustingRadius {
				t.Fatalf("state = %v, want AdjustingRadius", e.State())
			}
			e.PointerMove(pos.X+tc.dx, pos.Y+tc.dy)
			e.PointerUp()
			if got := e.BorderRadius(); got != tc.want {
				t.Fatalf("radius = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRadiusClampedToHalfMinDimension(t *testing.T) {
	e := testEngine(t)
	drag(e, 100, 100, 500, 200) // 400x100, max radius 50
	pos := e.RadiusHandlePositions()[CornerNW]
	e.PointerDown(pos.X, pos.Y)
	e.PointerMove(pos.X+500, pos.Y+500)
	e.PointerUp()
	if got := e.BorderRadius(); got != 50 {
		t.Fatalf("radius = %v, want 50", got)
	}
	// Shrinking the rectangle re-clamps the radius.
	e.PointerDown(100, 150) // west handle
	e.PointerMove(460, 150)
	e.PointerUp()
	r, _ := e.Selection()
	if r.Radius > r.MaxRadius() {
		t.Fatalf("radius %v exceeds max %v after resize", r.Radius, r.MaxRadius())
	}
}

func TestHitTestOrder(t *testing.T) {
	e := testEngine(t)
	drag(e, 100, 100, 400, 300)
	// Radius handle sits inside the corner hit area and wins over both the
	// resize handle and the interior.
	pos := e.RadiusHandlePositions()[CornerNW]
	target, _, corner := e.HitTest(pos.X, pos.Y)
	if target != HitRadius || corner != CornerNW {
		t.Fatalf("hit = (%v,%v), want radius nw", target, corner)
	}
	target, handle, _ := e.HitTest(400, 300)
	if target != HitHandle || handle != HandleSE {
		t.Fatalf("hit = (%v,%v), want handle se", target, handle)
	}
	if target, _, _ := e.HitTest(250, 200); target != HitInside {
		t.Fatalf("hit = %v, want inside", target)
	}
	if target, _, _ := e.HitTest(900, 800); target != HitNothing {
		t.Fatalf("hit = %v, want nothing", target)
	}
}

func TestCancelDiscardsInProgressDragOnly(t *testing.T) {
	e := testEngine(t)
	e.PointerDown(100, 100)
	e.PointerMove(300, 300)
	e.Cancel()
	if _, ok := e.Selection(); ok {
		t.Fatal("cancel should discard an in-progress drag")
	}
	drag(e, 100, 100, 400, 300)
	e.PointerDown(250, 200)
	e.PointerMove(700, 600)
	e.Cancel()
	r, ok := e.Selection()
	if !ok {
		t.Fatal("cancel should keep the committed selection")
	}
	if r.Left != 100 || r.Top != 100 {
		t.Fatalf("cancel left a partial move applied: %+v", r)
	}
}

func TestNudge(t *testing.T) {
	e := testEngine(t)
	drag(e, 100, 100, 400, 300)
	e.Nudge(10, -10)
	r, _ := e.Selection()
	if r.Left != 110 || r.Top != 90 {
		t.Fatalf("nudged origin = (%v,%v), want (110,90)", r.Left, r.Top)
	}
	e.Nudge(-5000, 0)
	r, _ = e.Selection()
	if r.Left != 0 {
		t.Fatalf("nudge escaped the monitor: left = %v", r.Left)
	}
}
