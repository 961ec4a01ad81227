package mask

import (
	"math"
	"testing"

	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/selection"
)

func TestSquareRegionHasFourInnerVertices(t *testing.T) {
	r := NewRenderer(1920, 1080)
	reg := r.Region(selection.Rect{Left: 100, Top: 100, Width: 300, Height: 200})
	if len(reg.Outer) != 4 {
		t.Fatalf("outer vertices = %d, want 4", len(reg.Outer))
	}
	if len(reg.Inner) != 4 {
		t.Fatalf("inner vertices = %d, want 4", len(reg.Inner))
	}
	if reg.Outer[2].X != 1920 || reg.Outer[2].Y != 1080 {
		t.Fatalf("outer ring does not span the screen: %+v", reg.Outer)
	}
}

func TestOppositeWindings(t *testing.T) {
	r := NewRenderer(800, 600)
	reg := r.Region(selection.Rect{Left: 10, Top: 10, Width: 100, Height: 100})
	if signedArea(reg.Outer)*signedArea(reg.Inner) >= 0 {
		t.Fatal("outer and inner rings must wind in opposite directions")
	}
}

func TestArcSegmentBands(t *testing.T) {
	tests := []struct {
		radius float64
		want   int
	}{
		{5, 5}, {29.9, 5}, {30, 8}, {64, 8}, {100, 8}, {100.1, 12}, {400, 12},
	}
	for _, tc := range tests {
		if got := ArcSegments(tc.radius); got != tc.want {
			t.Errorf("ArcSegments(%v) = %d, want %d", tc.radius, got, tc.want)
		}
	}
}

func TestRoundedInnerRingVertexCount(t *testing.T) {
	sel := selection.Rect{Left: 0, Top: 0, Width: 400, Height: 300, Radius: 40}
	ring := InnerRing(sel)
	want := 4 * (ArcSegments(40) + 1)
	if len(ring) != want {
		t.Fatalf("vertices = %d, want %d", len(ring), want)
	}
}

func TestRoundedInnerRingStaysOnBoundary(t *testing.T) {
	sel := selection.Rect{Left: 50, Top: 60, Width: 300, Height: 200, Radius: 25}
	for _, p := range InnerRing(sel) {
		if p.X < sel.Left-1e-9 || p.X > sel.Left+sel.Width+1e-9 ||
			p.Y < sel.Top-1e-9 || p.Y > sel.Top+sel.Height+1e-9 {
			t.Fatalf("vertex %+v escapes the selection rectangle", p)
		}
	}
	// Arc endpoints must land exactly on the straight edges so the ring is
	// watertight.
	ring := InnerRing(sel)
	first := ring[0]
	if math.Abs(first.X-sel.Left) > 1e-9 {
		t.Fatalf("ring must start on the left edge, got %+v", first)
	}
	last := ring[len(ring)-1]
	if math.Abs(last.X-sel.Left) > 1e-9 {
		t.Fatalf("ring must close on the left edge, got %+v", last)
	}
}

func TestRadiusClampedToHalfMinDimension(t *testing.T) {
	sel := selection.Rect{Left: 0, Top: 0, Width: 100, Height: 40, Radius: 500}
	for _, p := range InnerRing(sel) {
		if p.X < -1e-9 || p.X > 100+1e-9 || p.Y < -1e-9 || p.Y > 40+1e-9 {
			t.Fatalf("vertex %+v escapes with oversized radius", p)
		}
	}
}

func TestResizeUpdatesOuterRing(t *testing.T) {
	r := NewRenderer(800, 600)
	r.Resize(1024, 768)
	reg := r.Region(selection.Rect{Left: 0, Top: 0, Width: 10, Height: 10})
	if reg.Outer[1].X != 1024 || reg.Outer[2].Y != 768 {
		t.Fatalf("outer ring did not pick up the new screen size: %+v", reg.Outer)
	}
}

func signedArea(pts []geometry.Point) float64 {
	var sum float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}
