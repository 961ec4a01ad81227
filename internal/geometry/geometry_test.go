package geometry

import "testing"

func dualLayout(t *testing.T) *Layout {
	t.Helper()
	l, err := NewLayout([]Monitor{
		{X: 0, Y: 0, Width: 1920, Height: 1080, Primary: true},
		{X: 1920, Y: 0, Width: 1280, Height: 1024},
	}, Rect{})
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	return l
}

func TestConstrainKeepsRectOnScreen(t *testing.T) {
	l := dualLayout(t)
	tests := []struct {
		name                string
		x, y, w, h          float64
		wantX, wantY        float64
	}{
		{"inside primary", 100, 100, 300, 200, 100, 100},
		{"bottom-right corner of primary", 1800, 1060, 300, 200, 1620, 880},
		{"above top", 500, -50, 300, 200, 500, 0},
		{"past bottom of primary", 400, 1000, 300, 200, 400, 880},
		{"entirely left of everything", -600, 200, 300, 200, 0, 200},
		{"mostly on secondary", 2500, 900, 300, 200, 2500, 824},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotX, gotY := l.Constrain(tc.x, tc.y, tc.w, tc.h)
			if gotX != tc.wantX || gotY != tc.wantY {
				t.Fatalf("Constrain(%v,%v) = (%v,%v), want (%v,%v)", tc.x, tc.y, gotX, gotY, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestConstrainIdempotent(t *testing.T) {
	// Non-adjacent monitors: the virtual-bounds clamp can slide a rectangle
	// from the gap into a monitor's edge, which must not move it twice.
	gapped, err := NewLayout([]Monitor{
		{X: 0, Y: 0, Width: 1920, Height: 1080, Primary: true},
		{X: 2000, Y: 100, Width: 1280, Height: 720},
	}, Rect{})
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	layouts := []struct {
		name string
		l    *Layout
	}{
		{"adjacent", dualLayout(t)},
		{"gapped", gapped},
	}
	cases := [][4]float64{
		{-500, -500, 400, 300},
		{3000, 2000, 640, 480},
		{960, 540, 10, 10},
		{1900, 500, 200, 200},
		{1692, -400, 300, 200},
		{1950, 900, 100, 100},
	}
	for _, lt := range layouts {
		for _, c := range cases {
			x1, y1 := lt.l.Constrain(c[0], c[1], c[2], c[3])
			x2, y2 := lt.l.Constrain(x1, y1, c[2], c[3])
			if x1 != x2 || y1 != y2 {
				t.Fatalf("%s: not idempotent for %v: first (%v,%v), second (%v,%v)", lt.name, c, x1, y1, x2, y2)
			}
		}
	}
}

func TestConstrainGapLandsInsideMonitor(t *testing.T) {
	l, err := NewLayout([]Monitor{
		{X: 0, Y: 0, Width: 1920, Height: 1080, Primary: true},
		{X: 2000, Y: 100, Width: 1280, Height: 720},
	}, Rect{})
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	// Starts above the gap between the monitors; the fallback clamp pulls it
	// down until it touches the primary, and the result must sit fully inside.
	x, y := l.Constrain(1692, -400, 300, 200)
	if x != 1620 || y != 0 {
		t.Fatalf("Constrain = (%v,%v), want (1620,0)", x, y)
	}
}

func TestConstrainedRectInsideMonitorUnion(t *testing.T) {
	l := dualLayout(t)
	for x := -400.0; x <= 3600; x += 173 {
		for y := -400.0; y <= 1500; y += 131 {
			gx, gy := l.Constrain(x, y, 120, 90)
			r := Rect{Left: gx, Top: gy, Width: 120, Height: 90}
			covered := 0.0
			for _, m := range l.Monitors() {
				covered += r.Intersect(m.Rect()).Area()
			}
			if covered < r.Area() {
				t.Fatalf("rect at (%v,%v) only %v of %v covered by monitors", gx, gy, covered, r.Area())
			}
		}
	}
}

func TestConstrainFallsBackToVirtualBounds(t *testing.T) {
	// Non-adjacent monitors leave a gap the rectangle can fall into.
	l, err := NewLayout([]Monitor{
		{X: 0, Y: 0, Width: 100, Height: 100, Primary: true},
		{X: 500, Y: 0, Width: 100, Height: 100},
	}, Rect{})
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	x, y := l.Constrain(250, 250, 20, 20)
	v := l.Virtual()
	if x < v.Left || x+20 > v.Right() || y < v.Top || y+20 > v.Bottom() {
		t.Fatalf("fallback clamp (%v,%v) escaped virtual bounds %+v", x, y, v)
	}
}

func TestNewLayoutNoMonitors(t *testing.T) {
	fallback := Rect{Width: 1600, Height: 900}
	l, err := NewLayout(nil, fallback)
	if err != ErrBoundsUnavailable {
		t.Fatalf("err = %v, want ErrBoundsUnavailable", err)
	}
	if l == nil {
		t.Fatal("expected usable layout despite error")
	}
	if got := l.Virtual(); got != fallback {
		t.Fatalf("virtual = %+v, want %+v", got, fallback)
	}
	if x, y := l.Constrain(2000, 2000, 100, 100); x != 1500 || y != 800 {
		t.Fatalf("fallback constrain = (%v,%v), want (1500,800)", x, y)
	}
}

func TestPrimaryPreferredOnExactTie(t *testing.T) {
	l, err := NewLayout([]Monitor{
		{X: 0, Y: 0, Width: 100, Height: 100},
		{X: 100, Y: 0, Width: 100, Height: 100, Primary: true},
	}, Rect{})
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	// Straddling the seam evenly: 10px on each side.
	x, _ := l.Constrain(90, 40, 20, 20)
	// Clamped into the primary (right) monitor.
	if x != 100 {
		t.Fatalf("x = %v, want 100 (primary monitor wins the tie)", x)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	tr := NewTransform(1920, 1080, 3840, 2160)
	if tr.ScaleX != 2 || tr.ScaleY != 2 {
		t.Fatalf("scale = (%v,%v), want (2,2)", tr.ScaleX, tr.ScaleY)
	}
	cx, cy := tr.ToCapture(100, 50)
	if cx != 200 || cy != 100 {
		t.Fatalf("ToCapture = (%v,%v), want (200,100)", cx, cy)
	}
	dx, dy := tr.ToDisplay(cx, cy)
	if dx != 100 || dy != 50 {
		t.Fatalf("ToDisplay = (%v,%v), want (100,50)", dx, dy)
	}
}

func TestTransformDegenerateInputs(t *testing.T) {
	tr := NewTransform(0, 0, 1920, 1080)
	if tr.ScaleX != 1 || tr.ScaleY != 1 {
		t.Fatalf("degenerate transform = %+v, want identity", tr)
	}
}

func TestRectToCapture(t *testing.T) {
	tr := NewTransform(1000, 1000, 1500, 3000)
	got := tr.RectToCapture(Rect{Left: 10, Top: 20, Width: 100, Height: 50})
	want := Rect{Left: 15, Top: 60, Width: 150, Height: 150}
	if got != want {
		t.Fatalf("RectToCapture = %+v, want %+v", got, want)
	}
}
