package scene

import (
	"image"
	"math"

	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/render"
)

// Stroke is a freehand brush path.
type Stroke struct {
	ObjectID int              `json:"id"`
	Points   []geometry.Point `json:"points"`
	Style    Style            `json:"style"`
}

func (s *Stroke) ID() int    { return s.ObjectID }
func (s *Stroke) Kind() Kind { return KindStroke }

func (s *Stroke) Bounds() geometry.Rect {
	if len(s.Points) == 0 {
		return geometry.Rect{}
	}
	minX, minY := s.Points[0].X, s.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.Points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return geometry.Rect{Left: minX, Top: minY, Width: maxX - minX, Height: maxY - minY}
}

func (s *Stroke) HitTest(x, y float64) bool {
	slop := hitSlop + s.Style.Width/2
	for _, p := range s.Points {
		if math.Abs(p.X-x) <= slop && math.Abs(p.Y-y) <= slop {
			return true
		}
	}
	return false
}

func (s *Stroke) Translate(dx, dy float64) {
	for i := range s.Points {
		s.Points[i].X += dx
		s.Points[i].Y += dy
	}
}

func (s *Stroke) Clone() Object {
	pts := make([]geometry.Point, len(s.Points))
	copy(pts, s.Points)
	c := *s
	c.Points = pts
	return &c
}

func (s *Stroke) Draw(dst *image.RGBA, tr DrawTransform) {
	pts := make([]image.Point, len(s.Points))
	for i, p := range s.Points {
		x, y := tr.Apply(p.X, p.Y)
		pts[i] = image.Pt(x, y)
	}
	render.Polyline(dst, pts, s.Style.Stroke, tr.scaleWidth(s.Style.Width))
}

// Box is a rectangle annotation.
type Box struct {
	ObjectID int           `json:"id"`
	Rect     geometry.Rect `json:"rect"`
	Style    Style         `json:"style"`
}

func (b *Box) ID() int               { return b.ObjectID }
func (b *Box) Kind() Kind            { return KindRect }
func (b *Box) Bounds() geometry.Rect { return b.Rect }

func (b *Box) HitTest(x, y float64) bool {
	if b.Style.Fill != nil {
		return rectHit(b.Rect, x, y)
	}
	// Outline only: inside near an edge, not deep in the interior.
	if !rectHit(b.Rect, x, y) {
		return false
	}
	inner := geometry.Rect{
		Left:   b.Rect.Left + hitSlop + b.Style.Width,
		Top:    b.Rect.Top + hitSlop + b.Style.Width,
		Width:  b.Rect.Width - 2*(hitSlop+b.Style.Width),
		Height: b.Rect.Height - 2*(hitSlop+b.Style.Width),
	}
	return inner.Empty() || !inner.Contains(x, y)
}

func (b *Box) Translate(dx, dy float64) {
	b.Rect.Left += dx
	b.Rect.Top += dy
}

func (b *Box) Clone() Object {
	c := *b
	if b.Style.Fill != nil {
		fill := *b.Style.Fill
		c.Style.Fill = &fill
	}
	return &c
}

func (b *Box) Draw(dst *image.RGBA, tr DrawTransform) {
	x0, y0 := tr.Apply(b.Rect.Left, b.Rect.Top)
	x1, y1 := tr.Apply(b.Rect.Right(), b.Rect.Bottom())
	r := image.Rect(x0, y0, x1, y1)
	if b.Style.Fill != nil {
		render.Fill(dst, r, *b.Style.Fill)
	}
	render.Outline(dst, r, b.Style.Stroke, tr.scaleWidth(b.Style.Width))
}

// Circle is an ellipse annotation inscribed in its bounding rectangle.
type Circle struct {
	ObjectID int           `json:"id"`
	Rect     geometry.Rect `json:"rect"`
	Style    Style         `json:"style"`
}

func (c *Circle) ID() int               { return c.ObjectID }
func (c *Circle) Kind() Kind            { return KindCircle }
func (c *Circle) Bounds() geometry.Rect { return c.Rect }

func (c *Circle) HitTest(x, y float64) bool {
	rx := c.Rect.Width / 2
	ry := c.Rect.Height / 2
	if rx <= 0 || ry <= 0 {
		return false
	}
	nx := (x - (c.Rect.Left + rx)) / (rx + hitSlop)
	ny := (y - (c.Rect.Top + ry)) / (ry + hitSlop)
	d := nx*nx + ny*ny
	if c.Style.Fill != nil {
		return d <= 1
	}
	// Outline only: near the ellipse boundary.
	return d <= 1 && d >= 0.6
}

func (c *Circle) Translate(dx, dy float64) {
	c.Rect.Left += dx
	c.Rect.Top += dy
}

func (c *Circle) Clone() Object {
	cl := *c
	if c.Style.Fill != nil {
		fill := *c.Style.Fill
		cl.Style.Fill = &fill
	}
	return &cl
}

func (c *Circle) Draw(dst *image.RGBA, tr DrawTransform) {
	cx, cy := tr.Apply(c.Rect.Left+c.Rect.Width/2, c.Rect.Top+c.Rect.Height/2)
	rx := int(c.Rect.Width / 2 * tr.ScaleX)
	ry := int(c.Rect.Height / 2 * tr.ScaleY)
	if c.Style.Fill != nil {
		render.FilledEllipse(dst, cx, cy, rx, ry, *c.Style.Fill)
	}
	render.Ellipse(dst, cx, cy, rx, ry, c.Style.Stroke, tr.scaleWidth(c.Style.Width))
}

// Arrow is a line annotation with a head at its To end.
type Arrow struct {
	ObjectID int            `json:"id"`
	From     geometry.Point `json:"from"`
	To       geometry.Point `json:"to"`
	Style    Style          `json:"style"`
}

func (a *Arrow) ID() int    { return a.ObjectID }
func (a *Arrow) Kind() Kind { return KindArrow }

func (a *Arrow) Bounds() geometry.Rect {
	left := math.Min(a.From.X, a.To.X)
	top := math.Min(a.From.Y, a.To.Y)
	return geometry.Rect{
		Left:   left,
		Top:    top,
		Width:  math.Abs(a.From.X - a.To.X),
		Height: math.Abs(a.From.Y - a.To.Y),
	}
}

func (a *Arrow) HitTest(x, y float64) bool {
	// Distance from the point to the shaft segment.
	vx := a.To.X - a.From.X
	vy := a.To.Y - a.From.Y
	wx := x - a.From.X
	wy := y - a.From.Y
	lenSq := vx*vx + vy*vy
	t := 0.0
	if lenSq > 0 {
		t = (wx*vx + wy*vy) / lenSq
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	dx := a.From.X + t*vx - x
	dy := a.From.Y + t*vy - y
	slop := hitSlop + a.Style.Width/2
	return dx*dx+dy*dy <= slop*slop
}

func (a *Arrow) Translate(dx, dy float64) {
	a.From.X += dx
	a.From.Y += dy
	a.To.X += dx
	a.To.Y += dy
}

func (a *Arrow) Clone() Object {
	c := *a
	return &c
}

func (a *Arrow) Draw(dst *image.RGBA, tr DrawTransform) {
	x0, y0 := tr.Apply(a.From.X, a.From.Y)
	x1, y1 := tr.Apply(a.To.X, a.To.Y)
	render.Arrow(dst, x0, y0, x1, y1, a.Style.Stroke, tr.scaleWidth(a.Style.Width))
}

// Text is a text label anchored at its top-left corner.
type Text struct {
	ObjectID int            `json:"id"`
	Pos      geometry.Point `json:"pos"`
	Content  string         `json:"content"`
	Size     float64        `json:"size"`
	Style    Style          `json:"style"`
}

func (t *Text) ID() int    { return t.ObjectID }
func (t *Text) Kind() Kind { return KindText }

func (t *Text) Bounds() geometry.Rect {
	w, h, _, err := render.MeasureText(t.Content, t.Size)
	if err != nil {
		w, h = len(t.Content)*int(t.Size/2), int(t.Size)
	}
	return geometry.Rect{Left: t.Pos.X, Top: t.Pos.Y, Width: float64(w), Height: float64(h)}
}

func (t *Text) HitTest(x, y float64) bool { return rectHit(t.Bounds(), x, y) }

func (t *Text) Translate(dx, dy float64) {
	t.Pos.X += dx
	t.Pos.Y += dy
}

func (t *Text) Clone() Object {
	c := *t
	return &c
}

func (t *Text) Draw(dst *image.RGBA, tr DrawTransform) {
	x, y := tr.Apply(t.Pos.X, t.Pos.Y)
	size := t.Size * (tr.ScaleX + tr.ScaleY) / 2
	_ = render.Text(dst, x, y, t.Content, t.Style.Stroke, size)
}
