package tools

import (
	"math"

	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/scene"
)

// MinShapeSize is the smallest dimension, in display pixels, a dragged
// shape may have and still be kept on pointer-up.
const MinShapeSize = 5.0

// Tool is one annotation tool. The controller guarantees a strict
// down/move/up call order; Finish is called when the tool is deactivated
// with a gesture still in progress.
type Tool interface {
	Name() Name
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	// PointerUp ends the gesture and returns the finalized object, or
	// false when the gesture produced nothing worth keeping.
	PointerUp(x, y float64) (scene.Object, bool)
	// Provisional returns the in-progress object for overlay drawing,
	// or nil.
	Provisional() scene.Object
	// Finish ends any in-progress gesture as if the pointer were
	// released at its last position.
	Finish() (scene.Object, bool)
}

// brushTool accumulates freehand points into a stroke.
type brushTool struct {
	params *Parameters
	nextID func() int
	cur    *scene.Stroke
}

func (t *brushTool) Name() Name { return Brush }

func (t *brushTool) PointerDown(x, y float64) {
	t.cur = &scene.Stroke{
		ObjectID: t.nextID(),
		Points:   []geometry.Point{{X: x, Y: y}},
		Style: scene.Style{
			Stroke: t.params.Color(Brush),
			Width:  t.params.Width(Brush),
		},
	}
}

func (t *brushTool) PointerMove(x, y float64) {
	if t.cur == nil {
		return
	}
	last := t.cur.Points[len(t.cur.Points)-1]
	if last.X == x && last.Y == y {
		return
	}
	t.cur.Points = append(t.cur.Points, geometry.Point{X: x, Y: y})
}

func (t *brushTool) PointerUp(x, y float64) (scene.Object, bool) {
	t.PointerMove(x, y)
	return t.Finish()
}

func (t *brushTool) Provisional() scene.Object {
	if t.cur == nil {
		return nil
	}
	return t.cur
}

func (t *brushTool) Finish() (scene.Object, bool) {
	cur := t.cur
	t.cur = nil
	if cur == nil || len(cur.Points) < 2 {
		return nil, false
	}
	return cur, true
}

// shapeTool drags out a rectangle, circle or arrow between an anchor and
// the current pointer position.
type shapeTool struct {
	name    Name
	params  *Parameters
	nextID  func() int
	anchor  geometry.Point
	cur     scene.Object
	dragged bool
}

func (t *shapeTool) Name() Name { return t.name }

func (t *shapeTool) style() scene.Style {
	return scene.Style{
		Stroke: t.params.Color(t.name),
		Width:  t.params.Width(t.name),
		Fill:   t.params.Fill(t.name),
	}
}

func (t *shapeTool) PointerDown(x, y float64) {
	t.anchor = geometry.Point{X: x, Y: y}
	t.dragged = true
	id := t.nextID()
	switch t.name {
	case Circle:
		t.cur = &scene.Circle{ObjectID: id, Style: t.style()}
	case Arrow, ArrowShape:
		t.cur = &scene.Arrow{ObjectID: id, From: t.anchor, To: t.anchor, Style: t.style()}
	default:
		t.cur = &scene.Box{ObjectID: id, Style: t.style()}
	}
	t.PointerMove(x, y)
}

func (t *shapeTool) PointerMove(x, y float64) {
	if !t.dragged {
		return
	}
	r := geometry.Rect{
		Left:   math.Min(t.anchor.X, x),
		Top:    math.Min(t.anchor.Y, y),
		Width:  math.Abs(x - t.anchor.X),
		Height: math.Abs(y - t.anchor.Y),
	}
	switch obj := t.cur.(type) {
	case *scene.Box:
		obj.Rect = r
	case *scene.Circle:
		obj.Rect = r
	case *scene.Arrow:
		obj.To = geometry.Point{X: x, Y: y}
	}
}

func (t *shapeTool) PointerUp(x, y float64) (scene.Object, bool) {
	t.PointerMove(x, y)
	return t.Finish()
}

func (t *shapeTool) Provisional() scene.Object {
	if !t.dragged {
		return nil
	}
	return t.cur
}

func (t *shapeTool) Finish() (scene.Object, bool) {
	if !t.dragged {
		return nil, false
	}
	t.dragged = false
	cur := t.cur
	t.cur = nil
	b := cur.Bounds()
	if b.Width < MinShapeSize && b.Height < MinShapeSize {
		return nil, false
	}
	return cur, true
}

// textTool places a label at the click point; typed runes accumulate into
// it until the next click or deactivation finalizes it.
type textTool struct {
	params *Parameters
	nextID func() int
	cur    *scene.Text
	done   *scene.Text
}

func (t *textTool) Name() Name { return TextTool }

func (t *textTool) PointerDown(x, y float64) {
	if t.cur != nil && t.cur.Content != "" {
		t.done = t.cur
	}
	t.cur = &scene.Text{
		ObjectID: t.nextID(),
		Pos:      geometry.Point{X: x, Y: y},
		Size:     t.params.FontSize(TextTool),
		Style:    scene.Style{Stroke: t.params.Color(TextTool)},
	}
}

func (t *textTool) PointerMove(x, y float64) {}

// PointerUp finalizes the previous label, if any. The one just placed
// stays open for typing.
func (t *textTool) PointerUp(x, y float64) (scene.Object, bool) {
	done := t.done
	t.done = nil
	if done == nil {
		return nil, false
	}
	return done, true
}

func (t *textTool) Provisional() scene.Object {
	if t.cur == nil {
		return nil
	}
	return t.cur
}

func (t *textTool) Finish() (scene.Object, bool) {
	cur := t.cur
	t.cur = nil
	t.done = nil
	if cur == nil || cur.Content == "" {
		return nil, false
	}
	return cur, true
}

// Rune appends a typed character to the open label.
func (t *textTool) Rune(r rune) {
	if t.cur == nil {
		return
	}
	t.cur.Content += string(r)
}

// Backspace removes the last character of the open label.
func (t *textTool) Backspace() {
	if t.cur == nil || t.cur.Content == "" {
		return
	}
	runes := []rune(t.cur.Content)
	t.cur.Content = string(runes[:len(runes)-1])
}
