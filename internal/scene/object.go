// Package scene holds the ordered collection of vector annotation objects
// drawn over a capture, together with their serialized snapshot form.
package scene

import (
	"image"
	"image/color"

	"github.com/example/snipmark/internal/geometry"
)

// Kind tags an annotation object variant.
type Kind string

const (
	KindStroke Kind = "stroke"
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindArrow  Kind = "arrow"
	KindText   Kind = "text"
)

// Style carries the stroke and optional fill of an annotation object. Fill
// opacity rides in the alpha channel.
type Style struct {
	Stroke color.RGBA  `json:"stroke"`
	Width  float64     `json:"width"`
	Fill   *color.RGBA `json:"fill,omitempty"`
}

// DrawTransform maps display-pixel geometry into a destination raster:
// subtract the offset, then scale.
type DrawTransform struct {
	OffsetX float64
	OffsetY float64
	ScaleX  float64
	ScaleY  float64
}

// Identity returns a transform that leaves coordinates unchanged.
func Identity() DrawTransform { return DrawTransform{ScaleX: 1, ScaleY: 1} }

// Apply maps a display point into the destination raster.
func (t DrawTransform) Apply(x, y float64) (int, int) {
	return int((x-t.OffsetX)*t.ScaleX + 0.5), int((y-t.OffsetY)*t.ScaleY + 0.5)
}

func (t DrawTransform) scaleWidth(w float64) int {
	s := (t.ScaleX + t.ScaleY) / 2
	sw := int(w*s + 0.5)
	if sw < 1 {
		sw = 1
	}
	return sw
}

// Object is one annotation in the scene. Objects are mutated only through
// the scene so history entries are recorded consistently.
type Object interface {
	ID() int
	Kind() Kind
	Bounds() geometry.Rect
	HitTest(x, y float64) bool
	Translate(dx, dy float64)
	Clone() Object
	Draw(dst *image.RGBA, tr DrawTransform)
}

// hitSlop widens hit areas for thin geometry, in display pixels.
const hitSlop = 4.0

func rectHit(r geometry.Rect, x, y float64) bool {
	return x >= r.Left-hitSlop && x <= r.Right()+hitSlop &&
		y >= r.Top-hitSlop && y <= r.Bottom()+hitSlop
}
