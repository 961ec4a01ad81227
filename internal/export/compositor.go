// Package export rasterizes the background capture and annotation scene
// restricted to the selection rectangle into a final image.
package export

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/render"
	"github.com/example/snipmark/internal/scene"
	"github.com/example/snipmark/internal/selection"
)

var (
	// ErrBackgroundNotReady reports an export before the capture image
	// arrived. The selection is untouched; the user may retry.
	ErrBackgroundNotReady = errors.New("export: background capture not ready")
	// ErrComposite reports a failure rasterizing the scene.
	ErrComposite = errors.New("export: compositing failed")
)

// Options adjust the final artifact.
type Options struct {
	// Shadow draws a soft drop shadow around the crop.
	Shadow bool
}

// Compositor renders export artifacts. The background is set once per
// session when the capture arrives and read only at export time.
type Compositor struct {
	background *image.RGBA
	transform  geometry.Transform
}

// NewCompositor returns a compositor with no background loaded.
func NewCompositor() *Compositor {
	return &Compositor{transform: geometry.Transform{ScaleX: 1, ScaleY: 1}}
}

// SetBackground installs the capture buffer and the display→capture
// transform for this session.
func (c *Compositor) SetBackground(img *image.RGBA, tr geometry.Transform) {
	c.background = img
	c.transform = tr
}

// Ready reports whether a background capture is loaded.
func (c *Compositor) Ready() bool { return c.background != nil }

// Export renders the selection crop: background, then the scene scaled by
// the display→capture factor, then the rounded-corner clip.
func (c *Compositor) Export(sel selection.Rect, sc *scene.Scene, opts Options) (*image.RGBA, error) {
	if c.background == nil {
		return nil, ErrBackgroundNotReady
	}
	crop := c.transform.RectToCapture(sel.Bounds())
	if crop.Empty() {
		return nil, fmt.Errorf("%w: empty selection %+v", ErrComposite, sel)
	}
	w := int(crop.Width + 0.5)
	h := int(crop.Height + 0.5)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: degenerate crop %dx%d", ErrComposite, w, h)
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	src := image.Rect(int(crop.Left+0.5), int(crop.Top+0.5), int(crop.Left+0.5)+w, int(crop.Top+0.5)+h)
	if !src.Overlaps(c.background.Bounds()) {
		return nil, fmt.Errorf("%w: selection outside capture %v", ErrComposite, c.background.Bounds())
	}
	xdraw.Copy(out, image.Point{}, c.background, src, xdraw.Src, nil)

	sc.Draw(out, scene.DrawTransform{
		OffsetX: sel.Left,
		OffsetY: sel.Top,
		ScaleX:  c.transform.ScaleX,
		ScaleY:  c.transform.ScaleY,
	})

	if sel.Radius > 0 {
		out = render.ApplyRoundedClip(out, sel.Radius*(c.transform.ScaleX+c.transform.ScaleY)/2)
	}
	if opts.Shadow {
		out = WithShadow(out)
	}
	return out, nil
}

// WithShadow applies the drop-shadow styling used by the shot command.
func WithShadow(img *image.RGBA) *image.RGBA {
	shadowed, _ := render.Shadow(img, render.DefaultShadowOptions())
	return shadowed
}
