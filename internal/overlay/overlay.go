// Package overlay runs the full-screen capture window: it paints the
// dimmed capture with the selection cut out, the resize and radius
// handles, and the annotation scene, and routes mouse and key events into
// the session controller.
package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/mask"
	"github.com/example/snipmark/internal/render"
	"github.com/example/snipmark/internal/scene"
	"github.com/example/snipmark/internal/selection"
	"github.com/example/snipmark/internal/session"
	"github.com/example/snipmark/internal/theme"
	"github.com/example/snipmark/internal/tools"
)

const handleSize = 8

// Window is one overlay session over a capture.
type Window struct {
	sess    *session.Controller
	capture *image.RGBA
	mask    *mask.Renderer
	colors  *theme.Theme

	updateCh chan struct{}
	closeFn  func()
}

// Option modifies a Window during creation.
type Option func(*Window)

// WithTheme sets the overlay color palette.
func WithTheme(t *theme.Theme) Option {
	return func(o *Window) {
		if t != nil {
			c := *t
			o.colors = &c
		}
	}
}

// WithDimOpacity overrides the backdrop dim alpha of the active theme.
func WithDimOpacity(alpha uint8) Option {
	return func(o *Window) { o.colors.Dim.A = alpha }
}

// New creates an overlay for the capture driven by the session.
func New(sess *session.Controller, capture *image.RGBA, opts ...Option) *Window {
	b := capture.Bounds()
	o := &Window{
		sess:     sess,
		capture:  capture,
		mask:     mask.NewRenderer(float64(b.Dx()), float64(b.Dy())),
		colors:   theme.Default(),
		updateCh: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(o)
	}
	sess.SetOnRedraw(o.requestPaint)
	sess.SetBackend(o)
	return o
}

// HideCaptureWindow closes the overlay window. It implements the session
// backend so an export can dismiss the capture surface.
func (o *Window) HideCaptureWindow() {
	if o.closeFn != nil {
		o.closeFn()
	}
}

func (o *Window) requestPaint() {
	select {
	case o.updateCh <- struct{}{}:
	default:
	}
}

// Run executes the overlay loop using shiny's driver.
func (o *Window) Run() { driver.Main(o.main) }

func (o *Window) main(s screen.Screen) {
	b := o.capture.Bounds()
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  b.Dx(),
		Height: b.Dy(),
		Title:  "snipmark",
	})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	buf, err := s.NewBuffer(image.Pt(b.Dx(), b.Dy()))
	if err != nil {
		log.Fatalf("new buffer: %v", err)
	}
	defer buf.Release()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-o.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	closed := false
	o.closeFn = func() {
		if !closed {
			closed = true
			w.Send(lifecycle.Event{To: lifecycle.StageDead})
		}
	}
	o.sess.SetOnDone(o.closeFn)

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
			if e.From == lifecycle.StageFocused && e.To < lifecycle.StageFocused {
				o.sess.FocusLost()
			}

		case size.Event:
			o.mask.Resize(float64(e.WidthPx), float64(e.HeightPx))
			w.Send(paint.Event{})

		case paint.Event:
			o.drawFrame(buf.RGBA())
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()

		case mouse.Event:
			x, y := float64(e.X), float64(e.Y)
			switch {
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				o.sess.PointerDown(x, y)
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
				o.sess.PointerUp(x, y)
			case e.Direction == mouse.DirNone:
				o.sess.PointerMove(x, y)
			}

		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			o.handleKey(e)
		}
	}
}

func (o *Window) handleKey(e key.Event) {
	switch e.Code {
	case key.CodeEscape:
		o.sess.KeyPress(session.KeyEscape)
		return
	case key.CodeReturnEnter:
		o.sess.KeyPress(session.KeyEnter)
		return
	case key.CodeDeleteBackspace:
		o.sess.KeyPress(session.KeyBackspace)
		return
	case key.CodeDeleteForward:
		o.sess.KeyPress(session.KeyDelete)
		return
	case key.CodeLeftArrow:
		o.sess.KeyPress(session.KeyLeft)
		return
	case key.CodeRightArrow:
		o.sess.KeyPress(session.KeyRight)
		return
	case key.CodeUpArrow:
		o.sess.KeyPress(session.KeyUp)
		return
	case key.CodeDownArrow:
		o.sess.KeyPress(session.KeyDown)
		return
	}
	if e.Modifiers&key.ModControl != 0 {
		switch unicode.ToLower(e.Rune) {
		case 'z':
			o.sess.KeyPress(session.KeyUndo)
		case 'y':
			o.sess.KeyPress(session.KeyRedo)
		}
		return
	}
	// Typing wins over tool shortcuts while a text label is open.
	if o.sess.Tools().Active() == tools.TextTool {
		if e.Rune > 0 {
			o.sess.Rune(e.Rune)
		}
		return
	}
	switch unicode.ToLower(e.Rune) {
	case 'b':
		o.activateTool(tools.Brush)
	case 'x':
		o.activateTool(tools.Rectangle)
	case 'o':
		o.activateTool(tools.Circle)
	case 'a':
		o.activateTool(tools.Arrow)
	case 't':
		o.activateTool(tools.TextTool)
	}
}

func (o *Window) activateTool(name tools.Name) {
	if o.sess.Tools().Active() == name {
		o.sess.Tools().Deactivate()
	} else if err := o.sess.Tools().Activate(name); err != nil {
		log.Printf("overlay: %v", err)
	}
	o.requestPaint()
}

// drawFrame composes the full overlay frame into dst.
func (o *Window) drawFrame(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), o.capture, o.capture.Bounds().Min, draw.Src)

	sel, ok := o.sess.Selection()
	if !ok {
		o.dimAll(dst)
	} else {
		o.dimOutside(dst, sel)
		o.drawChrome(dst, sel)
	}

	o.sess.Scene().Draw(dst, scene.Identity())
	if prov := o.sess.Tools().Provisional(); prov != nil {
		prov.Draw(dst, scene.Identity())
	}
	if obj := o.sess.SelectedObject(); obj != nil {
		b := obj.Bounds()
		render.DashedRect(dst, image.Rect(int(b.Left)-2, int(b.Top)-2, int(b.Right())+2, int(b.Bottom())+2), 4, 1, o.colors.Accent, color.RGBA{A: 255})
	}
}

func (o *Window) dimAll(dst *image.RGBA) {
	b := dst.Bounds()
	ring := []image.Point{
		{b.Min.X, b.Min.Y}, {b.Max.X, b.Min.Y}, {b.Max.X, b.Max.Y}, {b.Min.X, b.Max.Y},
	}
	render.FillEvenOdd(dst, [][]image.Point{ring}, o.colors.Dim)
}

func (o *Window) dimOutside(dst *image.RGBA, sel selection.Rect) {
	region := o.mask.Region(sel)
	render.FillEvenOdd(dst, [][]image.Point{
		toImagePoints(region.Outer),
		toImagePoints(region.Inner),
	}, o.colors.Dim)
}

func (o *Window) drawChrome(dst *image.RGBA, sel selection.Rect) {
	b := sel.Bounds()
	r := image.Rect(int(b.Left), int(b.Top), int(b.Right()), int(b.Bottom()))
	render.DashedRect(dst, r, 6, 1, o.colors.Border, color.RGBA{A: 255})

	for _, p := range o.sess.Engine().HandlePositions() {
		half := handleSize / 2
		hr := image.Rect(int(p.X)-half, int(p.Y)-half, int(p.X)+half, int(p.Y)+half)
		render.Fill(dst, hr, o.colors.HandleFill)
		render.Outline(dst, hr, o.colors.Accent, 1)
	}
	for _, p := range o.sess.Engine().RadiusHandlePositions() {
		render.FilledEllipse(dst, int(p.X), int(p.Y), handleSize/2, handleSize/2, o.colors.RadiusFill)
	}
}

func toImagePoints(pts []geometry.Point) []image.Point {
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		out[i] = image.Pt(int(p.X+0.5), int(p.Y+0.5))
	}
	return out
}
