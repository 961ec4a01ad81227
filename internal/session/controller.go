// Package session owns one capture session: it wires pointer and key
// input to the selection engine, tool controller, scene and history, and
// drives the select → annotate → export sequence against the capture
// backend and clipboard collaborators.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"

	"github.com/example/snipmark/internal/export"
	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/history"
	"github.com/example/snipmark/internal/ocr"
	"github.com/example/snipmark/internal/scene"
	"github.com/example/snipmark/internal/selection"
	"github.com/example/snipmark/internal/tools"
)

// Backend is the capture window collaborator.
type Backend interface {
	HideCaptureWindow()
}

// ClipboardWriter receives the exported artifact.
type ClipboardWriter interface {
	WriteImage(img image.Image) error
}

// Notifier surfaces user-visible outcomes.
type Notifier interface {
	Copy(detail string)
	Failure(detail string)
}

// Key is a session-level key event. The overlay maps platform key codes
// onto these.
type Key int

const (
	KeyEscape Key = iota
	KeyEnter
	KeyUndo
	KeyRedo
	KeyDelete
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// HistoryState is the undo/redo availability for toolbar rendering.
type HistoryState struct {
	CanUndo bool
	CanRedo bool
}

// Controller is the top-level orchestrator for one capture session. It is
// single-threaded: the overlay event loop is the only caller.
type Controller struct {
	layout     *geometry.Layout
	engine     *selection.Engine
	scene      *scene.Scene
	params     *tools.Parameters
	tools      *tools.Controller
	log        *history.Log
	recorder   *history.Recorder
	compositor *export.Compositor

	backend    Backend
	clipboard  ClipboardWriter
	notifier   Notifier
	recognizer ocr.Recognizer
	exportOpts export.Options

	selectedID int
	dragging   bool
	dragX      float64
	dragY      float64

	// scrollingCapture exempts the session from focus-loss cancellation
	// while a scrolling capture legitimately obscures the window.
	scrollingCapture bool

	onRedraw func()
	onDone   func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithBackend sets the capture window collaborator.
func WithBackend(b Backend) Option { return func(c *Controller) { c.backend = b } }

// WithClipboard sets the clipboard collaborator.
func WithClipboard(w ClipboardWriter) Option { return func(c *Controller) { c.clipboard = w } }

// WithNotifier sets the notification collaborator.
func WithNotifier(n Notifier) Option { return func(c *Controller) { c.notifier = n } }

// WithRecognizer sets the OCR collaborator.
func WithRecognizer(r ocr.Recognizer) Option { return func(c *Controller) { c.recognizer = r } }

// WithExportOptions sets export styling such as the drop shadow.
func WithExportOptions(opts export.Options) Option {
	return func(c *Controller) { c.exportOpts = opts }
}

// WithHistoryLimit bounds the undo log.
func WithHistoryLimit(limit int) Option {
	return func(c *Controller) { c.log = history.NewLog(limit) }
}

// New builds a session over the given monitor layout. Tool parameters are
// freshly seeded so nothing leaks from an earlier session.
func New(layout *geometry.Layout, opts ...Option) *Controller {
	c := &Controller{
		layout:     layout,
		engine:     selection.NewEngine(layout),
		scene:      scene.New(),
		params:     tools.NewParameters(),
		compositor: export.NewCompositor(),
		log:        history.NewLog(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tools = tools.NewController(c.scene, c.params)
	c.tools.SetOnFinalize(func(id int) { c.selectedID = id })
	c.recorder = history.NewRecorder(c.log, c.scene)
	c.scene.SetOnChange(c.recorder.Record)
	return c
}

// SetOnRedraw installs the hook called after any state change that needs a
// repaint.
func (c *Controller) SetOnRedraw(fn func()) { c.onRedraw = fn }

// SetOnDone installs the hook called when the session ends.
func (c *Controller) SetOnDone(fn func()) { c.onDone = fn }

// SetBackend installs the capture window collaborator after construction,
// for backends that need the controller first.
func (c *Controller) SetBackend(b Backend) { c.backend = b }

func (c *Controller) redraw() {
	if c.onRedraw != nil {
		c.onRedraw()
	}
}

// SetBackground installs the capture buffer once it arrives from the
// backend, with the display→capture transform for this session.
func (c *Controller) SetBackground(img *image.RGBA, tr geometry.Transform) {
	c.compositor.SetBackground(img, tr)
	c.redraw()
}

// Engine exposes the selection engine for overlay drawing.
func (c *Controller) Engine() *selection.Engine { return c.engine }

// Scene exposes the annotation scene for overlay drawing.
func (c *Controller) Scene() *scene.Scene { return c.scene }

// Tools exposes the tool controller for toolbar wiring.
func (c *Controller) Tools() *tools.Controller { return c.tools }

// Selection returns the committed selection, if any.
func (c *Controller) Selection() (selection.Rect, bool) { return c.engine.Selection() }

// BorderRadius returns the selection's corner radius.
func (c *Controller) BorderRadius() float64 { return c.engine.BorderRadius() }

// SelectedObject returns the pre-selected annotation, or nil.
func (c *Controller) SelectedObject() scene.Object {
	if c.selectedID == 0 {
		return nil
	}
	return c.scene.Get(c.selectedID)
}

// HistoryState reports undo/redo availability.
func (c *Controller) HistoryState() HistoryState {
	return HistoryState{CanUndo: c.recorder.CanUndo(), CanRedo: c.recorder.CanRedo()}
}

// SetScrollingCapture marks a scrolling capture in progress, exempting the
// session from focus-loss cancellation.
func (c *Controller) SetScrollingCapture(active bool) { c.scrollingCapture = active }

// PointerDown routes a press: to the active tool, else to a hit annotation
// object, else to the selection engine.
func (c *Controller) PointerDown(x, y float64) {
	defer c.redraw()
	if c.tools.PointerDown(x, y) {
		return
	}
	target, _, _ := c.engine.HitTest(x, y)
	// Selection handles win over annotations so the rectangle stays
	// manipulable under a crowded scene.
	if target == selection.HitRadius || target == selection.HitHandle {
		c.engine.PointerDown(x, y)
		return
	}
	if obj := c.scene.ObjectAt(x, y); obj != nil {
		c.selectedID = obj.ID()
		c.dragging = true
		c.dragX, c.dragY = x, y
		return
	}
	c.selectedID = 0
	c.engine.PointerDown(x, y)
}

// PointerMove routes a drag in delivery order.
func (c *Controller) PointerMove(x, y float64) {
	defer c.redraw()
	if c.tools.PointerMove(x, y) {
		return
	}
	if c.dragging {
		dx, dy := x-c.dragX, y-c.dragY
		c.dragX, c.dragY = x, y
		c.scene.Modify(c.selectedID, scene.ChangeContinuous, func(o scene.Object) {
			o.Translate(dx, dy)
		})
		return
	}
	c.engine.PointerMove(x, y)
}

// PointerUp ends the gesture. An object drag commits its pending history
// entry immediately.
func (c *Controller) PointerUp(x, y float64) {
	defer c.redraw()
	if c.tools.PointerUp(x, y) {
		return
	}
	if c.dragging {
		c.dragging = false
		c.recorder.Flush()
		return
	}
	c.engine.PointerUp()
}

// Rune feeds typed text to the text tool.
func (c *Controller) Rune(r rune) {
	if c.tools.Rune(r) {
		c.redraw()
	}
}

// KeyPress handles session shortcuts.
func (c *Controller) KeyPress(k Key) {
	defer c.redraw()
	switch k {
	case KeyEscape:
		c.cancel()
	case KeyEnter:
		if err := c.Export(); err != nil {
			log.Printf("session: export: %v", err)
		}
	case KeyUndo:
		if err := c.recorder.Undo(); err != nil && !errors.Is(err, history.ErrNothingToUndo) {
			log.Printf("session: undo: %v", err)
		}
		c.selectedID = 0
	case KeyRedo:
		if err := c.recorder.Redo(); err != nil && !errors.Is(err, history.ErrNothingToRedo) {
			log.Printf("session: redo: %v", err)
		}
		c.selectedID = 0
	case KeyDelete:
		if c.selectedID != 0 {
			c.scene.Remove(c.selectedID)
			c.selectedID = 0
		}
	case KeyBackspace:
		c.tools.Backspace()
	case KeyLeft:
		c.nudge(-1, 0)
	case KeyRight:
		c.nudge(1, 0)
	case KeyUp:
		c.nudge(0, -1)
	case KeyDown:
		c.nudge(0, 1)
	}
}

func (c *Controller) nudge(dx, dy float64) {
	if c.selectedID != 0 {
		c.scene.Modify(c.selectedID, scene.ChangeContinuous, func(o scene.Object) {
			o.Translate(dx, dy)
		})
		return
	}
	c.engine.Nudge(dx, dy)
}

// FocusLost cancels the in-progress interaction unless a scrolling capture
// is running.
func (c *Controller) FocusLost() {
	if c.scrollingCapture {
		return
	}
	c.cancel()
	c.redraw()
}

// cancel resets the selection interaction and deactivates any tool.
// Committed scene history survives.
func (c *Controller) cancel() {
	c.dragging = false
	c.selectedID = 0
	if c.tools.Active() != "" {
		c.tools.Deactivate()
		return
	}
	if c.engine.State() != selection.StateIdle {
		c.engine.Cancel()
		return
	}
	if _, ok := c.engine.Selection(); ok {
		c.engine.Clear()
		return
	}
	if c.onDone != nil {
		c.onDone()
	}
}

// Export composites the selection crop, writes it to the clipboard and
// hides the capture window. Failures preserve the selection and scene so
// the user can retry.
func (c *Controller) Export() error {
	c.recorder.Flush()
	sel, ok := c.engine.Selection()
	if !ok {
		return errors.New("session: no selection to export")
	}
	c.tools.Deactivate()
	img, err := c.compositor.Export(sel, c.scene, c.exportOpts)
	if err != nil {
		if c.notifier != nil {
			c.notifier.Failure("export failed")
		}
		return err
	}
	if c.clipboard != nil {
		if err := c.clipboard.WriteImage(img); err != nil {
			if c.notifier != nil {
				c.notifier.Failure("clipboard write failed")
			}
			return fmt.Errorf("session: clipboard: %w", err)
		}
	}
	if c.notifier != nil {
		c.notifier.Copy(fmt.Sprintf("%dx%d selection", img.Bounds().Dx(), img.Bounds().Dy()))
	}
	if c.backend != nil {
		c.backend.HideCaptureWindow()
	}
	if c.onDone != nil {
		c.onDone()
	}
	return nil
}

// RecognizeSelection runs OCR over the current selection crop.
func (c *Controller) RecognizeSelection(ctx context.Context) (ocr.Result, error) {
	if c.recognizer == nil {
		return ocr.Result{}, errors.New("session: no recognizer configured")
	}
	c.recorder.Flush()
	sel, ok := c.engine.Selection()
	if !ok {
		return ocr.Result{}, errors.New("session: no selection to recognize")
	}
	img, err := c.compositor.Export(sel, c.scene, export.Options{})
	if err != nil {
		return ocr.Result{}, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ocr.Result{}, fmt.Errorf("session: encode region: %w", err)
	}
	return c.recognizer.RecognizeRegion(ctx, buf.Bytes())
}

// Reset discards all per-session state ahead of a new capture.
func (c *Controller) Reset() {
	c.tools.Deactivate()
	c.recorder.Flush()
	c.engine.Clear()
	c.scene.Restore([]byte("[]"))
	c.log.Reset()
	if snapshot, err := c.scene.Serialize(); err == nil {
		c.log.Push(snapshot)
	}
	c.params.Reset()
	c.selectedID = 0
	c.dragging = false
	c.scrollingCapture = false
	c.redraw()
}
