package session

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/example/snipmark/internal/export"
	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/selection"
	"github.com/example/snipmark/internal/tools"
)

type fakeBackend struct{ hidden int }

func (f *fakeBackend) HideCaptureWindow() { f.hidden++ }

type fakeClipboard struct {
	images []image.Image
	err    error
}

func (f *fakeClipboard) WriteImage(img image.Image) error {
	if f.err != nil {
		return f.err
	}
	f.images = append(f.images, img)
	return nil
}

type fakeNotifier struct {
	copies   []string
	failures []string
}

func (f *fakeNotifier) Copy(detail string)    { f.copies = append(f.copies, detail) }
func (f *fakeNotifier) Failure(detail string) { f.failures = append(f.failures, detail) }

func testLayout(t *testing.T) *geometry.Layout {
	t.Helper()
	layout, err := geometry.NewLayout([]geometry.Monitor{
		{X: 0, Y: 0, Width: 1920, Height: 1080, Primary: true},
	}, geometry.Rect{Width: 1920, Height: 1080})
	if err != nil {
		t.Fatal(err)
	}
	return layout
}

func background(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 40, G: 40, B: 40, A: 255})
		}
	}
	return img
}

func selectRegion(c *Controller, x0, y0, x1, y1 float64) {
	c.PointerDown(x0, y0)
	c.PointerMove(x1, y1)
	c.PointerUp(x1, y1)
}

func TestSelectThenExportToClipboard(t *testing.T) {
	backend := &fakeBackend{}
	clip := &fakeClipboard{}
	notes := &fakeNotifier{}
	c := New(testLayout(t), WithBackend(backend), WithClipboard(clip), WithNotifier(notes))
	c.SetBackground(background(1920, 1080), geometry.Transform{ScaleX: 1, ScaleY: 1})

	selectRegion(c, 100, 100, 400, 300)
	sel, ok := c.Selection()
	if !ok {
		t.Fatal("no selection after drag")
	}
	if sel.Left != 100 || sel.Top != 100 || sel.Width != 300 || sel.Height != 200 {
		t.Fatalf("selection = %+v, want {100 100 300 200}", sel)
	}

	c.KeyPress(KeyEnter)
	if len(clip.images) != 1 {
		t.Fatalf("clipboard received %d images, want 1", len(clip.images))
	}
	if b := clip.images[0].Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Errorf("exported size = %v, want 300x200", b)
	}
	if backend.hidden != 1 {
		t.Errorf("HideCaptureWindow called %d times, want 1", backend.hidden)
	}
	if len(notes.copies) != 1 {
		t.Errorf("copy notifications = %v, want one", notes.copies)
	}
}

func TestExportBeforeBackgroundPreservesSelection(t *testing.T) {
	notes := &fakeNotifier{}
	clip := &fakeClipboard{}
	c := New(testLayout(t), WithClipboard(clip), WithNotifier(notes))

	selectRegion(c, 50, 50, 250, 200)
	err := c.Export()
	if !errors.Is(err, export.ErrBackgroundNotReady) {
		t.Fatalf("Export() error = %v, want ErrBackgroundNotReady", err)
	}
	if _, ok := c.Selection(); !ok {
		t.Fatal("selection lost after failed export")
	}
	if len(notes.failures) != 1 {
		t.Errorf("failure notifications = %v, want one", notes.failures)
	}

	// The background arrives; the same selection exports cleanly.
	c.SetBackground(background(1920, 1080), geometry.Transform{ScaleX: 1, ScaleY: 1})
	if err := c.Export(); err != nil {
		t.Fatalf("retry Export() error = %v", err)
	}
	if len(clip.images) != 1 {
		t.Errorf("clipboard received %d images, want 1", len(clip.images))
	}
}

func TestClipboardFailurePreservesState(t *testing.T) {
	notes := &fakeNotifier{}
	clip := &fakeClipboard{err: errors.New("no display")}
	backend := &fakeBackend{}
	c := New(testLayout(t), WithBackend(backend), WithClipboard(clip), WithNotifier(notes))
	c.SetBackground(background(1920, 1080), geometry.Transform{ScaleX: 1, ScaleY: 1})

	selectRegion(c, 100, 100, 300, 300)
	c.Tools().Activate(tools.Brush)
	c.PointerDown(120, 120)
	c.PointerMove(150, 150)
	c.PointerUp(150, 150)
	c.Tools().Deactivate()

	if err := c.Export(); err == nil {
		t.Fatal("Export() = nil, want clipboard error")
	}
	if _, ok := c.Selection(); !ok {
		t.Error("selection lost after clipboard failure")
	}
	if c.Scene().Len() != 1 {
		t.Errorf("scene Len() = %d, want the annotation preserved", c.Scene().Len())
	}
	if backend.hidden != 0 {
		t.Error("window hidden despite the export failing")
	}
	if len(notes.failures) != 1 {
		t.Errorf("failure notifications = %v, want one", notes.failures)
	}
}

func TestEscapeCancelsInProgressSelection(t *testing.T) {
	c := New(testLayout(t))
	c.PointerDown(100, 100)
	c.PointerMove(200, 200)
	c.KeyPress(KeyEscape)
	if _, ok := c.Selection(); ok {
		t.Fatal("in-progress selection survived escape")
	}
	if c.Engine().State() != selection.StateIdle {
		t.Errorf("state = %v, want Idle", c.Engine().State())
	}
}

func TestEscapeDeactivatesToolKeepsHistory(t *testing.T) {
	c := New(testLayout(t))
	selectRegion(c, 100, 100, 400, 300)
	c.Tools().Activate(tools.Brush)
	c.PointerDown(120, 120)
	c.PointerMove(180, 160)
	c.PointerUp(180, 160)

	c.KeyPress(KeyEscape)
	if c.Tools().Active() != "" {
		t.Errorf("active tool = %q after escape, want none", c.Tools().Active())
	}
	if c.Scene().Len() != 1 {
		t.Errorf("scene Len() = %d, committed annotation must survive", c.Scene().Len())
	}
	if !c.HistoryState().CanUndo {
		t.Error("CanUndo = false, committed history must survive cancel")
	}
}

func TestFocusLossScrollingCaptureExemption(t *testing.T) {
	c := New(testLayout(t))
	selectRegion(c, 100, 100, 400, 300)

	c.SetScrollingCapture(true)
	c.FocusLost()
	if _, ok := c.Selection(); !ok {
		t.Fatal("selection lost despite the scrolling-capture exemption")
	}

	c.SetScrollingCapture(false)
	c.FocusLost()
	if _, ok := c.Selection(); ok {
		t.Fatal("selection survived focus loss")
	}
}

func TestUndoRedoKeys(t *testing.T) {
	c := New(testLayout(t))
	selectRegion(c, 100, 100, 400, 300)
	c.Tools().Activate(tools.Rectangle)
	c.PointerDown(120, 120)
	c.PointerMove(200, 180)
	c.PointerUp(200, 180)
	c.Tools().Deactivate()

	st := c.HistoryState()
	if !st.CanUndo || st.CanRedo {
		t.Fatalf("HistoryState = %+v, want undo only", st)
	}
	c.KeyPress(KeyUndo)
	if c.Scene().Len() != 0 {
		t.Errorf("scene Len() = %d after undo, want 0", c.Scene().Len())
	}
	st = c.HistoryState()
	if st.CanUndo || !st.CanRedo {
		t.Fatalf("HistoryState = %+v, want redo only", st)
	}
	c.KeyPress(KeyRedo)
	if c.Scene().Len() != 1 {
		t.Errorf("scene Len() = %d after redo, want 1", c.Scene().Len())
	}
}

func TestArrowKeysNudgeSelection(t *testing.T) {
	c := New(testLayout(t))
	selectRegion(c, 100, 100, 400, 300)
	c.KeyPress(KeyRight)
	c.KeyPress(KeyRight)
	c.KeyPress(KeyDown)
	sel, _ := c.Selection()
	if sel.Left != 102 || sel.Top != 101 {
		t.Errorf("selection origin = (%v,%v), want (102,101)", sel.Left, sel.Top)
	}
}

func TestDragAnnotationCommitsOneEntry(t *testing.T) {
	c := New(testLayout(t))
	selectRegion(c, 50, 50, 500, 400)
	c.Tools().Activate(tools.Rectangle)
	c.PointerDown(100, 100)
	c.PointerMove(200, 180)
	c.PointerUp(200, 180)
	c.Tools().Deactivate()

	obj := c.SelectedObject()
	if obj == nil {
		t.Fatal("finalized object not pre-selected")
	}

	// Drag the annotation by its edge; the move coalesces into one
	// history entry committed on pointer-up.
	c.PointerDown(101, 140)
	for i := 1; i <= 20; i++ {
		c.PointerMove(101+float64(i), 140)
	}
	c.PointerUp(121, 140)
	if got := obj.Bounds().Left; got != 120 {
		t.Errorf("dragged left = %v, want 120", got)
	}

	c.KeyPress(KeyUndo)
	if got := c.Scene().Objects()[0].Bounds().Left; got != 100 {
		t.Errorf("left after undo = %v, want 100", got)
	}
}

func TestDeleteSelectedObject(t *testing.T) {
	c := New(testLayout(t))
	selectRegion(c, 50, 50, 500, 400)
	c.Tools().Activate(tools.Circle)
	c.PointerDown(100, 100)
	c.PointerMove(200, 200)
	c.PointerUp(200, 200)
	c.Tools().Deactivate()

	c.KeyPress(KeyDelete)
	if c.Scene().Len() != 0 {
		t.Errorf("scene Len() = %d after delete, want 0", c.Scene().Len())
	}
	c.KeyPress(KeyUndo)
	if c.Scene().Len() != 1 {
		t.Errorf("scene Len() = %d after undo of delete, want 1", c.Scene().Len())
	}
}

func TestResetReseedsParameters(t *testing.T) {
	c := New(testLayout(t))
	c.Tools().Activate(tools.Brush)
	c.Tools().SetParameter(tools.ParamWidth, 9.0)
	c.Tools().Deactivate()
	selectRegion(c, 50, 50, 300, 300)

	c.Reset()
	if _, ok := c.Selection(); ok {
		t.Error("selection survived Reset()")
	}
	if got := c.Tools().Params().Width(tools.Brush); got != 3 {
		t.Errorf("brush width after Reset() = %v, want the default 3", got)
	}
	if st := c.HistoryState(); st.CanUndo || st.CanRedo {
		t.Errorf("HistoryState after Reset() = %+v, want empty", st)
	}
}
