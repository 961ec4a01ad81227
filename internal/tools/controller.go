package tools

import (
	"fmt"

	"github.com/example/snipmark/internal/scene"
)

// Controller owns the single active tool. While a tool is active, pointer
// events go to it and object hit-testing is disabled so drawing never
// grabs an existing object. Finalized objects are added to the scene and
// reported through the finalize hook so the session can pre-select them.
type Controller struct {
	scene      *scene.Scene
	params     *Parameters
	active     Tool
	onFinalize func(id int)
}

// NewController returns a controller drawing into s with parameters p.
func NewController(s *scene.Scene, p *Parameters) *Controller {
	return &Controller{scene: s, params: p}
}

// SetOnFinalize installs the hook called with each finalized object's ID.
func (c *Controller) SetOnFinalize(fn func(id int)) { c.onFinalize = fn }

// Params returns the controller's parameter set.
func (c *Controller) Params() *Parameters { return c.params }

// Activate switches to the named tool, finalizing anything the previous
// tool had in progress.
func (c *Controller) Activate(name Name) error {
	c.Deactivate()
	switch name {
	case Brush:
		c.active = &brushTool{params: c.params, nextID: c.scene.NextID}
	case Rectangle, Circle, Arrow, ArrowShape:
		c.active = &shapeTool{name: name, params: c.params, nextID: c.scene.NextID}
	case TextTool:
		c.active = &textTool{params: c.params, nextID: c.scene.NextID}
	default:
		return fmt.Errorf("tools: unknown tool %q", name)
	}
	return nil
}

// Deactivate finalizes any in-progress gesture and clears the active tool,
// restoring normal object selectability.
func (c *Controller) Deactivate() {
	if c.active == nil {
		return
	}
	if obj, ok := c.active.Finish(); ok {
		c.finalize(obj)
	}
	c.active = nil
}

// Active returns the active tool name, or "" when none.
func (c *Controller) Active() Name {
	if c.active == nil {
		return ""
	}
	return c.active.Name()
}

// HitTestEnabled reports whether existing objects may be picked. Picking
// is off while a tool is active.
func (c *Controller) HitTestEnabled() bool { return c.active == nil }

// SetParameter writes a value into the active tool's namespace. With no
// active tool the value goes to the common namespace.
func (c *Controller) SetParameter(name string, value any) {
	if c.active == nil {
		c.params.SetCommon(name, value)
		return
	}
	c.params.Set(c.active.Name(), name, value)
}

// PointerDown forwards the event to the active tool. It reports whether a
// tool consumed it.
func (c *Controller) PointerDown(x, y float64) bool {
	if c.active == nil {
		return false
	}
	c.active.PointerDown(x, y)
	// A click while typing finalizes the previous text label.
	if tt, ok := c.active.(*textTool); ok {
		if obj, done := tt.PointerUp(x, y); done {
			c.finalize(obj)
		}
	}
	return true
}

// PointerMove forwards the event to the active tool.
func (c *Controller) PointerMove(x, y float64) bool {
	if c.active == nil {
		return false
	}
	c.active.PointerMove(x, y)
	return true
}

// PointerUp ends the gesture: a kept object is added to the scene with one
// history entry and reported through the finalize hook.
func (c *Controller) PointerUp(x, y float64) bool {
	if c.active == nil {
		return false
	}
	if _, ok := c.active.(*textTool); ok {
		return true // text finalizes on the next click or deactivation
	}
	if obj, ok := c.active.PointerUp(x, y); ok {
		c.finalize(obj)
	}
	return true
}

// Rune feeds a typed character to the text tool.
func (c *Controller) Rune(r rune) bool {
	tt, ok := c.active.(*textTool)
	if !ok {
		return false
	}
	tt.Rune(r)
	return true
}

// Backspace removes the last typed character from the text tool.
func (c *Controller) Backspace() bool {
	tt, ok := c.active.(*textTool)
	if !ok {
		return false
	}
	tt.Backspace()
	return true
}

// Provisional returns the active tool's in-progress object for overlay
// drawing, or nil.
func (c *Controller) Provisional() scene.Object {
	if c.active == nil {
		return nil
	}
	return c.active.Provisional()
}

func (c *Controller) finalize(obj scene.Object) {
	c.scene.Add(obj, scene.ChangeDiscrete)
	if c.onFinalize != nil {
		c.onFinalize(obj.ID())
	}
}
