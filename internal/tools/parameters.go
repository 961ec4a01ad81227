// Package tools routes pointer input to exactly one active annotation tool
// and mediates tool parameters against the scene.
package tools

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Name identifies an annotation tool.
type Name string

const (
	Brush      Name = "brush"
	Rectangle  Name = "rectangle"
	Circle     Name = "circle"
	ArrowShape Name = "arrowshape"
	Arrow      Name = "arrow"
	TextTool   Name = "text"
)

// Parameter names.
const (
	ParamColor    = "color"
	ParamOpacity  = "opacity"
	ParamWidth    = "width"
	ParamFill     = "fill"
	ParamFontSize = "fontsize"
)

const commonNamespace = "common"

// shapeNamespace is shared by the rectangle, circle and arrow-shape tools
// so switching between them keeps the same styling.
const shapeNamespace = "shape"

func namespaceFor(tool Name) string {
	switch tool {
	case Rectangle, Circle, ArrowShape:
		return shapeNamespace
	default:
		return string(tool)
	}
}

// Parameters maps tool namespaces to parameter values, with a common
// namespace consulted when a tool has no override. Values are re-seeded at
// the start of every capture session so nothing leaks between sessions.
type Parameters struct {
	values map[string]map[string]any
}

// NewParameters returns a parameter set seeded with defaults.
func NewParameters() *Parameters {
	p := &Parameters{}
	p.Reset()
	return p
}

// Reset restores every namespace to its default values.
func (p *Parameters) Reset() {
	p.values = map[string]map[string]any{
		commonNamespace: {
			ParamColor:   colornames.Red,
			ParamOpacity: 1.0,
		},
		string(Brush): {
			ParamWidth: 3.0,
		},
		shapeNamespace: {
			ParamWidth: 2.0,
			ParamFill:  false,
		},
		string(Arrow): {
			ParamWidth: 2.0,
		},
		string(TextTool): {
			ParamFontSize: 16.0,
		},
	}
}

// Set records a value in the tool's namespace.
func (p *Parameters) Set(tool Name, name string, value any) {
	ns := namespaceFor(tool)
	m := p.values[ns]
	if m == nil {
		m = map[string]any{}
		p.values[ns] = m
	}
	m[name] = value
}

// SetCommon records a value shared by all tools.
func (p *Parameters) SetCommon(name string, value any) {
	p.values[commonNamespace][name] = value
}

// Get looks a parameter up in the tool's namespace, falling back to the
// common namespace.
func (p *Parameters) Get(tool Name, name string) (any, bool) {
	if v, ok := p.values[namespaceFor(tool)][name]; ok {
		return v, true
	}
	v, ok := p.values[commonNamespace][name]
	return v, ok
}

// Color resolves the tool's stroke color with the common opacity applied.
func (p *Parameters) Color(tool Name) color.RGBA {
	c := colornames.Red
	if v, ok := p.Get(tool, ParamColor); ok {
		if rgba, ok := v.(color.RGBA); ok {
			c = rgba
		}
	}
	if v, ok := p.Get(tool, ParamOpacity); ok {
		if op, ok := v.(float64); ok && op >= 0 && op < 1 {
			c.A = uint8(float64(c.A) * op)
		}
	}
	return c
}

// Width resolves the tool's stroke width.
func (p *Parameters) Width(tool Name) float64 {
	if v, ok := p.Get(tool, ParamWidth); ok {
		if w, ok := v.(float64); ok && w > 0 {
			return w
		}
	}
	return 1
}

// FontSize resolves the text tool's font size.
func (p *Parameters) FontSize(tool Name) float64 {
	if v, ok := p.Get(tool, ParamFontSize); ok {
		if s, ok := v.(float64); ok && s > 0 {
			return s
		}
	}
	return 16
}

// Fill resolves the tool's fill color, nil when filling is off.
func (p *Parameters) Fill(tool Name) *color.RGBA {
	v, ok := p.Get(tool, ParamFill)
	if !ok {
		return nil
	}
	switch f := v.(type) {
	case bool:
		if !f {
			return nil
		}
		c := p.Color(tool)
		return &c
	case color.RGBA:
		return &f
	}
	return nil
}
