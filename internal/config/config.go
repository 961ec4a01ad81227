package config

import (
	"fmt"
	"image/color"
	"strings"
)

// Notify holds notification settings.
type Notify struct {
	Copy    bool
	Save    bool
	Failure bool
}

// Tools holds annotation tool defaults seeded into each session.
type Tools struct {
	Color    color.RGBA
	Width    float64
	FontSize float64
}

// Overlay holds capture window settings.
type Overlay struct {
	// DimOpacity is the backdrop dim alpha outside the selection.
	DimOpacity uint8
}

// Export holds export styling.
type Export struct {
	Shadow bool
}

// Config holds the application configuration.
type Config struct {
	SaveDir      string
	HistoryLimit int
	Notify       Notify
	Tools        Tools
	Overlay      Overlay
	Export       Export
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		HistoryLimit: 50,
		Notify: Notify{
			Copy:    false,
			Save:    true,
			Failure: true,
		},
		Tools: Tools{
			Color:    color.RGBA{R: 255, A: 255},
			Width:    3,
			FontSize: 16,
		},
		Overlay: Overlay{DimOpacity: 140},
		Export:  Export{Shadow: false},
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "failure = %v\n", c.Notify.Failure)
	sb.WriteString("\n")

	sb.WriteString("[tools]\n")
	fmt.Fprintf(&sb, "color = %s\n", toHex(c.Tools.Color))
	fmt.Fprintf(&sb, "width = %g\n", c.Tools.Width)
	fmt.Fprintf(&sb, "font_size = %g\n", c.Tools.FontSize)
	sb.WriteString("\n")

	sb.WriteString("[overlay]\n")
	fmt.Fprintf(&sb, "dim_opacity = %d\n", c.Overlay.DimOpacity)
	sb.WriteString("\n")

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "shadow = %v\n", c.Export.Shadow)
	sb.WriteString("\n")

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
