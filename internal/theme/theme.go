// Package theme holds the color palette for the capture overlay.
package theme

import (
	"image/color"
)

// Theme defines the colors the overlay draws with.
type Theme struct {
	Name string

	// Dim is the backdrop wash outside the selection. Its alpha is the
	// dim opacity.
	Dim color.RGBA

	// Selection chrome.
	Border     color.RGBA // dashed selection border
	HandleFill color.RGBA // square resize handles
	RadiusFill color.RGBA // round radius handles
	Accent     color.RGBA // selected-object marker and handle outline
}

// Default returns the hardcoded default theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:       "Default",
		Dim:        color.RGBA{A: 140},
		Border:     color.RGBA{255, 255, 255, 255},
		HandleFill: color.RGBA{255, 255, 255, 255},
		RadiusFill: color.RGBA{80, 160, 255, 255},
		Accent:     color.RGBA{80, 160, 255, 255},
	}
}
