package capture

import (
	"image"

	"github.com/example/snipmark/internal/geometry"
)

// Monitors converts the platform monitor list into geometry monitors.
func Monitors() ([]geometry.Monitor, error) {
	infos, err := ListMonitors()
	if err != nil {
		return nil, err
	}
	monitors := make([]geometry.Monitor, 0, len(infos))
	for _, info := range infos {
		monitors = append(monitors, geometry.Monitor{
			X:       float64(info.Rect.Min.X),
			Y:       float64(info.Rect.Min.Y),
			Width:   float64(info.Rect.Dx()),
			Height:  float64(info.Rect.Dy()),
			Primary: info.Primary,
		})
	}
	return monitors, nil
}

// Layout builds the session monitor layout. When enumeration fails the
// layout falls back to a single monitor the size of the capture and the
// enumeration error is returned alongside the usable layout.
func Layout(captureBounds image.Rectangle) (*geometry.Layout, error) {
	fallback := geometry.Rect{
		Width:  float64(captureBounds.Dx()),
		Height: float64(captureBounds.Dy()),
	}
	monitors, err := Monitors()
	if err != nil {
		layout, _ := geometry.NewLayout(nil, fallback)
		return layout, err
	}
	return geometry.NewLayout(monitors, fallback)
}

// DisplayTransform derives the display→capture scale from the virtual
// desktop size and the capture buffer size. On unscaled displays this is
// the identity.
func DisplayTransform(layout *geometry.Layout, captureBounds image.Rectangle) geometry.Transform {
	vb := layout.Virtual()
	return geometry.NewTransform(
		vb.Width, vb.Height,
		float64(captureBounds.Dx()), float64(captureBounds.Dy()),
	)
}
