package capture

import (
	"fmt"
	"image"
	"image/draw"
)

// CaptureOptions tune what the backend embeds in the capture.
type CaptureOptions struct {
	IncludeDecorations bool
	IncludeCursor      bool
}

// Test seams for the platform capture paths.
var (
	portalScreenshotFn   = portalScreenshot
	pipewireScreenshotFn = pipewireScreenshot
)

// CaptureScreenshot captures the desktop. When a display selector is provided it will
// crop the result to the matching monitor.
func CaptureScreenshot(display string, opts CaptureOptions) (*image.RGBA, error) {
	img, err := desktopScreenshot(opts)
	if err != nil {
		return nil, err
	}
	if display == "" {
		return img, nil
	}
	monitors, err := ListMonitors()
	if err != nil {
		return nil, err
	}
	monitor, err := FindMonitor(monitors, display)
	if err != nil {
		return nil, err
	}
	return cropToRect(img, monitor.Rect)
}

// CaptureWindowDetailed captures the window that matches the selector and returns
// both the image and the resolved window metadata. It prefers a direct X11 window
// capture and falls back to cropping a desktop screenshot if the compositor
// refuses to provide the pixels.
func CaptureWindowDetailed(selector string, opts CaptureOptions) (*image.RGBA, WindowInfo, error) {
	windows, err := ListWindows()
	if err != nil {
		return nil, WindowInfo{}, fmt.Errorf("capture window %q: %w", selector, err)
	}
	info, err := SelectWindow(selector, windows)
	if err != nil {
		return nil, WindowInfo{}, fmt.Errorf("capture window %q: %w", selector, err)
	}
	if info.Rect.Empty() {
		return nil, WindowInfo{}, fmt.Errorf("capture window %q: window has empty geometry", selector)
	}
	img, directErr := captureWindowImage(info.ID)
	if directErr == nil {
		return img, info, nil
	}
	shot, err := desktopScreenshot(opts)
	if err != nil {
		return nil, WindowInfo{}, fmt.Errorf("window capture: %v; fallback screenshot failed: %w", directErr, err)
	}
	img, err = cropToRect(shot, info.Rect)
	if err != nil {
		return nil, WindowInfo{}, fmt.Errorf("window capture: %v; fallback crop failed: %w", directErr, err)
	}
	return img, info, nil
}

// CaptureWindow captures a single window specified by the selector string.
func CaptureWindow(selector string, opts CaptureOptions) (*image.RGBA, error) {
	img, _, err := CaptureWindowDetailed(selector, opts)
	return img, err
}

// CaptureRegion uses the portal to allow the user to select a region
// interactively. Interactive capture never falls back to pipewire since the
// fallback cannot present the portal's region picker.
func CaptureRegion(opts CaptureOptions) (*image.RGBA, error) {
	return portalScreenshotFn(true, opts)
}

// CaptureRegionRect captures a specific rectangle in global screen coordinates.
func CaptureRegionRect(rect image.Rectangle, opts CaptureOptions) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("region is empty")
	}
	shot, err := desktopScreenshot(opts)
	if err != nil {
		return nil, err
	}
	return cropToRect(shot, rect)
}

// desktopScreenshot prefers the portal and falls back to pipewire when the
// portal is unavailable on this session.
func desktopScreenshot(opts CaptureOptions) (*image.RGBA, error) {
	img, err := portalScreenshotFn(false, opts)
	if err == nil {
		return img, nil
	}
	if !isPortalUnsupportedError(err) {
		return nil, err
	}
	img, pipewireErr := pipewireScreenshotFn(opts)
	if pipewireErr != nil {
		return nil, fmt.Errorf("portal screenshot: %v; pipewire fallback failed: %w", err, pipewireErr)
	}
	return img, nil
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
