package render

import (
	"image"
	"image/color"
	"image/draw"
)

// RoundedMask builds an alpha mask for a rounded rectangle of the given size.
// Pixels inside the rounded boundary are fully opaque.
func RoundedMask(width, height int, radius float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	if radius < 0 {
		radius = 0
	}
	if max := float64(minInt(width, height)) / 2; radius > max {
		radius = max
	}
	r2 := radius * radius
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fx := float64(x) + 0.5
			fy := float64(y) + 0.5
			var cx, cy float64
			switch {
			case fx < radius && fy < radius:
				cx, cy = radius, radius
			case fx > float64(width)-radius && fy < radius:
				cx, cy = float64(width)-radius, radius
			case fx > float64(width)-radius && fy > float64(height)-radius:
				cx, cy = float64(width)-radius, float64(height)-radius
			case fx < radius && fy > float64(height)-radius:
				cx, cy = radius, float64(height)-radius
			default:
				mask.SetAlpha(x, y, color.Alpha{A: 255})
				continue
			}
			dx := fx - cx
			dy := fy - cy
			if dx*dx+dy*dy <= r2 {
				mask.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return mask
}

// ApplyRoundedClip returns a copy of img with everything outside the rounded
// rectangle boundary cleared to transparent.
func ApplyRoundedClip(img *image.RGBA, radius float64) *image.RGBA {
	b := img.Bounds()
	if radius <= 0 {
		return img
	}
	mask := RoundedMask(b.Dx(), b.Dy(), radius)
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.DrawMask(out, out.Bounds(), img, b.Min, mask, image.Point{}, draw.Src)
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
