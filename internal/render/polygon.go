package render

import (
	"image"
	"image/color"
	"sort"
)

// FillEvenOdd fills the region enclosed by the rings under the even-odd
// rule, alpha-blending col over dst. Rings are closed implicitly.
func FillEvenOdd(dst *image.RGBA, rings [][]image.Point, col color.RGBA) {
	if col.A == 0 || len(rings) == 0 {
		return
	}
	b := dst.Bounds()
	minY, maxY := b.Max.Y, b.Min.Y
	for _, ring := range rings {
		for _, p := range ring {
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	if minY < b.Min.Y {
		minY = b.Min.Y
	}
	if maxY > b.Max.Y-1 {
		maxY = b.Max.Y - 1
	}

	var xs []float64
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		sy := float64(y) + 0.5
		for _, ring := range rings {
			n := len(ring)
			if n < 3 {
				continue
			}
			for i := 0; i < n; i++ {
				p0 := ring[i]
				p1 := ring[(i+1)%n]
				y0, y1 := float64(p0.Y), float64(p1.Y)
				if y0 == y1 {
					continue
				}
				if (sy >= y0 && sy < y1) || (sy >= y1 && sy < y0) {
					t := (sy - y0) / (y1 - y0)
					xs = append(xs, float64(p0.X)+t*float64(p1.X-p0.X))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(xs[i] + 0.5)
			x1 := int(xs[i+1] + 0.5)
			if x0 < b.Min.X {
				x0 = b.Min.X
			}
			if x1 > b.Max.X {
				x1 = b.Max.X
			}
			for x := x0; x < x1; x++ {
				blendPixel(dst, x, y, col)
			}
		}
	}
}

func blendPixel(dst *image.RGBA, x, y int, col color.RGBA) {
	base := dst.RGBAAt(x, y)
	a := uint32(col.A)
	inv := 255 - a
	dst.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(col.R)*a + uint32(base.R)*inv) / 255),
		G: uint8((uint32(col.G)*a + uint32(base.G)*inv) / 255),
		B: uint8((uint32(col.B)*a + uint32(base.B)*inv) / 255),
		A: 255,
	})
}
