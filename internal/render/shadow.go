package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow applied to an exported crop.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns a conservative drop shadow that works well
// with most screenshots.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{Radius: 24, Offset: image.Pt(16, 16), Opacity: 0.55}
}

// Shadow composites img onto an expanded transparent canvas with a blurred
// drop shadow behind it. The returned point is where the original top-left
// corner landed on the new canvas.
func Shadow(img *image.RGBA, opts ShadowOptions) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return img, image.Point{}
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	src := img.Bounds()
	padded := src
	if radius > 0 {
		padded = padded.Inset(-radius)
	}
	shadowRect := padded.Add(opts.Offset)
	composite := src.Union(shadowRect)
	if composite.Dx() <= 0 || composite.Dy() <= 0 {
		return img, image.Point{}
	}

	shift := src.Min.Sub(composite.Min)
	shadowOrigin := shadowRect.Min.Sub(composite.Min)

	// Seed the blur mask with the source alpha channel.
	mask := image.NewGray(padded.Sub(padded.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			a := img.RGBAAt(x, y).A
			if a == 0 {
				continue
			}
			mask.SetGray(x-padded.Min.X, y-padded.Min.Y, color.Gray{Y: a})
		}
	}
	blurred := boxBlur(mask, radius)

	dst := image.NewRGBA(composite.Sub(composite.Min))
	alpha := uint8(opacity*255 + 0.5)
	if alpha > 0 {
		draw.DrawMask(dst, blurred.Bounds().Add(shadowOrigin),
			image.NewUniform(color.RGBA{A: alpha}), image.Point{},
			blurred, blurred.Bounds().Min, draw.Over)
	}
	draw.Draw(dst, src.Sub(composite.Min), img, src.Min, draw.Over)
	return dst, shift
}

// boxBlur applies a separable box blur of the given radius using prefix sums
// per row and column.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	for y := 0; y < h; y++ {
		rowStart := y * src.Stride
		tmpStart := y * tmp.Stride
		prefix := make([]int, w+1)
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[rowStart+x])
		}
		for x := 0; x < w; x++ {
			x0 := maxInt(x-radius, 0)
			x1 := minInt(x+radius, w-1)
			tmp.Pix[tmpStart+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		prefix := make([]int, h+1)
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := maxInt(y-radius, 0)
			y1 := minInt(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return dst
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
