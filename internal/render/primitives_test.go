package render

import (
	"image"
	"image/color"
	"testing"
)

var red = color.RGBA{R: 255, A: 255}

func TestLineEndpoints(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	Line(img, 2, 3, 15, 12, red, 1)
	if img.RGBAAt(2, 3) != red {
		t.Fatal("start pixel not set")
	}
	if img.RGBAAt(15, 12) != red {
		t.Fatal("end pixel not set")
	}
}

func TestLineThickness(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	Line(img, 0, 10, 19, 10, red, 4)
	for _, y := range []int{8, 9, 10, 11, 12} {
		if img.RGBAAt(10, y) != red {
			t.Fatalf("thick line missing pixel at y=%d", y)
		}
	}
}

func TestPolyline(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 30))
	pts := []image.Point{{2, 2}, {20, 2}, {20, 20}}
	Polyline(img, pts, red, 1)
	for _, p := range pts {
		if img.RGBAAt(p.X, p.Y) != red {
			t.Fatalf("polyline missing vertex %v", p)
		}
	}
	if img.RGBAAt(10, 2) != red || img.RGBAAt(20, 10) != red {
		t.Fatal("polyline missing segment interior")
	}
}

func TestOutlineCorners(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 30))
	r := image.Rect(5, 5, 25, 20)
	Outline(img, r, red, 1)
	for _, p := range []image.Point{{5, 5}, {24, 5}, {24, 19}, {5, 19}} {
		if img.RGBAAt(p.X, p.Y) != red {
			t.Fatalf("outline missing corner %v", p)
		}
	}
	if img.RGBAAt(15, 12) == red {
		t.Fatal("outline filled the interior")
	}
}

func TestFilledEllipseCenterAndExtent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	FilledEllipse(img, 20, 20, 10, 5, red)
	if img.RGBAAt(20, 20) != red {
		t.Fatal("ellipse center not filled")
	}
	if img.RGBAAt(10, 20) != red || img.RGBAAt(30, 20) != red {
		t.Fatal("ellipse horizontal extremes not filled")
	}
	if img.RGBAAt(20, 10) == red {
		t.Fatal("filled outside the vertical radius")
	}
}

func TestArrowHeadDrawn(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 30))
	Arrow(img, 5, 15, 50, 15, red, 2)
	if img.RGBAAt(50, 15) != red {
		t.Fatal("arrow tip not drawn")
	}
	// Head barbs extend back and off-axis from the tip.
	found := false
	for y := 5; y < 15; y++ {
		for x := 38; x < 50; x++ {
			if img.RGBAAt(x, y) == red {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("expected arrow head pixels above the shaft")
	}
}

func TestRoundedMaskCorners(t *testing.T) {
	mask := RoundedMask(40, 40, 10)
	if mask.AlphaAt(0, 0).A != 0 {
		t.Fatal("corner pixel should be clipped")
	}
	if mask.AlphaAt(20, 20).A != 255 {
		t.Fatal("center pixel should be opaque")
	}
	if mask.AlphaAt(20, 0).A != 255 {
		t.Fatal("edge midpoint should be opaque")
	}
}

func TestApplyRoundedClip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, red)
		}
	}
	out := ApplyRoundedClip(img, 12)
	if out.RGBAAt(0, 0).A != 0 {
		t.Fatal("corner should be transparent after clipping")
	}
	if out.RGBAAt(20, 20) != red {
		t.Fatal("center should be untouched")
	}
	// Zero radius passes the image through unchanged.
	if got := ApplyRoundedClip(img, 0); got != img {
		t.Fatal("zero radius should return the original image")
	}
}
