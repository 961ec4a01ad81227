// Package ocr defines the text-recognition collaborator consumed by the
// capture session. No engine ships with this module; callers plug one in.
package ocr

import (
	"context"

	"github.com/example/snipmark/internal/geometry"
)

// Line is one recognized line of text and where it sits in the input
// image, in capture pixels.
type Line struct {
	Text   string
	Bounds geometry.Rect
}

// Result is the outcome of recognizing a region.
type Result struct {
	Text  string
	Lines []Line
}

// Recognizer extracts text from an encoded image region.
type Recognizer interface {
	RecognizeRegion(ctx context.Context, imageBytes []byte) (Result, error)
}
