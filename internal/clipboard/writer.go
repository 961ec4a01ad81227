package clipboard

import (
	"errors"
	"fmt"
	"image"
)

// ErrWriteFailed reports a clipboard publish that did not take effect. The
// caller keeps its state so the write can be retried.
var ErrWriteFailed = errors.New("clipboard: write failed")

// Writer adapts the package-level clipboard functions to the session's
// collaborator interface.
type Writer struct{}

// WriteImage publishes the image, wrapping any failure in ErrWriteFailed.
func (Writer) WriteImage(img image.Image) error {
	if err := WriteImage(img); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}
