package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/snipmark/internal/capture"
	"github.com/example/snipmark/internal/clipboard"
	"github.com/example/snipmark/internal/render"
)

type shotCmd struct {
	output             string
	stdout             bool
	toClipboard        bool
	display            string
	window             string
	rect               string
	shadow             bool
	includeDecorations bool
	includeCursor      bool
	*root
	fs *flag.FlagSet
}

func (c *shotCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseShotCmd(args []string, r *root) (*shotCmd, error) {
	fs := flag.NewFlagSet("shot", flag.ExitOnError)
	c := &shotCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	output := "snip.png"
	shadowDefault := false
	if r != nil && r.config != nil {
		if r.config.SaveDir != "" {
			output = filepath.Join(r.config.SaveDir, output)
		}
		shadowDefault = r.config.Export.Shadow
	}
	fs.StringVar(&c.output, "output", output, "write the capture to this file path")
	fs.StringVar(&c.display, "display", "", "target display selector")
	fs.StringVar(&c.window, "window", "", "capture the window matching this title substring or id")
	fs.StringVar(&c.rect, "rect", "", "capture rectangle x0,y0,x1,y1 in capture pixels")
	fs.BoolVar(&c.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the capture to the clipboard")
	fs.BoolVar(&c.shadow, "shadow", shadowDefault, "apply a drop shadow to the captured image")
	fs.BoolVar(&c.includeDecorations, "include-decorations", false, "request window decorations when capturing windows")
	fs.BoolVar(&c.includeCursor, "include-cursor", false, "embed the cursor in captures when supported")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.toClipboard && c.stdout {
		return nil, fmt.Errorf("-stdout cannot be used with -to-clipboard")
	}
	if c.window != "" && (c.rect != "" || c.display != "") {
		return nil, fmt.Errorf("-window cannot be combined with -rect or -display")
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: c}
	}
	if fs.NArg() == 1 && c.display == "" {
		c.display = fs.Arg(0)
	}
	return c, nil
}

func (c *shotCmd) Run() error {
	img, err := c.capture()
	if err != nil {
		return fmt.Errorf("failed to capture screen: %w", err)
	}
	if c.shadow {
		img, _ = render.Shadow(img, render.DefaultShadowOptions())
	}
	if c.toClipboard {
		w := clipboard.Writer{}
		if err := w.WriteImage(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := fmt.Sprintf("%dx%d capture", img.Bounds().Dx(), img.Bounds().Dy())
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		if c.root != nil && c.root.notifier != nil {
			c.root.notifier.Copy(detail)
		}
		return nil
	}
	var w io.Writer
	if c.stdout {
		w = os.Stdout
	} else {
		f, err := os.Create(c.output)
		if err != nil {
			return fmt.Errorf("create output %q: %w", c.output, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				log.Printf("close %s: %v", c.output, cerr)
			}
		}()
		w = f
	}
	if err := png.Encode(w, img); err != nil {
		if c.stdout {
			return fmt.Errorf("write PNG to stdout: %w", err)
		}
		return fmt.Errorf("write PNG to %q: %w", c.output, err)
	}
	if c.stdout {
		fmt.Fprintln(os.Stderr, "wrote PNG data to stdout")
		return nil
	}
	saved := c.output
	if abs, err := filepath.Abs(c.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	if c.root != nil && c.root.notifier != nil {
		c.root.notifier.Save(saved, img)
	}
	return nil
}

func (c *shotCmd) capture() (*image.RGBA, error) {
	opts := capture.CaptureOptions{
		IncludeDecorations: c.includeDecorations,
		IncludeCursor:      c.includeCursor,
	}
	if c.window != "" {
		return captureWindowFn(c.window, opts)
	}
	if strings.TrimSpace(c.rect) != "" {
		rect, err := parseRect(c.rect)
		if err != nil {
			return nil, err
		}
		return captureRegionRectFn(rect, opts)
	}
	return captureScreenshotFn(c.display, opts)
}

var (
	captureRegionRectFn = capture.CaptureRegionRect
	captureWindowFn     = capture.CaptureWindow
)

func parseRect(val string) (image.Rectangle, error) {
	parts := strings.Split(val, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("invalid region %q", val)
	}
	nums := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid region %q", val)
		}
		nums[i] = v
	}
	rect := image.Rect(nums[0], nums[1], nums[2], nums[3])
	if rect.Empty() {
		return image.Rectangle{}, fmt.Errorf("region %q is empty", val)
	}
	return rect, nil
}
