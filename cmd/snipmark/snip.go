package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/snipmark/internal/capture"
	"github.com/example/snipmark/internal/clipboard"
	"github.com/example/snipmark/internal/export"
	"github.com/example/snipmark/internal/overlay"
	"github.com/example/snipmark/internal/session"
	"github.com/example/snipmark/internal/theme"
	"github.com/example/snipmark/internal/tools"
)

// captureScreenshotFn is swapped out by tests.
var captureScreenshotFn = capture.CaptureScreenshot

type snipCmd struct {
	display       string
	shadow        bool
	themeName     string
	includeCursor bool
	*root
	fs *flag.FlagSet
}

func (c *snipCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseSnipCmd(args []string, r *root) (*snipCmd, error) {
	fs := flag.NewFlagSet("snip", flag.ExitOnError)
	c := &snipCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	shadowDefault := false
	if r != nil && r.config != nil {
		shadowDefault = r.config.Export.Shadow
	}
	fs.StringVar(&c.display, "display", "", "target display selector for the capture")
	fs.BoolVar(&c.shadow, "shadow", shadowDefault, "apply a drop shadow to the exported image")
	fs.StringVar(&c.themeName, "theme", "", "overlay color theme name or file path")
	fs.BoolVar(&c.includeCursor, "include-cursor", false, "embed the cursor in the capture when supported")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: c}
	}
	if fs.NArg() == 1 && c.display == "" {
		c.display = fs.Arg(0)
	}
	return c, nil
}

func (c *snipCmd) Run() error {
	img, err := captureScreenshotFn(c.display, capture.CaptureOptions{IncludeCursor: c.includeCursor})
	if err != nil {
		return fmt.Errorf("failed to capture screen: %w", err)
	}

	layout, layoutErr := capture.Layout(img.Bounds())
	if layoutErr != nil {
		fmt.Fprintf(os.Stderr, "warning: monitor layout unavailable, using capture bounds: %v\n", layoutErr)
	}

	cfg := c.root.config
	sess := session.New(layout,
		session.WithClipboard(clipboard.Writer{}),
		session.WithNotifier(c.root.notifier),
		session.WithExportOptions(export.Options{Shadow: c.shadow}),
		session.WithHistoryLimit(cfg.HistoryLimit),
	)
	params := sess.Tools().Params()
	params.SetCommon(tools.ParamColor, cfg.Tools.Color)
	params.Set(tools.Brush, tools.ParamWidth, cfg.Tools.Width)
	params.Set(tools.Rectangle, tools.ParamWidth, cfg.Tools.Width)
	params.Set(tools.Arrow, tools.ParamWidth, cfg.Tools.Width)
	params.Set(tools.TextTool, tools.ParamFontSize, cfg.Tools.FontSize)
	sess.SetBackground(img, capture.DisplayTransform(layout, img.Bounds()))

	win := overlay.New(sess, img,
		overlay.WithTheme(c.loadTheme()),
		overlay.WithDimOpacity(cfg.Overlay.DimOpacity),
	)
	win.Run()
	return nil
}

// loadTheme resolves the overlay theme, CLI flag over environment. A
// missing theme falls back to the default with a warning.
func (c *snipCmd) loadTheme() *theme.Theme {
	name := c.themeName
	if name == "" {
		name = os.Getenv("SNIPMARK_THEME")
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		return theme.Default()
	}
	return t
}
