package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/snipmark/internal/capture"
)

type monitorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseMonitorsCmd(args []string, r *root) (*monitorsCmd, error) {
	fs := flag.NewFlagSet("monitors", flag.ExitOnError)
	cmd := &monitorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *monitorsCmd) Run() error {
	monitors, err := capture.Monitors()
	if err != nil {
		return err
	}
	if len(monitors) == 0 {
		fmt.Fprintln(os.Stdout, "no monitors available")
		return nil
	}
	fmt.Fprintln(os.Stdout, "available monitors (* marks the primary monitor):")
	for idx, m := range monitors {
		marker := " "
		if m.Primary {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %d: %gx%g at %g,%g\n", marker, idx, m.Width, m.Height, m.X, m.Y)
	}
	return nil
}

func (c *monitorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
