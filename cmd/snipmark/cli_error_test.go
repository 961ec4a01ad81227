package main

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/example/snipmark/internal/capture"
)

func TestShotRunCaptureError(t *testing.T) {
	original := captureScreenshotFn
	sentinel := errors.New("boom")
	captureScreenshotFn = func(string, capture.CaptureOptions) (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenshotFn = original })

	cmd := &shotCmd{stdout: true}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else {
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
		if want := "failed to capture screen"; !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to contain %q, got %v", want, err)
		}
	}
}

func TestSnipRunCaptureError(t *testing.T) {
	original := captureScreenshotFn
	sentinel := errors.New("denied")
	captureScreenshotFn = func(string, capture.CaptureOptions) (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenshotFn = original })

	cmd := &snipCmd{root: &root{program: "snipmark"}}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestParseShotRejectsStdoutWithClipboard(t *testing.T) {
	_, err := parseShotCmd([]string{"-stdout", "-to-clipboard"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "-stdout cannot be used with -to-clipboard"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseShotRejectsWindowWithRect(t *testing.T) {
	for _, args := range [][]string{
		{"-window", "editor", "-rect", "0,0,10,10"},
		{"-window", "editor", "-display", "primary"},
	} {
		_, err := parseShotCmd(args, nil)
		if err == nil {
			t.Fatalf("expected error for %v", args)
		}
		if want := "-window cannot be combined"; !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %q, got %v", want, err)
		}
	}
}

func TestShotWindowSelectorUsesWindowCapture(t *testing.T) {
	original := captureWindowFn
	var gotSelector string
	captureWindowFn = func(selector string, opts capture.CaptureOptions) (*image.RGBA, error) {
		gotSelector = selector
		if !opts.IncludeDecorations {
			t.Error("expected decorations to be requested")
		}
		return nil, errors.New("short-circuit")
	}
	t.Cleanup(func() { captureWindowFn = original })

	cmd := &shotCmd{window: "editor", includeDecorations: true, stdout: true}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	}
	if gotSelector != "editor" {
		t.Fatalf("window capture got selector %q, want %q", gotSelector, "editor")
	}
}

func TestParseShotRejectsBadRect(t *testing.T) {
	original := captureRegionRectFn
	captureRegionRectFn = func(image.Rectangle, capture.CaptureOptions) (*image.RGBA, error) {
		t.Fatal("capture should not run for an invalid rect")
		return nil, nil
	}
	t.Cleanup(func() { captureRegionRectFn = original })

	cmd := &shotCmd{rect: "1,2,3", stdout: true}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "invalid region"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}
