package config

import (
	"image/color"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
save_dir = /tmp/screens
history_limit = 25

[notify]
copy = true
save = false
failure = false

[tools]
color = dodgerblue
width = 5
font_size = 20

[overlay]
dim_opacity = 180

[export]
shadow = true
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.SaveDir != "/tmp/screens" {
		t.Errorf("Expected save_dir '/tmp/screens', got '%s'", cfg.SaveDir)
	}
	if cfg.HistoryLimit != 25 {
		t.Errorf("Expected history_limit 25, got %d", cfg.HistoryLimit)
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}
	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if cfg.Notify.Failure {
		t.Error("Expected notify.failure to be false")
	}
	if cfg.Tools.Color != (color.RGBA{R: 0x1E, G: 0x90, B: 0xFF, A: 255}) {
		t.Errorf("Unexpected tools color: %+v", cfg.Tools.Color)
	}
	if cfg.Tools.Width != 5 {
		t.Errorf("Expected tools width 5, got %g", cfg.Tools.Width)
	}
	if cfg.Tools.FontSize != 20 {
		t.Errorf("Expected font size 20, got %g", cfg.Tools.FontSize)
	}
	if cfg.Overlay.DimOpacity != 180 {
		t.Errorf("Expected dim_opacity 180, got %d", cfg.Overlay.DimOpacity)
	}
	if !cfg.Export.Shadow {
		t.Error("Expected export.shadow to be true")
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.HistoryLimit != 50 {
		t.Errorf("Expected default history_limit 50, got %d", cfg.HistoryLimit)
	}
	if cfg.Tools.Color != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("Unexpected default color: %+v", cfg.Tools.Color)
	}
	if cfg.Overlay.DimOpacity != 140 {
		t.Errorf("Unexpected default dim_opacity: %d", cfg.Overlay.DimOpacity)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad history limit", "history_limit = zero"},
		{"negative history limit", "history_limit = -1"},
		{"bad notify bool", "[notify]\ncopy = maybe"},
		{"unknown color name", "[tools]\ncolor = sparkle"},
		{"bad hex length", "[tools]\ncolor = #12345"},
		{"bad opacity", "[overlay]\ndim_opacity = 300"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Parse(%q) = nil error", tt.input)
			}
		})
	}
}

func TestCircular(t *testing.T) {
	input := `save_dir = /home/user/shots
history_limit = 30

[notify]
copy = true
save = false
failure = true

[tools]
color = #00FF7F
width = 4
font_size = 18

[overlay]
dim_opacity = 120

[export]
shadow = true
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	// 4. Compare relevant fields
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.HistoryLimit != cfg2.HistoryLimit {
		t.Errorf("HistoryLimit mismatch: %d vs %d", cfg.HistoryLimit, cfg2.HistoryLimit)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Tools != cfg2.Tools {
		t.Errorf("Tools mismatch: %+v vs %+v", cfg.Tools, cfg2.Tools)
	}
	if cfg.Overlay != cfg2.Overlay {
		t.Errorf("Overlay mismatch: %+v vs %+v", cfg.Overlay, cfg2.Overlay)
	}
	if cfg.Export != cfg2.Export {
		t.Errorf("Export mismatch: %+v vs %+v", cfg.Export, cfg2.Export)
	}
}

func TestParseColorForms(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#FF0000", color.RGBA{R: 255, A: 255}},
		{"#00FF0080", color.RGBA{G: 255, A: 128}},
		{"white", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"SteelBlue", color.RGBA{R: 0x46, G: 0x82, B: 0xB4, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
