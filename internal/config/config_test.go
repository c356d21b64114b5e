package config

import (
	"bytes"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	var out bytes.Buffer
	cfg, err := Parse(nil, &out)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Monitor != 1 {
		t.Errorf("Monitor = %d, want 1", cfg.Monitor)
	}
	if cfg.FPS != 30 {
		t.Errorf("FPS = %d, want 30", cfg.FPS)
	}
	if !cfg.Offscreen {
		t.Error("expected Offscreen by default")
	}
	if cfg.Title != "Monitor 1" {
		t.Errorf("Title = %q, want %q", cfg.Title, "Monitor 1")
	}
}

func TestFlagsAndPositional(t *testing.T) {
	var out bytes.Buffer
	cfg, err := Parse([]string{"-fps", "60", "-onscreen", "-title", "spare", "0"}, &out)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Monitor != 0 || cfg.FPS != 60 || cfg.Offscreen || cfg.Title != "spare" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestListFlag(t *testing.T) {
	var out bytes.Buffer
	cfg, err := Parse([]string{"-list"}, &out)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !cfg.List {
		t.Error("expected List to be set")
	}
}

func TestInvalidArgumentsReportOneLine(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"monitor not an integer", []string{"abc"}},
		{"monitor negative", []string{"-2"}},
		{"fps not an integer", []string{"-fps", "abc"}},
		{"fps zero", []string{"-fps", "0"}},
		{"fps negative", []string{"-fps", "-5"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			if _, err := Parse(tc.args, &out); err == nil {
				t.Fatal("expected an error")
			}
			if out.Len() == 0 {
				t.Error("expected a diagnostic on the error stream")
			}
		})
	}
}

func TestBadMonitorMentionsValue(t *testing.T) {
	var out bytes.Buffer
	_, err := Parse([]string{"abc"}, &out)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(out.String(), "abc") {
		t.Errorf("diagnostic should name the bad value, got %q", out.String())
	}
}
