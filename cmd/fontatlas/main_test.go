package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestRunWritesPages(t *testing.T) {
	dir := t.TempDir()
	fontPath := filepath.Join(dir, "goregular.ttf")
	if err := os.WriteFile(fontPath, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-font", fontPath, "-size", "12", "-out", outDir, "-text", "AV", "-scale", "2"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run() error = %v\nstderr: %s", err, stderr.String())
	}

	f, err := os.Open(filepath.Join(outDir, "page-0.png"))
	if err != nil {
		t.Fatalf("page-0.png not written: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width < 256 || cfg.Height < 256 {
		t.Errorf("scaled page = %dx%d, want at least 256x256", cfg.Width, cfg.Height)
	}

	out := stdout.String()
	for _, want := range []string{"kind: Outline", "point size: 12", "'A': page", "kerning"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no font", nil},
		{"bad scale", []string{"-font", "x.ttf", "-scale", "0"}},
		{"missing file", []string{"-font", filepath.Join(t.TempDir(), "missing.ttf")}},
		{"unknown flag", []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run(tt.args, &stdout, &stderr); err == nil {
				t.Error("run() succeeded")
			}
		})
	}
}
