// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/framegrace/deskfolio/config"
	"github.com/framegrace/deskfolio/render"
)

// isolate points config and content at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvContentDB, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootHasSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, c := range newRootCmd().Commands() {
		found[c.Name()] = true
	}
	for _, name := range []string{"run", "serve", "mcp", "screenshot", "version"} {
		if !found[name] {
			t.Errorf("expected subcommand %q", name)
		}
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	if err != nil || strings.TrimSpace(out) != "deskfolio "+version {
		t.Fatalf("version = %q, %v", out, err)
	}
}

func TestScreenshotWritesPNG(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "desk.png")
	if _, err := execute(t, "screenshot", "-o", path, "--open", "about", "--cols", "80", "--rows", "24"); err != nil {
		t.Fatalf("screenshot: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 80*render.GlyphW || b.Dy() != 24*render.GlyphH {
		t.Fatalf("bounds = %v", b)
	}
	if _, err := os.Stat(filepath.Join(dir, "deskfolio", "deskfolio.yaml")); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestScreenshotText(t *testing.T) {
	isolate(t)
	out, err := execute(t, "screenshot", "--format", "text", "--open", "terminal")
	if err != nil {
		t.Fatalf("screenshot: %v", err)
	}
	if !strings.Contains(out, "Terminal") || !strings.Contains(out, "Start") {
		t.Fatalf("text frame missing window or taskbar:\n%s", out)
	}
}

func TestScreenshotErrors(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "screenshot", "--format", "bmp"); err == nil {
		t.Fatalf("expected format error")
	}
	if _, err := execute(t, "screenshot", "--open", "minesweeper"); err == nil {
		t.Fatalf("expected unknown app error")
	}
}

func TestRunNeedsTerminal(t *testing.T) {
	isolate(t)
	prev := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = prev })

	if _, err := execute(t); !errors.Is(err, errNoTTY) {
		t.Fatalf("err = %v, want errNoTTY", err)
	}
}

func TestBadConfigFails(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("shell: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", path, "version"); err == nil {
		t.Fatalf("expected config error")
	}
}
