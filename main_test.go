package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/folio/layout"
)

func exampleOptions(t *testing.T, format, output string) options {
	t.Helper()
	data, err := loadData("", "examples/confirm.json")
	if err != nil {
		t.Fatalf("load data: %v", err)
	}
	return options{
		input:  "examples/confirm.folio",
		output: output,
		format: format,
		page:   -1,
		scale:  1,
		dpi:    layout.DefaultDPI,
		data:   data,
	}
}

func TestRunText(t *testing.T) {
	dir := t.TempDir()
	opts := exampleOptions(t, "txt", filepath.Join(dir, "out", "confirm.txt"))
	opts.debug = filepath.Join(dir, "debug", "pages.json")
	if err := run(opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	out, err := os.ReadFile(opts.output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{"-- page 1/", "Recipient", "bc1q", "125,000 sat"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}

	raw, err := os.ReadFile(opts.debug)
	if err != nil {
		t.Fatalf("read debug: %v", err)
	}
	var pages []layout.PageTrace
	if err := json.Unmarshal(raw, &pages); err != nil {
		t.Fatalf("decode debug: %v", err)
	}
	if len(pages) < 2 {
		t.Fatalf("expected the long screen to paginate, got %d pages", len(pages))
	}
	if got := pages[0].Blocks[0].Lines; len(got) == 0 || got[0] != "Recipient" {
		t.Fatalf("unexpected first block %v", got)
	}
}

func TestRunChecklistScreen(t *testing.T) {
	opts := exampleOptions(t, "txt", filepath.Join(t.TempDir(), "backup.txt"))
	opts.screen = "backup"
	if err := run(opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	out, _ := os.ReadFile(opts.output)
	if !strings.Contains(string(out), "✓") || !strings.Contains(string(out), "▶") {
		t.Fatalf("checklist icons missing:\n%s", out)
	}
}

func TestRunPNGAndPDF(t *testing.T) {
	dir := t.TempDir()
	for format, magic := range map[string]string{"png": "\x89PNG", "pdf": "%PDF"} {
		opts := exampleOptions(t, format, filepath.Join(dir, "confirm."+format))
		if err := run(opts); err != nil {
			t.Fatalf("%s: run: %v", format, err)
		}
		out, err := os.ReadFile(opts.output)
		if err != nil {
			t.Fatalf("%s: read output: %v", format, err)
		}
		if !bytes.HasPrefix(out, []byte(magic)) {
			t.Fatalf("%s: unexpected header %q", format, out[:min(len(out), 8)])
		}
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.folio")
	if err := os.WriteFile(bad, []byte("doc {"), 0o644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		opts options
		want string
	}{
		{"format", options{format: "gif"}, "未知的输出格式"},
		{"missing file", options{format: "txt", input: filepath.Join(dir, "nope.folio")}, "无法打开"},
		{"parse", options{format: "txt", input: bad}, "解析 DSL 失败"},
		{"screen", options{format: "txt", input: "examples/confirm.folio", screen: "nope"}, "构建屏幕失败"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.opts)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLoadData(t *testing.T) {
	data, err := loadData(`{"tx": {"$base64": "AQI="}, "n": 1}`, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string]any{"tx": []byte{1, 2}, "n": 1.0}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if data, err := loadData("", ""); err != nil || data != nil {
		t.Fatalf("empty input should yield nil, got %v, %v", data, err)
	}
	if _, err := loadData("{}", "x.json"); err == nil {
		t.Fatal("expected error when both sources are given")
	}
	if _, err := loadData("{", ""); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]string{
		"out/a.PDF": "pdf",
		"a.txt":     "txt",
		"a.png":     "png",
		"a":         "png",
	} {
		if got := formatFromPath(path); got != want {
			t.Errorf("formatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
