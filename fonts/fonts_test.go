package fonts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	for _, src := range []string{"", "builtin:gomono", "embed:GoRegular", "builtin:lmroman"} {
		data, err := Load(src, "")
		if err != nil {
			t.Fatalf("Load(%q): %v", src, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) returned no data", src)
		}
	}
	if _, err := Load("builtin:nope", ""); err == nil {
		t.Fatal("expected error for unknown builtin font")
	}
}

func TestLoadFileRelativeToBase(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.ttf"), []byte("fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := Load("a.ttf", dir)
	if err != nil || string(data) != "fake" {
		t.Fatalf("Load = %q, %v", data, err)
	}
	if _, err := Load("missing.ttf", dir); err == nil {
		t.Fatal("expected error for missing file")
	}
}
