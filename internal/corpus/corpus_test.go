package corpus

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeCorpus creates a nested tree of small files and returns the root.
func writeCorpus(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func paths(files []File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestWalker_MissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestWalker_RootNotDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(file); err == nil {
		t.Fatal("expected error for non-directory root")
	}
}

func TestWalker_LexicographicOrder(t *testing.T) {
	root := writeCorpus(t, "b/two.png", "a/one.png", "c.png", "a/zz.png")

	w, err := New(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := paths(w.List())
	want := []string{
		filepath.Join(root, "a", "one.png"),
		filepath.Join(root, "a", "zz.png"),
		filepath.Join(root, "b", "two.png"),
		filepath.Join(root, "c.png"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestWalker_LexicographicOrderWithSharedPrefix(t *testing.T) {
	// "a.png" sorts before "a/b.png" ('.' < '/'), but a plain
	// directory walk emits the directory's contents first.
	root := writeCorpus(t, "a/b.png", "a.png")

	w, err := New(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := paths(w.List())
	want := []string{
		filepath.Join(root, "a.png"),
		filepath.Join(root, "a", "b.png"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestWalker_DeterministicAcrossRuns(t *testing.T) {
	names := make([]string, 0, 20)
	for i := range 20 {
		names = append(names, fmt.Sprintf("dir%d/file%02d.png", i%3, i))
	}
	root := writeCorpus(t, names...)

	w, err := New(root, WithFraction(0.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := paths(w.List())
	second := paths(w.List())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("enumeration not stable:\n first %v\nsecond %v", first, second)
	}
}

func TestWalker_ExtensionFilter(t *testing.T) {
	root := writeCorpus(t, "a.png", "b.webp", "c.txt", "d.PNG")

	w, err := New(root, WithExtensions(".png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	files := w.List()
	if len(files) != 2 {
		t.Fatalf("expected 2 png files, got %d: %v", len(files), paths(files))
	}
	for _, f := range files {
		if f.Format != "png" {
			t.Errorf("unexpected format %q for %s", f.Format, f.Path)
		}
	}
}

func TestWalker_FractionSubsetSize(t *testing.T) {
	names := make([]string, 0, 10)
	for i := range 10 {
		names = append(names, fmt.Sprintf("f%02d.raw", i))
	}
	root := writeCorpus(t, names...)

	for _, fraction := range []float64{0.1, 0.25, 0.3, 0.5, 0.75, 1.0} {
		w, err := New(root, WithFraction(fraction))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := len(w.List())
		want := int(math.Ceil(fraction * 10))
		if got != want {
			t.Errorf("fraction %.2f: expected %d files, got %d", fraction, want, got)
		}
	}
}

func TestWalker_FractionEvenlySpaced(t *testing.T) {
	names := make([]string, 0, 10)
	for i := range 10 {
		names = append(names, fmt.Sprintf("f%02d.raw", i))
	}
	root := writeCorpus(t, names...)

	w, err := New(root, WithFraction(0.3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := paths(w.List())
	// ceil(0.3*10) = 3 picks at indices 0, 3, 6.
	want := []string{
		filepath.Join(root, "f00.raw"),
		filepath.Join(root, "f03.raw"),
		filepath.Join(root, "f06.raw"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("subset mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestWalker_FilesIsRestartable(t *testing.T) {
	root := writeCorpus(t, "a.png", "b.png", "c.png")

	w, err := New(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Break out of the first iteration early, then iterate fully.
	for range w.Files() {
		break
	}

	count := 0
	for range w.Files() {
		count++
	}
	if count != 3 {
		t.Errorf("expected 3 files on second pass, got %d", count)
	}
}
